package todo

import (
	"fmt"
	"log/slog"
	"time"
)

// Persister is the durable key-value record the store reads once at
// construction and writes after every successful mutation.
type Persister interface {
	// Read returns the value stored under key; ok is false when absent.
	Read(key string) (value []byte, ok bool, err error)
	Write(key string, value []byte) error
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how new ids are derived from the creation time.
// The store still rejects a generated id that is already in use.
func WithIDGenerator(gen func(time.Time) string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Store holds the ordered task list and the current filter selection.
// It is not safe for concurrent use; callers drive it from a single goroutine.
type Store struct {
	persister Persister
	logger    *slog.Logger
	now       func() time.Time
	newID     func(time.Time) string

	tasks  []Task
	filter Filter
	ids    map[string]struct{} // every id issued or loaded this session
}

// New creates a store and restores its tasks from p.
// A missing or unreadable record yields an empty store.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     GenerateID,
		filter:    FilterAll,
		ids:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tasks = s.load()
	return s
}

// Create validates text and appends a new active task.
// ok is false when the trimmed text is empty or longer than MaxTextLength.
func (s *Store) Create(text string) (Task, bool) {
	trimmed, rejection := ValidateText(text)
	if rejection != Accepted {
		return Task{}, false
	}

	now := s.now()
	t := Task{
		ID:        s.uniqueID(now),
		Text:      trimmed,
		Completed: false,
		CreatedAt: now,
	}
	s.tasks = append(s.tasks, t)
	s.save()

	return t, true
}

// Delete removes the task with the given id, keeping the order of the rest
func (s *Store) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.save()
	return true
}

// Toggle flips the completed flag of the task with the given id
func (s *Store) Toggle(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	s.save()
	return true
}

// List returns the tasks selected by the current filter
func (s *Store) List() []Task {
	return s.ListBy(s.filter)
}

// ListBy returns the tasks selected by f in insertion order.
// The result is a fresh slice on every call.
func (s *Store) ListBy(f Filter) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// FindByID returns the task with the given id
func (s *Store) FindByID(id string) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// ClearCompleted removes every completed task and returns how many were removed.
// Nothing is written when there was nothing to remove.
func (s *Store) ClearCompleted() int {
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}

	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0
	}

	s.tasks = kept
	s.save()
	return removed
}

// ClearAll removes every task. It always writes, even when already empty.
func (s *Store) ClearAll() {
	s.tasks = []Task{}
	s.save()
}

// Stats counts all, active and completed tasks
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		} else {
			st.Active++
		}
	}
	return st
}

// SetFilter changes the current filter selection. It is never persisted.
func (s *Store) SetFilter(f Filter) {
	s.filter = f
}

// CurrentFilter returns the current filter selection
func (s *Store) CurrentFilter() Filter {
	return s.filter
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID(now time.Time) string {
	id := s.newID(now)
	for n := 1; id == "" || s.issued(id); n++ {
		s.logger.Debug("regenerating colliding task id", "id", id)
		id = fmt.Sprintf("%s-%d", s.newID(now), n)
	}
	s.ids[id] = struct{}{}
	return id
}

func (s *Store) issued(id string) bool {
	_, ok := s.ids[id]
	return ok
}
