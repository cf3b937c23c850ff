package todo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StorageKey is the record key the task list lives under
const StorageKey = "todos"

// GenerateID builds an id from a base-36 millisecond timestamp and a random suffix
func GenerateID(now time.Time) string {
	u := uuid.New().String()
	return strconv.FormatInt(now.UnixMilli(), 36) + strings.ReplaceAll(u[:9], "-", "")
}

// Encode serializes tasks into the persisted record shape
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses a persisted record and checks every entry against the
// task invariants. Any violation rejects the whole record.
func Decode(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parsing task record: %w", err)
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("task %d: missing id", i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("task %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = struct{}{}

		if trimmed, rejection := ValidateText(t.Text); rejection != Accepted || trimmed != t.Text {
			return nil, fmt.Errorf("task %d: invalid text", i)
		}
		if t.CreatedAt.IsZero() {
			return nil, fmt.Errorf("task %d: missing createdAt", i)
		}
	}

	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (s *Store) load() []Task {
	if s.persister == nil {
		return []Task{}
	}

	data, ok, err := s.persister.Read(StorageKey)
	if err != nil {
		s.logger.Error("reading stored tasks, starting empty", "key", StorageKey, "error", err)
		return []Task{}
	}
	if !ok {
		return []Task{}
	}

	tasks, err := Decode(data)
	if err != nil {
		s.logger.Error("stored tasks are corrupt, starting empty", "key", StorageKey, "error", err)
		return []Task{}
	}

	for _, t := range tasks {
		s.ids[t.ID] = struct{}{}
	}
	s.logger.Debug("restored tasks", "count", len(tasks))
	return tasks
}

// save writes the full list. Failures are logged and never returned so the
// caller only ever sees the in-memory outcome.
func (s *Store) save() {
	if s.persister == nil {
		return
	}

	data, err := Encode(s.tasks)
	if err != nil {
		s.logger.Error("encoding tasks", "error", err)
		return
	}

	if err := s.persister.Write(StorageKey, data); err != nil {
		s.logger.Error("writing tasks", "key", StorageKey, "error", err)
	}
}
