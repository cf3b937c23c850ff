// Package todo owns the authoritative task list: validation, filtering,
// counts and write-through persistence.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength is the longest accepted task text, in characters, after trimming.
const MaxTextLength = 200

// Task is a single item in the list
type Task struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Filter selects which tasks a list view shows
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the selectable filters in display order
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ErrUnknownFilter is returned by ParseFilter for names outside Filters
var ErrUnknownFilter = errors.New("unknown filter")

// ParseFilter converts a user-supplied name into a Filter.
// An empty name means FilterAll.
func ParseFilter(name string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(name))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("%w: %q (want all, active or completed)", ErrUnknownFilter, name)
}

// Next returns the filter that follows f in Filters, wrapping around
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Matches reports whether t belongs in the view selected by f.
// Unknown filters match everything.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Stats holds task counts. Active+Completed always equals Total.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Active    int `json:"active" yaml:"active"`
	Completed int `json:"completed" yaml:"completed"`
}

// Rejection classifies why ValidateText refused an input
type Rejection int

const (
	Accepted Rejection = iota
	RejectEmpty
	RejectTooLong
)

func (r Rejection) String() string {
	switch r {
	case RejectEmpty:
		return "task text cannot be empty"
	case RejectTooLong:
		return fmt.Sprintf("task text cannot exceed %d characters", MaxTextLength)
	default:
		return "ok"
	}
}

// ValidateText trims text and checks it against the length bounds.
// The store applies the same rule in Create; presentation code calls this
// to decide which message to show after a rejected create.
func ValidateText(text string) (string, Rejection) {
	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)
	if n == 0 {
		return trimmed, RejectEmpty
	}
	if n > MaxTextLength {
		return trimmed, RejectTooLong
	}
	return trimmed, Accepted
}
