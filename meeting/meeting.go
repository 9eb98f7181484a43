/*
Package meeting implements the meeting book: scheduled meetings per
employee with schedule, list, and cancel operations.

SEMANTICS:
  Simple per-employee appended lists, no conflict detection. Cancel
  matches on the exact start time; when a topic is given it narrows the
  match, otherwise every meeting at that instant is removed.
*/
package meeting

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrNoMatch is returned by Cancel when nothing matched.
var ErrNoMatch = errors.New("no matching meeting")

// Meeting is one scheduled meeting for an employee.
type Meeting struct {
	EmployeeID string
	At         time.Time
	Topic      string
}

// Book holds scheduled meetings per employee. Safe for concurrent use.
type Book struct {
	mu       sync.RWMutex
	meetings map[string][]Meeting
}

// NewBook creates an empty meeting book.
func NewBook() *Book {
	return &Book{meetings: make(map[string][]Meeting)}
}

// Schedule adds a meeting for an employee.
func (b *Book) Schedule(employeeID string, at time.Time, topic string) Meeting {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := Meeting{EmployeeID: employeeID, At: at, Topic: topic}
	b.meetings[employeeID] = append(b.meetings[employeeID], m)
	return m
}

// List returns an employee's meetings sorted by start time.
func (b *Book) List(employeeID string) []Meeting {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := append([]Meeting(nil), b.meetings[employeeID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// Cancel removes meetings at the given start time. An empty topic removes
// every meeting at that instant; a non-empty topic removes only matching
// ones. Returns how many were removed, or ErrNoMatch.
func (b *Book) Cancel(employeeID string, at time.Time, topic string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var kept []Meeting
	removed := 0
	for _, m := range b.meetings[employeeID] {
		if m.At.Equal(at) && (topic == "" || m.Topic == topic) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	if removed == 0 {
		return 0, fmt.Errorf("%w for %s at %s", ErrNoMatch, employeeID, at.Format(time.RFC3339))
	}
	b.meetings[employeeID] = kept
	return removed, nil
}
