/*
Package ticket implements procurement ticket tracking: requests for
equipment (laptop, id card, ...) with a simple open/in-progress/closed
lifecycle.

SEMANTICS:
  Tickets get incrementing numeric ids rendered as strings. Status updates
  are last-write-wins; any status string is accepted from callers but the
  canonical ones are StatusOpen, StatusInProgress, StatusClosed.
*/
package ticket

import (
	"errors"
	"strconv"
	"sync"
)

// Canonical ticket statuses.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

// ErrNotFound is returned when a ticket id is unknown.
var ErrNotFound = errors.New("ticket not found")

// Ticket is one procurement request.
type Ticket struct {
	ID         string
	EmployeeID string
	Item       string
	Reason     string
	Status     string
}

// Tracker holds all tickets. Safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	tickets []Ticket
	byID    map[string]int // ticket id -> index into tickets
	nextID  int
}

// NewTracker creates an empty tracker. Ids start at 1.
func NewTracker() *Tracker {
	return &Tracker{byID: make(map[string]int), nextID: 1}
}

// Create opens a new ticket with StatusOpen.
func (t *Tracker) Create(employeeID, item, reason string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	tk := Ticket{
		ID:         strconv.Itoa(t.nextID),
		EmployeeID: employeeID,
		Item:       item,
		Reason:     reason,
		Status:     StatusOpen,
	}
	t.nextID++
	t.byID[tk.ID] = len(t.tickets)
	t.tickets = append(t.tickets, tk)
	return tk
}

// Restore replaces the tracker's contents with previously created
// tickets, keeping their ids. The next id continues past the highest
// numeric id seen.
func (t *Tracker) Restore(tickets []Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tickets = make([]Ticket, 0, len(tickets))
	t.byID = make(map[string]int, len(tickets))
	t.nextID = 1
	for _, tk := range tickets {
		t.byID[tk.ID] = len(t.tickets)
		t.tickets = append(t.tickets, tk)
		if n, err := strconv.Atoi(tk.ID); err == nil && n >= t.nextID {
			t.nextID = n + 1
		}
	}
}

// UpdateStatus sets a ticket's status. Last write wins.
func (t *Tracker) UpdateStatus(id, status string) (Ticket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.byID[id]
	if !ok {
		return Ticket{}, ErrNotFound
	}
	t.tickets[i].Status = status
	return t.tickets[i], nil
}

// Get returns one ticket by id.
func (t *Tracker) Get(id string) (Ticket, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.byID[id]
	if !ok {
		return Ticket{}, ErrNotFound
	}
	return t.tickets[i], nil
}

// List returns tickets filtered by employee and/or status, in creation
// order. Empty filters match everything.
func (t *Tracker) List(employeeID, status string) []Ticket {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Ticket
	for _, tk := range t.tickets {
		if employeeID != "" && tk.EmployeeID != employeeID {
			continue
		}
		if status != "" && tk.Status != status {
			continue
		}
		out = append(out, tk)
	}
	return out
}
