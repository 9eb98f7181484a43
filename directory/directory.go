/*
Package directory implements the employee directory: the registry of
employees and the reporting (manager) map.

SEMANTICS:
  Plain last-write-wins keyed storage. The directory carries no business
  invariants beyond id uniqueness; its one load-bearing duty is answering
  "does employee X exist?" for the other HR components.

ID ALLOCATION:
  Employee ids follow the "E001" convention. NextID hands out the next
  unused id; callers that bring their own id (seed data) bypass it.

SEE ALSO:
  - leave: Consumes Exists via the tool layer before ledger calls
  - api/seed.go: Populates the directory with demo data
*/
package directory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned when a lookup references an unknown employee id.
var ErrNotFound = errors.New("employee not found")

// Employee is one directory entry. ManagerID is empty for leadership.
type Employee struct {
	ID        string
	Name      string
	ManagerID string
	Email     string
}

// Directory is the in-memory employee registry. Safe for concurrent use.
type Directory struct {
	mu        sync.RWMutex
	employees map[string]Employee
	managers  map[string]string // employee id -> manager id
	nextNum   int
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{
		employees: make(map[string]Employee),
		managers:  make(map[string]string),
		nextNum:   1,
	}
}

// NextID returns the next unused employee id in the "E%03d" sequence.
func (d *Directory) NextID() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		id := fmt.Sprintf("E%03d", d.nextNum)
		d.nextNum++
		if _, taken := d.employees[id]; !taken {
			return id
		}
	}
}

// Add inserts or replaces an employee. Last write wins.
func (d *Directory) Add(e Employee) error {
	if e.ID == "" {
		return errors.New("employee id required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.employees[e.ID] = e
	d.managers[e.ID] = e.ManagerID
	return nil
}

// Get returns the employee for an id.
func (d *Directory) Get(id string) (Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

// Exists reports whether an employee id is known.
func (d *Directory) Exists(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.employees[id]
	return ok
}

// Manager returns the manager id for an employee. Empty for leadership.
func (d *Directory) Manager(id string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.employees[id]; !ok {
		return "", ErrNotFound
	}
	return d.managers[id], nil
}

// SearchByName returns ids of employees whose name contains the query,
// case-insensitive, sorted by id for stable results.
func (d *Directory) SearchByName(name string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(name))
	var ids []string
	for id, e := range d.employees {
		if strings.Contains(strings.ToLower(e.Name), query) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// List returns every employee, sorted by id.
func (d *Directory) List() []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Employee, 0, len(d.employees))
	for _, e := range d.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
