/*
seed.go - Demo data loader

PURPOSE:
  Populates the HR desk with a small, deterministic company: leadership,
  an engineering team, a product team, some leave history, upcoming
  meetings, and open tickets. Deterministic so demos and tests can assert
  against it.

USAGE:
  Enabled by default (config seed: true); disable for an empty service.
  Seeding goes through the same service paths as live traffic, so a
  configured persistence layer captures it too.
*/
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/veltrix/hr-desk/tools"
)

type seedEmployee struct {
	name    string
	manager string // employee id, assigned in registration order
	email   string
}

type seedLeave struct {
	employeeID string
	dates      []string // one Apply call per entry group
}

// Seed loads the demo company into the service. Employee ids are
// allocated in registration order: E001 through E008.
func Seed(ctx context.Context, svc *tools.Service) error {
	employees := []seedEmployee{
		// Leadership
		{name: "Aarav Patel", email: "aarav.patel@veltrix.com"},
		{name: "Meera Das", email: "meera.das@veltrix.com"},
		// Engineering team under Aarav
		{name: "Rohan Verma", manager: "E001", email: "rohan.verma@veltrix.com"},
		{name: "Sneha Reddy", manager: "E003", email: "sneha.reddy@veltrix.com"},
		{name: "Karan Singh", manager: "E003", email: "karan.singh@veltrix.com"},
		// Product team under Meera
		{name: "Anjali Menon", manager: "E002", email: "anjali.menon@veltrix.com"},
		{name: "Dev Malik", manager: "E006", email: "dev.malik@veltrix.com"},
		{name: "Priya Nair", manager: "E006", email: "priya.nair@veltrix.com"},
	}

	for _, e := range employees {
		if _, err := svc.RegisterEmployee(ctx, e.name, e.manager, e.email); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.name, err)
		}
	}

	// Leave history: each group is one apply call, so multi-day groups
	// share a request id.
	leaves := []seedLeave{
		{employeeID: "E001", dates: []string{"2024-02-12"}},
		{employeeID: "E003", dates: []string{"2024-01-08", "2024-01-09", "2024-01-10"}},
		{employeeID: "E003", dates: []string{"2024-03-22"}},
		{employeeID: "E004", dates: []string{"2024-02-05", "2024-02-06"}},
		{employeeID: "E005", dates: []string{"2024-01-15"}},
		{employeeID: "E006", dates: []string{"2024-03-04"}},
		{employeeID: "E008", dates: []string{"2024-02-19", "2024-02-20"}},
	}
	for _, lv := range leaves {
		if _, err := svc.ApplyLeave(ctx, lv.employeeID, lv.dates); err != nil {
			return fmt.Errorf("seed leave for %s: %w", lv.employeeID, err)
		}
	}

	// Upcoming meetings
	meetings := []struct {
		employeeID string
		at         time.Time
		topic      string
	}{
		{"E003", time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC), "Team Sync"},
		{"E003", time.Date(2024, time.June, 5, 14, 0, 0, 0, time.UTC), "Project Review"},
		{"E004", time.Date(2024, time.June, 4, 10, 0, 0, 0, time.UTC), "1:1"},
		{"E006", time.Date(2024, time.June, 6, 11, 0, 0, 0, time.UTC), "Planning"},
		{"E007", time.Date(2024, time.June, 7, 15, 0, 0, 0, time.UTC), "Client Meeting"},
	}
	for _, m := range meetings {
		svc.Meetings.Schedule(m.employeeID, m.at, m.topic)
	}

	// Tickets
	ticketSeeds := []struct {
		employeeID string
		item       string
		reason     string
		status     string
	}{
		{"E004", "Laptop", "New hire setup", ""},
		{"E004", "ID Card", "New hire setup", ""},
		{"E005", "Monitor", "Upgrade request", "In Progress"},
		{"E007", "Headset", "Replacement for broken item", "Closed"},
		{"E008", "Office Chair", "Ergonomic needs", ""},
	}
	for i, tk := range ticketSeeds {
		if _, err := svc.CreateTicket(ctx, tk.employeeID, tk.item, tk.reason); err != nil {
			return fmt.Errorf("seed ticket %s: %w", tk.item, err)
		}
		if tk.status != "" {
			id := fmt.Sprintf("%d", i+1)
			if _, err := svc.UpdateTicketStatus(ctx, id, tk.status); err != nil {
				return fmt.Errorf("seed ticket status %s: %w", id, err)
			}
		}
	}

	return nil
}
