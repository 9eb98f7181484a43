/*
Package tools implements the agent-facing tool surface of the HR desk:
string-in/string-out operations over the directory, the leave ledger,
meetings, tickets, and email.

BOUNDARY RULES:
  - ISO dates are parsed HERE; domain packages only ever see typed dates.
  - Domain outcomes (not found, insufficient balance) are rendered HERE as
    the user-visible sentences; domain packages never format display text.
  - Malformed input (unparseable dates, missing arguments) is an error
    return, distinct from rendered negative outcomes.

SEE ALSO:
  - registry.go: Named tool registry for generic dispatch
  - api: HTTP exposure of the registry
*/
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veltrix/hr-desk/directory"
	"github.com/veltrix/hr-desk/leave"
	"github.com/veltrix/hr-desk/mail"
	"github.com/veltrix/hr-desk/meeting"
	"github.com/veltrix/hr-desk/ticket"
)

// Rendered not-found outcomes for the tool surface. Service methods
// outside the leave contracts signal these as typed errors
// (directory.ErrNotFound, ticket.ErrNotFound); only the tool registry
// renders them to text.
const (
	MsgEmployeeNotFound = "Employee ID not found."
	MsgTicketNotFound   = "Ticket ID not found."
)

// Archive mirrors directory and ticket mutations to durable storage,
// the counterpart of leave.Journal for the collaborator stores.
type Archive interface {
	SaveEmployee(ctx context.Context, e directory.Employee) error
	SaveTicket(ctx context.Context, t ticket.Ticket) error
}

// Service binds every HR tool to its backing component.
type Service struct {
	Directory *directory.Directory
	Ledger    *leave.Ledger
	Meetings  *meeting.Book
	Tickets   *ticket.Tracker
	Mailer    *mail.Sender

	archive Archive // nil = volatile
	log     *zap.Logger
}

// NewService wires a tool service over the given components.
func NewService(dir *directory.Directory, ledger *leave.Ledger, meetings *meeting.Book, tickets *ticket.Tracker, mailer *mail.Sender, log *zap.Logger) *Service {
	return &Service{
		Directory: dir,
		Ledger:    ledger,
		Meetings:  meetings,
		Tickets:   tickets,
		Mailer:    mailer,
		log:       log,
	}
}

// AttachArchive enables durable mirroring of employees and tickets.
func (s *Service) AttachArchive(a Archive) { s.archive = a }

// =============================================================================
// EMPLOYEE TOOLS
// =============================================================================

// RegisterEmployee allocates an id, adds the employee to the directory,
// and opens their leave account at the default balance.
func (s *Service) RegisterEmployee(ctx context.Context, name, managerID, email string) (directory.Employee, error) {
	if strings.TrimSpace(name) == "" {
		return directory.Employee{}, errors.New("employee name required")
	}

	e := directory.Employee{ID: s.Directory.NextID(), Name: name, ManagerID: managerID, Email: email}
	if err := s.Directory.Add(e); err != nil {
		return directory.Employee{}, err
	}
	if _, err := s.Ledger.Open(ctx, leave.EmployeeID(e.ID)); err != nil {
		return directory.Employee{}, err
	}
	if s.archive != nil {
		if err := s.archive.SaveEmployee(ctx, e); err != nil {
			return directory.Employee{}, err
		}
	}

	s.log.Info("employee added", zap.String("employee_id", e.ID), zap.String("name", name))
	return e, nil
}

// AddEmployee is the rendered-text form of RegisterEmployee.
func (s *Service) AddEmployee(ctx context.Context, name, managerID, email string) (string, error) {
	e, err := s.RegisterEmployee(ctx, name, managerID, email)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Employee %s added successfully.", e.Name), nil
}

// EmployeeDetails looks an employee up by name and returns the first match.
func (s *Service) EmployeeDetails(name string) (directory.Employee, error) {
	matches := s.Directory.SearchByName(name)
	if len(matches) == 0 {
		return directory.Employee{}, fmt.Errorf("no employees found with name %s", name)
	}
	return s.Directory.Get(matches[0])
}

// =============================================================================
// LEAVE TOOLS - the textual contracts of the leave ledger
// =============================================================================

// LeaveBalance renders an employee's remaining balance.
func (s *Service) LeaveBalance(employeeID string) string {
	balance, err := s.Ledger.Balance(leave.EmployeeID(employeeID))
	if err != nil {
		return MsgEmployeeNotFound
	}
	return fmt.Sprintf("%s has %d leave days remaining.", employeeID, balance)
}

// ApplyLeave parses the ISO dates, applies them, and renders the outcome.
// An unparseable date is a caller error, not a rendered outcome.
func (s *Service) ApplyLeave(ctx context.Context, employeeID string, isoDates []string) (string, error) {
	dates := make([]leave.Date, len(isoDates))
	for i, raw := range isoDates {
		d, err := leave.ParseDate(raw)
		if err != nil {
			return "", fmt.Errorf("invalid leave date %q (use YYYY-MM-DD): %w", raw, err)
		}
		dates[i] = d
	}

	receipt, err := s.Ledger.Apply(ctx, leave.EmployeeID(employeeID), dates)
	if err != nil {
		var insufficient *leave.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficient):
			return fmt.Sprintf("Insufficient leave balance: requested %d, available %d.",
				insufficient.Requested, insufficient.Available), nil
		case errors.Is(err, leave.ErrAccountNotFound):
			return MsgEmployeeNotFound, nil
		default:
			return "", err
		}
	}

	s.log.Info("leave applied",
		zap.String("employee_id", employeeID),
		zap.Int("days", receipt.Requested),
		zap.Int64("request_id", int64(receipt.RequestID)),
	)
	return fmt.Sprintf("Leave applied for %d day(s). Remaining balance: %d",
		receipt.Requested, receipt.Remaining), nil
}

// LeaveHistory renders an employee's leave days, long-form, in the order
// they were applied.
func (s *Service) LeaveHistory(employeeID string) string {
	records, err := s.Ledger.History(leave.EmployeeID(employeeID))
	if err != nil {
		return MsgEmployeeNotFound
	}

	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Day.Long()
	}
	return fmt.Sprintf("Leave history for %s: %s.", employeeID, strings.Join(dates, ", "))
}

// =============================================================================
// MEETING TOOLS
// =============================================================================

// ScheduleMeeting books a meeting at an ISO-8601 datetime. An unknown
// employee is signalled as directory.ErrNotFound.
func (s *Service) ScheduleMeeting(employeeID, isoDatetime, topic string) (string, error) {
	if !s.Directory.Exists(employeeID) {
		return "", directory.ErrNotFound
	}
	at, err := parseDatetime(isoDatetime)
	if err != nil {
		return "", err
	}

	s.Meetings.Schedule(employeeID, at, topic)
	return fmt.Sprintf("Meeting '%s' scheduled for %s on %s.",
		topic, employeeID, at.Format("January 02, 2006 at 15:04")), nil
}

// GetMeetings lists an employee's scheduled meetings.
func (s *Service) GetMeetings(employeeID string) ([]meeting.Meeting, error) {
	if !s.Directory.Exists(employeeID) {
		return nil, directory.ErrNotFound
	}
	return s.Meetings.List(employeeID), nil
}

// CancelMeeting removes meetings at an ISO-8601 datetime, optionally
// narrowed by topic.
func (s *Service) CancelMeeting(employeeID, isoDatetime, topic string) (string, error) {
	if !s.Directory.Exists(employeeID) {
		return "", directory.ErrNotFound
	}
	at, err := parseDatetime(isoDatetime)
	if err != nil {
		return "", err
	}

	removed, err := s.Meetings.Cancel(employeeID, at, topic)
	if err != nil {
		if errors.Is(err, meeting.ErrNoMatch) {
			return fmt.Sprintf("No meeting found for %s at %s.", employeeID, isoDatetime), nil
		}
		return "", err
	}
	return fmt.Sprintf("Cancelled %d meeting(s) for %s.", removed, employeeID), nil
}

// =============================================================================
// TICKET TOOLS
// =============================================================================

// CreateTicket opens a procurement ticket for an employee.
func (s *Service) CreateTicket(ctx context.Context, employeeID, item, reason string) (string, error) {
	if !s.Directory.Exists(employeeID) {
		return "", directory.ErrNotFound
	}
	tk := s.Tickets.Create(employeeID, item, reason)
	if s.archive != nil {
		if err := s.archive.SaveTicket(ctx, tk); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Ticket %s created for %s: %s.", tk.ID, employeeID, item), nil
}

// UpdateTicketStatus moves a ticket to a new status. An unknown ticket
// is signalled as ticket.ErrNotFound.
func (s *Service) UpdateTicketStatus(ctx context.Context, ticketID, status string) (string, error) {
	tk, err := s.Tickets.UpdateStatus(ticketID, status)
	if err != nil {
		return "", err
	}
	if s.archive != nil {
		if err := s.archive.SaveTicket(ctx, tk); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Ticket %s updated to %s.", tk.ID, tk.Status), nil
}

// ListTickets returns tickets for an employee, optionally filtered by status.
func (s *Service) ListTickets(employeeID, status string) []ticket.Ticket {
	return s.Tickets.List(employeeID, status)
}

// =============================================================================
// EMAIL TOOL
// =============================================================================

// SendEmail delivers a message through the configured SMTP account.
func (s *Service) SendEmail(to []string, subject, body string, html bool) (string, error) {
	if err := s.Mailer.Send(to, subject, body, html); err != nil {
		return "", err
	}
	return "Email sent successfully.", nil
}

// =============================================================================
// HELPERS
// =============================================================================

// parseDatetime accepts ISO-8601 with or without offset or seconds.
func parseDatetime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q (use ISO-8601)", s)
}
