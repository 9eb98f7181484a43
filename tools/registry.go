/*
registry.go - Named tool registry for generic dispatch

PURPOSE:
  Exposes every Service operation as a named tool with a description and a
  uniform argument map, so an agent-facing caller can enumerate and invoke
  tools without compile-time knowledge of their signatures.

DISPATCH:
  Invoke(name, args) resolves the tool, assigns a correlation id to the
  invocation, runs the handler, and logs the outcome. Structured results
  (ticket lists, meeting lists) are rendered to text here; this layer is
  string-out by contract.
*/
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veltrix/hr-desk/directory"
	"github.com/veltrix/hr-desk/ticket"
)

// Args is the uniform argument map for tool invocations.
type Args map[string]any

// Tool is one callable operation: a name, a human description, and the
// handler that runs it.
type Tool struct {
	Name        string
	Description string
	Run         func(ctx context.Context, args Args) (string, error)
}

// Registry resolves tool names to handlers.
type Registry struct {
	service *Service
	tools   map[string]Tool
	log     *zap.Logger
}

// NewRegistry builds the registry over a Service.
func NewRegistry(s *Service, log *zap.Logger) *Registry {
	r := &Registry{service: s, tools: make(map[string]Tool), log: log}
	for _, t := range r.definitions() {
		r.tools[t.Name] = t
	}
	return r
}

// List returns every tool, sorted by name.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Invoke runs a named tool. Unknown names and handler failures are errors;
// rendered negative outcomes ("Employee ID not found.") are results.
func (r *Registry) Invoke(ctx context.Context, name string, args Args) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	invocationID := uuid.NewString()
	result, err := t.Run(ctx, args)
	if err != nil {
		r.log.Warn("tool invocation failed",
			zap.String("invocation_id", invocationID),
			zap.String("tool", name),
			zap.Error(err),
		)
		return "", err
	}

	r.log.Info("tool invoked",
		zap.String("invocation_id", invocationID),
		zap.String("tool", name),
	)
	return result, nil
}

// render maps the typed not-found outcomes onto their tool-surface
// wording. Anything else stays an error for Invoke to report.
func render(msg string, err error) (string, error) {
	switch {
	case err == nil:
		return msg, nil
	case errors.Is(err, directory.ErrNotFound):
		return MsgEmployeeNotFound, nil
	case errors.Is(err, ticket.ErrNotFound):
		return MsgTicketNotFound, nil
	default:
		return "", err
	}
}

// =============================================================================
// TOOL DEFINITIONS
// =============================================================================

func (r *Registry) definitions() []Tool {
	s := r.service
	return []Tool{
		{
			Name:        "add_employee",
			Description: "Add a new employee to the HR system.",
			Run: func(ctx context.Context, args Args) (string, error) {
				name, err := stringArg(args, "emp_name")
				if err != nil {
					return "", err
				}
				return s.AddEmployee(ctx, name, optString(args, "manager_id"), optString(args, "email"))
			},
		},
		{
			Name:        "get_employee_details",
			Description: "Get employee id, manager and email by name.",
			Run: func(_ context.Context, args Args) (string, error) {
				name, err := stringArg(args, "name")
				if err != nil {
					return "", err
				}
				e, err := s.EmployeeDetails(name)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s (%s), manager: %s, email: %s", e.Name, e.ID, orNone(e.ManagerID), e.Email), nil
			},
		},
		{
			Name:        "get_leave_balance",
			Description: "Get the leave balance for an employee.",
			Run: func(_ context.Context, args Args) (string, error) {
				id, err := stringArg(args, "emp_id")
				if err != nil {
					return "", err
				}
				return s.LeaveBalance(id), nil
			},
		},
		{
			Name:        "apply_leave",
			Description: "Apply for leave on a list of ISO dates (YYYY-MM-DD).",
			Run: func(ctx context.Context, args Args) (string, error) {
				id, err := stringArg(args, "emp_id")
				if err != nil {
					return "", err
				}
				dates, err := stringListArg(args, "leave_dates")
				if err != nil {
					return "", err
				}
				return s.ApplyLeave(ctx, id, dates)
			},
		},
		{
			Name:        "get_leave_history",
			Description: "Get the leave history for an employee.",
			Run: func(_ context.Context, args Args) (string, error) {
				id, err := stringArg(args, "emp_id")
				if err != nil {
					return "", err
				}
				return s.LeaveHistory(id), nil
			},
		},
		{
			Name:        "schedule_meeting",
			Description: "Schedule a meeting at an ISO datetime.",
			Run: func(_ context.Context, args Args) (string, error) {
				id, err := stringArg(args, "emp_id")
				if err != nil {
					return "", err
				}
				at, err := stringArg(args, "meeting_dt")
				if err != nil {
					return "", err
				}
				return render(s.ScheduleMeeting(id, at, optString(args, "topic")))
			},
		},
		{
			Name:        "get_meetings",
			Description: "List meetings scheduled for an employee.",
			Run: func(_ context.Context, args Args) (string, error) {
				id, err := stringArg(args, "emp_id")
				if err != nil {
					return "", err
				}
				meetings, err := s.GetMeetings(id)
				if err != nil {
					return render("", err)
				}
				if len(meetings) == 0 {
					return fmt.Sprintf("No meetings scheduled for %s.", id), nil
				}
				lines := make([]string, len(meetings))
				for i, m := range meetings {
					lines[i] = fmt.Sprintf("%s - %s", m.At.Format("2006-01-02 15:04"), m.Topic)
				}
				return strings.Join(lines, "; "), nil
			},
		},
		{
			Name:        "cancel_meeting",
			Description: "Cancel a meeting at an ISO datetime, optionally by topic.",
			Run: func(_ context.Context, args Args) (string, error) {
				id, err := stringArg(args, "emp_id")
				if err != nil {
					return "", err
				}
				at, err := stringArg(args, "meeting_dt")
				if err != nil {
					return "", err
				}
				return render(s.CancelMeeting(id, at, optString(args, "topic")))
			},
		},
		{
			Name:        "create_ticket",
			Description: "Create a procurement ticket for an employee.",
			Run: func(ctx context.Context, args Args) (string, error) {
				id, err := stringArg(args, "emp_id")
				if err != nil {
					return "", err
				}
				item, err := stringArg(args, "item")
				if err != nil {
					return "", err
				}
				return render(s.CreateTicket(ctx, id, item, optString(args, "reason")))
			},
		},
		{
			Name:        "update_ticket_status",
			Description: "Update the status of a ticket.",
			Run: func(ctx context.Context, args Args) (string, error) {
				id, err := stringArg(args, "ticket_id")
				if err != nil {
					return "", err
				}
				status, err := stringArg(args, "status")
				if err != nil {
					return "", err
				}
				return render(s.UpdateTicketStatus(ctx, id, status))
			},
		},
		{
			Name:        "list_tickets",
			Description: "List tickets for an employee, optionally filtered by status.",
			Run: func(_ context.Context, args Args) (string, error) {
				id, err := stringArg(args, "employee_id")
				if err != nil {
					return "", err
				}
				tickets := s.ListTickets(id, optString(args, "status"))
				if len(tickets) == 0 {
					return fmt.Sprintf("No tickets found for %s.", id), nil
				}
				lines := make([]string, len(tickets))
				for i, tk := range tickets {
					lines[i] = fmt.Sprintf("#%s %s (%s)", tk.ID, tk.Item, tk.Status)
				}
				return strings.Join(lines, "; "), nil
			},
		},
		{
			Name:        "send_email",
			Description: "Send an email to one or more recipients.",
			Run: func(_ context.Context, args Args) (string, error) {
				to, err := stringListArg(args, "to_emails")
				if err != nil {
					return "", err
				}
				subject, err := stringArg(args, "subject")
				if err != nil {
					return "", err
				}
				body, err := stringArg(args, "body")
				if err != nil {
					return "", err
				}
				return s.SendEmail(to, subject, body, boolArg(args, "html"))
			},
		},
	}
}

// =============================================================================
// ARGUMENT HELPERS
// =============================================================================

func stringArg(args Args, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return s, nil
}

func optString(args Args, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args Args, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func stringListArg(args Args, key string) ([]string, error) {
	v, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing argument %q", key)
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("argument %q must be a list of strings", key)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("argument %q must be a list of strings", key)
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
