/*
handlers.go - HTTP API handlers for the HR desk

PURPOSE:
  Exposes the HR components via REST plus a generic tool-invocation
  endpoint. Handles HTTP request/response, JSON serialization, and
  delegates to the tool service and domain packages.

ENDPOINTS:
  Tools:
    GET    /api/tools                          List tool descriptors
    POST   /api/tools/{name}                   Invoke a tool (text result)

  Employees:
    GET    /api/employees                      List employees (?name= filter)
    POST   /api/employees                      Add employee (id allocated)
    GET    /api/employees/{id}                 Get employee details

  Leave:
    GET    /api/employees/{id}/leave/balance   Remaining days
    GET    /api/employees/{id}/leave/history   Logged leave days
    POST   /api/employees/{id}/leave           Apply for leave

  Meetings:
    GET    /api/employees/{id}/meetings        List meetings
    POST   /api/employees/{id}/meetings        Schedule meeting
    POST   /api/employees/{id}/meetings/cancel Cancel meeting(s)

  Tickets:
    GET    /api/tickets                        List (employee_id/status filters)
    POST   /api/tickets                        Create ticket
    POST   /api/tickets/{id}/status            Update status

  Prompts:
    GET    /api/prompts/onboarding             Onboarding checklist text

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (bad JSON, malformed dates, unknown tool)
  - 404: Unknown employee/ticket
  - 422: Insufficient leave balance
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - seed.go: Demo data loader
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/veltrix/hr-desk/directory"
	"github.com/veltrix/hr-desk/leave"
	"github.com/veltrix/hr-desk/ticket"
	"github.com/veltrix/hr-desk/tools"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service  *tools.Service
	Registry *tools.Registry

	log *zap.Logger
}

// NewHandler creates a handler over the tool service.
func NewHandler(svc *tools.Service, registry *tools.Registry, log *zap.Logger) *Handler {
	return &Handler{Service: svc, Registry: registry, log: log}
}

// =============================================================================
// TOOL HANDLERS
// =============================================================================

// ListTools returns the tool descriptors.
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	list := h.Registry.List()
	dtos := make([]ToolDTO, len(list))
	for i, t := range list {
		dtos[i] = ToolDTO{Name: t.Name, Description: t.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// InvokeTool dispatches one named tool invocation.
func (h *Handler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req InvokeToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Registry.Invoke(r.Context(), name, tools.Args(req.Args))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Tool invocation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, ToolResultDTO{Result: result})
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all directory entries, optionally filtered by a
// case-insensitive name substring (?name=).
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	var employees []directory.Employee
	if name := r.URL.Query().Get("name"); name != "" {
		for _, id := range h.Service.Directory.SearchByName(name) {
			if e, err := h.Service.Directory.Get(id); err == nil {
				employees = append(employees, e)
			}
		}
	} else {
		employees = h.Service.Directory.List()
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = EmployeeDTO{ID: e.ID, Name: e.Name, ManagerID: e.ManagerID, Email: e.Email}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single directory entry.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.Service.Directory.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, EmployeeDTO{ID: e.ID, Name: e.Name, ManagerID: e.ManagerID, Email: e.Email})
}

// CreateEmployee adds an employee; the id is allocated server-side and a
// leave account is opened at the default balance.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e, err := h.Service.RegisterEmployee(r.Context(), req.Name, req.ManagerID, req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to add employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, EmployeeDTO{
		ID: e.ID, Name: e.Name, ManagerID: e.ManagerID, Email: e.Email,
	})
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// GetLeaveBalance returns the remaining leave days for an employee.
func (h *Handler) GetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	balance, err := h.Service.Ledger.Balance(leave.EmployeeID(id))
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee ID not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, LeaveBalanceDTO{EmployeeID: id, Balance: balance})
}

// GetLeaveHistory returns the logged leave days in insertion order.
func (h *Handler) GetLeaveHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	records, err := h.Service.Ledger.History(leave.EmployeeID(id))
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee ID not found", nil)
		return
	}

	dtos := make([]LeaveRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = LeaveRecordDTO{
			HistoryID: rec.HistoryID,
			Date:      rec.Day.String(),
			DateLong:  rec.Day.Long(),
			RequestID: int64(rec.RequestID),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApplyLeave deducts leave days and logs them.
func (h *Handler) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	dates := make([]leave.Date, len(req.Dates))
	for i, raw := range req.Dates {
		d, err := leave.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid leave date (use YYYY-MM-DD)", err)
			return
		}
		dates[i] = d
	}

	receipt, err := h.Service.Ledger.Apply(r.Context(), leave.EmployeeID(id), dates)
	if err != nil {
		var insufficient *leave.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficient):
			writeError(w, http.StatusUnprocessableEntity, insufficient.Error(), nil)
		case errors.Is(err, leave.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, "Employee ID not found", nil)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to apply leave", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, LeaveReceiptDTO{
		EmployeeID: id,
		Requested:  receipt.Requested,
		Remaining:  receipt.Remaining,
		RequestID:  int64(receipt.RequestID),
	})
}

// =============================================================================
// MEETING HANDLERS
// =============================================================================

// ListMeetings returns an employee's meetings.
func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	meetings, err := h.Service.GetMeetings(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	dtos := make([]MeetingDTO, len(meetings))
	for i, m := range meetings {
		dtos[i] = MeetingDTO{EmployeeID: m.EmployeeID, At: m.At.Format(time.RFC3339), Topic: m.Topic}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ScheduleMeeting books a meeting for an employee.
func (h *Handler) ScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ScheduleMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg, err := h.Service.ScheduleMeeting(id, req.At, req.Topic)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to schedule meeting", err)
		return
	}
	writeJSON(w, http.StatusCreated, ToolResultDTO{Result: msg})
}

// CancelMeeting removes meetings at a start time.
func (h *Handler) CancelMeeting(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CancelMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg, err := h.Service.CancelMeeting(id, req.At, req.Topic)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to cancel meeting", err)
		return
	}
	writeJSON(w, http.StatusOK, ToolResultDTO{Result: msg})
}

// =============================================================================
// TICKET HANDLERS
// =============================================================================

// ListTickets returns tickets with optional employee_id/status filters.
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	status := r.URL.Query().Get("status")

	tickets := h.Service.ListTickets(employeeID, status)
	dtos := make([]TicketDTO, len(tickets))
	for i, tk := range tickets {
		dtos[i] = TicketDTO{ID: tk.ID, EmployeeID: tk.EmployeeID, Item: tk.Item, Reason: tk.Reason, Status: tk.Status}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTicket opens a procurement ticket.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg, err := h.Service.CreateTicket(r.Context(), req.EmployeeID, req.Item, req.Reason)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create ticket", err)
		return
	}
	writeJSON(w, http.StatusCreated, ToolResultDTO{Result: msg})
}

// UpdateTicketStatus moves a ticket to a new status.
func (h *Handler) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg, err := h.Service.UpdateTicketStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update ticket", err)
		return
	}
	writeJSON(w, http.StatusOK, ToolResultDTO{Result: msg})
}

// =============================================================================
// PROMPT HANDLERS
// =============================================================================

// OnboardingPrompt renders the onboarding checklist for an agent.
func (h *Handler) OnboardingPrompt(w http.ResponseWriter, r *http.Request) {
	employee := r.URL.Query().Get("employee")
	manager := r.URL.Query().Get("manager")
	if employee == "" || manager == "" {
		writeError(w, http.StatusBadRequest, "employee and manager query parameters required", nil)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(tools.OnboardingPrompt(employee, manager)))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
