/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal domain model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents a directory entry in API responses.
type EmployeeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ManagerID string `json:"manager_id,omitempty"`
	Email     string `json:"email,omitempty"`
}

// CreateEmployeeRequest is the request to add an employee. The id is
// allocated server-side.
type CreateEmployeeRequest struct {
	Name      string `json:"name"`
	ManagerID string `json:"manager_id,omitempty"`
	Email     string `json:"email,omitempty"`
}

// =============================================================================
// LEAVE
// =============================================================================

// LeaveBalanceDTO reports an employee's remaining leave days.
type LeaveBalanceDTO struct {
	EmployeeID string `json:"employee_id"`
	Balance    int    `json:"balance"`
}

// ApplyLeaveRequest applies leave for a list of ISO dates (YYYY-MM-DD).
type ApplyLeaveRequest struct {
	Dates []string `json:"dates"`
}

// LeaveReceiptDTO is the outcome of a successful apply.
type LeaveReceiptDTO struct {
	EmployeeID string `json:"employee_id"`
	Requested  int    `json:"requested"`
	Remaining  int    `json:"remaining"`
	RequestID  int64  `json:"request_id,omitempty"`
}

// LeaveRecordDTO is one logged leave day.
type LeaveRecordDTO struct {
	HistoryID int    `json:"history_id"`
	Date      string `json:"date"`      // ISO form
	DateLong  string `json:"date_long"` // display form
	RequestID int64  `json:"request_id"`
}

// =============================================================================
// MEETINGS
// =============================================================================

// MeetingDTO is one scheduled meeting.
type MeetingDTO struct {
	EmployeeID string `json:"employee_id"`
	At         string `json:"at"` // RFC 3339
	Topic      string `json:"topic"`
}

// ScheduleMeetingRequest books a meeting.
type ScheduleMeetingRequest struct {
	At    string `json:"at"` // ISO-8601 datetime
	Topic string `json:"topic"`
}

// CancelMeetingRequest cancels meetings at a start time, optionally
// narrowed by topic.
type CancelMeetingRequest struct {
	At    string `json:"at"`
	Topic string `json:"topic,omitempty"`
}

// =============================================================================
// TICKETS
// =============================================================================

// TicketDTO is one procurement ticket.
type TicketDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Item       string `json:"item"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status"`
}

// CreateTicketRequest opens a ticket.
type CreateTicketRequest struct {
	EmployeeID string `json:"employee_id"`
	Item       string `json:"item"`
	Reason     string `json:"reason,omitempty"`
}

// UpdateTicketStatusRequest moves a ticket to a new status.
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// =============================================================================
// TOOLS
// =============================================================================

// ToolDTO describes one callable tool.
type ToolDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InvokeToolRequest carries the argument map for a tool invocation.
type InvokeToolRequest struct {
	Args map[string]any `json:"args"`
}

// ToolResultDTO is the rendered result of a tool invocation.
type ToolResultDTO struct {
	Result string `json:"result"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
