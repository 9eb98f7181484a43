/*
errors.go - Outcome taxonomy for the leave ledger

PURPOSE:
  Every ledger operation is a total function: each reachable input either
  succeeds or returns one of the outcomes defined here. There is no I/O in
  the ledger itself, so no transient failure class exists and nothing is
  retryable.

USAGE:
  Callers branch with errors.Is / errors.As and render display text at the
  boundary; internal code never matches on strings:

    var insufficient *leave.InsufficientBalanceError
    if errors.As(err, &insufficient) { ... }

SEE ALSO:
  - ledger.go: Returns these errors
  - tools: Renders them as user-visible messages
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrAccountNotFound is returned when an operation references an
	// employee id with no account in the ledger. Never fatal.
	ErrAccountNotFound = errors.New("employee account not found")

	// ErrInsufficientBalance is returned when an apply requests more days
	// than the account has available. State is never mutated.
	ErrInsufficientBalance = errors.New("insufficient leave balance")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError reports a rejected apply with both counts,
// so the boundary can display "requested N, available M".
type InsufficientBalanceError struct {
	EmployeeID EmployeeID
	Requested  int
	Available  int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: requested %d, available %d",
		e.Requested, e.Available)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
