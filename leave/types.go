/*
Package leave implements the leave ledger: per-employee balances and the
append-only log of consumed leave days.

KEY CONCEPTS IN THIS FILE (types.go):
  - Date: A pure calendar date (no time-of-day), used for every leave day
  - Record: One logged day of leave, tied to the request that consumed it
  - Receipt: The outcome of a successful apply call
  - EmployeeID/RequestID: Type-safe identifiers

DESIGN PRINCIPLES:
  1. Immutability: Records are appended, never modified or removed
  2. Whole days: Balances are integer day counts; no fractional units exist
  3. Type Safety: Strong typing for IDs prevents mixing employees/requests

SEE ALSO:
  - ledger.go: The ledger owning accounts and the request counter
  - errors.go: Outcome taxonomy (not found, insufficient balance)
*/
package leave

import "time"

// =============================================================================
// IDENTIFIERS
// =============================================================================

// EmployeeID is an opaque identifier, a foreign key into the employee
// directory. The ledger never interprets it.
type EmployeeID string

// RequestID correlates every Record created by a single Apply call.
// It is monotonically increasing across the whole ledger.
type RequestID int64

// =============================================================================
// DATE - Pure calendar date
// =============================================================================

// Date is a calendar date with no time-of-day component.
// The zero Date is not a valid leave day.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate constructs a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t.UTC()}, nil
}

// DateOf truncates a time.Time to its calendar date (in UTC).
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) AddDays(n int) Date     { return Date{t: d.t.AddDate(0, 0, n)} }

// String renders the ISO form, e.g. "2024-01-10".
func (d Date) String() string { return d.t.Format("2006-01-02") }

// Long renders the display form, e.g. "January 10, 2024".
func (d Date) Long() string { return d.t.Format("January 02, 2006") }

// =============================================================================
// RECORDS
// =============================================================================

// Record is one logged day of leave consumption. Records are append-only:
// once written they are never reordered, mutated, or deleted.
type Record struct {
	// HistoryID is a 1-based sequence number, contiguous and strictly
	// increasing within the owning account's history. Not globally unique.
	HistoryID int

	// EmployeeID is the owning account, denormalized onto each record.
	EmployeeID EmployeeID

	// Day is the specific calendar day taken off.
	Day Date

	// RequestID is shared by every record created from the same Apply call.
	RequestID RequestID
}

// Receipt is the success outcome of an Apply call.
type Receipt struct {
	Requested int       // days deducted by this call
	Remaining int       // balance after deduction
	RequestID RequestID // zero when Requested == 0
}

// =============================================================================
// SNAPSHOTS - For seeding and persistence restore
// =============================================================================

// AccountSnapshot is the externally visible state of one account.
type AccountSnapshot struct {
	EmployeeID EmployeeID
	Balance    int
	History    []Record
}

// Snapshot is the full ledger state: every account plus the request counter.
type Snapshot struct {
	Accounts      []AccountSnapshot
	NextRequestID RequestID
}
