/*
ledger.go - The leave ledger: balances plus an append-only history

PURPOSE:
  The Ledger is the source of truth for leave consumption. It owns, per
  employee, a current balance and the immutable log of leave days taken,
  and answers balance and history queries.

CRITICAL INVARIANTS:
  1. NON-NEGATIVE: balance >= 0 after every operation; an apply that would
     violate this is rejected whole, with no partial deduction.
  2. APPEND-ONLY: history only grows; HistoryID values form a contiguous
     1..N range per account.
  3. CORRELATED: all records from one Apply share one RequestID, and no two
     Apply calls ever share one.
  4. ATOMIC: the balance check, the decrement, and the history append are a
     single critical section; concurrent readers see either the pre- or the
     post-state of an apply, never something in between.

WHAT IT DOES NOT DO:
  Dates are not deduplicated or checked against the calendar - applying the
  same day twice consumes two balance units. There is no accrual, refund,
  or deletion operation; balances only ever decrease.

PERSISTENCE:
  Optional. A Journal (see below) can be attached to mirror every account
  creation and apply to durable storage. The in-memory state stays
  authoritative; with a nil Journal the ledger is fully volatile.

SEE ALSO:
  - types.go: Record, Receipt, Date
  - errors.go: ErrAccountNotFound, InsufficientBalanceError
  - store/sqlite: Journal implementation
*/
package leave

import (
	"context"
	"sort"
	"sync"
)

// DefaultBalance is the opening balance for an account created by Open
// without an explicit seed.
const DefaultBalance = 20

// requestIDSeed is the first RequestID the ledger hands out.
const requestIDSeed = 10000

// =============================================================================
// JOURNAL - Optional durability hook
// =============================================================================

// Journal mirrors ledger mutations to durable storage. Implementations must
// make RecordApply atomic: either every record of the call is persisted
// along with the new balance, or none are.
type Journal interface {
	// RecordAccount persists a newly opened account.
	RecordAccount(ctx context.Context, employeeID EmployeeID, balance int) error

	// RecordApply persists one successful apply: the appended records, the
	// account's new balance, and the ledger's next request id.
	RecordApply(ctx context.Context, employeeID EmployeeID, records []Record, newBalance int, next RequestID) error
}

// =============================================================================
// LEDGER
// =============================================================================

type account struct {
	balance int
	history []Record
}

// Ledger tracks per-employee leave balances and history. Construct with
// NewLedger; the zero value is not usable. Safe for concurrent use.
type Ledger struct {
	mu            sync.RWMutex
	accounts      map[EmployeeID]*account
	nextRequestID RequestID
	journal       Journal
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithJournal attaches a durability journal. Mutations commit to the
// journal before they become visible; a journal failure leaves the ledger
// unchanged.
func WithJournal(j Journal) Option {
	return func(l *Ledger) { l.journal = j }
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		accounts:      make(map[EmployeeID]*account),
		nextRequestID: requestIDSeed,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLedgerFromSnapshot restores a ledger from previously captured state.
// Used at boot when a persistence journal holds prior data.
func NewLedgerFromSnapshot(s Snapshot, opts ...Option) *Ledger {
	l := NewLedger(opts...)
	for _, a := range s.Accounts {
		acct := &account{balance: a.Balance, history: append([]Record(nil), a.History...)}
		l.accounts[a.EmployeeID] = acct
	}
	if s.NextRequestID > l.nextRequestID {
		l.nextRequestID = s.NextRequestID
	}
	return l
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Open is the explicit get-or-create for an account. A new account starts
// at DefaultBalance with empty history; an existing account is untouched.
// Returns the account's current balance.
func (l *Ledger) Open(ctx context.Context, employeeID EmployeeID) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if acct, ok := l.accounts[employeeID]; ok {
		return acct.balance, nil
	}

	if l.journal != nil {
		if err := l.journal.RecordAccount(ctx, employeeID, DefaultBalance); err != nil {
			return 0, err
		}
	}

	l.accounts[employeeID] = &account{balance: DefaultBalance}
	return DefaultBalance, nil
}

// Balance returns the remaining leave days for an employee.
// Returns ErrAccountNotFound for an unknown id. No side effects.
func (l *Ledger) Balance(employeeID EmployeeID) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.accounts[employeeID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	return acct.balance, nil
}

// Apply deducts one balance unit per requested day and appends one Record
// per day, in the order supplied, all sharing a fresh RequestID.
//
// The whole call is a single critical section: two concurrent applies can
// never both pass the balance check and drive the balance negative.
//
// An empty days slice is a degenerate success: nothing is deducted, no
// request id is consumed, and the receipt reports zero days.
func (l *Ledger) Apply(ctx context.Context, employeeID EmployeeID, days []Date) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[employeeID]
	if !ok {
		return Receipt{}, ErrAccountNotFound
	}

	requested := len(days)
	if requested == 0 {
		return Receipt{Requested: 0, Remaining: acct.balance}, nil
	}

	if requested > acct.balance {
		return Receipt{}, &InsufficientBalanceError{
			EmployeeID: employeeID,
			Requested:  requested,
			Available:  acct.balance,
		}
	}

	requestID := l.nextRequestID
	records := make([]Record, requested)
	for i, day := range days {
		records[i] = Record{
			HistoryID:  len(acct.history) + i + 1,
			EmployeeID: employeeID,
			Day:        day,
			RequestID:  requestID,
		}
	}
	newBalance := acct.balance - requested

	// Commit to the journal before the mutation becomes visible, so a
	// journal failure leaves the in-memory state untouched.
	if l.journal != nil {
		if err := l.journal.RecordApply(ctx, employeeID, records, newBalance, requestID+1); err != nil {
			return Receipt{}, err
		}
	}

	acct.balance = newBalance
	acct.history = append(acct.history, records...)
	l.nextRequestID = requestID + 1

	return Receipt{Requested: requested, Remaining: newBalance, RequestID: requestID}, nil
}

// History returns a copy of the account's records in insertion order
// (equivalently, HistoryID ascending). Returns ErrAccountNotFound for an
// unknown id. No side effects.
func (l *Ledger) History(employeeID EmployeeID) ([]Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.accounts[employeeID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := make([]Record, len(acct.history))
	copy(out, acct.history)
	return out, nil
}

// Exists reports whether the ledger holds an account for the employee.
func (l *Ledger) Exists(employeeID EmployeeID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.accounts[employeeID]
	return ok
}

// Snapshot captures the full ledger state, accounts sorted by employee id.
// Used by tests and by persistence bootstrapping.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Snapshot{NextRequestID: l.nextRequestID}
	for id, acct := range l.accounts {
		s.Accounts = append(s.Accounts, AccountSnapshot{
			EmployeeID: id,
			Balance:    acct.balance,
			History:    append([]Record(nil), acct.history...),
		})
	}
	sort.Slice(s.Accounts, func(i, j int) bool {
		return s.Accounts[i].EmployeeID < s.Accounts[j].EmployeeID
	})
	return s
}
