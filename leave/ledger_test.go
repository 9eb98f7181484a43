package leave_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veltrix/hr-desk/leave"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newAccount(t *testing.T, l *leave.Ledger, id string) leave.EmployeeID {
	t.Helper()
	empID := leave.EmployeeID(id)
	balance, err := l.Open(context.Background(), empID)
	require.NoError(t, err)
	require.Equal(t, leave.DefaultBalance, balance)
	return empID
}

func days(dates ...string) []leave.Date {
	out := make([]leave.Date, len(dates))
	for i, s := range dates {
		d, err := leave.ParseDate(s)
		if err != nil {
			panic(err)
		}
		out[i] = d
	}
	return out
}

// =============================================================================
// OPEN / DEFAULT ACCOUNT
// =============================================================================

func TestOpen_NewAccount_StartsAtDefaultBalance(t *testing.T) {
	l := leave.NewLedger()

	balance, err := l.Open(context.Background(), "E100")
	require.NoError(t, err)
	assert.Equal(t, 20, balance)

	history, err := l.History("E100")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestOpen_ExistingAccount_Untouched(t *testing.T) {
	// GIVEN: An account that has already consumed days
	// WHEN: Open is called again for the same employee
	// THEN: Balance and history are unchanged

	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	_, err := l.Apply(context.Background(), emp, days("2024-01-10"))
	require.NoError(t, err)

	balance, err := l.Open(context.Background(), emp)
	require.NoError(t, err)
	assert.Equal(t, 19, balance)
}

// =============================================================================
// BALANCE / NOT FOUND
// =============================================================================

func TestBalance_UnknownEmployee_NotFound(t *testing.T) {
	l := leave.NewLedger()

	_, err := l.Balance("E999")
	assert.ErrorIs(t, err, leave.ErrAccountNotFound)

	_, err = l.History("E999")
	assert.ErrorIs(t, err, leave.ErrAccountNotFound)

	_, err = l.Apply(context.Background(), "E999", days("2024-01-10"))
	assert.ErrorIs(t, err, leave.ErrAccountNotFound)

	assert.False(t, l.Exists("E999"))
}

// =============================================================================
// APPLY - CONSERVATION AND REJECTION
// =============================================================================

func TestApply_DeductsAndLogs(t *testing.T) {
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	receipt, err := l.Apply(context.Background(), emp, days("2024-01-10"))
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Requested)
	assert.Equal(t, 19, receipt.Remaining)

	balance, err := l.Balance(emp)
	require.NoError(t, err)
	assert.Equal(t, 19, balance)

	history, err := l.History(emp)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, emp, history[0].EmployeeID)
	assert.Equal(t, "2024-01-10", history[0].Day.String())
}

func TestApply_InsufficientBalance_RejectedWhole(t *testing.T) {
	// GIVEN: An account drawn down to 2 remaining days
	// WHEN: Applying for 3 days
	// THEN: The whole call is rejected and nothing is mutated

	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	drawdown := make([]leave.Date, 18)
	start, _ := leave.ParseDate("2024-01-01")
	for i := range drawdown {
		drawdown[i] = start.AddDays(i)
	}
	_, err := l.Apply(context.Background(), emp, drawdown)
	require.NoError(t, err)

	_, err = l.Apply(context.Background(), emp, days("2024-02-01", "2024-02-02", "2024-02-03"))
	require.Error(t, err)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	var insufficient *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	// Nothing changed
	balance, err := l.Balance(emp)
	require.NoError(t, err)
	assert.Equal(t, 2, balance)

	history, err := l.History(emp)
	require.NoError(t, err)
	assert.Len(t, history, 18)
}

func TestApply_Conservation(t *testing.T) {
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")
	ctx := context.Background()

	applies := [][]leave.Date{
		days("2024-03-01", "2024-03-02"),
		days("2024-04-01"),
		days("2024-05-01", "2024-05-02", "2024-05-03"),
	}

	expectedBalance := leave.DefaultBalance
	expectedLen := 0
	for _, d := range applies {
		before, err := l.Balance(emp)
		require.NoError(t, err)

		receipt, err := l.Apply(ctx, emp, d)
		require.NoError(t, err)

		expectedBalance -= len(d)
		expectedLen += len(d)
		assert.Equal(t, before-len(d), receipt.Remaining)
		assert.Equal(t, expectedBalance, receipt.Remaining)

		history, err := l.History(emp)
		require.NoError(t, err)
		assert.Len(t, history, expectedLen)
	}
}

func TestApply_DuplicateDates_ConsumeTwoUnits(t *testing.T) {
	// Dates are not deduplicated: the same day twice costs two units.
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	receipt, err := l.Apply(context.Background(), emp, days("2024-06-10", "2024-06-10"))
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Requested)
	assert.Equal(t, 18, receipt.Remaining)
}

func TestApply_EmptyDates_DegenerateSuccess(t *testing.T) {
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	receipt, err := l.Apply(context.Background(), emp, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, receipt.Requested)
	assert.Equal(t, 20, receipt.Remaining)

	// No request id consumed and no history written.
	history, err := l.History(emp)
	require.NoError(t, err)
	assert.Empty(t, history)

	receipt, err = l.Apply(context.Background(), emp, days("2024-01-10"))
	require.NoError(t, err)
	assert.Equal(t, leave.RequestID(10000), receipt.RequestID)
}

func TestApply_ExactBalance_DrainsToZero(t *testing.T) {
	// Boundary: requesting exactly the remaining balance succeeds and
	// leaves zero, never negative.
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	all := make([]leave.Date, leave.DefaultBalance)
	start, _ := leave.ParseDate("2024-01-01")
	for i := range all {
		all[i] = start.AddDays(i)
	}

	receipt, err := l.Apply(context.Background(), emp, all)
	require.NoError(t, err)
	assert.Equal(t, 0, receipt.Remaining)

	_, err = l.Apply(context.Background(), emp, days("2024-02-01"))
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

// =============================================================================
// HISTORY - ORDERING AND CORRELATION
// =============================================================================

func TestHistory_SequentialApplies_ContiguousHistoryIDs(t *testing.T) {
	// Two one-day applies produce history ids 1 and 2 with distinct
	// request ids.
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")
	ctx := context.Background()

	r1, err := l.Apply(ctx, emp, days("2024-01-10"))
	require.NoError(t, err)
	r2, err := l.Apply(ctx, emp, days("2024-01-11"))
	require.NoError(t, err)

	assert.NotEqual(t, r1.RequestID, r2.RequestID)

	history, err := l.History(emp)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].HistoryID)
	assert.Equal(t, 2, history[1].HistoryID)
	assert.Equal(t, r1.RequestID, history[0].RequestID)
	assert.Equal(t, r2.RequestID, history[1].RequestID)
}

func TestHistory_MultiDayApply_SharesOneRequestID(t *testing.T) {
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	receipt, err := l.Apply(context.Background(), emp, days("2024-03-01", "2024-03-02"))
	require.NoError(t, err)

	history, err := l.History(emp)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, receipt.RequestID, history[0].RequestID)
	assert.Equal(t, receipt.RequestID, history[1].RequestID)
	assert.Equal(t, "2024-03-01", history[0].Day.String())
	assert.Equal(t, "2024-03-02", history[1].Day.String())
}

func TestHistory_RequestIDsMonotonicAcrossAccounts(t *testing.T) {
	l := leave.NewLedger()
	a := newAccount(t, l, "E001")
	b := newAccount(t, l, "E002")
	ctx := context.Background()

	ra, err := l.Apply(ctx, a, days("2024-01-10"))
	require.NoError(t, err)
	rb, err := l.Apply(ctx, b, days("2024-01-10"))
	require.NoError(t, err)
	ra2, err := l.Apply(ctx, a, days("2024-01-11"))
	require.NoError(t, err)

	assert.Less(t, ra.RequestID, rb.RequestID)
	assert.Less(t, rb.RequestID, ra2.RequestID)
}

func TestHistory_IdempotentRead(t *testing.T) {
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	_, err := l.Apply(context.Background(), emp, days("2024-03-01", "2024-03-02"))
	require.NoError(t, err)

	first, err := l.History(emp)
	require.NoError(t, err)
	second, err := l.History(emp)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	b1, err := l.Balance(emp)
	require.NoError(t, err)
	b2, err := l.Balance(emp)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestHistory_ReturnsCopy(t *testing.T) {
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")

	_, err := l.Apply(context.Background(), emp, days("2024-03-01"))
	require.NoError(t, err)

	history, err := l.History(emp)
	require.NoError(t, err)
	history[0].Day = leave.NewDate(1999, time.January, 1)

	fresh, err := l.History(emp)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", fresh[0].Day.String())
}

// =============================================================================
// CONCURRENCY - CHECK-THEN-ACT SAFETY
// =============================================================================

func TestApply_ConcurrentCalls_NeverDriveBalanceNegative(t *testing.T) {
	// 40 concurrent single-day applies against a 20-day balance: exactly
	// 20 must succeed and the rest must be rejected.
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")
	ctx := context.Background()

	const attempts = 40
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	start, _ := leave.ParseDate("2024-01-01")

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.Apply(ctx, emp, []leave.Date{start.AddDays(i)})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 20, succeeded)

	balance, err := l.Balance(emp)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	history, err := l.History(emp)
	require.NoError(t, err)
	assert.Len(t, history, 20)
	for i, rec := range history {
		assert.Equal(t, i+1, rec.HistoryID)
	}
}

// =============================================================================
// SNAPSHOT / RESTORE
// =============================================================================

func TestSnapshot_RoundTrip(t *testing.T) {
	l := leave.NewLedger()
	emp := newAccount(t, l, "E100")
	ctx := context.Background()

	_, err := l.Apply(ctx, emp, days("2024-03-01", "2024-03-02"))
	require.NoError(t, err)

	restored := leave.NewLedgerFromSnapshot(l.Snapshot())

	balance, err := restored.Balance(emp)
	require.NoError(t, err)
	assert.Equal(t, 18, balance)

	history, err := restored.History(emp)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	// The restored ledger continues the request id sequence.
	r1, err := l.Apply(ctx, emp, days("2024-04-01"))
	require.NoError(t, err)
	r2, err := restored.Apply(ctx, emp, days("2024-04-01"))
	require.NoError(t, err)
	assert.Equal(t, r1.RequestID, r2.RequestID)
}

// =============================================================================
// JOURNAL COMMIT ORDER
// =============================================================================

type failingJournal struct{ fail bool }

func (j *failingJournal) RecordAccount(context.Context, leave.EmployeeID, int) error {
	if j.fail {
		return assert.AnError
	}
	return nil
}

func (j *failingJournal) RecordApply(context.Context, leave.EmployeeID, []leave.Record, int, leave.RequestID) error {
	if j.fail {
		return assert.AnError
	}
	return nil
}

func TestApply_JournalFailure_LeavesLedgerUntouched(t *testing.T) {
	j := &failingJournal{}
	l := leave.NewLedger(leave.WithJournal(j))
	emp := newAccount(t, l, "E100")
	ctx := context.Background()

	j.fail = true
	_, err := l.Apply(ctx, emp, days("2024-01-10"))
	require.Error(t, err)

	balance, err := l.Balance(emp)
	require.NoError(t, err)
	assert.Equal(t, 20, balance)

	history, err := l.History(emp)
	require.NoError(t, err)
	assert.Empty(t, history)

	// Recovery: the next apply reuses the request id the failed one never
	// consumed.
	j.fail = false
	receipt, err := l.Apply(ctx, emp, days("2024-01-10"))
	require.NoError(t, err)
	assert.Equal(t, leave.RequestID(10000), receipt.RequestID)
}

// =============================================================================
// DATE TYPE
// =============================================================================

func TestParseDate(t *testing.T) {
	d, err := leave.ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, "2024-01-10", d.String())
	assert.Equal(t, "January 10, 2024", d.Long())

	_, err = leave.ParseDate("10/01/2024")
	assert.Error(t, err)

	_, err = leave.ParseDate("2024-13-40")
	assert.Error(t, err)
}
