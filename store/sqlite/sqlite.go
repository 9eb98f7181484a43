/*
Package sqlite provides the optional SQLite persistence layer for the HR
desk: a write-behind journal for the leave ledger plus durable copies of
employees and tickets.

ROLE:
  The in-memory components stay authoritative. This store mirrors their
  mutations so a restart can rebuild state via the Load* methods. With no
  database path configured the server runs fully volatile, which is the
  default contract.

APPEND-ONLY ENFORCEMENT:
  leave_records is insert-only: no UPDATE or DELETE statement exists for
  it anywhere in this package. Balances live in leave_accounts and are
  updated only inside the same transaction that inserts the records of
  one apply call.

KEY TABLES:
  leave_accounts:  employee id, balance, per-employee row
  leave_records:   immutable log of consumed leave days
  ledger_meta:     the ledger-wide next request id
  employees:       directory entries
  tickets:         procurement tickets (last-write-wins status)

WAL MODE:
  Opened with WAL so readers don't block the single writer.

USAGE:
  store, err := sqlite.New("./hrdesk.db")
  ...
  snap, err := store.LoadLedger(ctx)
  ledger := leave.NewLedgerFromSnapshot(snap, leave.WithJournal(store))

SEE ALSO:
  - leave/ledger.go: Journal interface and commit ordering
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/veltrix/hr-desk/directory"
	"github.com/veltrix/hr-desk/leave"
	"github.com/veltrix/hr-desk/ticket"
)

// Store persists HR desk state in SQLite. Implements leave.Journal.
type Store struct {
	db *sql.DB
}

// Compile-time check that Store implements leave.Journal.
var _ leave.Journal = (*Store)(nil)

// New opens (and migrates) the database at path. Use ":memory:" for an
// in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leave_accounts (
		employee_id TEXT PRIMARY KEY,
		balance INTEGER NOT NULL CHECK (balance >= 0)
	);

	-- Append-only: this package never updates or deletes rows here.
	CREATE TABLE IF NOT EXISTS leave_records (
		employee_id TEXT NOT NULL REFERENCES leave_accounts(employee_id),
		history_id INTEGER NOT NULL,
		leave_date TEXT NOT NULL,
		request_id INTEGER NOT NULL,
		PRIMARY KEY (employee_id, history_id)
	);

	CREATE INDEX IF NOT EXISTS idx_leave_records_request
		ON leave_records(request_id);

	CREATE TABLE IF NOT EXISTS ledger_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_request_id INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		manager_id TEXT,
		email TEXT
	);

	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		item TEXT NOT NULL,
		reason TEXT,
		status TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEAVE JOURNAL (leave.Journal)
// =============================================================================

// RecordAccount persists a newly opened account.
func (s *Store) RecordAccount(ctx context.Context, employeeID leave.EmployeeID, balance int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leave_accounts (employee_id, balance) VALUES (?, ?)
		 ON CONFLICT(employee_id) DO NOTHING`,
		string(employeeID), balance)
	return err
}

// RecordApply persists one apply call atomically: every record, the new
// balance, and the advanced request counter commit together or not at all.
func (s *Store) RecordApply(ctx context.Context, employeeID leave.EmployeeID, records []leave.Record, newBalance int, next leave.RequestID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE leave_accounts SET balance = ? WHERE employee_id = ?`,
		newBalance, string(employeeID)); err != nil {
		return err
	}

	for _, r := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leave_records (employee_id, history_id, leave_date, request_id)
			 VALUES (?, ?, ?, ?)`,
			string(r.EmployeeID), r.HistoryID, r.Day.String(), int64(r.RequestID)); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_meta (id, next_request_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET next_request_id = excluded.next_request_id`,
		int64(next)); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadLedger rebuilds the full ledger snapshot for boot-time restore.
func (s *Store) LoadLedger(ctx context.Context) (leave.Snapshot, error) {
	var snap leave.Snapshot

	rows, err := s.db.QueryContext(ctx,
		`SELECT employee_id, balance FROM leave_accounts ORDER BY employee_id`)
	if err != nil {
		return leave.Snapshot{}, err
	}
	defer rows.Close()

	index := make(map[leave.EmployeeID]int)
	for rows.Next() {
		var id string
		var balance int
		if err := rows.Scan(&id, &balance); err != nil {
			return leave.Snapshot{}, err
		}
		index[leave.EmployeeID(id)] = len(snap.Accounts)
		snap.Accounts = append(snap.Accounts, leave.AccountSnapshot{
			EmployeeID: leave.EmployeeID(id),
			Balance:    balance,
		})
	}
	if err := rows.Err(); err != nil {
		return leave.Snapshot{}, err
	}

	recRows, err := s.db.QueryContext(ctx,
		`SELECT employee_id, history_id, leave_date, request_id
		 FROM leave_records ORDER BY employee_id, history_id`)
	if err != nil {
		return leave.Snapshot{}, err
	}
	defer recRows.Close()

	for recRows.Next() {
		var (
			id        string
			historyID int
			rawDate   string
			requestID int64
		)
		if err := recRows.Scan(&id, &historyID, &rawDate, &requestID); err != nil {
			return leave.Snapshot{}, err
		}
		day, err := leave.ParseDate(rawDate)
		if err != nil {
			return leave.Snapshot{}, fmt.Errorf("corrupt leave_date %q: %w", rawDate, err)
		}
		i, ok := index[leave.EmployeeID(id)]
		if !ok {
			return leave.Snapshot{}, fmt.Errorf("leave record for unknown account %s", id)
		}
		snap.Accounts[i].History = append(snap.Accounts[i].History, leave.Record{
			HistoryID:  historyID,
			EmployeeID: leave.EmployeeID(id),
			Day:        day,
			RequestID:  leave.RequestID(requestID),
		})
	}
	if err := recRows.Err(); err != nil {
		return leave.Snapshot{}, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT next_request_id FROM ledger_meta WHERE id = 1`).Scan(&snap.NextRequestID)
	if err != nil && err != sql.ErrNoRows {
		return leave.Snapshot{}, err
	}

	return snap, nil
}

// =============================================================================
// DIRECTORY PERSISTENCE
// =============================================================================

// SaveEmployee upserts a directory entry.
func (s *Store) SaveEmployee(ctx context.Context, e directory.Employee) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, manager_id, email) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			manager_id = excluded.manager_id,
			email = excluded.email`,
		e.ID, e.Name, e.ManagerID, e.Email)
	return err
}

// LoadEmployees returns every persisted directory entry.
func (s *Store) LoadEmployees(ctx context.Context) ([]directory.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(manager_id, ''), COALESCE(email, '')
		 FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []directory.Employee
	for rows.Next() {
		var e directory.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.ManagerID, &e.Email); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// TICKET PERSISTENCE
// =============================================================================

// SaveTicket upserts a ticket (status updates are last-write-wins).
func (s *Store) SaveTicket(ctx context.Context, t ticket.Ticket) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tickets (id, employee_id, item, reason, status) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET status = excluded.status`,
		t.ID, t.EmployeeID, t.Item, t.Reason, t.Status)
	return err
}

// LoadTickets returns every persisted ticket in id order.
func (s *Store) LoadTickets(ctx context.Context) ([]ticket.Ticket, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, item, COALESCE(reason, ''), status
		 FROM tickets ORDER BY CAST(id AS INTEGER)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ticket.Ticket
	for rows.Next() {
		var t ticket.Ticket
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.Item, &t.Reason, &t.Status); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
