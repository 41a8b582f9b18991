package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Journal backed by a SQLite file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if necessary) the journal database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordTicket writes the ticket and its legs in one transaction.
func (j *SQLite) RecordTicket(t Ticket) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("begin ticket tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO tickets
		(ticket_id, account_id, submitted_at, cash_before, cash_after, margin_before, margin_after)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, t.SubmittedAt,
		t.CashBefore, t.CashAfter, t.MarginBefore, t.MarginAfter,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}

	for i, leg := range t.Legs {
		_, err = tx.Exec(`
			INSERT INTO ticket_legs (ticket_id, leg_index, quantity, side, symbol)
			VALUES (?, ?, ?, ?, ?)`,
			t.ID, i, leg.Quantity, leg.Side, leg.Symbol,
		)
		if err != nil {
			return fmt.Errorf("insert ticket leg %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
