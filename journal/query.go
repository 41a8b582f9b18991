package journal

import (
	"database/sql"
	"fmt"
)

// GetTicket returns a single ticket, legs included, by id.
func (j *SQLite) GetTicket(ticketID string) (Ticket, error) {
	var t Ticket

	row := j.db.QueryRow(`
		SELECT ticket_id, account_id, submitted_at, cash_before, cash_after, margin_before, margin_after
		FROM tickets
		WHERE ticket_id = ?`, ticketID)

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.SubmittedAt,
		&t.CashBefore,
		&t.CashAfter,
		&t.MarginBefore,
		&t.MarginAfter,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Ticket{}, fmt.Errorf("ticket %q not found", ticketID)
		}
		return Ticket{}, err
	}

	t.Legs, err = j.legsFor(t.ID)
	if err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// TicketsByAccount returns all tickets submitted against an account,
// oldest first.
func (j *SQLite) TicketsByAccount(accountID string) ([]Ticket, error) {
	rows, err := j.db.Query(`
		SELECT ticket_id, account_id, submitted_at, cash_before, cash_after, margin_before, margin_after
		FROM tickets
		WHERE account_id = ?
		ORDER BY submitted_at ASC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.SubmittedAt,
			&t.CashBefore,
			&t.CashAfter,
			&t.MarginBefore,
			&t.MarginAfter,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Legs, err = j.legsFor(out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (j *SQLite) legsFor(ticketID string) ([]TicketLeg, error) {
	rows, err := j.db.Query(`
		SELECT quantity, side, symbol
		FROM ticket_legs
		WHERE ticket_id = ?
		ORDER BY leg_index ASC`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var legs []TicketLeg
	for rows.Next() {
		var leg TicketLeg
		if err := rows.Scan(&leg.Quantity, &leg.Side, &leg.Symbol); err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}
