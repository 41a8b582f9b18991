// Package journal records submitted order tickets so a desk session
// leaves an auditable trace.
package journal

import "time"

// TicketLeg mirrors one leg of a submitted order, verbatim as sent.
type TicketLeg struct {
	Quantity string
	Side     string
	Symbol   string
}

// Ticket is one committed order together with the cash and margin impact
// the service reported for it.
type Ticket struct {
	ID           string
	AccountID    string
	SubmittedAt  time.Time
	Legs         []TicketLeg
	CashBefore   float64
	CashAfter    float64
	MarginBefore float64
	MarginAfter  float64
}

// Journal persists tickets. Implementations must be safe for use from a
// single desk; they are not required to be concurrency-safe.
type Journal interface {
	RecordTicket(Ticket) error
	Close() error
}
