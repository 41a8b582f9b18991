// Package order holds the in-memory model of an in-progress order ticket.
//
// The ticket is the single source of truth while the user edits legs; any
// view only reflects it. A Builder accumulates leg edits and Build
// snapshots them into an immutable Order.
package order

import (
	"fmt"
	"net/url"
)

// Leg is one component of a multi-leg order. Quantity and Side are kept
// as strings and passed through to the service verbatim; the service owns
// validation of both (there is no published enumeration of sides).
type Leg struct {
	Quantity string
	Side     string
	Symbol   string
}

// Order is an immutable snapshot of a leg sequence. Legs are never
// deduplicated or merged; duplicate symbols with opposite sides are both
// transmitted as-is.
type Order struct {
	Legs []Leg
}

// Empty reports whether the order has no legs. An empty order is a local
// no-op, never sent to the service.
func (o Order) Empty() bool {
	return len(o.Legs) == 0
}

// Values encodes the leg sequence as query parameters, one
// legs[i][quantity] / legs[i][order_type] / legs[i][asset] triple per leg
// in leg order. This is the wire convention the brokerage expects and
// must round-trip exactly.
func (o Order) Values() url.Values {
	v := url.Values{}
	for i, leg := range o.Legs {
		v.Set(fmt.Sprintf("legs[%d][quantity]", i), leg.Quantity)
		v.Set(fmt.Sprintf("legs[%d][order_type]", i), leg.Side)
		v.Set(fmt.Sprintf("legs[%d][asset]", i), leg.Symbol)
	}
	return v
}
