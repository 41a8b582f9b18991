package broker

import (
	"context"

	"optiondesk/order"
)

// Asset identifies a tradeable instrument by symbol. Option symbols are
// OCC-style strings; the client treats them as opaque.
type Asset struct {
	Symbol string `json:"symbol"`
}

// Quote is a priced asset as reported by the brokerage.
type Quote struct {
	Asset   Asset   `json:"asset"`
	Price   float64 `json:"price"`
	Bid     float64 `json:"bid"`
	Ask     float64 `json:"ask"`
	BidSize float64 `json:"bid_size"`
	AskSize float64 `json:"ask_size"`
}

// Position is an open holding inside an account snapshot. Positions have
// no client-side lifecycle of their own; they are replaced wholesale with
// the account that carries them.
type Position struct {
	Asset     Asset   `json:"asset"`
	Quantity  float64 `json:"quantity"`
	CostBasis float64 `json:"cost_basis"`
	Quote     Quote   `json:"quote"`
}

// Account is a full brokerage account snapshot. The client never mutates
// one; every resolve/refresh replaces the local copy with a fresh fetch.
type Account struct {
	ID                string     `json:"account_id"`
	Cash              float64    `json:"cash"`
	MaintenanceMargin *float64   `json:"maintenance_margin"`
	Positions         []Position `json:"positions"`
}

// Margin returns the maintenance margin, treating an absent field as zero.
func (a Account) Margin() float64 {
	if a.MaintenanceMargin == nil {
		return 0
	}
	return *a.MaintenanceMargin
}

// OrderImpact is the result of a simulate or commit call: the account as
// it was before the order and as it is (or would be) after.
type OrderImpact struct {
	Before     Account  `json:"account0"`
	After      Account  `json:"account1"`
	Commission *float64 `json:"actual_commission"`
	FillPrice  *float64 `json:"actual_fill_price"`
}

// AccountService is the account-lifecycle half of the brokerage API.
type AccountService interface {
	OpenAccount(ctx context.Context) (Account, error)
	GetAccount(ctx context.Context, accountID string) (Account, error)
}

// OrderService previews and commits orders against an account.
type OrderService interface {
	SimulateOrder(ctx context.Context, accountID string, ord order.Order) (OrderImpact, error)
	EnterOrder(ctx context.Context, accountID string, ord order.Order) (OrderImpact, error)
}

// QuoteService serves the option-chain lookups used while building a
// ticket.
type QuoteService interface {
	Expirations(ctx context.Context, underlying string) ([]string, error)
	OptionQuotes(ctx context.Context, underlying, expiration string) ([]Quote, error)
}

// Service is the complete brokerage API surface.
type Service interface {
	AccountService
	OrderService
	QuoteService
}
