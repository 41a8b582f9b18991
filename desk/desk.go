// Package desk coordinates the in-progress order ticket: it owns the
// editable legs, keeps the simulated preview synchronized with every
// edit, and commits the ticket on submit.
package desk

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"optiondesk/broker"
	"optiondesk/journal"
	"optiondesk/order"
	"optiondesk/pkg/id"
	"optiondesk/session"
)

// View is the rendering collaborator. The desk never renders; it pushes
// state here. Calls may arrive from background goroutines, so
// implementations must be safe for concurrent use.
type View interface {
	// ShowAccount renders a full account snapshot. opened is true only
	// for the one resolve that provisioned a brand-new account.
	ShowAccount(acct broker.Account, opened bool)
	// ShowPreview renders the before/after projection of the current
	// ticket.
	ShowPreview(impact broker.OrderImpact)
	// ShowError surfaces a failed remote call. Errors are retryable by
	// the next user action; nothing is silently dropped.
	ShowError(err error)
}

// Desk is the single owner of one in-progress order. All shared state
// sits behind one mutex; remote calls run on goroutines so edits never
// block on the network.
type Desk struct {
	mu      sync.Mutex
	builder *order.Builder
	gen     uint64 // generation of the latest issued refresh

	resolver *session.Resolver
	orders   broker.OrderService
	view     View
	jnl      journal.Journal
	log      *zap.Logger

	wg sync.WaitGroup
}

// New builds a Desk. log may be nil.
func New(resolver *session.Resolver, orders broker.OrderService, view View, log *zap.Logger) *Desk {
	if log == nil {
		log = zap.NewNop()
	}
	return &Desk{
		builder:  order.NewBuilder(),
		resolver: resolver,
		orders:   orders,
		view:     view,
		log:      log,
	}
}

// SetJournal attaches an optional journal; submitted tickets are
// recorded there.
func (d *Desk) SetJournal(j journal.Journal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jnl = j
}

// Open performs the initial session resolve, rendering the account the
// desk will trade against. Call it once at startup.
func (d *Desk) Open(ctx context.Context) error {
	acct, opened, err := d.resolver.Resolve(ctx)
	if err != nil {
		d.view.ShowError(err)
		return err
	}
	d.view.ShowAccount(acct, opened)
	return nil
}

// AddLeg appends a leg to the ticket and re-simulates. It returns the
// new leg's index.
func (d *Desk) AddLeg(ctx context.Context, leg order.Leg) int {
	d.mu.Lock()
	i := d.builder.Add(leg)
	d.mu.Unlock()

	d.Refresh(ctx)
	return i
}

// RemoveLeg drops the leg at index i and re-simulates.
func (d *Desk) RemoveLeg(ctx context.Context, i int) {
	d.mu.Lock()
	d.builder.Remove(i)
	d.mu.Unlock()

	d.Refresh(ctx)
}

// SetQuantity updates a leg's quantity and re-simulates.
func (d *Desk) SetQuantity(ctx context.Context, i int, quantity string) {
	d.mu.Lock()
	d.builder.SetQuantity(i, quantity)
	d.mu.Unlock()

	d.Refresh(ctx)
}

// SetSide updates a leg's order-type/side and re-simulates.
func (d *Desk) SetSide(ctx context.Context, i int, side string) {
	d.mu.Lock()
	d.builder.SetSide(i, side)
	d.mu.Unlock()

	d.Refresh(ctx)
}

// Legs returns a snapshot of the editable legs, for rendering.
func (d *Desk) Legs() []order.Leg {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.builder.Build().Legs
}

// Refresh snapshots the ticket and asynchronously re-simulates it. An
// empty ticket issues no network call. Each refresh carries a
// monotonically increasing generation; a response that is no longer the
// latest issued is discarded, so the preview always reflects the most
// recently issued request.
func (d *Desk) Refresh(ctx context.Context) {
	d.mu.Lock()
	ord := d.builder.Build()
	if ord.Empty() {
		d.mu.Unlock()
		return
	}
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		acct, _, err := d.resolver.Resolve(ctx)
		if err != nil {
			d.finishRefresh(gen, broker.OrderImpact{}, err)
			return
		}

		impact, err := d.orders.SimulateOrder(ctx, acct.ID, ord)
		d.finishRefresh(gen, impact, err)
	}()
}

func (d *Desk) finishRefresh(gen uint64, impact broker.OrderImpact, err error) {
	d.mu.Lock()
	stale := gen != d.gen
	d.mu.Unlock()

	if stale {
		d.log.Debug("discarding stale simulation response", zap.Uint64("generation", gen))
		return
	}
	if err != nil {
		d.view.ShowError(err)
		return
	}
	d.view.ShowPreview(impact)
}

// Submit commits the current ticket. An empty ticket is a no-op. On a
// committed order the desk journals the ticket, clears the draft, and
// performs exactly one full session refresh so the view reflects the new
// ground truth. On failure the draft is kept so the user can retry.
func (d *Desk) Submit(ctx context.Context) {
	d.mu.Lock()
	ord := d.builder.Build()
	d.mu.Unlock()
	if ord.Empty() {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		acct, _, err := d.resolver.Resolve(ctx)
		if err != nil {
			d.view.ShowError(err)
			return
		}

		impact, err := d.orders.EnterOrder(ctx, acct.ID, ord)
		if err != nil {
			d.view.ShowError(err)
			return
		}

		d.recordTicket(acct.ID, ord, impact)

		d.mu.Lock()
		d.builder.Clear()
		// Invalidate previews still in flight for the submitted draft.
		d.gen++
		d.mu.Unlock()

		fresh, _, err := d.resolver.Resolve(ctx)
		if err != nil {
			d.view.ShowError(err)
			return
		}
		d.view.ShowAccount(fresh, false)
	}()
}

func (d *Desk) recordTicket(accountID string, ord order.Order, impact broker.OrderImpact) {
	d.mu.Lock()
	jnl := d.jnl
	d.mu.Unlock()
	if jnl == nil {
		return
	}

	legs := make([]journal.TicketLeg, len(ord.Legs))
	for i, leg := range ord.Legs {
		legs[i] = journal.TicketLeg{Quantity: leg.Quantity, Side: leg.Side, Symbol: leg.Symbol}
	}

	t := journal.Ticket{
		ID:           id.New(),
		AccountID:    accountID,
		SubmittedAt:  time.Now().UTC(),
		Legs:         legs,
		CashBefore:   impact.Before.Cash,
		CashAfter:    impact.After.Cash,
		MarginBefore: impact.Before.Margin(),
		MarginAfter:  impact.After.Margin(),
	}
	if err := jnl.RecordTicket(t); err != nil {
		d.log.Warn("journal ticket", zap.String("ticket_id", t.ID), zap.Error(err))
	}
}

// Wait blocks until all in-flight remote calls have drained. Used at
// shutdown and by tests.
func (d *Desk) Wait() {
	d.wg.Wait()
}
