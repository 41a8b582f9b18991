package order

// Builder holds the editable legs of the in-progress order. Edits mutate
// the builder in place; Build reads them out as an immutable Order. The
// builder performs no validation and no network access.
type Builder struct {
	legs []Leg
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a leg and returns its index. A leg's identity is its
// position in the sequence, not a stable id.
func (b *Builder) Add(leg Leg) int {
	b.legs = append(b.legs, leg)
	return len(b.legs) - 1
}

// Remove deletes the leg at index i, shifting later legs down. Out of
// range indices are ignored.
func (b *Builder) Remove(i int) {
	if i < 0 || i >= len(b.legs) {
		return
	}
	b.legs = append(b.legs[:i], b.legs[i+1:]...)
}

// SetQuantity updates the quantity of the leg at index i. The value is
// not parsed; fractional or non-numeric strings are passed through.
func (b *Builder) SetQuantity(i int, quantity string) {
	if i < 0 || i >= len(b.legs) {
		return
	}
	b.legs[i].Quantity = quantity
}

// SetSide updates the order-type/side of the leg at index i.
func (b *Builder) SetSide(i int, side string) {
	if i < 0 || i >= len(b.legs) {
		return
	}
	b.legs[i].Side = side
}

// Len returns the number of legs currently held.
func (b *Builder) Len() int {
	return len(b.legs)
}

// Clear drops all legs, returning the builder to the empty state.
func (b *Builder) Clear() {
	b.legs = nil
}

// Build snapshots the current legs into an Order. The snapshot is
// detached: later edits to the builder do not affect it.
func (b *Builder) Build() Order {
	legs := make([]Leg, len(b.legs))
	copy(legs, b.legs)
	return Order{Legs: legs}
}
