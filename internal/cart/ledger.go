// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// SurchargePercent is the service and tax surcharge applied to the subtotal
// when the total is shown or an order is placed.
const SurchargePercent = 5

// LookupFunc resolves an item id to its catalog entry.
type LookupFunc func(id string) (catalog.Item, bool)

// Line is one dish in the cart.
type Line struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantity"`
}

// Amount returns unit price times quantity.
func (l Line) Amount() util.Cents {
	return l.Item.Price.Times(l.Quantity)
}

// Ledger is the cart. It is not safe for concurrent use; the session
// controller serializes access.
type Ledger struct {
	lines  []Line
	lookup LookupFunc
}

// NewLedger creates an empty ledger. lookup is used by Adjust to recreate a
// line for an item that is not currently in the cart; it may be nil.
func NewLedger(lookup LookupFunc) *Ledger {
	return &Ledger{lookup: lookup}
}

func (l *Ledger) find(id string) int {
	for i := range l.lines {
		if l.lines[i].Item.ID == id {
			return i
		}
	}
	return -1
}

// Add puts one more unit of item in the cart.
func (l *Ledger) Add(item catalog.Item) {
	if i := l.find(item.ID); i >= 0 {
		l.lines[i].Quantity++
		return
	}
	l.lines = append(l.lines, Line{Item: item, Quantity: 1})
}

// Adjust changes the quantity of id by delta, flooring at zero. A line that
// reaches zero is removed. A positive delta for an item not in the cart
// creates its line when the item can be resolved through the lookup.
func (l *Ledger) Adjust(id string, delta int) {
	i := l.find(id)
	if i < 0 {
		if delta <= 0 || l.lookup == nil {
			return
		}
		item, ok := l.lookup(id)
		if !ok {
			return
		}
		l.lines = append(l.lines, Line{Item: item, Quantity: delta})
		return
	}

	q := l.lines[i].Quantity + delta
	if q > 0 {
		l.lines[i].Quantity = q
		return
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
}

// Clear empties the cart.
func (l *Ledger) Clear() {
	l.lines = nil
}

// Lines returns a copy of the cart lines in first-added order.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Quantity returns the quantity of id, or 0.
func (l *Ledger) Quantity(id string) int {
	if i := l.find(id); i >= 0 {
		return l.lines[i].Quantity
	}
	return 0
}

// Count returns the total number of units (the badge number).
func (l *Ledger) Count() int {
	n := 0
	for _, ln := range l.lines {
		n += ln.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (l *Ledger) Empty() bool {
	return len(l.lines) == 0
}

// Subtotal is the sum of line amounts before surcharge.
func (l *Ledger) Subtotal() util.Cents {
	var sum util.Cents
	for _, ln := range l.lines {
		sum += ln.Amount()
	}
	return sum
}

// Surcharge is SurchargePercent of the subtotal.
func (l *Ledger) Surcharge() util.Cents {
	return l.Subtotal().Percent(SurchargePercent)
}

// Total is the subtotal plus surcharge.
func (l *Ledger) Total() util.Cents {
	sub := l.Subtotal()
	return sub + sub.Percent(SurchargePercent)
}

// =============================================================================
// CHECKOUT
// =============================================================================

// Receipt is the snapshot of a placed order.
type Receipt struct {
	OrderID   string     `json:"order_id"`
	PlacedAt  time.Time  `json:"placed_at"`
	Lines     []Line     `json:"lines"`
	Subtotal  util.Cents `json:"subtotal_cents"`
	Surcharge util.Cents `json:"surcharge_cents"`
	Total     util.Cents `json:"total_cents"`
}

// Count returns the number of units on the receipt.
func (r Receipt) Count() int {
	n := 0
	for _, ln := range r.Lines {
		n += ln.Quantity
	}
	return n
}

// Checkout snapshots the cart into a receipt and clears it. It returns false
// and leaves the ledger untouched when the cart is empty.
func (l *Ledger) Checkout(now time.Time) (Receipt, bool) {
	if l.Empty() {
		return Receipt{}, false
	}
	sub := l.Subtotal()
	r := Receipt{
		OrderID:   uuid.NewString(),
		PlacedAt:  now,
		Lines:     l.Lines(),
		Subtotal:  sub,
		Surcharge: sub.Percent(SurchargePercent),
	}
	r.Total = r.Subtotal + r.Surcharge
	l.Clear()
	return r, true
}
