// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nexindemo/Nex-reelmenu/internal/session"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// =============================================================================
// CART DRAWER
// =============================================================================

// CartDrawer is the "Your Order" panel. Its cursor walks the cart lines and
// then the PLACE ORDER button.
type CartDrawer struct {
	cursor int
	width  int
	height int
}

// NewCartDrawer creates a drawer with the cursor on the first line.
func NewCartDrawer() *CartDrawer {
	return &CartDrawer{width: 40, height: 20}
}

// SetSize sets the drawer's outer size.
func (d *CartDrawer) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Width returns the drawer's outer width.
func (d *CartDrawer) Width() int { return d.width }

// Reset puts the cursor back on the first row.
func (d *CartDrawer) Reset() { d.cursor = 0 }

// Move moves the cursor by delta over lines rows plus the button row.
func (d *CartDrawer) Move(delta, lines int) {
	d.cursor = clampIndex(d.cursor+delta, lines+1)
}

// Selected returns the cart line under the cursor. onButton is true when
// the cursor is on PLACE ORDER.
func (d *CartDrawer) Selected(v session.CartView) (itemID string, onButton bool) {
	d.cursor = clampIndex(d.cursor, len(v.Lines)+1)
	if d.cursor == len(v.Lines) {
		return "", true
	}
	return v.Lines[d.cursor].Item.ID, false
}

// View renders the drawer for v.
func (d *CartDrawer) View(theme *styles.Theme, v session.CartView) string {
	inner := d.width - 7 // border and padding
	if inner < 24 {
		inner = 24
	}
	d.cursor = clampIndex(d.cursor, len(v.Lines)+1)

	var b strings.Builder
	title := "Your Order"
	if v.Count > 0 {
		title += fmt.Sprintf(" (%d)", v.Count)
	}
	b.WriteString(theme.DrawerTitle.Render(title) + "\n")

	if v.Empty() {
		b.WriteString(theme.Empty.Width(inner).Render("Your cart is empty") + "\n")
		b.WriteString(theme.Muted.Width(inner).Align(lipgloss.Center).Render("press a on a dish to add it") + "\n")
		return theme.Drawer.Width(d.width - 1).Height(d.height - 2).Render(b.String())
	}

	for i, ln := range v.Lines {
		name := util.TruncateWidth(ln.Item.Name, inner-12)
		nameStyle := theme.LineName
		marker := "  "
		if i == d.cursor {
			nameStyle = theme.LineSelected
			marker = theme.LineSelected.Render("> ")
		}
		total := theme.LineTotal.Render(ln.Amount().String())
		row := marker + nameStyle.Render(name)
		b.WriteString(justify(row, total, inner) + "\n")

		minus := "-"
		if ln.Quantity == 1 {
			minus = theme.Trash.Render(styles.Trash)
		}
		qty := fmt.Sprintf("    %s %s %s", minus, theme.Quantity.Render(fmt.Sprint(ln.Quantity)), "+")
		unit := theme.LineUnit.Render(ln.Item.Price.String() + " each")
		b.WriteString(justify(qty, unit, inner) + "\n")
	}

	b.WriteString(theme.Muted.Render(strings.Repeat("─", inner)) + "\n")
	if v.Surcharge > 0 {
		b.WriteString(justify(theme.TotalLabel.Render("Subtotal"), theme.TotalLabel.Render(v.Subtotal.String()), inner) + "\n")
		b.WriteString(justify(theme.TotalLabel.Render("Service"), theme.TotalLabel.Render(v.Surcharge.String()), inner) + "\n")
	}
	b.WriteString(justify(theme.TotalLabel.Render("Total"), theme.TotalValue.Render(v.Total.String()), inner) + "\n\n")

	button := theme.PlaceOrder
	if d.cursor == len(v.Lines) {
		button = theme.PlaceOrderFocus
	}
	b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, button.Render("PLACE ORDER")) + "\n\n")
	b.WriteString(theme.Muted.Render("+/- quantity  enter select  tab close"))

	return theme.Drawer.Width(d.width - 1).Height(d.height - 2).Render(b.String())
}

// justify places left and right on one line of width columns.
func justify(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// clampIndex clamps i to [0, n-1], or 0 when n is 0.
func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
