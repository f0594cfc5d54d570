// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
)

// Order confirmation copy.
const (
	OrderPlacedTitle = "Order Placed!"
	OrderPlacedBody  = "The kitchen is preparing your meal. It'll be ready shortly!"
)

// OrderSuccess is the confirmation shown after checkout.
type OrderSuccess struct {
	Receipt cart.Receipt
	// LogNote reports the order log write, empty while it is in flight.
	LogNote string
}

// View renders the confirmation.
func (o OrderSuccess) View(theme *styles.Theme) string {
	var b strings.Builder
	b.WriteString(theme.SuccessTitle.Render("✓ "+OrderPlacedTitle) + "\n\n")
	b.WriteString(theme.Description.Render(OrderPlacedBody) + "\n\n")

	id := o.Receipt.OrderID
	if len(id) > 8 {
		id = id[:8]
	}
	b.WriteString(theme.Muted.Render(fmt.Sprintf("Ticket %s · %d items · ", id, o.Receipt.Count())) +
		theme.TotalValue.Render(o.Receipt.Total.String()) + "\n")
	if o.LogNote != "" {
		b.WriteString(theme.Muted.Render(o.LogNote) + "\n")
	}
	b.WriteString("\n" + theme.Muted.Render("press any key to keep browsing"))
	return theme.SuccessBox.Render(b.String())
}
