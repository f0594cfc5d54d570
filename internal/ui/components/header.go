// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// =============================================================================
// HEADER
// =============================================================================

// Header is the top line: brand, backend and the cart badge with its
// running total.
type Header struct {
	Width     int
	Backend   string
	CartCount int
	CartTotal util.Cents
}

// View renders the header.
func (h Header) View(theme *styles.Theme) string {
	left := theme.HeaderBrand.Render("ReelMenu")
	if h.Backend != "" {
		left += "  " + theme.Muted.Render(h.Backend)
	}

	right := theme.Muted.Render("cart")
	if h.CartCount > 0 {
		right = theme.CartTotal.Render(h.CartTotal.String()) + " " +
			theme.CartBadge.Render("🛒 "+itoa(h.CartCount))
	}

	gap := h.Width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return theme.Header.Width(h.Width).Render(left + strings.Repeat(" ", gap) + right)
}
