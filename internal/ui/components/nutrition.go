// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// NutritionPanel renders the nutrition facts overlay for one dish.
type NutritionPanel struct {
	Dish  string
	Entry enrich.Entry
	Width int
}

// View renders the panel. spin animates the pending state.
func (p NutritionPanel) View(theme *styles.Theme, spin Spinner) string {
	inner := max(p.Width-8, 24)

	var b strings.Builder
	b.WriteString(theme.OverlayTitle.Render("Nutrition Facts") + "\n")
	b.WriteString(theme.OverlaySubtitle.Render(util.TruncateWidth(p.Dish, inner)) + "\n\n")

	switch p.Entry.State {
	case enrich.StateReady:
		n := p.Entry.Nutrition
		if n == nil {
			b.WriteString(theme.Muted.Render("Nutrition info unavailable.") + "\n")
			break
		}
		cells := []string{
			fact(theme, "Calories", fmt.Sprint(n.Calories)),
			fact(theme, "Protein", n.Protein),
			fact(theme, "Carbs", n.Carbs),
			fact(theme, "Fat", n.Fat),
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells[0], "  ", cells[1]) + "\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells[2], "  ", cells[3]) + "\n")
		if n.Highlight != "" {
			b.WriteString("\n")
			for _, line := range util.WrapWidth(n.Highlight, inner) {
				b.WriteString(theme.Highlight.Render(line) + "\n")
			}
		}
	case enrich.StateFailed:
		b.WriteString(theme.WarningStyle.Render("Nutrition info unavailable.") + "\n")
		if p.Entry.Reason != "" {
			b.WriteString(theme.Muted.Render(util.TruncateWidth(p.Entry.Reason, inner)) + "\n")
		}
		b.WriteString(theme.Muted.Render("press n to try again") + "\n")
	default:
		b.WriteString(spin.Label(AnalyzingMessage) + "\n")
	}

	b.WriteString("\n" + theme.Muted.Render("esc close"))
	return theme.OverlayBox.Width(p.Width - 2).Render(b.String())
}

func fact(theme *styles.Theme, label, value string) string {
	return theme.FactLabel.Render(label) + theme.FactValue.Width(10).Render(value)
}
