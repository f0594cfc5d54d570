// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nexindemo/Nex-reelmenu/internal/ui/components"
)

// View renders the browser: header, body and status bar.
func (m *Model) View() string {
	cart := m.ctrl.Cart()
	header := components.Header{
		Width:     m.width,
		Backend:   m.opts.Backend,
		CartCount: cart.Count,
		CartTotal: cart.Total,
	}.View(m.theme)

	m.status.Filter = m.ctrl.Filter()
	m.status.Searching = m.ctrl.Searching()

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.body(),
		m.status.View(),
	))
}

// body renders the area between header and status bar.
func (m *Model) body() string {
	h := m.extent()

	if m.showHelp {
		return m.overlay(m.theme.OverlayBox.Render(
			m.theme.OverlayTitle.Render("Keys")+"\n\n"+m.help.FullHelpView(m.keys.FullHelp())), h)
	}

	switch m.state {
	case StateChat:
		return m.overlay(m.chef.View(m.spinner), h)
	case StateNutrition:
		return m.overlay(m.nutritionView(), h)
	case StateSearch:
		return m.overlay(m.search.View(m.theme, m.ctrl.Searching(), m.spinner), h)
	case StateOrderPlaced:
		return m.overlay(m.success.View(m.theme), h)
	case StateCart:
		if !m.docked() {
			return m.overlay(m.drawer.View(m.theme, m.ctrl.Cart()), h)
		}
	}

	feed := lipgloss.PlaceHorizontal(m.feedWidth(), lipgloss.Center, m.feedView(h))
	if !m.docked() {
		return feed
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, feed, m.drawer.View(m.theme, m.ctrl.Cart()))
}

// overlay centers box in the body area.
func (m *Model) overlay(box string, height int) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// FEED
// =============================================================================

// feedView renders the visible window of the card stack. Cards are exactly
// one extent tall, so the window starts offset lines into the stack.
func (m *Model) feedView(height int) string {
	items := m.ctrl.Displayed()
	if len(items) == 0 {
		return m.emptyView(height)
	}

	idx, _, _ := m.ctrl.Focus()
	_, focusedState := m.ctrl.ActiveImage()
	cart := m.ctrl.Cart()
	plating := m.spinner.Label(components.PlatingMessage)

	off := max(int(m.offset), 0)
	first := min(off/height, len(items)-1)
	skip := off - first*height

	var lines []string
	for i := first; i < len(items) && len(lines) < skip+height; i++ {
		item := items[i]
		card := components.Card{
			Item:    item,
			Index:   i,
			Total:   len(items),
			Focused: i == idx,
			Plating: plating,
			Added:   item.ID == m.addedID,
			Liked:   m.liked[item.ID],
			InCart:  inCart(cart, item.ID),
			Width:   m.cardWidth(),
			Height:  height,
		}
		if i == idx {
			card.ImageState = focusedState
			card.Picture = m.picture(item)
		} else {
			_, card.ImageState = m.ctrl.Coordinator().ImageFor(item)
		}
		lines = append(lines, fitLines(card.View(m.theme), height)...)
	}

	skip = min(skip, len(lines))
	window := lines[skip:min(skip+height, len(lines))]
	return strings.Join(fitLines(strings.Join(window, "\n"), height), "\n")
}

// emptyView is shown when a search matched nothing.
func (m *Model) emptyView(height int) string {
	f := m.ctrl.Filter()
	var b strings.Builder
	b.WriteString(m.theme.Empty.Render("Chef couldn't find matches") + "\n")
	if f.Query != "" {
		b.WriteString(m.theme.Muted.Render("for \""+f.Query+"\"") + "\n")
	}
	b.WriteString("\n" + m.theme.ShortcutKey.Render("x") + " " + m.theme.ShortcutDesc.Render("Back to Full Menu"))
	return lipgloss.Place(m.cardWidth(), height, lipgloss.Center, lipgloss.Center, b.String())
}

// nutritionView renders the nutrition overlay for the open dish.
func (m *Model) nutritionView() string {
	id, e, ok := m.ctrl.Nutrition()
	if !ok {
		return ""
	}
	dish := id
	if item, found := m.ctrl.Catalog().Lookup(id); found {
		dish = item.Name
	}
	return components.NutritionPanel{
		Dish:  dish,
		Entry: e,
		Width: min(m.width-4, 56),
	}.View(m.theme, m.spinner)
}

// fitLines splits s into exactly n lines, truncating or padding.
func fitLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
