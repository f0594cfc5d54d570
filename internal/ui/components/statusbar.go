// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nexindemo/Nex-reelmenu/internal/session"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// FlashKind colors a transient status message.
type FlashKind int

const (
	FlashInfo FlashKind = iota
	FlashSuccess
	FlashWarning
)

// StatusBar is the bottom line of the browser: filter state on the left,
// key hints on the right.
type StatusBar struct {
	Width     int
	Filter    session.FilterState
	Searching bool
	Flash     string
	FlashKind FlashKind
	theme     *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetFlash shows msg until ClearFlash.
func (s *StatusBar) SetFlash(msg string, kind FlashKind) {
	s.Flash, s.FlashKind = msg, kind
}

// ClearFlash removes the transient message.
func (s *StatusBar) ClearFlash() {
	s.Flash = ""
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := s.theme
	left := s.left()

	shortcuts := []struct{ key, desc string }{
		{"j/k", "browse"},
		{"a", "add"},
		{"c", "chef"},
		{"n", "nutrition"},
		{"/", "search"},
		{"tab", "order"},
		{"q", "quit"},
	}
	var hints []string
	for _, sc := range shortcuts {
		hints = append(hints, t.ShortcutKey.Render(sc.key)+" "+t.ShortcutDesc.Render(sc.desc))
	}
	right := strings.Join(hints, "  ")

	// Drop hints from the right until everything fits.
	for len(hints) > 0 && lipgloss.Width(left)+lipgloss.Width(right)+2 > s.Width-2 {
		hints = hints[:len(hints)-1]
		right = strings.Join(hints, "  ")
	}

	gap := s.Width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return t.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) left() string {
	t := s.theme
	switch {
	case s.Flash != "":
		switch s.FlashKind {
		case FlashSuccess:
			return t.SuccessStyle.Render(s.Flash)
		case FlashWarning:
			return t.WarningStyle.Render(s.Flash)
		default:
			return t.Muted.Render(s.Flash)
		}
	case s.Searching:
		return t.Plating.Render("searching...")
	case s.Filter.Active:
		q := util.TruncateWidth(s.Filter.Query, 24)
		return t.FilterChip.Render("Filtered: "+q) + " " + t.ShortcutKey.Render("x") + " " + t.ShortcutDesc.Render("full menu")
	case s.Filter.Degraded:
		return t.WarningStyle.Render("Chef unavailable, showing the full menu")
	default:
		return t.Muted.Render("Full menu")
	}
}
