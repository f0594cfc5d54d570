// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexindemo/Nex-reelmenu/internal/search"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
)

// SearchBox is the Smart Search overlay.
type SearchBox struct {
	input    textinput.Model
	nextHint int
	width    int
}

// NewSearchBox creates a closed search overlay.
func NewSearchBox(theme *styles.Theme) *SearchBox {
	in := textinput.New()
	in.Placeholder = "Describe your craving..."
	in.Prompt = "/ "
	in.PromptStyle = theme.InputPrompt
	in.CharLimit = 200
	return &SearchBox{input: in, width: 60}
}

// SetWidth sets the overlay's outer width.
func (s *SearchBox) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-12, 10)
}

// Open focuses an empty input.
func (s *SearchBox) Open() tea.Cmd {
	s.input.Reset()
	s.nextHint = 0
	return s.input.Focus()
}

// Close blurs the input.
func (s *SearchBox) Close() { s.input.Blur() }

// Value returns the typed craving.
func (s *SearchBox) Value() string { return s.input.Value() }

// NextSuggestion fills the input with the next suggested search.
func (s *SearchBox) NextSuggestion() {
	s.input.SetValue(search.Suggestions[s.nextHint%len(search.Suggestions)])
	s.input.CursorEnd()
	s.nextHint++
}

// Update forwards input events.
func (s *SearchBox) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// View renders the overlay. While searching the spinner replaces the hints.
func (s *SearchBox) View(theme *styles.Theme, searching bool, spin Spinner) string {
	var b strings.Builder
	b.WriteString(theme.OverlayTitle.Render("Smart Search") + "\n")
	b.WriteString(theme.OverlaySubtitle.Render("Tell the chef what you feel like eating") + "\n\n")
	b.WriteString(s.input.View() + "\n\n")

	if searching {
		b.WriteString(spin.Label(SearchingMessage) + "\n")
	} else {
		b.WriteString(theme.Muted.Render("Try:") + "\n")
		for i, q := range search.Suggestions {
			marker := "  "
			if s.nextHint > 0 && (s.nextHint-1)%len(search.Suggestions) == i {
				marker = "> "
			}
			b.WriteString(theme.SuggestionKey.Render(marker) + theme.Suggestion.Render(q) + "\n")
		}
	}
	b.WriteString("\n" + theme.Muted.Render("enter search  tab suggestion  esc close"))
	return theme.OverlayBox.Width(s.width - 2).Render(b.String())
}
