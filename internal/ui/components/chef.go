// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/nexindemo/Nex-reelmenu/internal/chat"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
)

// =============================================================================
// CHEF'S TABLE
// =============================================================================

// ChefChat is the chat overlay for one dish: a scrolling transcript above
// a single-line input.
type ChefChat struct {
	theme    *styles.Theme
	viewport viewport.Model
	input    textinput.Model
	renderer *glamour.TermRenderer

	itemID   string
	dish     string
	messages []chat.Message
	thinking bool
	nextHint int

	width  int
	height int
}

// NewChefChat creates a closed chat overlay.
func NewChefChat(theme *styles.Theme) *ChefChat {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = theme.InputPrompt
	in.CharLimit = 500

	c := &ChefChat{
		theme:    theme,
		viewport: viewport.New(40, 10),
		input:    in,
	}
	c.SetSize(60, 20)
	return c
}

// SetSize sets the overlay's outer size.
func (c *ChefChat) SetSize(width, height int) {
	c.width, c.height = width, height
	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	c.viewport.Width = inner
	c.viewport.Height = max(height-10, 3)
	c.input.Width = inner - 4

	style := glamour.WithStandardStyle("light")
	if c.theme.IsDark {
		style = glamour.WithStandardStyle("dark")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(inner-8))
	if err == nil {
		c.renderer = r
	}
	c.refresh()
}

// Open shows the chat for a dish and focuses the input.
func (c *ChefChat) Open(itemID, dish string) tea.Cmd {
	if c.itemID != itemID {
		c.input.Reset()
		c.nextHint = 0
	}
	c.itemID, c.dish = itemID, dish
	c.thinking = false
	return c.input.Focus()
}

// Close blurs the input. The draft is kept for the same dish.
func (c *ChefChat) Close() {
	c.input.Blur()
}

// ItemID returns the dish the overlay is showing.
func (c *ChefChat) ItemID() string { return c.itemID }

// SetMessages replaces the transcript and scrolls to the newest message.
func (c *ChefChat) SetMessages(msgs []chat.Message) {
	c.messages = msgs
	c.refresh()
}

// SetThinking toggles the "Chef is thinking" row.
func (c *ChefChat) SetThinking(v bool) {
	c.thinking = v
}

// Value returns the draft question.
func (c *ChefChat) Value() string { return c.input.Value() }

// ClearInput empties the draft after it was sent.
func (c *ChefChat) ClearInput() { c.input.Reset() }

// NextSuggestion fills the input with the next suggested question.
func (c *ChefChat) NextSuggestion() {
	c.input.SetValue(chat.SuggestedQuestions[c.nextHint%len(chat.SuggestedQuestions)])
	c.input.CursorEnd()
	c.nextHint++
}

// Update routes keys to the input and scroll keys to the transcript.
func (c *ChefChat) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "pgup", "pgdown", "up", "down":
			c.viewport, cmd = c.viewport.Update(msg)
			return cmd
		}
	}
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *ChefChat) refresh() {
	if c.viewport.Width == 0 {
		return
	}
	var b strings.Builder
	for _, m := range c.messages {
		b.WriteString(c.renderMessage(m))
		b.WriteString("\n")
	}
	c.viewport.SetContent(b.String())
	c.viewport.GotoBottom()
}

func (c *ChefChat) renderMessage(m chat.Message) string {
	width := c.viewport.Width - 8
	if m.Role == provider.RoleUser {
		return c.theme.DinerBubble.Width(width).Render(m.Text)
	}
	if m.Fallback {
		return c.theme.FallbackBubble.Width(width).Render(m.Text)
	}
	text := m.Text
	if c.renderer != nil {
		if out, err := c.renderer.Render(m.Text); err == nil {
			text = strings.Trim(out, "\n")
		}
	}
	return c.theme.ChefBubble.Render(text)
}

// View renders the overlay. spin is the spinner label used while the chef
// is thinking.
func (c *ChefChat) View(spin Spinner) string {
	var b strings.Builder
	b.WriteString(c.theme.OverlayTitle.Render("Chef's Table") + "  " +
		c.theme.OverlaySubtitle.Render("Ask about "+c.dish) + "\n\n")
	b.WriteString(c.viewport.View() + "\n")

	if c.thinking {
		b.WriteString(spin.Label(ThinkingMessage) + "\n")
	} else {
		b.WriteString("\n")
	}

	// Suggestions until the diner has asked something.
	if len(c.messages) <= 1 {
		for i, q := range chat.SuggestedQuestions {
			marker := "  "
			if c.nextHint > 0 && (c.nextHint-1)%len(chat.SuggestedQuestions) == i {
				marker = "> "
			}
			b.WriteString(c.theme.SuggestionKey.Render(marker) + c.theme.Suggestion.Render(q) + "\n")
		}
	}

	b.WriteString(c.input.View() + "\n")
	b.WriteString(c.theme.Muted.Render("enter send  tab suggestion  pgup/pgdn scroll  esc close"))
	return c.theme.OverlayBox.Width(c.width - 2).Render(b.String())
}
