// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// =============================================================================
// DISH CARD
// =============================================================================

// Card is one dish in the feed.
type Card struct {
	Item    catalog.Item
	Index   int // position in the displayed collection
	Total   int // size of the displayed collection
	Focused bool

	// ImageState and Picture describe the focused card's image. Picture is
	// pre-rendered half-block art, empty when there is none to show.
	ImageState enrich.State
	Picture    string
	Plating    string // spinner label shown while the image is pending

	Added  bool // show ADDED feedback
	Liked  bool
	InCart int

	Width  int
	Height int
}

// View renders the card.
func (c Card) View(theme *styles.Theme) string {
	width := c.Width
	if width < 30 {
		width = 30
	}
	inner := width - 6 // border and padding

	var b strings.Builder

	b.WriteString(c.imagePanel(theme, inner))
	b.WriteString("\n\n")

	// Name and price on one line, price right-aligned.
	name := theme.DishName.Render(util.TruncateWidth(c.Item.Name, inner-12))
	price := theme.Price.Render(c.Item.Price.String())
	gap := inner - lipgloss.Width(name) - lipgloss.Width(price)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(name + strings.Repeat(" ", gap) + price + "\n")

	if badges := c.badges(theme); badges != "" {
		b.WriteString(badges + "\n")
	}

	for _, line := range util.WrapWidth(c.Item.Description, inner) {
		b.WriteString(theme.Description.Render(line) + "\n")
	}

	if c.Item.PairingNote != "" {
		b.WriteString("\n" + RenderEmphasis(theme, c.Item.PairingNote, inner) + "\n")
	}

	b.WriteString("\n" + c.actions(theme, inner))

	style := theme.Card
	if c.Focused {
		style = theme.CardFocused
	}
	return style.Width(width - 2).Render(b.String())
}

func (c Card) badges(theme *styles.Theme) string {
	var parts []string
	if c.Item.Spicy {
		parts = append(parts, theme.SpicyBadge.Render("SPICY"))
	}
	if len(c.Item.Tags) > 0 {
		parts = append(parts, theme.Tag.Render(strings.Join(c.Item.Tags, " · ")))
	}
	return strings.Join(parts, " ")
}

func (c Card) actions(theme *styles.Theme, inner int) string {
	add := theme.AddButton.Render("a  ADD TO ORDER")
	if c.Added {
		add = theme.AddedBadge.Render("✓ ADDED")
	}

	heart := theme.Unliked.Render("♡")
	if c.Liked {
		heart = theme.Liked.Render("♥")
	}

	left := add
	if c.InCart > 0 {
		left += theme.Muted.Render(fmt.Sprintf("  %d in order", c.InCart))
	}
	right := heart + "  " + theme.Position.Render(fmt.Sprintf("%d/%d", c.Index+1, c.Total))

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// imagePanel renders the picture area: art when there is some, otherwise a
// placeholder naming the photo source, with the plating spinner while the
// image is being generated.
func (c Card) imagePanel(theme *styles.Theme, inner int) string {
	if c.Picture != "" {
		return c.Picture
	}

	var label string
	switch c.ImageState {
	case enrich.StatePending:
		label = c.Plating
	case enrich.StateFailed:
		label = theme.Muted.Render("Studio photo")
	default:
		label = theme.Muted.Render("Photo")
	}
	if host := photoSource(c.Item.Image); host != "" {
		label += "\n" + theme.Muted.Render(host)
	}

	height := c.Height / 3
	if height < 3 {
		height = 3
	}
	return theme.ImagePanel.
		Width(inner).
		Height(height).
		AlignVertical(lipgloss.Center).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Overlay).
		Render(label)
}

// photoSource names where a non-generated image comes from.
func photoSource(ref string) string {
	if ref == "" || catalog.IsGenerated(ref) {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

// =============================================================================
// EMPHASIS
// =============================================================================

// RenderEmphasis renders text with **double-asterisk** spans highlighted,
// wrapped to width. A span may cross a line break.
func RenderEmphasis(theme *styles.Theme, text string, width int) string {
	lines := util.WrapWidth(text, width)
	bold := false
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var sb strings.Builder
		parts := strings.Split(line, "**")
		for i, part := range parts {
			if i > 0 {
				bold = !bold
			}
			if part == "" {
				continue
			}
			if bold {
				sb.WriteString(theme.PairingEmphasis.Render(part))
			} else {
				sb.WriteString(theme.Pairing.Render(part))
			}
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}
