// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the browser.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION AND HEADER
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	CartBadge   lipgloss.Style
	CartTotal   lipgloss.Style

	// ==========================================================================
	// DISH CARD
	// ==========================================================================

	Card            lipgloss.Style
	CardFocused     lipgloss.Style
	DishName        lipgloss.Style
	Price           lipgloss.Style
	Description     lipgloss.Style
	Tag             lipgloss.Style
	SpicyBadge      lipgloss.Style
	AddedBadge      lipgloss.Style
	AddButton       lipgloss.Style
	Liked           lipgloss.Style
	Unliked         lipgloss.Style
	Pairing         lipgloss.Style
	PairingEmphasis lipgloss.Style
	Plating         lipgloss.Style
	ImagePanel      lipgloss.Style
	Position        lipgloss.Style

	// ==========================================================================
	// CART DRAWER
	// ==========================================================================

	Drawer          lipgloss.Style
	DrawerTitle     lipgloss.Style
	LineName        lipgloss.Style
	LineSelected    lipgloss.Style
	LineUnit        lipgloss.Style
	LineTotal       lipgloss.Style
	Quantity        lipgloss.Style
	Trash           lipgloss.Style
	TotalLabel      lipgloss.Style
	TotalValue      lipgloss.Style
	PlaceOrder      lipgloss.Style
	PlaceOrderFocus lipgloss.Style

	// ==========================================================================
	// OVERLAYS (chat, nutrition, search, success)
	// ==========================================================================

	OverlayBox      lipgloss.Style
	OverlayTitle    lipgloss.Style
	OverlaySubtitle lipgloss.Style
	DinerBubble     lipgloss.Style
	ChefBubble      lipgloss.Style
	FallbackBubble  lipgloss.Style
	InputPrompt     lipgloss.Style
	Suggestion      lipgloss.Style
	SuggestionKey   lipgloss.Style
	FactLabel       lipgloss.Style
	FactValue       lipgloss.Style
	Highlight       lipgloss.Style
	SuccessBox      lipgloss.Style
	SuccessTitle    lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND MISC
	// ==========================================================================

	StatusBar    lipgloss.Style
	FilterChip   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	Muted        lipgloss.Style
	Empty        lipgloss.Style

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
}

// NewTheme creates a theme for mode ("dark", "light" or "auto"). Auto asks
// the terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
		Width:        80,
		Height:       24,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	t.CartBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Saffron).
		Padding(0, 1)

	t.CartTotal = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	// Dish card
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.CardFocused = t.Card.
		BorderForeground(FocusRing)

	t.DishName = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Price = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	t.Description = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Tag = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SpicyBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(Chili).
		Background(ChiliDeep).
		Padding(0, 1)

	t.AddedBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Basil).
		Padding(0, 1)

	t.AddButton = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(SaffronDeep).
		Padding(0, 1)

	t.Liked = lipgloss.NewStyle().
		Foreground(Heart).
		Bold(true)

	t.Unliked = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Pairing = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.PairingEmphasis = lipgloss.NewStyle().
		Foreground(Honey).
		Bold(true)

	t.Plating = lipgloss.NewStyle().
		Foreground(Plum).
		Italic(true)

	t.ImagePanel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Center)

	t.Position = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Cart drawer
	t.Drawer = lipgloss.NewStyle().
		Background(SurfaceBright).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(Saffron).
		Padding(1, 2)

	t.DrawerTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginBottom(1)

	t.LineName = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.LineSelected = lipgloss.NewStyle().
		Foreground(FocusRing).
		Bold(true)

	t.LineUnit = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.LineTotal = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.Quantity = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.Trash = lipgloss.NewStyle().
		Foreground(Chili)

	t.TotalLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.TotalValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	t.PlaceOrder = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(SaffronDeep).
		Padding(0, 3)

	t.PlaceOrderFocus = t.PlaceOrder.
		Background(Saffron).
		Underline(true)

	// Overlays
	t.OverlayBox = lipgloss.NewStyle().
		Background(SurfaceBright).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Plum).
		Padding(1, 2)

	t.OverlayTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Plum)

	t.OverlaySubtitle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.DinerBubble = lipgloss.NewStyle().
		Foreground(DinerBubbleFg).
		Background(DinerBubbleBg).
		Padding(0, 1).
		MarginLeft(6)

	t.ChefBubble = lipgloss.NewStyle().
		Foreground(ChefBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(ChefBubbleBorder).
		PaddingLeft(1).
		MarginRight(6)

	t.FallbackBubble = t.ChefBubble.
		BorderForeground(Honey).
		Italic(true)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Plum).
		Bold(true)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SuggestionKey = lipgloss.NewStyle().
		Foreground(Plum).
		Bold(true)

	t.FactLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Width(10)

	t.FactValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.Highlight = lipgloss.NewStyle().
		Foreground(Basil).
		Italic(true)

	t.SuccessBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Basil).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.SuccessTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Basil)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.FilterChip = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Honey).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Saffron).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Plum)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Empty = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Align(lipgloss.Center)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Basil).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Chili).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Honey).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns; the cart drawer docks beside the feed
)
