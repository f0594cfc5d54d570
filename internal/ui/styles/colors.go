// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the reelmenu browser.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Saffron - Brand color, prices, primary buttons
var Saffron = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"}

// SaffronDeep - Darker saffron for button backgrounds
var SaffronDeep = lipgloss.AdaptiveColor{Light: "#9A3412", Dark: "#EA580C"}

// Basil - Success states, ADDED feedback, order placed
var Basil = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}

// BasilDeep - Darker basil for badges
var BasilDeep = lipgloss.AdaptiveColor{Light: "#166534", Dark: "#14532D"}

// Plum - Chef chat accent, smart search
var Plum = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#C4B5FD"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Chili - Spicy badge, errors, remove actions
var Chili = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// ChiliDeep - Spicy badge background
var ChiliDeep = lipgloss.AdaptiveColor{Light: "#FEE2E2", Dark: "#7F1D1D"}

// Honey - Warnings, filter indicator, pairing emphasis
var Honey = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FCD34D"}

// Heart - Liked dishes
var Heart = lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#F472B6"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFBF5", Dark: "#1C1917"}

// SurfaceDim - Headers, status bar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F0E8", Dark: "#141210"}

// SurfaceBright - Overlays and the cart drawer
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#292524"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E7E5E4", Dark: "#44403C"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1C1917", Dark: "#F5F5F4"}

// TextSecondary - Descriptions, labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#57534E", Dark: "#D6D3D1"}

// TextMuted - Hints, tags, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#A8A29E", Dark: "#78716C"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1C1917"}

// =============================================================================
// CHAT BUBBLE COLORS
// =============================================================================

var DinerBubbleBg = lipgloss.AdaptiveColor{Light: "#FFEDD5", Dark: "#9A3412"}
var DinerBubbleFg = lipgloss.AdaptiveColor{Light: "#7C2D12", Dark: "#FFF7ED"}

var ChefBubbleBg = lipgloss.AdaptiveColor{Light: "#F5F3FF", Dark: "#2E2A3D"}
var ChefBubbleFg = lipgloss.AdaptiveColor{Light: "#4C1D95", Dark: "#EDE9FE"}
var ChefBubbleBorder = lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#8B5CF6"}

// FocusRing marks the focused card and selected rows.
var FocusRing = Saffron

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicatorSet contains text indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
}

// StatusIndicators are ASCII so they survive any terminal font.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Basil).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Chili).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(Honey).Bold(true).
		Render(StatusIndicators.Warning + " " + message)
}
