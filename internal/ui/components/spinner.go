// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a loading spinner with a message. One Spinner animates every
// pending state on screen; Label renders it next to any text.
type Spinner struct {
	spinner spinner.Model

	style     SpinnerStyle
	message   string
	startTime time.Time

	isActive  bool
	showTimer bool
}

// SpinnerStyle defines the visual style for the spinner.
type SpinnerStyle int

const (
	SpinnerLine    SpinnerStyle = iota // Line rotation
	SpinnerDots                        // Classic dots
	SpinnerPlating                     // Steam over a plate
)

// Messages for the browser's pending states.
const (
	PlatingMessage   = "AI Plating"
	ThinkingMessage  = "Chef is thinking"
	AnalyzingMessage = "Analyzing ingredients"
	SearchingMessage = "Chef is reading your craving"
)

// NewSpinner creates a new spinner with default ASCII-compatible settings.
func NewSpinner() Spinner {
	s := Spinner{
		spinner: spinner.New(),
		message: "Loading",
	}
	s.SetStyle(SpinnerLine)
	return s
}

// NewPlatingSpinner creates the spinner shown while a dish image is generated.
func NewPlatingSpinner() Spinner {
	s := NewSpinner()
	s.SetStyle(SpinnerPlating)
	s.message = PlatingMessage
	return s
}

// SetStyle changes the spinner animation style.
func (s *Spinner) SetStyle(style SpinnerStyle) {
	s.style = style

	cfg := styles.LineSpinner
	switch style {
	case SpinnerDots:
		cfg = styles.DotsSpinner
	case SpinnerPlating:
		cfg = styles.PlatingSpinner
	}
	s.spinner.Spinner = spinner.Spinner{Frames: cfg.Frames, FPS: cfg.Duration()}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// SetShowTimer enables or disables the elapsed time display.
func (s *Spinner) SetShowTimer(show bool) {
	s.showTimer = show
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// Start activates the spinner and records the start time.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner. The pending tick is dropped by Update.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Elapsed returns the duration since the spinner started.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner with its own message.
func (s Spinner) View() string {
	return s.Label(s.message)
}

// Label renders the current frame followed by msg and an ellipsis.
func (s Spinner) Label(msg string) string {
	frame := s.spinner.Spinner.Frames[0]
	if s.isActive {
		frame = s.spinner.View()
	}
	out := lipgloss.NewStyle().Foreground(styles.Plum).Render(frame) + " " +
		lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(msg+"...")

	if s.showTimer && s.isActive {
		out += lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render(" (" + formatElapsed(s.Elapsed()) + ")")
	}
	return out
}

// formatElapsed formats a duration as "3s" or "1m05s".
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
