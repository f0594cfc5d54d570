// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// LineSpinner - Simple line rotation
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// DotsSpinner - Classic three-dot animation, used while the chef types
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// PlatingSpinner - Steam rising off a plate while an image is generated
var PlatingSpinner = SpinnerConfig{
	Frames: []string{"( )", "(~)", "(≈)", "(~)"},
	FPS:    5,
}

// =============================================================================
// FEEDBACK TIMING
// =============================================================================

// AddedFeedback is how long a card shows ADDED after an add.
const AddedFeedback = 2 * time.Second

// =============================================================================
// BOX DRAWING
// =============================================================================

// HalfBlock draws two image rows per terminal cell: the foreground color is
// the upper pixel and the background the lower one.
const HalfBlock = "▀"

// Trash marks the decrement that removes a cart line.
const Trash = "🗑"
