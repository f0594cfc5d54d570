// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package focus turns a continuous scroll offset into the index of the card
// currently in view.
package focus

import "math"

// IndexFor maps a scroll offset to a card index: round(offset/extent),
// clamped to [0, length-1]. An empty collection, or a non-positive or
// non-finite extent, yields 0.
func IndexFor(offset, extent float64, length int) int {
	if length <= 0 || !(extent > 0) || math.IsInf(extent, 0) || math.IsNaN(offset) {
		return 0
	}
	idx := math.Round(offset / extent)
	switch {
	case idx < 0:
		return 0
	case idx > float64(length-1):
		return length - 1
	}
	return int(idx)
}

// Tracker remembers the last emitted index so that repeated offsets inside
// the same card do not produce change notifications.
type Tracker struct {
	index  int
	length int
}

// NewTracker starts at index 0 over a collection of the given length.
func NewTracker(length int) *Tracker {
	return &Tracker{length: max(length, 0)}
}

// Index returns the current active index.
func (t *Tracker) Index() int {
	return t.index
}

// Len returns the length of the tracked collection.
func (t *Tracker) Len() int {
	return t.length
}

// Observe feeds a new scroll position. It returns the active index and
// whether it differs from the previous one.
func (t *Tracker) Observe(offset, extent float64) (int, bool) {
	if !(extent > 0) {
		return t.index, false
	}
	return t.set(IndexFor(offset, extent, t.length))
}

// Step moves the index by delta cards, clamped to the collection.
func (t *Tracker) Step(delta int) (int, bool) {
	if t.length == 0 {
		return 0, false
	}
	return t.set(min(max(t.index+delta, 0), t.length-1))
}

// Reset switches to a new collection and forces the index back to 0.
func (t *Tracker) Reset(length int) {
	t.length = max(length, 0)
	t.index = 0
}

func (t *Tracker) set(idx int) (int, bool) {
	if idx == t.index {
		return idx, false
	}
	t.index = idx
	return idx, true
}
