// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the browser's keyboard bindings. Overlays with a text
// input only honor Submit, Cancel and Suggest; everything else is typed.
type KeyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Add         key.Binding
	Like        key.Binding
	Chef        key.Binding
	Nutrition   key.Binding
	Search      key.Binding
	ClearFilter key.Binding
	Cart        key.Binding
	Increase    key.Binding
	Decrease    key.Binding
	Submit      key.Binding
	Suggest     key.Binding
	Cancel      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("down", "j", "pgdown", " "),
			key.WithHelp("j/down", "next dish"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("k/up", "previous dish"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first dish"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last dish"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to order"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Chef: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "ask the chef"),
		),
		Nutrition: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "nutrition"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "ctrl+f"),
			key.WithHelp("/", "smart search"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "full menu"),
		),
		Cart: key.NewBinding(
			key.WithKeys("tab", "o"),
			key.WithHelp("tab", "your order"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "one more"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "one less"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "suggestion"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings for the feed.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Add, k.Chef, k.Nutrition, k.Search, k.Cart, k.Help, k.Quit}
}

// FullHelp groups every binding for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Browsing
		{k.Next, k.Prev, k.Top, k.Bottom},
		// Dish
		{k.Add, k.Like, k.Chef, k.Nutrition},
		// Menu and order
		{k.Search, k.ClearFilter, k.Cart, k.Increase, k.Decrease},
		{k.Submit, k.Cancel, k.Help, k.Quit},
	}
}
