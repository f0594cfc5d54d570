// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual pieces of the reelmenu browser.
//
// Components render from plain values handed in by the root model; they do
// not call the session controller themselves.
//
//   - Card: one dish with image area, badges, pairing note and actions
//   - CartDrawer: "Your Order" with quantity controls and PLACE ORDER
//   - ChefChat: the Chef's Table overlay (viewport, textinput, glamour)
//   - NutritionPanel: nutrition facts with pending and failed states
//   - SearchBox: the Smart Search overlay
//   - OrderSuccess: checkout confirmation
//   - Header and StatusBar: cart badge, filter indicator, key hints
//   - Spinner: shared animation for every pending state
//   - RenderPicture: generated images as half-block terminal art
package components
