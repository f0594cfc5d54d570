// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session ties the menu browser together.
//
// A Controller owns the displayed collection, the focused card, the cart,
// the chat threads and the active search filter, and routes every user
// action to the component that handles it. Enrichment is requested through
// the Coordinator when a card gains focus or an overlay opens, and results
// arrive later as Bubble Tea messages.
//
// # Key Types
//
//   - Controller: the per-process browsing session
//   - SearchTicket: a started search that may be superseded
//   - CartView: snapshot of the cart for rendering
//
// # Usage
//
//	ctrl := session.New(session.Deps{Catalog: cat, Coordinator: coord, Chats: chats, Search: filter})
//	ctrl.Scroll(offset, extent)   // focus follows scrolling
//	ctrl.AddToCart(id)
//	if t, ok := ctrl.BeginSearch("something spicy"); ok {
//	    cmd := ctrl.SearchCmd(ctx, t)   // result arrives as SearchResultMsg
//	}
//
// # Staleness
//
// The focused card and the nutrition overlay each hold an enrich
// Subscription. Moving focus or closing the overlay detaches it, so a late
// result for an item no longer on screen is never delivered to a view.
// Accept filters messages that were already queued when that happened.
package session
