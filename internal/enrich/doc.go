// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package enrich coordinates AI enrichment of menu items.
//
// Two lifetimes are kept apart on purpose:
//
//   - The Store holds one Entry per (item, kind) for the whole session.
//     Entries move absent → pending → ready|failed. A ready entry never
//     changes again.
//   - A Subscription represents one mounted view of an item. Results are
//     delivered only to subscriptions that are still attached when the
//     result lands; a detached view never sees it, but the Store keeps it.
//
// At most one request per key is ever in flight. A second request for a
// pending key attaches to the first instead of calling the provider again.
// Every pending entry is bounded by a timeout after which it becomes failed.
// Provider errors never leave this package: callers only ever see entry
// states.
//
// # Key Types
//
//   - Key, Kind, State, Entry: the cache model
//   - Store, MemoryStore: injectable entry storage
//   - Coordinator: issues, deduplicates and settles requests
//   - Subscription: a view instance's claim on an item's updates
//
// # Usage
//
//	co := enrich.New(enrich.NewMemoryStore(), p, enrich.Config{}, logger)
//	co.SetNotifier(func(u enrich.Update) { program.Send(u) })
//
//	sub := co.Attach(item.ID)
//	entry := co.EnsureImage(item)  // returns immediately
//	...
//	sub.Detach()                   // view scrolled away
package enrich
