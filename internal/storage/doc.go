// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage keeps the kitchen ticket log.
//
// Every placed order is written to a local SQLite database so the kitchen
// side (or the `orders` command) can read it back. The log is write-once:
// tickets are never updated, and the browsing session never reads from it.
//
// # Key Types
//
//   - OrderStore: SQLite-backed ticket log
//   - Summary: order count and revenue totals
//
// # Usage
//
//	store, err := storage.OpenOrderStore(path)
//	defer store.Close()
//	err = store.Save(ctx, receipt)
//	recent, err := store.List(ctx, 20)
//
// # Storage Location
//
// Tickets are stored in ~/.reelmenu/orders.db unless configured otherwise.
package storage
