// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cart implements the order ledger.
//
// The ledger keeps one line per dish in first-added order. Quantities are
// always strictly positive: a line disappears the moment its quantity would
// reach zero. All operations are total; none of them can fail.
//
// # Key Types
//
//   - Ledger: the mutable cart
//   - Line: one dish and its quantity
//   - Receipt: immutable snapshot produced by Checkout
//
// # Usage
//
//	ledger := cart.NewLedger(cat.Lookup)
//	ledger.Add(item)
//	ledger.Adjust(item.ID, -1)
//	fmt.Println(ledger.Count(), ledger.Total())
package cart
