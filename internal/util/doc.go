// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the reelmenu packages.
//
// # Key Functions
//
// Money:
//   - Cents: integer minor-unit amount with String and percentage helpers
//   - CentsFromFloat: converts a decimal catalog price to Cents
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - PadRight: display-width aware padding
//   - WrapWidth: greedy word wrap by display width
//
// File Operations:
//   - WriteFileAtomic: crash-safe file writing with fsync
//
// # Usage
//
//	price := util.CentsFromFloat(24.5)
//	fmt.Println(price)                // $24.50
//	fmt.Println(price.Percent(5))     // $1.23
//
//	title := util.TruncateWidth(item.Name, 20)
package util
