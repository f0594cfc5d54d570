// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog holds the immutable menu the rest of reelmenu browses.
//
// A Catalog is built once at startup, either from a TOML file or from the
// built-in demo menu, and is never mutated afterwards. Items are returned by
// value so callers cannot alter the shared copy.
//
// # Key Types
//
//   - Item: a single dish (id, name, price, description, pairing note, image,
//     tags, spicy flag)
//   - Catalog: ordered, id-indexed collection of items
//
// # Usage
//
//	cat, err := catalog.Load("~/.reelmenu/menu.toml")
//	if err != nil {
//	    return err
//	}
//	item, ok := cat.Lookup("truffle-risotto")
package catalog
