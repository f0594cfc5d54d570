// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when two items share an id.
var ErrDuplicateID = errors.New("duplicate item id")

// ErrEmpty is returned when a catalog has no items.
var ErrEmpty = errors.New("catalog has no items")

// Catalog is an ordered, read-only list of menu items.
type Catalog struct {
	items []Item
	index map[string]int
}

// New builds a catalog from items, preserving their order.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, it := range items {
		if _, dup := c.index[it.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, it.ID)
		}
		it.Tags = append([]string(nil), it.Tags...)
		c.items[i] = it
		c.index[it.ID] = i
	}
	return c, nil
}

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		it.Tags = append([]string(nil), it.Tags...)
		out[i] = it
	}
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Subset returns the items whose id is in ids, in catalog order. Unknown ids
// are ignored.
func (c *Catalog) Subset(ids []string) []Item {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]Item, 0, len(want))
	for _, it := range c.items {
		if _, ok := want[it.ID]; ok {
			out = append(out, it)
		}
	}
	return out
}

// SearchDocs returns the search view of every item in catalog order.
func (c *Catalog) SearchDocs() []SearchDoc {
	out := make([]SearchDoc, len(c.items))
	for i, it := range c.items {
		out[i] = it.SearchDoc()
	}
	return out
}
