// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

const sampleMenu = `
[[items]]
id = "a"
name = "Alpha Bowl"
price = 10.00
description = "First dish"
image = "https://example.com/a.jpg"
tags = ["vegan"]

[[items]]
id = "b"
name = "Beta Curry"
price = 5.5
description = "Second dish"
pairing_note = "Try **lassi**"
image = "data:image/png;base64,AAAA"
spicy = true
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleMenu))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	a, ok := c.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, util.Cents(1000), a.Price)
	assert.True(t, a.NeedsImage())

	b, ok := c.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, util.Cents(550), b.Price)
	assert.True(t, b.Spicy)
	assert.False(t, b.NeedsImage(), "data: URL images are already generated")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no items", ``},
		{"missing name", `[[items]]
id = "x"
price = 1.0
description = "d"
image = "i"`},
		{"negative price", `[[items]]
id = "x"
name = "X"
price = -1.0
description = "d"
image = "i"`},
		{"duplicate ids", `[[items]]
id = "x"
name = "X"
description = "d"
image = "i"
[[items]]
id = "x"
name = "Y"
description = "d"
image = "i"`},
		{"bad toml", `[[items]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleMenu), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), def.Len())
}

func TestSubset_PreservesCatalogOrder(t *testing.T) {
	c := Default()
	items := c.Items()

	got := c.Subset([]string{items[4].ID, "unknown", items[1].ID, items[4].ID})
	require.Len(t, got, 2)
	assert.Equal(t, items[1].ID, got[0].ID)
	assert.Equal(t, items[4].ID, got[1].ID)
}

func TestItems_ReturnsCopy(t *testing.T) {
	c := Default()
	items := c.Items()
	items[0].Name = "mutated"
	items[0].Tags[0] = "mutated"

	first, _ := c.Lookup(items[0].ID)
	assert.NotEqual(t, "mutated", first.Name)
	assert.NotEqual(t, "mutated", c.Items()[0].Tags[0])
}

func TestSearchDocs(t *testing.T) {
	c, err := New([]Item{{ID: "x", Name: "X", Description: "d"}})
	require.NoError(t, err)

	docs := c.SearchDocs()
	require.Len(t, docs, 1)
	assert.NotNil(t, docs[0].Tags, "tags must serialize as [] not null")
}
