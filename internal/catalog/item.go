// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"strings"

	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// generatedPrefix marks an image reference that already carries generated
// pixel data rather than pointing at a placeholder.
const generatedPrefix = "data:"

// Item is one dish on the menu.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       util.Cents `json:"price_cents"`
	Description string     `json:"description"`
	PairingNote string     `json:"pairing_note,omitempty"`
	Image       string     `json:"image"`
	Tags        []string   `json:"tags,omitempty"`
	Spicy       bool       `json:"spicy,omitempty"`
}

// NeedsImage reports whether the item's base image is a placeholder that
// should be replaced by a generated one.
func (i Item) NeedsImage() bool {
	return !IsGenerated(i.Image)
}

// IsGenerated reports whether ref is an inline generated image.
func IsGenerated(ref string) bool {
	return strings.HasPrefix(ref, generatedPrefix)
}

// SearchDoc is the reduced view of an item sent to semantic search.
type SearchDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// SearchDoc returns the fields semantic search is allowed to see.
func (i Item) SearchDoc() SearchDoc {
	tags := i.Tags
	if tags == nil {
		tags = []string{}
	}
	return SearchDoc{ID: i.ID, Name: i.Name, Description: i.Description, Tags: tags}
}

func (i Item) String() string {
	return fmt.Sprintf("%s (%s)", i.Name, i.Price)
}
