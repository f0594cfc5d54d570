// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enrich

import (
	"time"

	"github.com/nexindemo/Nex-reelmenu/internal/provider"
)

// Kind is the type of enrichment.
type Kind int

const (
	KindImage Kind = iota
	KindNutrition
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindNutrition:
		return "nutrition"
	default:
		return "unknown"
	}
}

// Key identifies one cache entry.
type Key struct {
	ItemID string
	Kind   Kind
}

// ImageKey is the image entry key for an item.
func ImageKey(itemID string) Key { return Key{ItemID: itemID, Kind: KindImage} }

// NutritionKey is the nutrition entry key for an item.
func NutritionKey(itemID string) Key { return Key{ItemID: itemID, Kind: KindNutrition} }

func (k Key) String() string {
	return k.Kind.String() + ":" + k.ItemID
}

// State is the lifecycle state of an entry.
type State int

const (
	StateAbsent State = iota
	StatePending
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is the cached enrichment for one key. Token identifies the request
// that created the pending state; only that request may settle it.
type Entry struct {
	State     State
	Token     string
	ImageRef  string              // set when an image entry is ready
	Nutrition *provider.Nutrition // set when a nutrition entry is ready
	Reason    string              // set when failed
	UpdatedAt time.Time
}

// Settled reports whether the entry reached ready or failed.
func (e Entry) Settled() bool {
	return e.State == StateReady || e.State == StateFailed
}
