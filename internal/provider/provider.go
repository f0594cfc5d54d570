// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
)

// Backend names accepted in configuration.
const (
	BackendGemini  = "gemini"
	BackendOllama  = "ollama"
	BackendOffline = "offline"
)

// Role tags a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a chef conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ChatRequest carries a chef question with its conversation so far.
type ChatRequest struct {
	Dish    string // name of the dish being discussed
	History []Turn // every earlier turn, oldest first
	Message string // the new question
}

// Nutrition is an estimate for one serving.
type Nutrition struct {
	Calories  int    `json:"calories" validate:"gte=0"`
	Protein   string `json:"protein" validate:"required"`
	Carbs     string `json:"carbs" validate:"required"`
	Fat       string `json:"fat" validate:"required"`
	Highlight string `json:"highlight"`
}

var validate = validator.New()

// Validate checks that a decoded estimate is usable.
func (n *Nutrition) Validate() error {
	if err := validate.Struct(n); err != nil {
		return malformed("invalid nutrition facts", err)
	}
	return nil
}

// Provider is the enrichment capability surface. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Name identifies the backend in logs and status output.
	Name() string

	// GenerateImage returns an image reference for item, normally a
	// data: URL.
	GenerateImage(ctx context.Context, item catalog.Item) (string, error)

	// Chat answers a diner's question about a dish.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// Nutrition estimates the nutrition facts of item.
	Nutrition(ctx context.Context, item catalog.Item) (*Nutrition, error)

	// Search returns the ids of docs matching query. An empty result is
	// not an error.
	Search(ctx context.Context, query string, docs []catalog.SearchDoc) ([]string, error)
}

// Pinger is implemented by backends that can check reachability without
// spending a generation request.
type Pinger interface {
	Ping(ctx context.Context) error
}

// cleanIDs trims ids, drops blanks and duplicates, and always returns a
// non-nil slice.
func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
