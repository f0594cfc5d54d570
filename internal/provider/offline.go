// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
)

// Offline is the backend used when no provider is configured. Every call
// fails with ErrNotConfigured so callers fall back to their degraded state.
type Offline struct{}

// Name implements Provider.
func (Offline) Name() string { return BackendOffline }

// GenerateImage implements Provider.
func (Offline) GenerateImage(context.Context, catalog.Item) (string, error) {
	return "", ErrNotConfigured
}

// Chat implements Provider.
func (Offline) Chat(context.Context, ChatRequest) (string, error) {
	return "", ErrNotConfigured
}

// Nutrition implements Provider.
func (Offline) Nutrition(context.Context, catalog.Item) (*Nutrition, error) {
	return nil, ErrNotConfigured
}

// Search implements Provider.
func (Offline) Search(context.Context, string, []catalog.SearchDoc) ([]string, error) {
	return nil, ErrNotConfigured
}

// Ping implements Pinger.
func (Offline) Ping(context.Context) error {
	return ErrNotConfigured
}

var (
	_ Provider = (*Gemini)(nil)
	_ Provider = (*Ollama)(nil)
	_ Provider = Offline{}
	_ Pinger   = (*Gemini)(nil)
	_ Pinger   = (*Ollama)(nil)
)
