// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package providertest provides a scriptable in-memory provider for tests.
package providertest

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
)

// Operation names for Calls.
const (
	OpImage     = "image"
	OpChat      = "chat"
	OpNutrition = "nutrition"
	OpSearch    = "search"
)

// Fake implements provider.Provider. Nil hooks use deterministic defaults:
// images become data URLs derived from the item id, chat echoes the
// message, nutrition returns fixed facts and search matches everything.
type Fake struct {
	ImageFunc     func(ctx context.Context, item catalog.Item) (string, error)
	ChatFunc      func(ctx context.Context, req provider.ChatRequest) (string, error)
	NutritionFunc func(ctx context.Context, item catalog.Item) (*provider.Nutrition, error)
	SearchFunc    func(ctx context.Context, query string, docs []catalog.SearchDoc) ([]string, error)

	mu       sync.Mutex
	calls    map[string]int
	chats    []provider.ChatRequest
	searches []string
}

// New returns a Fake with default behavior.
func New() *Fake {
	return &Fake{calls: make(map[string]int)}
}

func (f *Fake) record(op string) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
	f.mu.Unlock()
}

// Calls returns how many times op was invoked.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// ChatRequests returns every chat request received, in call order.
func (f *Fake) ChatRequests() []provider.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]provider.ChatRequest, len(f.chats))
	copy(out, f.chats)
	return out
}

// Queries returns every search query received.
func (f *Fake) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

// ImageRef is the default generated image for id.
func ImageRef(id string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(id))
}

// Name implements provider.Provider.
func (f *Fake) Name() string { return "fake" }

// GenerateImage implements provider.Provider.
func (f *Fake) GenerateImage(ctx context.Context, item catalog.Item) (string, error) {
	f.record(OpImage)
	if f.ImageFunc != nil {
		return f.ImageFunc(ctx, item)
	}
	return ImageRef(item.ID), nil
}

// Chat implements provider.Provider.
func (f *Fake) Chat(ctx context.Context, req provider.ChatRequest) (string, error) {
	f.record(OpChat)
	req.History = append([]provider.Turn(nil), req.History...)
	f.mu.Lock()
	f.chats = append(f.chats, req)
	f.mu.Unlock()
	if f.ChatFunc != nil {
		return f.ChatFunc(ctx, req)
	}
	return fmt.Sprintf("Chef says: %s", req.Message), nil
}

// Nutrition implements provider.Provider.
func (f *Fake) Nutrition(ctx context.Context, item catalog.Item) (*provider.Nutrition, error) {
	f.record(OpNutrition)
	if f.NutritionFunc != nil {
		return f.NutritionFunc(ctx, item)
	}
	return &provider.Nutrition{Calories: 640, Protein: "22g", Carbs: "71g", Fat: "28g", Highlight: "Rich in umami."}, nil
}

// Search implements provider.Provider.
func (f *Fake) Search(ctx context.Context, query string, docs []catalog.SearchDoc) ([]string, error) {
	f.record(OpSearch)
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, query, docs)
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

var _ provider.Provider = (*Fake)(nil)

// =============================================================================
// GATE
// =============================================================================

// Gate holds calls until released, so tests can observe in-flight states.
type Gate struct {
	release chan struct{}
	once    sync.Once
	entered chan struct{}
}

// NewGate returns a closed-door gate.
func NewGate() *Gate {
	return &Gate{release: make(chan struct{}), entered: make(chan struct{}, 64)}
}

// Wait blocks until Release or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entered receives once per call that reached Wait.
func (g *Gate) Entered() <-chan struct{} {
	return g.entered
}

// Release lets every current and future waiter through.
func (g *Gate) Release() {
	g.once.Do(func() { close(g.release) })
}
