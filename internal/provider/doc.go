// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider talks to the AI backends that enrich the menu.
//
// Every backend implements the same four operations: generate a dish image,
// answer a chef question, estimate nutrition and pick dishes matching a
// free-text query. Backends return plain errors; deciding what a failure
// looks like to the diner is the caller's job.
//
// # Backends
//
//   - Gemini: Google Generative Language REST API (text + image models)
//   - Ollama: local /api/chat; no image generation
//   - Offline: every call fails with ErrNotConfigured
//
// # Errors
//
// All backends return *Error values. Use errors.Is with the sentinels
// (ErrNotConfigured, ErrTimeout, ErrRateLimited, ...) to classify them.
//
// # Usage
//
//	p := provider.NewGemini(provider.GeminiConfig{APIKey: key}, logger)
//	img, err := p.GenerateImage(ctx, item)
//	if err != nil {
//	    // keep the placeholder
//	}
package provider
