// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
)

// Gemini defaults.
const (
	DefaultGeminiURL        = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiTextModel  = "gemini-2.5-flash"
	DefaultGeminiImageModel = "gemini-2.5-flash-image"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// GeminiConfig configures the Gemini backend. Zero values take defaults.
type GeminiConfig struct {
	APIKey            string
	BaseURL           string
	TextModel         string
	ImageModel        string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
	RetryBaseDelay    time.Duration
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type geminiBlob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *geminiBlob `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

type geminiGenerationConfig struct {
	ResponseMimeType   string             `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema            `json:"responseSchema,omitempty"`
	ResponseModalities []string           `json:"responseModalities,omitempty"`
	ImageConfig        *geminiImageConfig `json:"imageConfig,omitempty"`
	Temperature        *float64           `json:"temperature,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func decodeGeminiError(body []byte) string {
	var eb geminiErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
		return eb.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// parts returns the parts of the first candidate.
func (r *geminiResponse) parts() ([]geminiPart, error) {
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
		return nil, malformed("prompt blocked: "+r.PromptFeedback.BlockReason, nil)
	}
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return nil, malformed("empty gemini response", nil)
	}
	return r.Candidates[0].Content.Parts, nil
}

// text concatenates the text parts of the first candidate.
func (r *geminiResponse) text() (string, error) {
	parts, err := r.parts()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", malformed("gemini response has no text", nil)
	}
	return out, nil
}

// =============================================================================
// CLIENT
// =============================================================================

// Gemini implements Provider over the Generative Language REST API.
//
// The client is safe for concurrent use.
type Gemini struct {
	cfg GeminiConfig
	tr  *transport
	log *zap.Logger
}

// NewGemini creates a Gemini backend.
func NewGemini(cfg GeminiConfig, log *zap.Logger) *Gemini {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultGeminiTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultGeminiImageModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("gemini")
	return &Gemini{
		cfg: cfg,
		tr:  newTransport(cfg.Timeout, cfg.MaxRetries, cfg.RequestsPerSecond, cfg.RetryBaseDelay, log),
		log: log,
	}
}

// Name implements Provider.
func (g *Gemini) Name() string { return BackendGemini }

// IsConfigured reports whether an API key is set.
func (g *Gemini) IsConfigured() bool {
	return g.cfg.APIKey != ""
}

func (g *Gemini) generate(ctx context.Context, model string, req geminiRequest) (*geminiResponse, error) {
	if !g.IsConfigured() {
		return nil, ErrNotConfigured
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", g.cfg.BaseURL, model)
	header := http.Header{}
	header.Set("x-goog-api-key", g.cfg.APIKey)

	var resp geminiResponse
	if err := g.tr.postJSON(ctx, url, header, req, &resp, decodeGeminiError); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateImage implements Provider. The result is a data: URL.
func (g *Gemini) GenerateImage(ctx context.Context, item catalog.Item) (string, error) {
	resp, err := g.generate(ctx, g.cfg.ImageModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: imagePrompt(item)}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &geminiImageConfig{AspectRatio: ImageAspectRatio},
		},
	})
	if err != nil {
		return "", err
	}
	parts, err := resp.parts()
	if err != nil {
		return "", err
	}
	for _, p := range parts {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		mime := p.InlineData.MimeType
		if mime == "" {
			mime = "image/png"
		}
		g.log.Debug("image generated", zap.String("item", item.ID), zap.Int("bytes", len(p.InlineData.Data)))
		return "data:" + mime + ";base64," + p.InlineData.Data, nil
	}
	return "", malformed("gemini response has no image", nil)
}

// Chat implements Provider.
func (g *Gemini) Chat(ctx context.Context, req ChatRequest) (string, error) {
	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, t := range req.History {
		role := "user"
		if t.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: t.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: req.Message}}})

	resp, err := g.generate(ctx, g.cfg.TextModel, geminiRequest{
		Contents:          contents,
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: chefInstruction(req.Dish)}}},
	})
	if err != nil {
		return "", err
	}
	return resp.text()
}

// Nutrition implements Provider.
func (g *Gemini) Nutrition(ctx context.Context, item catalog.Item) (*Nutrition, error) {
	resp, err := g.generate(ctx, g.cfg.TextModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: nutritionPrompt(item)}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   nutritionSchema,
		},
	})
	if err != nil {
		return nil, err
	}
	text, err := resp.text()
	if err != nil {
		return nil, err
	}
	return decodeNutrition(text)
}

// Search implements Provider.
func (g *Gemini) Search(ctx context.Context, query string, docs []catalog.SearchDoc) ([]string, error) {
	prompt, err := searchPrompt(query, docs)
	if err != nil {
		return nil, err
	}
	resp, err := g.generate(ctx, g.cfg.TextModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   searchSchema,
		},
	})
	if err != nil {
		return nil, err
	}
	text, err := resp.text()
	if err != nil {
		return nil, err
	}
	return decodeSearch(text)
}

// Ping implements Pinger by fetching the text model's metadata.
func (g *Gemini) Ping(ctx context.Context) error {
	if !g.IsConfigured() {
		return ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+"/models/"+g.cfg.TextModel, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.tr.client.Do(req)
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: "gemini unreachable", Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := readResponse(resp)
		return statusError(resp.StatusCode, decodeGeminiError(body))
	}
	return nil
}
