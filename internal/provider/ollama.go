// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
)

// Ollama defaults.
const (
	// Explicit IPv4 address avoids IPv6 localhost resolution issues on Windows.
	DefaultOllamaURL   = "http://127.0.0.1:11434"
	DefaultOllamaModel = "llama3.2:3b"
)

// OllamaConfig configures the local Ollama backend.
type OllamaConfig struct {
	BaseURL        string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

type ollamaMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaErrorBody struct {
	Error string `json:"error"`
}

func decodeOllamaError(body []byte) string {
	var eb ollamaErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return strings.TrimSpace(string(body))
}

// Ollama implements Provider against a local Ollama server. It cannot
// generate images.
//
// The client is safe for concurrent use.
type Ollama struct {
	cfg OllamaConfig
	tr  *transport
	log *zap.Logger
}

// NewOllama creates an Ollama backend.
func NewOllama(cfg OllamaConfig, log *zap.Logger) *Ollama {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOllamaURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("ollama")
	// Local inference is not rate limited; the limiter only smooths bursts.
	return &Ollama{
		cfg: cfg,
		tr:  newTransport(cfg.Timeout, cfg.MaxRetries, 50, cfg.RetryBaseDelay, log),
		log: log,
	}
}

// Name implements Provider.
func (o *Ollama) Name() string { return BackendOllama }

func (o *Ollama) chat(ctx context.Context, messages []ollamaMessage, format string) (string, error) {
	req := ollamaChatRequest{
		Model:    o.cfg.Model,
		Messages: messages,
		Stream:   false,
		Format:   format,
	}
	if format == "json" {
		req.Options = &ollamaOptions{Temperature: 0.2}
	}

	var resp ollamaChatResponse
	err := o.tr.postJSON(ctx, o.cfg.BaseURL+"/api/chat", nil, req, &resp, decodeOllamaError)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) && pe.Status == http.StatusNotFound {
			return "", &Error{Kind: KindUnavailable, Status: pe.Status, Message: "model not found: " + o.cfg.Model}
		}
		return "", err
	}
	out := strings.TrimSpace(resp.Message.Content)
	if out == "" {
		return "", malformed("ollama response has no content", nil)
	}
	return out, nil
}

// GenerateImage implements Provider. Ollama has no image models.
func (o *Ollama) GenerateImage(ctx context.Context, item catalog.Item) (string, error) {
	return "", ErrUnsupported
}

// Chat implements Provider.
func (o *Ollama) Chat(ctx context.Context, req ChatRequest) (string, error) {
	msgs := make([]ollamaMessage, 0, len(req.History)+2)
	msgs = append(msgs, ollamaMessage{Role: "system", Content: chefInstruction(req.Dish)})
	for _, t := range req.History {
		msgs = append(msgs, ollamaMessage{Role: string(t.Role), Content: t.Text})
	}
	msgs = append(msgs, ollamaMessage{Role: "user", Content: req.Message})
	return o.chat(ctx, msgs, "")
}

// Nutrition implements Provider.
func (o *Ollama) Nutrition(ctx context.Context, item catalog.Item) (*Nutrition, error) {
	text, err := o.chat(ctx, []ollamaMessage{
		{Role: "user", Content: nutritionPrompt(item) + " " + nutritionJSONHint},
	}, "json")
	if err != nil {
		return nil, err
	}
	return decodeNutrition(text)
}

// Search implements Provider.
func (o *Ollama) Search(ctx context.Context, query string, docs []catalog.SearchDoc) ([]string, error) {
	prompt, err := searchPrompt(query, docs)
	if err != nil {
		return nil, err
	}
	text, err := o.chat(ctx, []ollamaMessage{
		{Role: "user", Content: prompt + " " + searchJSONHint},
	}, "json")
	if err != nil {
		return nil, err
	}
	return decodeSearch(text)
}

// Ping implements Pinger. Ollama answers GET / with 200 when running.
func (o *Ollama) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.BaseURL, nil)
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: "create request", Cause: err}
	}
	resp, err := o.tr.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &Error{Kind: KindUnavailable, Message: "Ollama is not running", Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode, "unexpected status from Ollama")
	}
	return nil
}
