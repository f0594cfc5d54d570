// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/chat"
	"github.com/nexindemo/Nex-reelmenu/internal/config"
	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/logging"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
	"github.com/nexindemo/Nex-reelmenu/internal/search"
	"github.com/nexindemo/Nex-reelmenu/internal/session"
	"github.com/nexindemo/Nex-reelmenu/internal/storage"
)

// Runtime is the set of components one process shares: configuration, the
// logger, the menu, the provider and the services built on it.
type Runtime struct {
	Config      *config.Config
	Log         *logging.Logger
	Catalog     *catalog.Catalog
	Provider    provider.Provider
	Coordinator *enrich.Coordinator
	Chats       *chat.Sessions
	Search      *search.Filter
	Orders      *storage.OrderStore // nil when the ticket log is disabled
}

// RuntimeOptions adjusts BuildRuntime.
type RuntimeOptions struct {
	// Console receives log output in addition to the log file.
	Console io.Writer
	// Provider replaces the configured backend.
	Provider provider.Provider
	// Now is the clock for every component.
	Now func() time.Time
}

// NewRuntime loads configuration and builds the runtime the command line
// asked for. --verbose mirrors logs to stderr.
func NewRuntime(args Args) (*Runtime, error) {
	var opts RuntimeOptions
	if args.Verbose {
		opts.Console = os.Stderr
	}
	return BuildRuntime(args, opts)
}

// LoadConfig loads .env, the configuration file and the global flag
// overrides, and validates the result.
func LoadConfig(args Args) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFrom(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if args.Provider != "" {
		cfg.Provider.Backend = args.Provider
	}
	if args.Offline {
		cfg.Provider.Backend = config.BackendOffline
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// BuildRuntime wires every component from the loaded configuration.
func BuildRuntime(args Args, opts RuntimeOptions) (*Runtime, error) {
	cfg, err := LoadConfig(args)
	if err != nil {
		return nil, err
	}
	config.SetGlobal(cfg)
	return buildFromConfig(cfg, opts)
}

func buildFromConfig(cfg *config.Config, opts RuntimeOptions) (*Runtime, error) {
	log, err := logging.New(logging.Options{
		Path:       cfg.LogPath(),
		Level:      cfg.Logging.Level,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
		Console:    opts.Console,
	})
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Close()
		return nil, err
	}

	p := opts.Provider
	if p == nil {
		p = newProvider(cfg.Provider, log.Logger)
	}
	log.Info("runtime ready",
		zap.String("provider", p.Name()),
		zap.Int("dishes", cat.Len()),
		zap.String("catalog", catalogSource(cfg.Catalog.Path)))

	rt := &Runtime{
		Config:   cfg,
		Log:      log,
		Catalog:  cat,
		Provider: p,
		Coordinator: enrich.New(enrich.NewMemoryStore(), p, enrich.Config{
			Timeout: cfg.Enrichment.Timeout(),
			Now:     opts.Now,
		}, log.Logger),
		Chats: chat.NewSessions(p, chat.Config{
			Timeout: cfg.Enrichment.ChatTimeout(),
			Now:     opts.Now,
		}, log.Logger),
		Search: search.New(cat, p, search.Config{
			MemoTTL:             cfg.Search.MemoTTL(),
			Timeout:             cfg.Search.Timeout(),
			DistinctEmptyResult: cfg.Search.DistinctEmptyResult,
		}, log.Logger),
	}

	if cfg.Orders.Enabled {
		store, err := storage.OpenOrderStore(cfg.OrdersPath())
		if err != nil {
			// The menu still works without the ticket log.
			log.Warn("order log unavailable", zap.Error(err))
		} else {
			rt.Orders = store
		}
	}
	return rt, nil
}

func catalogSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

// newProvider selects the backend named by cfg.
func newProvider(cfg config.ProviderConfig, log *zap.Logger) provider.Provider {
	switch cfg.EffectiveBackend() {
	case config.BackendGemini:
		return provider.NewGemini(provider.GeminiConfig{
			APIKey:            strings.TrimSpace(cfg.GeminiKey),
			BaseURL:           cfg.GeminiURL,
			TextModel:         cfg.GeminiTextModel,
			ImageModel:        cfg.GeminiImageModel,
			Timeout:           cfg.Timeout(),
			MaxRetries:        cfg.MaxRetries,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}, log)
	case config.BackendOllama:
		return provider.NewOllama(provider.OllamaConfig{
			BaseURL:    cfg.OllamaURL,
			Model:      cfg.OllamaModel,
			Timeout:    cfg.Timeout(),
			MaxRetries: cfg.MaxRetries,
		}, log)
	default:
		log.Info("no provider configured, running offline")
		return provider.Offline{}
	}
}

// NewController starts a browsing session over the runtime's services.
func (rt *Runtime) NewController() *session.Controller {
	d := session.Deps{
		Catalog:     rt.Catalog,
		Coordinator: rt.Coordinator,
		Chats:       rt.Chats,
		Search:      rt.Search,
		Logger:      rt.Log.Logger,
	}
	if rt.Orders != nil {
		d.Recorder = rt.Orders
	}
	return session.New(d)
}

// Item looks up a dish by id.
func (rt *Runtime) Item(id string) (catalog.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Item{}, NewValidationErrorWithExample("item-id", "", "a dish id is required", "reelmenu menu")
	}
	item, ok := rt.Catalog.Lookup(id)
	if !ok {
		return catalog.Item{}, NewNotFoundError("dish", id)
	}
	return item, nil
}

// Close releases the order log and flushes the logger.
func (rt *Runtime) Close() error {
	var firstErr error
	if rt.Orders != nil {
		firstErr = rt.Orders.Close()
	}
	if err := rt.Log.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
