// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete reelmenu configuration.
type Config struct {
	Provider   ProviderConfig   `toml:"provider" json:"provider"`
	Enrichment EnrichmentConfig `toml:"enrichment" json:"enrichment"`
	Search     SearchConfig     `toml:"search" json:"search"`
	Catalog    CatalogConfig    `toml:"catalog" json:"catalog"`
	Orders     OrdersConfig     `toml:"orders" json:"orders"`
	Logging    LoggingConfig    `toml:"logging" json:"logging"`
	UI         UIConfig         `toml:"ui" json:"ui"`
}

// ProviderConfig selects and configures the enrichment backend.
type ProviderConfig struct {
	// Backend is one of "gemini", "ollama" or "offline". A gemini backend
	// without a key runs offline.
	Backend string `toml:"backend" json:"backend"`

	GeminiKey        string `toml:"gemini_key" json:"gemini_key"`
	GeminiURL        string `toml:"gemini_url" json:"gemini_url"`
	GeminiTextModel  string `toml:"gemini_text_model" json:"gemini_text_model"`
	GeminiImageModel string `toml:"gemini_image_model" json:"gemini_image_model"`

	OllamaURL   string `toml:"ollama_url" json:"ollama_url"`
	OllamaModel string `toml:"ollama_model" json:"ollama_model"`

	// TimeoutSecs bounds one HTTP exchange.
	TimeoutSecs       int     `toml:"timeout_secs" json:"timeout_secs"`
	MaxRetries        int     `toml:"max_retries" json:"max_retries"`
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
}

// EnrichmentConfig bounds how long enrichment may stay pending.
type EnrichmentConfig struct {
	TimeoutSecs     int `toml:"timeout_secs" json:"timeout_secs"`
	ChatTimeoutSecs int `toml:"chat_timeout_secs" json:"chat_timeout_secs"`
}

// SearchConfig tunes the semantic filter.
type SearchConfig struct {
	// DistinctEmptyResult shows an explicit "no matches" state instead of
	// the full menu when a search matches nothing.
	DistinctEmptyResult bool `toml:"distinct_empty_result" json:"distinct_empty_result"`
	MemoTTLSecs         int  `toml:"memo_ttl_secs" json:"memo_ttl_secs"`
	TimeoutSecs         int  `toml:"timeout_secs" json:"timeout_secs"`
}

// CatalogConfig locates the menu file. Empty uses the built-in menu.
type CatalogConfig struct {
	Path string `toml:"path" json:"path"`
}

// OrdersConfig controls the kitchen ticket log.
type OrdersConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path" json:"path"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Path       string `toml:"path" json:"path"`
	Level      string `toml:"level" json:"level"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" json:"max_age_days"`
	Compress   bool   `toml:"compress" json:"compress"`
}

// UIConfig contains terminal UI preferences.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" json:"theme"`
	// ImagePreview renders generated dish images as half-block art.
	ImagePreview bool `toml:"image_preview" json:"image_preview"`
	// WheelLines is how many lines one mouse wheel notch scrolls the feed.
	WheelLines int `toml:"wheel_lines" json:"wheel_lines"`
}

// Backend names.
const (
	BackendGemini  = "gemini"
	BackendOllama  = "ollama"
	BackendOffline = "offline"
)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a new Config with default values.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Backend:           BackendGemini,
			GeminiURL:         "https://generativelanguage.googleapis.com/v1beta",
			GeminiTextModel:   "gemini-2.5-flash",
			GeminiImageModel:  "gemini-2.5-flash-image",
			OllamaURL:         "http://127.0.0.1:11434",
			OllamaModel:       "llama3.2:3b",
			TimeoutSecs:       60,
			MaxRetries:        3,
			RequestsPerSecond: 2,
		},
		Enrichment: EnrichmentConfig{
			TimeoutSecs:     45,
			ChatTimeoutSecs: 45,
		},
		Search: SearchConfig{
			DistinctEmptyResult: false,
			MemoTTLSecs:         600,
			TimeoutSecs:         45,
		},
		Orders: OrdersConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
		UI: UIConfig{
			Theme:        "dark",
			ImagePreview: true,
			WheelLines:   3,
		},
	}
}

// Timeout returns the enrichment timeout.
func (e EnrichmentConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// ChatTimeout returns the chef reply timeout.
func (e EnrichmentConfig) ChatTimeout() time.Duration {
	return time.Duration(e.ChatTimeoutSecs) * time.Second
}

// MemoTTL returns how long search answers are remembered.
func (s SearchConfig) MemoTTL() time.Duration {
	return time.Duration(s.MemoTTLSecs) * time.Second
}

// Timeout returns the search provider timeout.
func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// Timeout returns the HTTP timeout.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSecs) * time.Second
}

// EffectiveBackend resolves the backend actually used: gemini without a
// key is offline.
func (p ProviderConfig) EffectiveBackend() string {
	b := strings.ToLower(p.Backend)
	if b == BackendGemini && strings.TrimSpace(p.GeminiKey) == "" {
		return BackendOffline
	}
	return b
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the reelmenu configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".reelmenu"), nil
}

// Path returns the config file path: $REELMENU_CONFIG or
// ~/.reelmenu/config.toml.
func Path() (string, error) {
	if p := os.Getenv("REELMENU_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the configured log file or ~/.reelmenu/reelmenu.log.
func (c *Config) LogPath() string {
	if c.Logging.Path != "" {
		return expandHome(c.Logging.Path)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "reelmenu.log"
	}
	return filepath.Join(dir, "reelmenu.log")
}

// OrdersPath returns the configured ticket log or ~/.reelmenu/orders.db.
func (c *Config) OrdersPath() string {
	if c.Orders.Path != "" {
		return expandHome(c.Orders.Path)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "orders.db"
	}
	return filepath.Join(dir, "orders.db")
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from the default location, applies environment
// overrides and validates the result. A missing file yields defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ReadFile decodes path over the defaults without environment overrides,
// so the result can be edited and saved back. A missing file yields
// defaults.
func ReadFile(path string) (*Config, error) {
	cfg := Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, statErr)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default location.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg as TOML to path with 0600 permissions. The file holds
// the API key, so it is never world-readable.
func SaveTo(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# reelmenu configuration file\n")
	buf.WriteString("# Generated by reelmenu - edit with care\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch strings.ToLower(c.Provider.Backend) {
	case BackendGemini, BackendOllama, BackendOffline:
	default:
		add("provider.backend", "invalid backend '%s', must be one of: gemini, ollama, offline", c.Provider.Backend)
	}
	for field, raw := range map[string]string{
		"provider.gemini_url": c.Provider.GeminiURL,
		"provider.ollama_url": c.Provider.OllamaURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			add(field, "invalid URL '%s', must be http(s)://host", raw)
		}
	}
	if c.Provider.TimeoutSecs < 1 || c.Provider.TimeoutSecs > 600 {
		add("provider.timeout_secs", "must be between 1 and 600, got %d", c.Provider.TimeoutSecs)
	}
	if c.Provider.MaxRetries < 0 || c.Provider.MaxRetries > 10 {
		add("provider.max_retries", "must be between 0 and 10, got %d", c.Provider.MaxRetries)
	}
	if c.Provider.RequestsPerSecond <= 0 {
		add("provider.requests_per_second", "must be positive, got %g", c.Provider.RequestsPerSecond)
	}

	if c.Enrichment.TimeoutSecs < 1 || c.Enrichment.TimeoutSecs > 600 {
		add("enrichment.timeout_secs", "must be between 1 and 600, got %d", c.Enrichment.TimeoutSecs)
	}
	if c.Enrichment.ChatTimeoutSecs < 1 || c.Enrichment.ChatTimeoutSecs > 600 {
		add("enrichment.chat_timeout_secs", "must be between 1 and 600, got %d", c.Enrichment.ChatTimeoutSecs)
	}

	if c.Search.MemoTTLSecs < 0 {
		add("search.memo_ttl_secs", "must not be negative, got %d", c.Search.MemoTTLSecs)
	}
	if c.Search.TimeoutSecs < 1 || c.Search.TimeoutSecs > 600 {
		add("search.timeout_secs", "must be between 1 and 600, got %d", c.Search.TimeoutSecs)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		add("logging.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 1 {
		add("logging.max_size_mb", "must be at least 1, got %d", c.Logging.MaxSizeMB)
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme)
	}
	if c.UI.WheelLines < 1 || c.UI.WheelLines > 50 {
		add("ui.wheel_lines", "must be between 1 and 50, got %d", c.UI.WheelLines)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that a partial config file left empty.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Provider.Backend == "" {
		c.Provider.Backend = d.Provider.Backend
	}
	if c.Provider.GeminiURL == "" {
		c.Provider.GeminiURL = d.Provider.GeminiURL
	}
	if c.Provider.GeminiTextModel == "" {
		c.Provider.GeminiTextModel = d.Provider.GeminiTextModel
	}
	if c.Provider.GeminiImageModel == "" {
		c.Provider.GeminiImageModel = d.Provider.GeminiImageModel
	}
	if c.Provider.OllamaURL == "" {
		c.Provider.OllamaURL = d.Provider.OllamaURL
	}
	if c.Provider.OllamaModel == "" {
		c.Provider.OllamaModel = d.Provider.OllamaModel
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - REELMENU_PROVIDER: overrides provider.backend
//   - REELMENU_GEMINI_API_KEY, GEMINI_API_KEY, API_KEY: provider.gemini_key, first set wins
//   - REELMENU_OLLAMA_URL: overrides provider.ollama_url
//   - REELMENU_OLLAMA_MODEL: overrides provider.ollama_model
//   - REELMENU_CATALOG: overrides catalog.path
//   - REELMENU_ORDERS_DB: overrides orders.path
//   - REELMENU_LOG_LEVEL: overrides logging.level
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("REELMENU_PROVIDER"); v != "" {
		c.Provider.Backend = strings.ToLower(v)
	}
	for _, name := range []string{"REELMENU_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			c.Provider.GeminiKey = v
			break
		}
	}
	if v := os.Getenv("REELMENU_OLLAMA_URL"); v != "" {
		c.Provider.OllamaURL = v
	}
	if v := os.Getenv("REELMENU_OLLAMA_MODEL"); v != "" {
		c.Provider.OllamaModel = v
	}
	if v := os.Getenv("REELMENU_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("REELMENU_ORDERS_DB"); v != "" {
		c.Orders.Path = v
	}
	if v := os.Getenv("REELMENU_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "search.memo_ttl_secs").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strings.ToLower(strVal))
			if err != nil {
				boolVal = strings.EqualFold(strVal, "yes")
				if !boolVal && !strings.EqualFold(strVal, "no") {
					return fmt.Errorf("invalid boolean value: %q", strVal)
				}
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// AllKeys returns every settable key in dot notation, in file order.
func AllKeys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		prefix := section.Tag.Get("toml")
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, prefix+"."+section.Type.Field(j).Tag.Get("toml"))
		}
	}
	return keys
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Redacted returns a copy safe to print: the API key is masked.
func (c *Config) Redacted() *Config {
	safe := c.Clone()
	if safe.Provider.GeminiKey != "" {
		safe.Provider.GeminiKey = "[REDACTED]"
	}
	return safe
}

// String returns a string representation of the config for debugging.
// Secrets are redacted.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c.Redacted(), "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
