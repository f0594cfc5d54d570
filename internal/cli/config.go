// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for reelmenu.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   get <key>           Display one value
//   set <key> <value>   Set a configuration value
//   path                Show configuration file path
//   init                Write a default configuration file
//
// Examples:
//   reelmenu config set provider.backend ollama
//   reelmenu config set search.distinct_empty_result true
//   reelmenu config set ui.theme light
//   reelmenu config get enrichment.timeout_secs
//
// Keys use dot notation: <section>.<field>. "config show" lists them all.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nexindemo/Nex-reelmenu/internal/config"
)

// configPath resolves the file the config command works on.
func configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.Path()
}

// HandleConfig handles the "config" command.
func HandleConfig(args Args, out io.Writer) error {
	p := NewArgParser(args.Raw, "force")
	path, err := configPath(args)
	if err != nil {
		return NewCommandError("config", "path", "cannot locate the configuration file", err)
	}

	switch p.Subcommand() {
	case "", "show":
		return handleConfigShow(args, path, out)
	case "get":
		return handleConfigGet(args, p.Positional(1), out)
	case "set":
		return handleConfigSet(args, path, p.Positional(1), JoinPositionalArgs(p, 2), out)
	case "path":
		return handleConfigPath(args, path, out)
	case "init":
		return handleConfigInit(args, path, p.BoolFlag("force"), out)
	default:
		return NewValidationErrorWithExample("subcommand", p.Subcommand(),
			"expected show, get, set, path or init", "reelmenu config show")
	}
}

// ConfigShowOutput is the JSON payload of "config show".
type ConfigShowOutput struct {
	Path    string         `json:"path"`
	Exists  bool           `json:"exists"`
	Backend string         `json:"effective_backend"`
	Config  *config.Config `json:"config"`
}

func handleConfigShow(args Args, path string, out io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return NewCommandError("config", "show", "could not load configuration", err)
	}
	safe := cfg.Redacted()

	if args.JSON {
		return NewJSONResponse("config show", ConfigShowOutput{
			Path:    path,
			Exists:  fileExists(path),
			Backend: cfg.Provider.EffectiveBackend(),
			Config:  safe,
		}).Write(out)
	}

	fmt.Fprintln(out, RenderConditional(TitleStyle, "reelmenu Configuration"))
	section := ""
	for _, key := range config.AllKeys() {
		sec, field, _ := strings.Cut(key, ".")
		if sec != section {
			section = sec
			fmt.Fprintln(out, RenderConditional(SectionStyle, "["+sec+"]"))
		}
		v, err := safe.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "  %s %s\n", RenderLabel(field, 24), RenderConditional(ValueStyle, formatValue(v)))
	}
	fmt.Fprintln(out, RenderSeparator())
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Effective backend"), cfg.Provider.EffectiveBackend())
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Config file"), path)
	return nil
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok && s == "" {
		return `""`
	}
	return fmt.Sprint(v)
}

func handleConfigGet(args Args, key string, out io.Writer) error {
	if key == "" {
		return NewValidationErrorWithExample("key", "", "a key is required", "reelmenu config get ui.theme")
	}
	cfg, err := LoadConfig(args)
	if err != nil {
		return NewCommandError("config", "get", "could not load configuration", err)
	}
	v, err := cfg.Redacted().Get(key)
	if err != nil {
		return unknownKey(key, err)
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{"key": key, "value": v}).Write(out)
	}
	fmt.Fprintln(out, formatValue(v))
	return nil
}

func handleConfigSet(args Args, path, key, value string, out io.Writer) error {
	if key == "" {
		return NewValidationErrorWithExample("key", "", "a key and a value are required",
			"reelmenu config set provider.backend ollama")
	}

	// Edit the file as written: environment overrides (the API key in
	// particular) must not leak into it.
	cfg, err := config.ReadFile(path)
	if err != nil {
		return NewCommandError("config", "set", "could not read configuration", err)
	}
	if err := cfg.Set(key, value); err != nil {
		if strings.Contains(err.Error(), "unknown field") || strings.Contains(err.Error(), "section") {
			return unknownKey(key, err)
		}
		return NewValidationError(key, value, err.Error())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return NewValidationError(key, value, err.Error())
	}
	if err := config.SaveTo(cfg, path); err != nil {
		return NewCommandError("config", "set", "could not save configuration", err)
	}

	if args.JSON {
		return NewJSONResponse("config set", map[string]interface{}{"key": key, "value": value, "path": path}).Write(out)
	}
	fmt.Fprintf(out, "%s %s = %s\n", RenderConditional(SuccessStyle, "[OK]"), key, maskIfSecret(key, value))
	return nil
}

func handleConfigPath(args Args, path string, out io.Writer) error {
	if args.JSON {
		return NewJSONResponse("config path", map[string]interface{}{"path": path, "exists": fileExists(path)}).Write(out)
	}
	fmt.Fprintln(out, path)
	return nil
}

func handleConfigInit(args Args, path string, force bool, out io.Writer) error {
	if fileExists(path) && !force {
		return NewCommandError("config", "init", "configuration file already exists (use --force to overwrite)", nil)
	}
	if err := config.SaveTo(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "could not write configuration", err)
	}
	if args.JSON {
		return NewJSONResponse("config init", map[string]interface{}{"path": path}).Write(out)
	}
	fmt.Fprintf(out, "%s wrote %s\n", RenderConditional(SuccessStyle, "[OK]"), path)
	return nil
}

func unknownKey(key string, err error) error {
	keys := config.AllKeys()
	sort.Strings(keys)
	return &ValidationError{
		Field:   "key",
		Value:   key,
		Reason:  err.Error(),
		Example: "one of " + strings.Join(keys, ", "),
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// maskAPIKey masks an API key for display.
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func maskIfSecret(key, value string) string {
	if strings.HasSuffix(strings.ToLower(key), "_key") {
		return maskAPIKey(value)
	}
	return value
}
