// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for reelmenu.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ProviderConfig: Enrichment backend selection and credentials
//   - SearchConfig: Semantic filter behavior
//   - LoggingConfig: Log file location and rotation
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (REELMENU_*, GEMINI_API_KEY, API_KEY)
//   - A .env file in the working directory
//   - ~/.reelmenu/config.toml (or $REELMENU_CONFIG)
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	timeout := cfg.Enrichment.Timeout()
package config
