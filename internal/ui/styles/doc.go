// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the reelmenu browser.

# Color System (colors.go)

Every color is a Lip Gloss AdaptiveColor so the palette follows the
terminal background:

  - Saffron - brand, prices, primary buttons
  - Basil - success and ADDED feedback
  - Plum - chef chat and smart search
  - Chili - spicy badge and errors
  - Honey - filter indicator and pairing emphasis

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme) // "dark", "light" or "auto"
	card := theme.CardFocused.Render(body)

# Animation System (animations.go)

Spinner frame sets for image plating and chef replies, plus the ADDED
feedback duration.
*/
package styles
