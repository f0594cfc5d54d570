// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
)

// =============================================================================
// PICTURE
// =============================================================================

// ErrNotDataURL is returned for image references that are not inline.
var ErrNotDataURL = errors.New("not a base64 data URL")

// DecodeDataURL decodes a "data:<mime>;base64,<payload>" image.
func DecodeDataURL(ref string) (image.Image, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrNotDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", strings.TrimSuffix(meta, ";base64"), err)
	}
	return img, nil
}

// RenderHalfBlocks draws img into at most cols x rows terminal cells, two
// pixels per cell. The aspect ratio is kept and the result is centered
// horizontally in cols.
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	fit := imaging.Fit(img, cols, rows*2, imaging.Lanczos)
	bounds := fit.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pad := strings.Repeat(" ", (cols-w)/2)

	lines := make([]string, 0, (h+1)/2)
	for y := 0; y < h; y += 2 {
		var sb strings.Builder
		sb.WriteString(pad)
		for x := 0; x < w; x++ {
			t := fit.NRGBAAt(x, y)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(t.R, t.G, t.B)))
			if y+1 < h {
				c := fit.NRGBAAt(x, y+1)
				style = style.Background(lipgloss.Color(hexColor(c.R, c.G, c.B)))
			}
			sb.WriteString(style.Render(styles.HalfBlock))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// RenderPicture decodes a generated image and draws it.
func RenderPicture(ref string, cols, rows int) (string, error) {
	img, err := DecodeDataURL(ref)
	if err != nil {
		return "", err
	}
	return RenderHalfBlocks(img, cols, rows), nil
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
