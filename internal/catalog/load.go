// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// fileItem is the on-disk shape of a menu entry. Prices are written as
// decimals in the file and converted to cents on load.
type fileItem struct {
	ID          string   `toml:"id" validate:"required,max=64"`
	Name        string   `toml:"name" validate:"required,max=120"`
	Price       float64  `toml:"price" validate:"gte=0"`
	Description string   `toml:"description" validate:"required"`
	PairingNote string   `toml:"pairing_note"`
	Image       string   `toml:"image" validate:"required"`
	Tags        []string `toml:"tags" validate:"dive,required"`
	Spicy       bool     `toml:"spicy"`
}

type fileCatalog struct {
	Items []fileItem `toml:"items" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Load reads a TOML menu file. A leading "~/" is expanded to the user's home
// directory. An empty path returns the built-in demo menu.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	path = expandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML menu document.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validate.Struct(fc); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", describe(err))
	}

	items := make([]Item, len(fc.Items))
	for i, fi := range fc.Items {
		items[i] = Item{
			ID:          strings.TrimSpace(fi.ID),
			Name:        strings.TrimSpace(fi.Name),
			Price:       util.CentsFromFloat(fi.Price),
			Description: strings.TrimSpace(fi.Description),
			PairingNote: strings.TrimSpace(fi.PairingNote),
			Image:       strings.TrimSpace(fi.Image),
			Tags:        fi.Tags,
			Spicy:       fi.Spicy,
		}
	}
	return New(items)
}

// describe flattens validator errors into a single readable message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
