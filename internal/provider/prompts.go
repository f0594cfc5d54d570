// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"encoding/json"
	"fmt"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
)

// ImageAspectRatio is the portrait ratio of a dish card.
const ImageAspectRatio = "9:16"

func imagePrompt(item catalog.Item) string {
	return fmt.Sprintf("A hyper-realistic, appetizing, high-resolution vertical food photography shot of %s. "+
		"Description: %s. Professional styling, cinematic lighting, 4k resolution, Michelin star presentation. "+
		"Aspect Ratio: %s. No text.", item.Name, item.Description, ImageAspectRatio)
}

func chefInstruction(dish string) string {
	return fmt.Sprintf("You are an expert Executive Chef. You are answering a customer about: %q. "+
		"Keep answers concise (<50 words) and appetizing.", dish)
}

func nutritionPrompt(item catalog.Item) string {
	return fmt.Sprintf("Estimate nutritional values for one serving of: %q. Description: %q.", item.Name, item.Description)
}

// nutritionJSONHint is appended for backends without schema support.
const nutritionJSONHint = `Respond with only a JSON object of the form ` +
	`{"calories": <integer>, "protein": "<grams>", "carbs": "<grams>", "fat": "<grams>", "highlight": "<one short sentence>"}.`

func searchPrompt(query string, docs []catalog.SearchDoc) (string, error) {
	menu, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("marshal menu: %w", err)
	}
	return fmt.Sprintf("User Query: %q. Menu: %s. Select Food Item IDs that match.", query, menu), nil
}

const searchJSONHint = `Respond with only a JSON object of the form {"matchedIds": ["<id>", ...]}. ` +
	`Use an empty list when nothing matches.`

// Schema is the subset of the OpenAPI schema object accepted as a
// structured-output constraint.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

var nutritionSchema = &Schema{
	Type: "OBJECT",
	Properties: map[string]*Schema{
		"calories":  {Type: "INTEGER"},
		"protein":   {Type: "STRING"},
		"carbs":     {Type: "STRING"},
		"fat":       {Type: "STRING"},
		"highlight": {Type: "STRING"},
	},
	Required: []string{"calories", "protein", "carbs", "fat", "highlight"},
}

var searchSchema = &Schema{
	Type: "OBJECT",
	Properties: map[string]*Schema{
		"matchedIds": {Type: "ARRAY", Items: &Schema{Type: "STRING"}},
	},
	Required: []string{"matchedIds"},
}

type searchAnswer struct {
	MatchedIDs []string `json:"matchedIds"`
}

func decodeNutrition(text string) (*Nutrition, error) {
	var n Nutrition
	if err := json.Unmarshal([]byte(stripFence(text)), &n); err != nil {
		return nil, malformed("decode nutrition JSON", err)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return &n, nil
}

func decodeSearch(text string) ([]string, error) {
	var a searchAnswer
	if err := json.Unmarshal([]byte(stripFence(text)), &a); err != nil {
		return nil, malformed("decode search JSON", err)
	}
	return cleanIDs(a.MatchedIDs), nil
}
