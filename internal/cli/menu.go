// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// menu.go - Menu, search and nutrition commands.
//
// Command: menu
// Short:   List every dish on the menu
//
// Command: search <craving...>
// Short:   Filter the menu by a free-text craving
// Examples:
//   reelmenu search something spicy
//   reelmenu search --json high protein
//
// Command: nutrition <item-id>
// Short:   Estimate nutrition facts for one dish
// Examples:
//   reelmenu nutrition miso-salmon
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/enrich"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
	"github.com/nexindemo/Nex-reelmenu/internal/search"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// commandContext is cancelled by Ctrl+C.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// =============================================================================
// MENU
// =============================================================================

// MenuEntry is one dish in JSON output.
type MenuEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	PriceCents  int64    `json:"price_cents"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Spicy       bool     `json:"spicy"`
}

func menuEntries(items []catalog.Item) []MenuEntry {
	out := make([]MenuEntry, 0, len(items))
	for _, it := range items {
		tags := it.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, MenuEntry{
			ID:          it.ID,
			Name:        it.Name,
			Price:       it.Price.String(),
			PriceCents:  int64(it.Price),
			Description: it.Description,
			Tags:        tags,
			Spicy:       it.Spicy,
		})
	}
	return out
}

// HandleMenu lists the catalog.
func HandleMenu(rt *Runtime, args Args, out io.Writer) error {
	items := rt.Catalog.Items()
	if args.JSON {
		return NewJSONResponse("menu", menuEntries(items)).Write(out)
	}
	fmt.Fprintln(out, RenderConditional(TitleStyle, "Tonight's Menu"))
	printItems(out, items)
	return nil
}

func printItems(out io.Writer, items []catalog.Item) {
	for _, it := range items {
		name := util.PadRight(it.Name, 28)
		line := fmt.Sprintf("  %s %s %s", util.PadRight(it.ID, 18), name,
			RenderConditional(PriceStyle, fmt.Sprintf("%8s", it.Price)))
		if it.Spicy {
			line += " " + RenderConditional(SpicyStyle, "SPICY")
		}
		fmt.Fprintln(out, line)
		if len(it.Tags) > 0 {
			fmt.Fprintf(out, "  %s %s\n", strings.Repeat(" ", 18),
				RenderConditional(DimStyle, strings.Join(it.Tags, ", ")))
		}
	}
}

// =============================================================================
// SEARCH
// =============================================================================

// SearchOutput is the JSON payload of the search command.
type SearchOutput struct {
	Query    string      `json:"query"`
	Outcome  string      `json:"outcome"`
	Degraded bool        `json:"degraded"`
	Matched  int         `json:"matched"`
	Items    []MenuEntry `json:"items"`
}

// HandleSearch runs one semantic search over the menu.
func HandleSearch(rt *Runtime, args Args, out io.Writer) error {
	p := NewArgParser(args.Raw)
	query := JoinPositionalArgs(p, 0)

	ctx, stop := commandContext()
	defer stop()

	res := rt.Search.Search(ctx, query)
	if res.Outcome == search.OutcomeRejected {
		return NewValidationErrorWithExample("query", query, "describe what you are craving", "reelmenu search something spicy")
	}

	if args.JSON {
		return NewJSONResponse("search", SearchOutput{
			Query:    res.Query,
			Outcome:  res.Outcome.String(),
			Degraded: res.Degraded,
			Matched:  res.Matched,
			Items:    menuEntries(res.Items),
		}).Write(out)
	}

	switch {
	case res.Degraded:
		fmt.Fprintln(out, RenderConditional(WarningStyle, "The chef is unavailable, showing the full menu."))
	case res.Outcome == search.OutcomeNoMatches:
		fmt.Fprintln(out, RenderConditional(WarningStyle, "Chef couldn't find matches for that craving."))
		return nil
	case res.Outcome == search.OutcomeAll:
		fmt.Fprintln(out, RenderConditional(DimStyle, "No dish stood out, showing the full menu."))
	default:
		fmt.Fprintf(out, "%s %q\n", RenderConditional(TitleStyle, "Chef's picks for"), res.Query)
	}
	printItems(out, res.Items)
	return nil
}

// =============================================================================
// NUTRITION
// =============================================================================

// NutritionOutput is the JSON payload of the nutrition command.
type NutritionOutput struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	*provider.Nutrition
}

// HandleNutrition requests nutrition facts through the coordinator and
// waits for them to settle.
func HandleNutrition(rt *Runtime, args Args, out io.Writer) error {
	p := NewArgParser(args.Raw)
	item, err := rt.Item(p.Positional(0))
	if err != nil {
		return err
	}

	ctx, stop := commandContext()
	defer stop()

	entry := rt.Coordinator.RequestNutrition(item)
	if !entry.Settled() {
		if !args.JSON {
			fmt.Fprintln(out, RenderConditional(DimStyle, "Analyzing ingredients..."))
		}
		entry, err = rt.Coordinator.Await(ctx, enrich.NutritionKey(item.ID))
		if err != nil {
			return NewCommandError("nutrition", item.ID, "interrupted", err)
		}
	}
	if entry.State != enrich.StateReady || entry.Nutrition == nil {
		var cause error
		if entry.Reason != "" {
			cause = errors.New(entry.Reason)
		}
		return NewCommandError("nutrition", item.ID, "nutrition facts unavailable", cause)
	}

	n := entry.Nutrition
	if args.JSON {
		return NewJSONResponse("nutrition", NutritionOutput{ItemID: item.ID, Name: item.Name, Nutrition: n}).Write(out)
	}
	fmt.Fprintln(out, RenderConditional(TitleStyle, item.Name+" Nutrition Facts"))
	fmt.Fprintf(out, "%s %d\n", RenderLabel("Calories"), n.Calories)
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Protein"), n.Protein)
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Carbs"), n.Carbs)
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Fat"), n.Fat)
	if n.Highlight != "" {
		fmt.Fprintf(out, "\n%s\n", RenderConditional(SuccessStyle, n.Highlight))
	}
	return nil
}
