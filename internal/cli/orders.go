// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// orders.go - Kitchen ticket log command.
//
// Command: orders [--limit N]
// Short:   List placed orders, newest first
//
// Examples:
//   reelmenu orders
//   reelmenu orders --limit 5 --json
package cli

import (
	"fmt"
	"io"

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/storage"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// OrdersOutput is the JSON payload of the orders command.
type OrdersOutput struct {
	Orders  []cart.Receipt  `json:"orders"`
	Summary storage.Summary `json:"summary"`
}

// HandleOrders lists recorded tickets and a revenue summary.
func HandleOrders(rt *Runtime, args Args, out io.Writer) error {
	if rt.Orders == nil {
		return NewCommandError("orders", "list", "the order log is disabled (orders.enabled = false)", nil)
	}

	p := NewArgParser(args.Raw)
	limit := storage.DefaultListLimit
	if p.HasFlag("limit") {
		n, err := ParseIntWithValidation(p.Flag("limit"), "limit")
		if err != nil {
			return NewValidationErrorWithExample("limit", p.Flag("limit"), err.Error(), "reelmenu orders --limit 5")
		}
		limit = n
	}

	ctx, stop := commandContext()
	defer stop()

	receipts, err := rt.Orders.List(ctx, limit)
	if err != nil {
		return NewCommandError("orders", "list", "could not read the order log", err)
	}
	summary, err := rt.Orders.Summarize(ctx)
	if err != nil {
		return NewCommandError("orders", "summarize", "could not read the order log", err)
	}

	if args.JSON {
		if receipts == nil {
			receipts = []cart.Receipt{}
		}
		return NewJSONResponse("orders", OrdersOutput{Orders: receipts, Summary: summary}).Write(out)
	}

	fmt.Fprintln(out, RenderConditional(TitleStyle, "Kitchen Tickets"))
	if len(receipts) == 0 {
		fmt.Fprintln(out, RenderConditional(DimStyle, "No orders yet."))
		return nil
	}
	for _, r := range receipts {
		fmt.Fprintf(out, "%s  %s  %s\n",
			RenderConditional(DimStyle, r.PlacedAt.Local().Format("2006-01-02 15:04")),
			shortID(r.OrderID),
			RenderConditional(PriceStyle, r.Total.String()))
		for _, l := range r.Lines {
			fmt.Fprintf(out, "    %2d x %s %s\n", l.Quantity, util.PadRight(l.Item.Name, 28), l.Amount())
		}
	}
	fmt.Fprintln(out, RenderSeparator())
	fmt.Fprintf(out, "%s %d\n", RenderLabel("Orders"), summary.Orders)
	fmt.Fprintf(out, "%s %d\n", RenderLabel("Dishes"), summary.Items)
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Revenue"), summary.Revenue)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
