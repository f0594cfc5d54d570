// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for reelmenu.
//
// Command: status
// Short:   Show provider reachability, menu and order log status
// Aliases: s
//
// Examples:
//   reelmenu status
//   reelmenu status --json
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nexindemo/Nex-reelmenu/internal/provider"
	"github.com/nexindemo/Nex-reelmenu/internal/storage"
)

const pingTimeout = 5 * time.Second

// StatusOutput is the JSON payload of the status command.
type StatusOutput struct {
	Provider     string           `json:"provider"`
	Reachable    bool             `json:"reachable"`
	ProviderNote string           `json:"provider_note,omitempty"`
	Dishes       int              `json:"dishes"`
	Catalog      string           `json:"catalog"`
	OrderLog     string           `json:"order_log,omitempty"`
	Orders       *storage.Summary `json:"orders,omitempty"`
	LogFile      string           `json:"log_file"`
	Version      string           `json:"version"`
}

// collectStatus gathers status without printing.
func collectStatus(ctx context.Context, rt *Runtime) StatusOutput {
	st := StatusOutput{
		Provider: rt.Provider.Name(),
		Dishes:   rt.Catalog.Len(),
		Catalog:  catalogSource(rt.Config.Catalog.Path),
		LogFile:  rt.Config.LogPath(),
		Version:  Version,
	}

	if pinger, ok := rt.Provider.(provider.Pinger); ok {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := pinger.Ping(pctx)
		cancel()
		st.Reachable = err == nil
		if err != nil {
			st.ProviderNote = err.Error()
		}
	} else {
		st.ProviderNote = "backend does not support reachability checks"
	}

	if rt.Orders != nil {
		st.OrderLog = rt.Orders.Path()
		if sum, err := rt.Orders.Summarize(ctx); err == nil {
			st.Orders = &sum
		}
	}
	return st
}

// HandleStatus prints provider and storage status.
func HandleStatus(rt *Runtime, args Args, out io.Writer) error {
	ctx, stop := commandContext()
	defer stop()

	st := collectStatus(ctx, rt)
	if args.JSON {
		return NewJSONResponse("status", st).Write(out)
	}

	fmt.Fprintln(out, RenderConditional(TitleStyle, "reelmenu Status"))

	providerState := "ok"
	switch {
	case st.Provider == provider.BackendOffline:
		providerState = "offline"
	case !st.Reachable:
		providerState = "unreachable"
	}
	fmt.Fprintf(out, "%s %s %s\n", RenderLabel("Provider"), RenderStatus(providerState), st.Provider)
	if st.ProviderNote != "" {
		fmt.Fprintf(out, "%s %s\n", RenderLabel(""), RenderConditional(DimStyle, st.ProviderNote))
	}
	fmt.Fprintf(out, "%s %d dishes (%s)\n", RenderLabel("Menu"), st.Dishes, st.Catalog)

	if st.OrderLog == "" {
		fmt.Fprintf(out, "%s %s\n", RenderLabel("Order log"), RenderStatus("disabled"))
	} else {
		fmt.Fprintf(out, "%s %s %s\n", RenderLabel("Order log"), RenderStatus("ok"), st.OrderLog)
		if st.Orders != nil {
			fmt.Fprintf(out, "%s %d orders, %s\n", RenderLabel(""), st.Orders.Orders, st.Orders.Revenue)
		}
	}
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Log file"), st.LogFile)
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Version"), st.Version)
	return nil
}
