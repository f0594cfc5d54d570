// reelmenu - A vertical dish-by-dish menu browser for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nexindemo/Nex-reelmenu/internal/cli"
	"github.com/nexindemo/Nex-reelmenu/internal/session"
	"github.com/nexindemo/Nex-reelmenu/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	if cmd == cli.CmdTUI {
		if err := runTUI(args); err != nil {
			cli.DisplayError(os.Stderr, err, args.JSON)
			os.Exit(cli.GetExitCode(err))
		}
		return
	}

	if err := cli.Run(cmd, args, os.Stdout); err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		os.Exit(cli.GetExitCode(err))
	}
}

// runTUI starts the interactive browser.
func runTUI(args cli.Args) error {
	// Console logging would draw over the alt screen.
	args.Verbose = false

	rt, err := cli.NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctrl := rt.NewController()
	defer ctrl.Close()

	theme := styles.NewTheme(rt.Config.UI.Theme)
	m := NewModel(ctrl, theme, Options{
		Backend:      rt.Provider.Name(),
		ImagePreview: rt.Config.UI.ImagePreview,
		WheelLines:   rt.Config.UI.WheelLines,
		Logger:       rt.Log.Logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	rt.Coordinator.SetNotifier(session.Notifier(p.Send))

	if _, err := p.Run(); err != nil {
		rt.Log.Error("browser exited with error", zap.Error(err))
		return fmt.Errorf("running browser: %w", err)
	}
	// Results that land after the program stopped have nowhere to go.
	rt.Coordinator.SetNotifier(nil)

	stats := rt.Coordinator.Stats()
	rt.Log.Info("browser closed",
		zap.Int64("enrich_requests", stats.Requests),
		zap.Int64("enrich_failed", stats.Failed))
	return nil
}
