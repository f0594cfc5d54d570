// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the one-shot commands of
// reelmenu.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Global flags plus the raw command arguments
//   - ArgParser: Flag and positional parsing shared by every handler
//   - Runtime: Configuration, logger, menu, provider and services for one process
//   - JSONResponse: The envelope every command emits with --json
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	if cmd == cli.CmdTUI {
//	    rt, err := cli.NewRuntime(args)
//	    // start the browser with rt.NewController()
//	}
//	if err := cli.Run(cmd, args, os.Stdout); err != nil {
//	    cli.DisplayError(os.Stderr, err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Commands Overview
//
//   - menu: List the dishes
//   - search: Filter the menu by a craving
//   - nutrition: Nutrition facts for one dish
//   - ask: One question to the chef
//   - chat: Interactive chef chat with line editing
//   - orders: Kitchen ticket log
//   - config: Configuration management
//   - status: Provider and storage status
//
// All commands support --json.
package cli
