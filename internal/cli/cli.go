// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for reelmenu.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdMenu
	CmdSearch
	CmdNutrition
	CmdAsk
	CmdChat
	CmdOrders
	CmdConfig
	CmdStatus
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:       "tui",
	CmdMenu:      "menu",
	CmdSearch:    "search",
	CmdNutrition: "nutrition",
	CmdAsk:       "ask",
	CmdChat:      "chat",
	CmdOrders:    "orders",
	CmdConfig:    "config",
	CmdStatus:    "status",
	CmdVersion:   "version",
	CmdHelp:      "help",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config
	Provider   string // --provider overrides provider.backend
	Offline    bool   // --offline forces the offline backend
	Verbose    bool   // --verbose adds a stderr log console
	JSON       bool   // --json output

	// Command-specific arguments, parsed by the handler.
	Raw []string
}

const usageText = `reelmenu - a short-video style menu for the terminal

Browse dishes one card at a time, let the kitchen plate them with generated
photos, ask the chef about anything on the menu and place an order.

Usage:
  reelmenu                          Start the menu browser (default)
  reelmenu tui                      Same as above
  reelmenu menu                     List every dish
  reelmenu search <craving...>      Filter the menu by a free-text craving
  reelmenu nutrition <item-id>      Estimate nutrition facts for a dish
  reelmenu ask <item-id> <question> Ask the chef one question
  reelmenu chat <item-id>           Chat with the chef about a dish
  reelmenu orders [--limit N]       List placed orders
  reelmenu config [subcommand]      Configuration
  reelmenu status                   Show provider and order log status
  reelmenu version                  Show version information
  reelmenu help                     Show this help

Config Commands:
  reelmenu config show              Show configuration (API key redacted)
  reelmenu config get <key>         Show one value, e.g. search.memo_ttl_secs
  reelmenu config set <key> <value> Set one value and save
  reelmenu config path              Show the configuration file path
  reelmenu config init              Write a default configuration file

Global Options:
  --config <path>                   Use this configuration file
  --provider <gemini|ollama|offline> Override the provider backend
  --offline                         Never call a provider
  --verbose                         Also write logs to stderr
  --json                            Output in JSON format

Environment:
  GEMINI_API_KEY, API_KEY           Gemini API key (also read from .env)
  REELMENU_CONFIG                   Configuration file path
  REELMENU_PROVIDER                 Provider backend
  REELMENU_CATALOG                  Menu TOML file
  NO_COLOR                          Disable colored output

Browser Keys:
  j/k, wheel    Next / previous dish     a   Add to order
  c             Chat with the chef       n   Nutrition facts
  /             Smart search             x   Back to full menu
  tab           Open / close your order  l   Like
  q, ctrl+c     Quit
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// Parse parses the command line arguments (without the program name).
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := remaining[0]
	parsedArgs.Raw = remaining[1:]

	switch strings.ToLower(cmd) {
	case "tui", "browse":
		return CmdTUI, parsedArgs
	case "menu", "ls", "list":
		return CmdMenu, parsedArgs
	case "search", "find":
		return CmdSearch, parsedArgs
	case "nutrition", "nutri":
		return CmdNutrition, parsedArgs
	case "ask":
		return CmdAsk, parsedArgs
	case "chat":
		return CmdChat, parsedArgs
	case "orders", "order":
		return CmdOrders, parsedArgs
	case "config", "cfg":
		return CmdConfig, parsedArgs
	case "status", "s":
		return CmdStatus, parsedArgs
	case "version", "-v", "--version":
		return CmdVersion, parsedArgs
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs
	default:
		// Unknown commands get help rather than silently starting the TUI.
		parsedArgs.Raw = remaining
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--offline":
			parsedArgs.Offline = true
		case "--config", "--provider":
			if i+1 < len(args) {
				i++
				setValueFlag(&parsedArgs, arg, args[i])
			}
		default:
			if name, value, ok := strings.Cut(arg, "="); ok && (name == "--config" || name == "--provider") {
				setValueFlag(&parsedArgs, name, value)
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

func setValueFlag(a *Args, name, value string) {
	switch name {
	case "--config":
		a.ConfigPath = value
	case "--provider":
		a.Provider = strings.ToLower(strings.TrimSpace(value))
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes a one-shot command. The TUI is started by the caller.
func Run(cmd Command, args Args, out io.Writer) error {
	switch cmd {
	case CmdVersion:
		return HandleVersion(args, out)
	case CmdHelp:
		if len(args.Raw) > 0 {
			example := "reelmenu help"
			if s := SuggestCommand(args.Raw[0]); s != "" {
				example = "reelmenu " + s
			} else {
				PrintUsage(out)
			}
			return NewValidationErrorWithExample("command", args.Raw[0], "unknown command", example)
		}
		PrintUsage(out)
		return nil
	case CmdConfig:
		return HandleConfig(args, out)
	}

	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	switch cmd {
	case CmdMenu:
		return HandleMenu(rt, args, out)
	case CmdSearch:
		return HandleSearch(rt, args, out)
	case CmdNutrition:
		return HandleNutrition(rt, args, out)
	case CmdAsk:
		return HandleAsk(rt, args, out)
	case CmdChat:
		return HandleChat(rt, args, out)
	case CmdOrders:
		return HandleOrders(rt, args, out)
	case CmdStatus:
		return HandleStatus(rt, args, out)
	default:
		return NewCommandError(cmd.String(), "run", "not a one-shot command", nil)
	}
}

// VersionInfo is the payload of "reelmenu version --json".
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// HandleVersion prints version information.
func HandleVersion(args Args, out io.Writer) error {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if args.JSON {
		return NewJSONResponse("version", info).Write(out)
	}
	fmt.Fprintf(out, "reelmenu %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:  %s\n", info.GitCommit)
	fmt.Fprintf(out, "  Built:   %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go:      %s (%s)\n", info.GoVersion, info.Platform)
	return nil
}
