// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/catalog"
	"github.com/nexindemo/Nex-reelmenu/internal/chat"
	"github.com/nexindemo/Nex-reelmenu/internal/config"
	"github.com/nexindemo/Nex-reelmenu/internal/provider"
	"github.com/nexindemo/Nex-reelmenu/internal/provider/providertest"
	"github.com/nexindemo/Nex-reelmenu/internal/storage"
)

func TestMain(m *testing.M) {
	ForceColorsEnabled(false)
	os.Exit(m.Run())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"REELMENU_CONFIG", "REELMENU_PROVIDER", "REELMENU_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY",
		"REELMENU_OLLAMA_URL", "REELMENU_OLLAMA_MODEL", "REELMENU_CATALOG", "REELMENU_ORDERS_DB", "REELMENU_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

// newTestRuntime builds a runtime over the built-in menu with its files in
// a temp dir.
func newTestRuntime(t *testing.T, p provider.Provider) *Runtime {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Logging.Path = filepath.Join(dir, "reelmenu.log")
	cfg.Orders.Path = filepath.Join(dir, "orders.db")

	rt, err := buildFromConfig(cfg, RuntimeOptions{Provider: p})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })
	return rt
}

func decodeData(t *testing.T, out []byte, v interface{}) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out, &resp))
	require.True(t, resp.Success)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "flag with value",
			args:    []string{"--limit", "5"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, 5, p.FlagIntOrDefault("limit", 20))
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"set", "--limit=7"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "7", p.Flag("limit"))
			},
		},
		{
			name:    "declared boolean never takes a value",
			args:    []string{"init", "--force", "now"},
			bools:   []string{"force"},
			wantSub: "init",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("force"))
				assert.Equal(t, "now", p.Positional(1))
			},
		},
		{
			name:    "undeclared flag consumes next word",
			args:    []string{"--mode", "fast", "query"},
			wantSub: "query",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "fast", p.Flag("mode"))
			},
		},
		{
			name:    "multi word positional",
			args:    []string{"tiramisu", "is", "it", "boozy?"},
			wantSub: "tiramisu",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "is it boozy?", JoinPositionalArgs(p, 1))
			},
		},
		{
			name:    "negative number is positional",
			args:    []string{"adjust", "-1"},
			wantSub: "adjust",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "-1", p.Positional(1))
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"--", "--not-a-flag"},
			wantSub: "--not-a-flag",
		},
		{
			name:    "explicit boolean value",
			args:    []string{"--force=false"},
			bools:   []string{"force"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("force"))
				assert.True(t, p.HasFlag("force"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			assert.Equal(t, tt.wantSub, p.Subcommand())
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestParseIntWithValidation(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"5", 5, false},
		{"", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIntWithValidation(tt.in, "limit")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{"no args starts the browser", nil, CmdTUI, nil},
		{"tui", []string{"tui"}, CmdTUI, nil},
		{"menu alias", []string{"ls"}, CmdMenu, nil},
		{"search keeps the query", []string{"search", "something", "spicy"}, CmdSearch, func(t *testing.T, a Args) {
			assert.Equal(t, []string{"something", "spicy"}, a.Raw)
		}},
		{"global json after command", []string{"menu", "--json"}, CmdMenu, func(t *testing.T, a Args) {
			assert.True(t, a.JSON)
			assert.Empty(t, a.Raw)
		}},
		{"global flags before command", []string{"--offline", "--config", "/tmp/x.toml", "status"}, CmdStatus, func(t *testing.T, a Args) {
			assert.True(t, a.Offline)
			assert.Equal(t, "/tmp/x.toml", a.ConfigPath)
		}},
		{"provider with equals", []string{"--provider=Ollama", "ask", "tiramisu", "hi"}, CmdAsk, func(t *testing.T, a Args) {
			assert.Equal(t, "ollama", a.Provider)
			assert.Equal(t, []string{"tiramisu", "hi"}, a.Raw)
		}},
		{"version flag", []string{"--version"}, CmdVersion, nil},
		{"unknown command asks for help", []string{"frobnicate"}, CmdHelp, func(t *testing.T, a Args) {
			assert.Equal(t, []string{"frobnicate"}, a.Raw)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := Parse(tt.argv)
			assert.Equal(t, tt.wantCmd, cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestRun_UnknownCommandIsUsageError(t *testing.T) {
	var out bytes.Buffer
	err := Run(CmdHelp, Args{Raw: []string{"frobnicate"}}, &out)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Contains(t, out.String(), "Usage:")
}

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"serach", "search"},
		{"mneu", "menu"},
		{"nutrtion", "nutrition"},
		{"stauts", "status"},
		{"menu", ""},
		{"x", ""},
		{"frobnicate", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestCommand(tt.input))
		})
	}
}

func TestRun_TypoSuggestsCommand(t *testing.T) {
	var out bytes.Buffer
	err := Run(CmdHelp, Args{Raw: []string{"serach"}}, &out)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "reelmenu search", ve.Example)
	assert.Empty(t, out.String())
}

func TestHandleVersion_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, HandleVersion(Args{JSON: true}, &out))

	var info VersionInfo
	decodeData(t, out.Bytes(), &info)
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("limit", "x", "bad"), ExitUsageError},
		{"not found", NewNotFoundError("dish", "x"), ExitNotFoundError},
		{"missing order", storage.ErrOrderNotFound, ExitNotFoundError},
		{"config", config.ValidationErrors{{Field: "ui.theme", Message: "bad"}}, ExitConfigError},
		{"provider timeout", NewCommandError("ask", "x", "y", provider.ErrTimeout), ExitTimeoutError},
		{"provider down", provider.ErrUnavailable, ExitNetworkError},
		{"not configured", provider.ErrNotConfigured, ExitConfigError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayError_JSON(t *testing.T) {
	var out bytes.Buffer
	DisplayError(&out, NewNotFoundError("dish", "lobster"), true)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "not_found_error", got["error_type"])
	assert.Equal(t, "lobster", got["id"])
}

func TestDisplayError_Text(t *testing.T) {
	var out bytes.Buffer
	DisplayError(&out, errors.New("kitchen closed"), false)
	assert.Equal(t, "[ERROR] kitchen closed\n", out.String())
}

// =============================================================================
// COMMAND TESTS
// =============================================================================

func TestHandleMenu(t *testing.T) {
	rt := newTestRuntime(t, providertest.New())

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, HandleMenu(rt, Args{JSON: true}, &out))

		var entries []MenuEntry
		decodeData(t, out.Bytes(), &entries)
		require.Len(t, entries, rt.Catalog.Len())
		assert.Equal(t, "truffle-risotto", entries[0].ID)
		assert.Equal(t, int64(2800), entries[0].PriceCents)
		assert.Equal(t, "$28.00", entries[0].Price)
	})

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, HandleMenu(rt, Args{}, &out))
		assert.Contains(t, out.String(), "Dan Dan Noodles")
		assert.Contains(t, out.String(), "SPICY")
	})
}

func TestHandleSearch(t *testing.T) {
	fake := providertest.New()
	fake.SearchFunc = func(_ context.Context, _ string, _ []catalog.SearchDoc) ([]string, error) {
		return []string{"nduja-pizza", "dan-dan-noodles"}, nil
	}
	rt := newTestRuntime(t, fake)

	t.Run("json keeps menu order", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, HandleSearch(rt, Args{JSON: true, Raw: []string{"something", "spicy"}}, &out))

		var got SearchOutput
		decodeData(t, out.Bytes(), &got)
		assert.Equal(t, "something spicy", got.Query)
		assert.Equal(t, "filtered", got.Outcome)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "dan-dan-noodles", got.Items[0].ID)
		assert.Equal(t, "nduja-pizza", got.Items[1].ID)
	})

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, HandleSearch(rt, Args{Raw: []string{"heat"}}, &out))
		assert.Contains(t, out.String(), "Chef's picks")
		assert.NotContains(t, out.String(), "Tiramisu")
	})

	t.Run("blank query", func(t *testing.T) {
		var out bytes.Buffer
		err := HandleSearch(rt, Args{Raw: []string{"   "}}, &out)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	})
}

func TestHandleSearch_ProviderDownShowsFullMenu(t *testing.T) {
	fake := providertest.New()
	fake.SearchFunc = func(context.Context, string, []catalog.SearchDoc) ([]string, error) {
		return nil, provider.ErrUnavailable
	}
	rt := newTestRuntime(t, fake)

	var out bytes.Buffer
	require.NoError(t, HandleSearch(rt, Args{JSON: true, Raw: []string{"comfort food"}}, &out))

	var got SearchOutput
	decodeData(t, out.Bytes(), &got)
	assert.True(t, got.Degraded)
	assert.Len(t, got.Items, rt.Catalog.Len())
}

func TestHandleNutrition(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rt := newTestRuntime(t, providertest.New())
		var out bytes.Buffer
		require.NoError(t, HandleNutrition(rt, Args{Raw: []string{"miso-salmon"}}, &out))
		assert.Contains(t, out.String(), "Miso Glazed Salmon Nutrition Facts")
		assert.Contains(t, out.String(), "640")
		assert.Contains(t, out.String(), "Rich in umami.")
	})

	t.Run("json", func(t *testing.T) {
		rt := newTestRuntime(t, providertest.New())
		var out bytes.Buffer
		require.NoError(t, HandleNutrition(rt, Args{JSON: true, Raw: []string{"tiramisu"}}, &out))
		var got NutritionOutput
		decodeData(t, out.Bytes(), &got)
		assert.Equal(t, "tiramisu", got.ItemID)
		assert.Equal(t, 640, got.Calories)
	})

	t.Run("unknown dish", func(t *testing.T) {
		rt := newTestRuntime(t, providertest.New())
		err := HandleNutrition(rt, Args{Raw: []string{"lobster"}}, io.Discard)
		assert.Equal(t, ExitNotFoundError, GetExitCode(err))
	})

	t.Run("missing id", func(t *testing.T) {
		rt := newTestRuntime(t, providertest.New())
		err := HandleNutrition(rt, Args{}, io.Discard)
		assert.Equal(t, ExitUsageError, GetExitCode(err))
	})

	t.Run("provider failure", func(t *testing.T) {
		fake := providertest.New()
		fake.NutritionFunc = func(context.Context, catalog.Item) (*provider.Nutrition, error) {
			return nil, provider.ErrNotConfigured
		}
		rt := newTestRuntime(t, fake)
		err := HandleNutrition(rt, Args{Raw: []string{"tiramisu"}}, io.Discard)
		var ce *CommandError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "nutrition facts unavailable", ce.Reason)
	})
}

func TestHandleAsk(t *testing.T) {
	t.Run("reply", func(t *testing.T) {
		rt := newTestRuntime(t, providertest.New())
		var out bytes.Buffer
		require.NoError(t, HandleAsk(rt, Args{Raw: []string{"tiramisu", "is", "it", "boozy?"}}, &out))
		assert.Contains(t, out.String(), "Chef says: is it boozy?")
	})

	t.Run("offline falls back", func(t *testing.T) {
		fake := providertest.New()
		fake.ChatFunc = func(context.Context, provider.ChatRequest) (string, error) {
			return "", provider.ErrNotConfigured
		}
		rt := newTestRuntime(t, fake)
		var out bytes.Buffer
		require.NoError(t, HandleAsk(rt, Args{JSON: true, Raw: []string{"tiramisu", "hello"}}, &out))

		var got AskOutput
		decodeData(t, out.Bytes(), &got)
		assert.Equal(t, chat.OfflineReply, got.Reply)
		assert.True(t, got.Fallback)
	})

	t.Run("no question", func(t *testing.T) {
		rt := newTestRuntime(t, providertest.New())
		err := HandleAsk(rt, Args{Raw: []string{"tiramisu"}}, io.Discard)
		assert.Equal(t, ExitUsageError, GetExitCode(err))
	})
}

// scriptedInput feeds fixed lines to the chat loop, then EOF.
type scriptedInput struct {
	lines []string
}

func (s *scriptedInput) ReadInput(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedInput) Close() {}

func TestRunChat(t *testing.T) {
	fake := providertest.New()
	rt := newTestRuntime(t, fake)
	item, err := rt.Item("short-rib")
	require.NoError(t, err)

	in := &scriptedInput{lines: []string{"/1", "  ", "what wine?", "/history", "/bogus", "/quit", "never read"}}
	var out bytes.Buffer
	require.NoError(t, runChat(rt.Chats, item, in, &out))

	text := out.String()
	assert.Contains(t, text, chat.Greeting(item.Name))
	assert.Contains(t, text, "Chef says: "+chat.SuggestedQuestions[0])
	assert.Contains(t, text, "Chef says: what wine?")
	assert.Contains(t, text, "unknown command /bogus")
	assert.Equal(t, []string{"never read"}, in.lines)

	thread, ok := rt.Chats.Thread(item.ID)
	require.True(t, ok)
	assert.Equal(t, 5, thread.Len()) // greeting + two exchanges
	assert.Equal(t, 2, fake.Calls(providertest.OpChat))
}

func TestRunChat_EOFEndsCleanly(t *testing.T) {
	rt := newTestRuntime(t, providertest.New())
	item, _ := rt.Item("tiramisu")
	require.NoError(t, runChat(rt.Chats, item, &scriptedInput{}, io.Discard))
}

func TestHandleOrders(t *testing.T) {
	rt := newTestRuntime(t, providertest.New())
	require.NotNil(t, rt.Orders)

	item, _ := rt.Item("dan-dan-noodles")
	ledger := cart.NewLedger(rt.Catalog.Lookup)
	ledger.Add(item)
	ledger.Add(item)
	receipt, ok := ledger.Checkout(time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC))
	require.True(t, ok)
	require.NoError(t, rt.Orders.Save(context.Background(), receipt))

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, HandleOrders(rt, Args{JSON: true}, &out))
		var got OrdersOutput
		decodeData(t, out.Bytes(), &got)
		require.Len(t, got.Orders, 1)
		assert.Equal(t, receipt.OrderID, got.Orders[0].OrderID)
		assert.Equal(t, 1, got.Summary.Orders)
		assert.Equal(t, 2, got.Summary.Items)
		assert.Equal(t, receipt.Total, got.Summary.Revenue)
	})

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, HandleOrders(rt, Args{Raw: []string{"--limit", "3"}}, &out))
		assert.Contains(t, out.String(), receipt.OrderID[:8])
		assert.Contains(t, out.String(), "Dan Dan Noodles")
	})

	t.Run("bad limit", func(t *testing.T) {
		err := HandleOrders(rt, Args{Raw: []string{"--limit", "zero"}}, io.Discard)
		assert.Equal(t, ExitUsageError, GetExitCode(err))
	})
}

func TestHandleOrders_Disabled(t *testing.T) {
	rt := newTestRuntime(t, providertest.New())
	require.NoError(t, rt.Orders.Close())
	rt.Orders = nil

	err := HandleOrders(rt, Args{}, io.Discard)
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
}

func TestHandleStatus_JSON(t *testing.T) {
	rt := newTestRuntime(t, providertest.New())

	var out bytes.Buffer
	require.NoError(t, HandleStatus(rt, Args{JSON: true}, &out))

	var got StatusOutput
	decodeData(t, out.Bytes(), &got)
	assert.Equal(t, "fake", got.Provider)
	assert.False(t, got.Reachable)
	assert.Equal(t, rt.Catalog.Len(), got.Dishes)
	assert.Equal(t, "built-in", got.Catalog)
	require.NotNil(t, got.Orders)
	assert.Equal(t, 0, got.Orders.Orders)
}

// =============================================================================
// CONFIG COMMAND TESTS (config.go)
// =============================================================================

func TestHandleConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	args := func(raw ...string) Args { return Args{ConfigPath: path, Raw: raw} }

	t.Run("init writes defaults once", func(t *testing.T) {
		require.NoError(t, HandleConfig(args("init"), io.Discard))
		assert.FileExists(t, path)

		err := HandleConfig(args("init"), io.Discard)
		var ce *CommandError
		require.ErrorAs(t, err, &ce)

		require.NoError(t, HandleConfig(args("init", "--force"), io.Discard))
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, HandleConfig(args("set", "search.distinct_empty_result", "true"), io.Discard))

		var out bytes.Buffer
		require.NoError(t, HandleConfig(args("get", "search.distinct_empty_result"), &out))
		assert.Equal(t, "true\n", out.String())
	})

	t.Run("set validates", func(t *testing.T) {
		err := HandleConfig(args("set", "ui.theme", "neon"), io.Discard)
		assert.Equal(t, ExitUsageError, GetExitCode(err))

		err = HandleConfig(args("set", "ui.nope", "1"), io.Discard)
		assert.Equal(t, ExitUsageError, GetExitCode(err))
	})

	t.Run("set never persists environment secrets", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-secret-key")
		require.NoError(t, HandleConfig(args("set", "ui.wheel_lines", "5"), io.Discard))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "env-secret-key")
		assert.Contains(t, string(data), "wheel_lines = 5")
	})

	t.Run("show redacts the key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-secret-key")
		var out bytes.Buffer
		require.NoError(t, HandleConfig(Args{ConfigPath: path, JSON: true, Raw: []string{"show"}}, &out))
		assert.NotContains(t, out.String(), "env-secret-key")

		var got ConfigShowOutput
		decodeData(t, out.Bytes(), &got)
		assert.Equal(t, config.BackendGemini, got.Backend)
		assert.True(t, got.Exists)
		assert.Equal(t, "[REDACTED]", got.Config.Provider.GeminiKey)
	})

	t.Run("path", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, HandleConfig(args("path"), &out))
		assert.Equal(t, path, strings.TrimSpace(out.String()))
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		err := HandleConfig(args("explode"), io.Discard)
		assert.Equal(t, ExitUsageError, GetExitCode(err))
	})
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	tests := []struct {
		name    string
		args    Args
		want    string
		wantErr bool
	}{
		{"default without key is offline", Args{ConfigPath: path}, config.BackendOffline, false},
		{"provider flag", Args{ConfigPath: path, Provider: "ollama"}, config.BackendOllama, false},
		{"offline wins", Args{ConfigPath: path, Provider: "ollama", Offline: true}, config.BackendOffline, false},
		{"bad provider", Args{ConfigPath: path, Provider: "skynet"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.args)
			if tt.wantErr {
				assert.Equal(t, ExitConfigError, GetExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Provider.EffectiveBackend())
		})
	}
}

func TestNewController_RecordsToOrderLog(t *testing.T) {
	rt := newTestRuntime(t, providertest.New())
	ctrl := rt.NewController()
	defer ctrl.Close()

	require.True(t, ctrl.AddToCart("tiramisu"))
	receipt, ok := ctrl.Checkout()
	require.True(t, ok)

	msg := ctrl.RecordCmd(receipt)()
	require.NotNil(t, msg)

	got, err := rt.Orders.Get(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, receipt.Total, got.Total)
}
