// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reelmenu.log")
	l, err := New(Options{Path: path, Level: "info"})
	require.NoError(t, err)

	l.Named("enrich").Info("enrichment ready", zap.String("key", "risotto/image"))
	l.Debug("filtered out")
	require.NoError(t, l.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 1)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "enrichment ready", lines[0]["message"])
	assert.Equal(t, "reelmenu.enrich", lines[0]["logger"])
	assert.Equal(t, "risotto/image", lines[0]["key"])
	assert.Contains(t, lines[0], "timestamp")
}

func TestNew_ConsoleTee(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "reelmenu.log")
	l, err := New(Options{Path: path, Level: "debug", Console: &console})
	require.NoError(t, err)

	l.Debug("card focused", zap.String("item", "tiramisu"))
	require.NoError(t, l.Close())

	assert.Contains(t, console.String(), "card focused")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "card focused")
}

func TestNew_NoSinksIsNop(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	l.Info("dropped")
	assert.NoError(t, l.Close())
}
