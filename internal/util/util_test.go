// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// MONEY TESTS
// =============================================================================

func TestCentsString(t *testing.T) {
	tests := []struct {
		in   Cents
		want string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{2625, "$26.25"},
		{100000, "$1,000.00"},
		{123456789, "$1,234,567.89"},
		{-1050, "-$10.50"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("Cents(%d).String() = %q, want %q", int64(tt.in), got, tt.want)
			}
		})
	}
}

func TestCentsFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want Cents
	}{
		{10, 1000},
		{24.5, 2450},
		{0.1 + 0.2, 30},
		{19.999, 2000},
	}
	for _, tt := range tests {
		if got := CentsFromFloat(tt.in); got != tt.want {
			t.Errorf("CentsFromFloat(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCentsPercent(t *testing.T) {
	tests := []struct {
		in   Cents
		p    int64
		want Cents
	}{
		{2500, 5, 125},
		{2450, 5, 123}, // 122.5 rounds up
		{1, 5, 0},
		{10, 5, 1}, // 0.5 rounds up
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := tt.in.Percent(tt.p); got != tt.want {
			t.Errorf("Cents(%d).Percent(%d) = %d, want %d", tt.in, tt.p, got, tt.want)
		}
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Risotto", 10, "Risotto"},
		{"cut", "Truffle Risotto", 10, "Truffle..."},
		{"tiny", "Truffle", 2, "Tr"},
		{"zero", "Truffle", 0, ""},
		{"wide runes", "寿司寿司寿司", 7, "寿司..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWidth(tt.in, tt.width); got != tt.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := StringWidth(PadRight("寿司", 6)); got != 6 {
		t.Errorf("padded width = %d, want 6", got)
	}
	if got := PadRight("abcdefgh", 6); got != "abc..." {
		t.Errorf("PadRight overflow = %q", got)
	}
}

func TestWrapWidth(t *testing.T) {
	got := WrapWidth("slow braised short rib with smoked garlic jus", 16)
	want := []string{"slow braised", "short rib with", "smoked garlic", "jus"}
	if len(got) != len(want) {
		t.Fatalf("WrapWidth lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	if WrapWidth("   ", 10) != nil {
		t.Error("blank input should produce no lines")
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := WriteFileAtomic(path, []byte("first"), 0o600); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o600); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("perm = %v, want 0600", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}
