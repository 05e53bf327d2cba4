// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"empty string", "", 10, ""},
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"max of three", "hello", 3, "hel"},
		{"unicode safe", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.input, tt.maxRunes)
			if got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes_HundredCharRule(t *testing.T) {
	// 150 identical characters truncated to 100 must yield exactly 97
	// characters plus "...".
	content := strings.Repeat("x", 150)
	got := TruncateRunes(content, 100)

	if len([]rune(got)) != 100 {
		t.Errorf("truncated length = %d runes, want 100", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated string should end with ellipsis")
	}
	if got[:97] != strings.Repeat("x", 97) {
		t.Error("truncated string should keep the first 97 characters")
	}
}

func TestPadDisplay(t *testing.T) {
	if got := PadDisplay("ab", 5); got != "ab   " {
		t.Errorf("PadDisplay(\"ab\", 5) = %q", got)
	}
	if got := PadDisplay("abcdef", 3); got != "abcdef" {
		t.Errorf("PadDisplay should not shorten, got %q", got)
	}
	// CJK characters are double-width.
	if got := PadDisplay("世界", 6); got != "世界  " {
		t.Errorf("PadDisplay(\"世界\", 6) = %q", got)
	}
}

func TestFlatten(t *testing.T) {
	if got := Flatten("a\nb\r\nc"); got != "a b c" {
		t.Errorf("Flatten = %q, want %q", got, "a b c")
	}
}

func TestNumberFormatting(t *testing.T) {
	if got := IntToString(1234); got != "1234" {
		t.Errorf("IntToString(1234) = %q", got)
	}
	if got := FloatToStringPrec(0.0105, 4); got != "0.0105" {
		t.Errorf("FloatToStringPrec(0.0105, 4) = %q", got)
	}
	if got := FloatToStringPrec(2.0, 2); got != "2.00" {
		t.Errorf("FloatToStringPrec(2.0, 2) = %q", got)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "data.json")

	if err := AtomicWriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}

	// Overwrite must replace the old content completely.
	if err := AtomicWriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("content after overwrite = %q, want %q", data, "v2")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}
