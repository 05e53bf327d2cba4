// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import (
	"math"
	"testing"
)

func TestCost_KnownModel(t *testing.T) {
	tbl := Default()

	// claude-sonnet-4-0: $3/M input, $15/M output.
	got := tbl.Cost("anthropic", "claude-sonnet-4-0", 1_000_000, 1_000_000)
	if math.Abs(got-18.0) > 1e-9 {
		t.Errorf("Cost = %v, want 18.0", got)
	}

	// Input and output are priced independently.
	inOnly := tbl.Cost("anthropic", "claude-sonnet-4-0", 500_000, 0)
	if math.Abs(inOnly-1.5) > 1e-9 {
		t.Errorf("input-only Cost = %v, want 1.5", inOnly)
	}
	outOnly := tbl.Cost("anthropic", "claude-sonnet-4-0", 0, 500_000)
	if math.Abs(outOnly-7.5) > 1e-9 {
		t.Errorf("output-only Cost = %v, want 7.5", outOnly)
	}
}

func TestCost_UnknownModelYieldsZero(t *testing.T) {
	tbl := Default()

	if got := tbl.Cost("anthropic", "claude-next-experimental", 1000, 1000); got != 0 {
		t.Errorf("unknown model should cost zero, got %v", got)
	}
	if got := tbl.Cost("nonexistent-provider", "gpt-4o", 1000, 1000); got != 0 {
		t.Errorf("unknown provider should cost zero, got %v", got)
	}
}

func TestCost_ZeroTokens(t *testing.T) {
	tbl := Default()
	if got := tbl.Cost("openai", "gpt-4o", 0, 0); got != 0 {
		t.Errorf("zero tokens should cost zero, got %v", got)
	}
}

func TestSetOverride(t *testing.T) {
	tbl := Default()

	tbl.SetOverride("openai", "gpt-4o", ModelPrice{Input: 1.00, Output: 2.00})
	got := tbl.Cost("openai", "gpt-4o", 1_000_000, 1_000_000)
	if math.Abs(got-3.0) > 1e-9 {
		t.Errorf("Cost after override = %v, want 3.0", got)
	}

	// Overrides may introduce new providers and models.
	tbl.SetOverride("local", "llama3", ModelPrice{})
	if _, ok := tbl.Lookup("local", "llama3"); !ok {
		t.Error("override for new provider should be visible")
	}
	if got := tbl.Cost("local", "llama3", 5000, 5000); got != 0 {
		t.Errorf("free local model should cost zero, got %v", got)
	}
}

func TestOverrideDoesNotLeakAcrossTables(t *testing.T) {
	a := Default()
	b := Default()

	a.SetOverride("openai", "gpt-4o", ModelPrice{Input: 99, Output: 99})

	p, ok := b.Lookup("openai", "gpt-4o")
	if !ok {
		t.Fatal("default entry missing")
	}
	if p.Input == 99 {
		t.Error("override on one table mutated another")
	}
}

func TestProvidersAndModels(t *testing.T) {
	tbl := Default()

	providers := tbl.Providers()
	if len(providers) < 4 {
		t.Fatalf("Providers = %v, want at least 4", providers)
	}
	for i := 1; i < len(providers); i++ {
		if providers[i-1] >= providers[i] {
			t.Errorf("Providers not sorted: %v", providers)
		}
	}

	models := tbl.Models("anthropic")
	if len(models) == 0 {
		t.Fatal("no anthropic models")
	}
	found := false
	for _, m := range models {
		if m == "claude-sonnet-4-0" {
			found = true
		}
	}
	if !found {
		t.Errorf("claude-sonnet-4-0 missing from %v", models)
	}

	if got := tbl.Models("nonexistent"); len(got) != 0 {
		t.Errorf("Models for unknown provider = %v, want empty", got)
	}
}
