// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pricing computes per-call monetary cost from token counts.
package pricing

import (
	"sort"
	"sync"
)

// =============================================================================
// MODEL PRICE
// =============================================================================

// ModelPrice holds input and output prices per million tokens in dollars.
// Input and output are looked up independently.
type ModelPrice struct {
	Input  float64 // Dollars per 1M input tokens
	Output float64 // Dollars per 1M output tokens
}

// =============================================================================
// PRICE TABLE
// =============================================================================

// Table maps provider and model identifiers to prices. All cost computation
// funnels through a Table, so a single table update changes every cost
// consistently.
//
// Cost tracking is best-effort telemetry, not a billing path: unknown
// providers and models cost zero rather than failing.
type Table struct {
	mu     sync.RWMutex
	prices map[string]map[string]ModelPrice // provider -> model -> price
}

// Default returns a table loaded with the static provider price lists.
func Default() *Table {
	prices := make(map[string]map[string]ModelPrice, len(defaultPrices))
	for provider, models := range defaultPrices {
		m := make(map[string]ModelPrice, len(models))
		for id, p := range models {
			m[id] = p
		}
		prices[provider] = m
	}
	return &Table{prices: prices}
}

// Cost computes the dollar cost for a model round-trip. The function is
// pure apart from the table lookup: no state changes, no side effects.
func (t *Table) Cost(provider, model string, tokensIn, tokensOut int) float64 {
	p, ok := t.Lookup(provider, model)
	if !ok {
		return 0
	}
	inputCost := float64(tokensIn) / 1_000_000 * p.Input
	outputCost := float64(tokensOut) / 1_000_000 * p.Output
	return inputCost + outputCost
}

// Lookup returns the price entry for a provider/model pair.
func (t *Table) Lookup(provider, model string) (ModelPrice, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	models, ok := t.prices[provider]
	if !ok {
		return ModelPrice{}, false
	}
	p, ok := models[model]
	return p, ok
}

// SetOverride installs or replaces the price for a provider/model pair.
// Used by the config layer to apply operator price updates at runtime.
func (t *Table) SetOverride(provider, model string, price ModelPrice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	models, ok := t.prices[provider]
	if !ok {
		models = make(map[string]ModelPrice)
		t.prices[provider] = models
	}
	models[model] = price
}

// Providers returns the known provider names, sorted.
func (t *Table) Providers() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.prices))
	for p := range t.prices {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Models returns the known model identifiers for a provider, sorted.
func (t *Table) Models(provider string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	models := t.prices[provider]
	out := make([]string, 0, len(models))
	for id := range models {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
