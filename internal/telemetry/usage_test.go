// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecorder_RecordAndTotals(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	records := []UsageRecord{
		{Agent: "coder", Provider: "anthropic", Model: "claude-sonnet-4-0", TokensIn: 100, TokensOut: 50, Cost: 0.001},
		{Agent: "coder", Provider: "anthropic", Model: "claude-sonnet-4-0", TokensIn: 200, TokensOut: 80, Cost: 0.002},
		{Agent: "writer", Provider: "openai", Model: "gpt-4o", TokensIn: 50, TokensOut: 25, Cost: 0.0005},
	}
	for _, rec := range records {
		if err := r.Record(rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	totals := r.Totals()
	if totals.Calls != 3 {
		t.Errorf("Calls = %d, want 3", totals.Calls)
	}
	if totals.TokensIn != 350 || totals.TokensOut != 155 {
		t.Errorf("tokens = %d/%d, want 350/155", totals.TokensIn, totals.TokensOut)
	}
	if math.Abs(totals.Cost-0.0035) > 1e-9 {
		t.Errorf("Cost = %v, want 0.0035", totals.Cost)
	}
}

func TestRecorder_FillsIDAndTimestamp(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	if err := r.Record(UsageRecord{Agent: "x", Provider: "openai", Model: "gpt-4o"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	history, err := r.History(time.Now().AddDate(0, 0, -1), time.Now())
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history len = %d, want 1", len(history))
	}
	if history[0].ID == "" || history[0].Timestamp.IsZero() {
		t.Errorf("ID/timestamp not populated: %+v", history[0])
	}
}

func TestRecorder_PersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	r, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	r.Record(UsageRecord{Agent: "coder", Provider: "openai", Model: "gpt-4o", TokensIn: 10, Cost: 0.01})

	// A fresh recorder in the same dir must keep appending to today's
	// file, not overwrite it.
	r2, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("second NewRecorder failed: %v", err)
	}
	r2.Record(UsageRecord{Agent: "coder", Provider: "openai", Model: "gpt-4o", TokensIn: 20, Cost: 0.02})

	history, err := r2.History(time.Now().AddDate(0, 0, -1), time.Now())
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("history len = %d, want 2 (restart overwrote earlier records)", len(history))
	}

	// Lifetime totals are per-process.
	if r2.Totals().Calls != 1 {
		t.Errorf("Totals.Calls = %d, want 1", r2.Totals().Calls)
	}
}

func TestRecorder_RolloverKeepsPersistedRecords(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	// Interleave days: the return to today must append to today's file,
	// not start it over.
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	for _, rec := range []UsageRecord{
		{Timestamp: now, Agent: "coder", Provider: "openai", Model: "gpt-4o", Cost: 0.01},
		{Timestamp: yesterday, Agent: "coder", Provider: "openai", Model: "gpt-4o", Cost: 0.02},
		{Timestamp: now, Agent: "coder", Provider: "openai", Model: "gpt-4o", Cost: 0.03},
	} {
		if err := r.Record(rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	history, err := r.History(now.AddDate(0, 0, -2), now)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history len = %d, want 3 (rollover dropped persisted records)", len(history))
	}

	var todayCost float64
	for _, rec := range history {
		if dayKey(rec.Timestamp) == dayKey(now) {
			todayCost += rec.Cost
		}
	}
	if math.Abs(todayCost-0.04) > 1e-9 {
		t.Errorf("today's cost = %v, want 0.04", todayCost)
	}
}

func TestRecorder_Trends(t *testing.T) {
	dir := t.TempDir()

	r, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	for _, rec := range []UsageRecord{
		{Timestamp: yesterday, Agent: "coder", Provider: "anthropic", Model: "claude-sonnet-4-0", TokensIn: 100, TokensOut: 50, Cost: 0.004},
		{Timestamp: now, Agent: "coder", Provider: "anthropic", Model: "claude-sonnet-4-0", TokensIn: 100, TokensOut: 50, Cost: 0.001},
		{Timestamp: now, Agent: "writer", Provider: "openai", Model: "gpt-4o", TokensIn: 40, TokensOut: 20, Cost: 0.002},
	} {
		if err := r.Record(rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	trends, err := r.Trends(7)
	if err != nil {
		t.Fatalf("Trends failed: %v", err)
	}

	if trends.TotalCalls != 3 {
		t.Errorf("TotalCalls = %d, want 3", trends.TotalCalls)
	}
	if math.Abs(trends.TotalCost-0.007) > 1e-9 {
		t.Errorf("TotalCost = %v, want 0.007", trends.TotalCost)
	}
	if len(trends.Daily) != 2 {
		t.Fatalf("Daily len = %d, want 2", len(trends.Daily))
	}
	if !trends.Daily[0].Date.Before(trends.Daily[1].Date) {
		t.Error("Daily not sorted by date")
	}
	if math.Abs(trends.ByProvider["anthropic"]-0.005) > 1e-9 {
		t.Errorf("ByProvider[anthropic] = %v, want 0.005", trends.ByProvider["anthropic"])
	}
	if math.Abs(trends.ByAgent["writer"]-0.002) > 1e-9 {
		t.Errorf("ByAgent[writer] = %v, want 0.002", trends.ByAgent["writer"])
	}
}

func TestUsageStorage_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte("[]"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	history, err := r.History(time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("foreign file treated as usage data: %d records", len(history))
	}
}
