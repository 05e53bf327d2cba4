// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/agentmem/internal/model"
	"github.com/jeranaias/agentmem/internal/telemetry"
)

func TestTruncateContent_Rule(t *testing.T) {
	long := strings.Repeat("x", 150)
	got := TruncateContent(long)

	want := strings.Repeat("x", 97) + "..."
	if got != want {
		t.Errorf("TruncateContent = %q (%d runes), want 97 x's plus ellipsis", got, len([]rune(got)))
	}

	exact := strings.Repeat("y", 100)
	if TruncateContent(exact) != exact {
		t.Error("content at the threshold must not be truncated")
	}
}

func TestTruncateContent_DoesNotMutateStored(t *testing.T) {
	a := model.NewAgent("x", "")
	long := strings.Repeat("z", 150)
	a.Append(model.NewUserMessage(long))

	_ = RecentMessages(a, 10)

	if a.Messages[0].Content != long {
		t.Error("formatting mutated stored content")
	}
}

func TestAgentList(t *testing.T) {
	if got := AgentList(nil); got != "No agents found." {
		t.Errorf("empty list = %q", got)
	}

	summaries := []model.Summary{
		{Name: "coder", CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC), MessageCount: 4, TotalTokens: 615, TotalCost: 0.0078},
		{Name: "writer", CreatedAt: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)},
	}
	got := AgentList(summaries)

	for _, want := range []string{"coder", "writer", "2025-03-14 09:30", "615", "$0.0078", "Messages"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestAgentStats(t *testing.T) {
	s := model.Summary{
		Name:         "coder",
		SystemPrompt: "line one\nline two",
		CreatedAt:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		MessageCount: 2,
		TotalTokens:  150,
		TotalCost:    0.0021,
	}
	got := AgentStats(s)

	for _, want := range []string{"Agent: coder", "Messages:     2", "Total tokens: 150", "$0.0021", "line one line two"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q:\n%s", want, got)
		}
	}
}

func TestRecentMessages_Limit(t *testing.T) {
	a := model.NewAgent("x", "")
	for _, c := range []string{"one", "two", "three", "four"} {
		a.Append(model.NewUserMessage(c))
	}

	got := RecentMessages(a, 2)
	if strings.Contains(got, "one") || strings.Contains(got, "two") {
		t.Errorf("limit not applied:\n%s", got)
	}
	if !strings.Contains(got, "three") || !strings.Contains(got, "four") {
		t.Errorf("recent messages missing:\n%s", got)
	}

	// Most recent renders last.
	if strings.Index(got, "three") > strings.Index(got, "four") {
		t.Error("messages out of order")
	}

	empty := model.NewAgent("y", "")
	if RecentMessages(empty, 5) != "No messages." {
		t.Error("empty history should render placeholder")
	}
}

func TestTranscriptMarkdown_KeepsFullContent(t *testing.T) {
	a := model.NewAgent("x", "system here")
	long := strings.Repeat("q", 150)
	a.Append(model.NewUserMessage(long))
	a.Append(model.NewAssistantMessage("short answer", 10, 5, 0.001))

	got := TranscriptMarkdown(a)
	if !strings.Contains(got, long) {
		t.Error("transcript must carry complete content, not previews")
	}
	if !strings.Contains(got, "# Agent x") || !strings.Contains(got, "system here") {
		t.Errorf("transcript missing header fields:\n%s", got)
	}
}

func TestUsageTotals(t *testing.T) {
	if got := UsageTotals(telemetry.Totals{}); got != "No usage recorded yet" {
		t.Errorf("empty totals = %q", got)
	}

	got := UsageTotals(telemetry.Totals{Calls: 3, TokensIn: 350, TokensOut: 155, Cost: 0.0035})
	for _, want := range []string{"3 calls", "350 in", "155 out", "$0.0035"} {
		if !strings.Contains(got, want) {
			t.Errorf("totals output missing %q: %s", want, got)
		}
	}
}

func TestUsageTrends(t *testing.T) {
	tr := &telemetry.Trends{
		Days:       7,
		TotalCalls: 2,
		TotalCost:  0.005,
		Daily: []telemetry.DailyUsage{
			{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Calls: 2, Cost: 0.005},
		},
		ByProvider: map[string]float64{"anthropic": 0.003, "openai": 0.002},
		ByAgent:    map[string]float64{"coder": 0.005},
	}
	got := UsageTrends(tr)

	for _, want := range []string{"last 7 day(s)", "2025-03-14", "anthropic", "openai", "coder", "$0.0050"} {
		if !strings.Contains(got, want) {
			t.Errorf("trends output missing %q:\n%s", want, got)
		}
	}

	empty := &telemetry.Trends{Days: 3}
	if !strings.Contains(UsageTrends(empty), "No usage recorded") {
		t.Error("empty trends should render placeholder")
	}
}
