// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"user", "assistant", "system"} {
		r, err := ParseRole(s)
		if err != nil {
			t.Errorf("ParseRole(%q) failed: %v", s, err)
		}
		if r.String() != s {
			t.Errorf("ParseRole(%q) = %q", s, r)
		}
	}

	for _, s := range []string{"", "tool", "User", "robot"} {
		if _, err := ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) should fail", s)
		}
	}
}

func TestNewMessage(t *testing.T) {
	m, err := NewMessage(RoleUser, "hello")
	if err != nil {
		t.Fatalf("NewMessage failed: %v", err)
	}
	if m.ID == "" {
		t.Error("expected generated ID")
	}
	if m.Timestamp.IsZero() {
		t.Error("expected populated timestamp")
	}
	if m.Role != RoleUser || m.Content != "hello" {
		t.Errorf("unexpected message: %+v", m)
	}

	if _, err := NewMessage(Role("tool"), "x"); err == nil {
		t.Error("NewMessage should reject roles outside the closed set")
	}
}

func TestAgentAppendMaintainsAggregates(t *testing.T) {
	a := NewAgent("coder", "be brief")

	a.Append(NewUserMessage("q1"))
	a.Append(NewAssistantMessage("a1", 100, 50, 0.002))
	a.Append(NewUserMessage("q2"))
	a.Append(NewAssistantMessage("a2", 200, 75, 0.003))

	wantTokens := 0
	wantCost := 0.0
	for _, m := range a.Messages {
		wantTokens += m.TokensIn + m.TokensOut
		wantCost += m.Cost
	}

	if a.TotalTokens != wantTokens {
		t.Errorf("TotalTokens = %d, want %d", a.TotalTokens, wantTokens)
	}
	if a.TotalCost != wantCost {
		t.Errorf("TotalCost = %v, want %v", a.TotalCost, wantCost)
	}
	if a.MessageCount() != 4 {
		t.Errorf("MessageCount = %d, want 4", a.MessageCount())
	}
}

func TestAgentClearHistory(t *testing.T) {
	a := NewAgent("coder", "be brief")
	created := a.CreatedAt
	a.Append(NewAssistantMessage("a1", 10, 10, 0.01))

	a.ClearHistory()

	if a.MessageCount() != 0 || a.TotalTokens != 0 || a.TotalCost != 0 {
		t.Errorf("ClearHistory left state behind: %+v", a.Summarize())
	}
	if a.Name != "coder" || a.SystemPrompt != "be brief" || !a.CreatedAt.Equal(created) {
		t.Error("ClearHistory must preserve name, system prompt, and creation time")
	}
}

func TestAgentClone(t *testing.T) {
	a := NewAgent("coder", "")
	a.Append(NewUserMessage("original"))

	c := a.Clone()
	c.Messages[0].Content = "mutated"
	c.Append(NewUserMessage("extra"))

	if a.Messages[0].Content != "original" {
		t.Error("mutating a clone's message leaked into the source")
	}
	if a.MessageCount() != 1 {
		t.Error("appending to a clone leaked into the source")
	}
}

func TestAgentSummarize(t *testing.T) {
	a := NewAgent("coder", "be brief")
	a.Append(NewAssistantMessage("a1", 30, 12, 0.005))

	s := a.Summarize()
	if s.Name != "coder" || s.SystemPrompt != "be brief" {
		t.Errorf("unexpected summary identity: %+v", s)
	}
	if s.MessageCount != 1 || s.TotalTokens != 42 || s.TotalCost != 0.005 {
		t.Errorf("unexpected summary figures: %+v", s)
	}
	if s.CreatedAt.IsZero() || time.Since(s.CreatedAt) < 0 {
		t.Error("summary must carry the creation time")
	}
}
