// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"
)

// =============================================================================
// AGENT TYPE
// =============================================================================

// Agent is a named, durable conversational context. Messages are append-only
// from the outside; truncation happens only through an explicit clear.
type Agent struct {
	// Identity
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Ordered history. Insertion order is also temporal order.
	Messages []*Message `json:"messages"`

	// Running aggregates. Invariant: always equal to the sum over Messages
	// of their per-message contributions.
	TotalTokens int     `json:"total_tokens"`
	TotalCost   float64 `json:"total_cost"`
}

// NewAgent creates an agent with an empty history and zero aggregates.
func NewAgent(name, systemPrompt string) *Agent {
	return &Agent{
		Name:         name,
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now(),
		Messages:     make([]*Message, 0),
	}
}

// MessageCount returns the number of messages in the agent's history.
func (a *Agent) MessageCount() int {
	return len(a.Messages)
}

// Append adds a message and updates the aggregates in the same step so the
// two can never be observed out of sync on a copy handed to a caller.
func (a *Agent) Append(m *Message) {
	a.Messages = append(a.Messages, m)
	a.TotalTokens += m.TotalTokens()
	a.TotalCost += m.Cost
}

// ClearHistory resets messages and aggregates, preserving name, system
// prompt, and creation time.
func (a *Agent) ClearHistory() {
	a.Messages = make([]*Message, 0)
	a.TotalTokens = 0
	a.TotalCost = 0
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate state behind the store's lock.
func (a *Agent) Clone() *Agent {
	dst := &Agent{
		Name:         a.Name,
		SystemPrompt: a.SystemPrompt,
		CreatedAt:    a.CreatedAt,
		Messages:     make([]*Message, len(a.Messages)),
		TotalTokens:  a.TotalTokens,
		TotalCost:    a.TotalCost,
	}
	for i, m := range a.Messages {
		msg := *m
		dst.Messages[i] = &msg
	}
	return dst
}

// Summarize projects the agent into a fixed-shape summary for listing and
// stats display.
func (a *Agent) Summarize() Summary {
	return Summary{
		Name:         a.Name,
		SystemPrompt: a.SystemPrompt,
		CreatedAt:    a.CreatedAt,
		MessageCount: len(a.Messages),
		TotalTokens:  a.TotalTokens,
		TotalCost:    a.TotalCost,
	}
}

// =============================================================================
// SUMMARY TYPE
// =============================================================================

// Summary is the fixed-shape projection of an agent's state surfaced to
// listing and stats callers. Formatting code works from this type only, so
// it cannot reference a field the store did not populate.
type Summary struct {
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
	TotalTokens  int       `json:"total_tokens"`
	TotalCost    float64   `json:"total_cost"`
}
