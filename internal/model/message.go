// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for agents and messages.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message. The set is closed: a message
// carries exactly one of the constants below, never free text.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// ParseRole converts a string to a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q (want user, assistant, or system)", s)
	}
	return r, nil
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single turn in an agent's history.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Per-turn usage. Zero for non-billable turns.
	TokensIn  int     `json:"tokens_in,omitempty"`
	TokensOut int     `json:"tokens_out,omitempty"`
	Cost      float64 `json:"cost,omitempty"`
}

// NewMessage creates a new message with a generated ID and timestamp.
// The role must be one of the closed set.
func NewMessage(role Role, content string) (*Message, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q (want user, assistant, or system)", role)
	}
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}, nil
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	m, _ := NewMessage(RoleUser, content)
	return m
}

// NewAssistantMessage creates a new assistant message carrying the measured
// usage for the model round-trip that produced it.
func NewAssistantMessage(content string, tokensIn, tokensOut int, cost float64) *Message {
	m, _ := NewMessage(RoleAssistant, content)
	m.TokensIn = tokensIn
	m.TokensOut = tokensOut
	m.Cost = cost
	return m
}

// TotalTokens returns the combined input and output tokens for this turn.
func (m *Message) TotalTokens() int {
	return m.TokensIn + m.TokensOut
}
