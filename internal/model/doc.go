// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for agents and messages.
//
// # Key Types
//
//   - Agent: a named conversational context with ordered history and
//     running token/cost aggregates
//   - Message: one role-tagged turn with per-turn usage figures
//   - Role: closed set of message senders (user, assistant, system)
//   - Summary: fixed-shape projection of an agent for listing and stats
//
// Aggregates on Agent are maintained incrementally by Append and always
// equal the sum of the per-message contributions.
package model
