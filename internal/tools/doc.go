// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools exposes agent memory as a tool protocol for LLM adapters.
//
// This package implements the tool definitions and executor that host
// applications register with their LLM integration. All tools validate
// parameters against a declared schema before their handler runs.
//
// # Key Types
//
//   - Tool: Tool definition with name, description, and parameter schema
//   - Registry: Ordered collection of registered tools
//   - Executor: Validates parameters and runs tool handlers
//   - Result: Tool execution result with output and timing
//   - Service: Binds the agent tools to a store, price table, and recorder
//
// # Available Tools
//
// Read Tools:
//   - list_agents: Tabular listing of every agent
//   - agent_stats: Detailed statistics for one agent
//   - agent_history: Recent messages with truncated previews
//   - get_response: Message content by position, negative from the end
//
// Mutating Tools:
//   - create_agent: Create a named agent with an optional system prompt
//   - record_turn: Append one turn with measured token usage
//   - clear_agent: Reset history while keeping the agent
//   - delete_agent: Remove an agent and its history
package tools
