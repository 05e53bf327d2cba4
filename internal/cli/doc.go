// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for agentmem.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global flags
//   - ArgParser: Unified flag/positional parsing shared by all commands
//   - App: Wired store, price table, and usage recorder for handlers
//
// # Usage
//
// Parse and execute commands:
//
//	os.Exit(cli.Run())
//
// # Commands Overview
//
// Agent Commands:
//   - agents: List all agents
//   - create / show / history / response: Inspect agents
//   - record: Append a turn with token usage
//   - clear / delete: Destructive operations, gated on --confirm
//
// Supporting Commands:
//   - usage: Telemetry totals and trends
//   - tools: Print the tool definitions adapters register
//   - config: Configuration management
//
// Most commands support the --json flag for machine-readable output.
package cli
