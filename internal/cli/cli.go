// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for agentmem.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdAgents Command = iota
	CmdCreate
	CmdShow
	CmdHistory
	CmdResponse
	CmdRecord
	CmdClear
	CmdDelete
	CmdUsage
	CmdTools
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	JSON       bool   // Output in JSON format
	ConfigFile string // Alternate config file path

	// Command-specific
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `agentmem - conversation memory for named LLM agents

Agentmem keeps per-agent message history with token and cost accounting,
so tool-using LLM adapters can create agents, record turns, and read
responses back.

Usage:
  agentmem                        List agents (default)
  agentmem agents                 List agents (aliases: list, ls)
  agentmem create <name>          Create a new agent
    --prompt TEXT                 System prompt, immutable after creation
  agentmem show <name>            Show agent statistics
  agentmem history <name>         Show recent messages
    --limit N                     Messages to show (default from config)
    --full                        Full transcript as Markdown
  agentmem response <name> [i]    Print one message's content
                                  i counts from 0; negative counts from the
                                  end (-1 = most recent, the default)
  agentmem record <name> <role> <content...>
                                  Append a turn to an agent's history
    --tokens-in N                 Measured input tokens
    --tokens-out N                Measured output tokens
    --provider P --model M        Cost lookup against the price table
    --cost C                      Explicit cost, overrides the lookup
    --duration-ms N               Round-trip duration for telemetry
  agentmem clear <name> --confirm   Clear history, keep the agent
  agentmem delete <name> --confirm  Delete the agent entirely
  agentmem usage [trends]         Usage telemetry totals
    --days N                      Trailing days for trends (default: 7)
  agentmem tools                  List the tool definitions adapters register
  agentmem config [show|set|path|keys]
  agentmem version                Show version information
  agentmem help                   Show this help

Global Flags:
  --config PATH   Use an alternate config file
  --json          Output in JSON format
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Examples:
  # Create an agent and record a conversation turn
  agentmem create coder --prompt "You are a terse Go reviewer."
  agentmem record coder user "Review storage.go for races"
  agentmem record coder assistant "Two issues found..." \
      --tokens-in 812 --tokens-out 204 --provider anthropic --model claude-sonnet-4-0

  # Inspect history and cost
  agentmem show coder
  agentmem history coder --limit 5
  agentmem response coder           Print the latest message
  agentmem response coder -2        Print the one before it

  # Telemetry
  agentmem usage                    Totals across recorded turns
  agentmem usage trends --days 30   Daily, per-provider, per-agent breakdown

  # Configuration
  agentmem config show
  agentmem config set storage.backend sqlite

Environment:
  AGENTMEM_HOME       Override the data directory (~/.agentmem)
  AGENTMEM_BACKEND    Override storage.backend (file, sqlite, memory)
  NO_COLOR            Disable colored output

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("agentmem version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to listing agents
	if len(remaining) == 0 {
		return CmdAgents, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	if len(remaining) > 0 {
		parsedArgs.Subcommand = remaining[0]
	}

	switch cmd {
	case "agents", "list", "ls":
		return CmdAgents, parsedArgs

	case "create", "new":
		return CmdCreate, parsedArgs

	case "show", "stats":
		return CmdShow, parsedArgs

	case "history", "log":
		return CmdHistory, parsedArgs

	case "response", "resp":
		return CmdResponse, parsedArgs

	case "record", "append":
		return CmdRecord, parsedArgs

	case "clear":
		return CmdClear, parsedArgs

	case "delete", "rm":
		return CmdDelete, parsedArgs

	case "usage", "cost":
		return CmdUsage, parsedArgs

	case "tools":
		return CmdTools, parsedArgs

	case "config":
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: restore it so the help path can name it
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigFile = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--config=") {
				parsedArgs.ConfigFile = strings.TrimPrefix(arg, "--config=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}
