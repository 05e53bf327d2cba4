// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// agent_cmd.go - Agent management CLI commands for agentmem.
//
// CLI: Comprehensive help and examples for all commands
//
// Commands:
//   agents (default)    List all agents (aliases: list, ls)
//   create <name>       Create a new agent
//   show <name>         Show agent statistics
//   history <name>      Show recent messages
//   response <name> [i] Print one message's content
//   record <name> <role> <content...>  Append a turn
//   clear <name>        Clear history (requires --confirm)
//   delete <name>       Delete the agent (requires --confirm)
//
// Examples:
//   agentmem create coder --prompt "You are a terse Go reviewer."
//   agentmem record coder assistant "Done." --tokens-in 812 --tokens-out 204 \
//       --provider anthropic --model claude-sonnet-4-0
//   agentmem history coder --limit 5
//   agentmem response coder -1
//   agentmem delete coder --confirm
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jeranaias/agentmem/internal/format"
	"github.com/jeranaias/agentmem/internal/model"
	"github.com/jeranaias/agentmem/internal/store"
	"github.com/jeranaias/agentmem/internal/telemetry"
)

// =============================================================================
// AGENT LIST
// =============================================================================

// AgentListOutput is the JSON output format for the agent list.
type AgentListOutput struct {
	Agents []model.Summary `json:"agents"`
	Count  int             `json:"count"`
}

// HandleAgents lists all agents.
func (app *App) HandleAgents(args Args) error {
	summaries := app.Store.Summaries()

	if args.JSON {
		return printJSON(AgentListOutput{Agents: summaries, Count: len(summaries)})
	}

	if len(summaries) == 0 {
		fmt.Println(DimStyle.Render("No agents yet. Create one with: agentmem create <name>"))
		return nil
	}

	fmt.Println(TitleStyle.Render("Agents"))
	fmt.Print(format.AgentList(summaries))
	return nil
}

// =============================================================================
// AGENT CREATE
// =============================================================================

// HandleCreate creates a new agent.
func (app *App) HandleCreate(args Args) error {
	parser := NewArgParser(args.Raw)
	name := parser.Positional(0)
	if name == "" {
		return fmt.Errorf("agent name is required\nUsage: agentmem create <name> [--prompt TEXT]")
	}

	a, err := app.Store.CreateAgent(name, parser.Flag("prompt"))
	if err != nil {
		return err
	}

	if args.JSON {
		return printJSON(a.Summarize())
	}
	if !args.Quiet {
		fmt.Println(SuccessStyle.Render("Created agent ") + a.Name)
	}
	return nil
}

// =============================================================================
// AGENT SHOW
// =============================================================================

// HandleShow prints detailed statistics for one agent.
func (app *App) HandleShow(args Args) error {
	parser := NewArgParser(args.Raw)
	name := parser.Positional(0)
	if name == "" {
		return fmt.Errorf("agent name is required\nUsage: agentmem show <name>")
	}

	a, ok := app.Store.GetAgent(name)
	if !ok {
		return fmt.Errorf("%w: %q", store.ErrAgentNotFound, name)
	}

	if args.JSON {
		return printJSON(a.Summarize())
	}
	fmt.Print(format.AgentStats(a.Summarize()))
	return nil
}

// =============================================================================
// AGENT HISTORY
// =============================================================================

// HandleHistory shows an agent's recent messages, or the full transcript
// with --full.
func (app *App) HandleHistory(args Args) error {
	parser := NewArgParser(args.Raw)
	name := parser.Positional(0)
	if name == "" {
		return fmt.Errorf("agent name is required\nUsage: agentmem history <name> [--limit N] [--full]")
	}

	a, ok := app.Store.GetAgent(name)
	if !ok {
		return fmt.Errorf("%w: %q", store.ErrAgentNotFound, name)
	}

	if args.JSON {
		return printJSON(a)
	}
	if parser.BoolFlag("full") {
		fmt.Print(format.TranscriptMarkdown(a))
		return nil
	}

	limit := parser.FlagIntOrDefault("limit", app.Config.Output.HistoryLimit)
	fmt.Print(format.RecentMessages(a, limit))
	return nil
}

// =============================================================================
// AGENT RESPONSE
// =============================================================================

// HandleResponse prints one message's content by position. The index is the
// optional second positional argument; it defaults to -1, the most recent
// message, and negative values count back from the end.
func (app *App) HandleResponse(args Args) error {
	parser := NewArgParser(args.Raw)
	name := parser.Positional(0)
	if name == "" {
		return fmt.Errorf("agent name is required\nUsage: agentmem response <name> [index]")
	}

	// Negative indexes parse as flags ("-1" looks like a flag), so read the
	// index from the raw arguments instead of the positional list.
	index := -1
	if len(args.Raw) > 1 {
		parsed, err := strconv.Atoi(args.Raw[1])
		if err != nil {
			return fmt.Errorf("invalid index %q", args.Raw[1])
		}
		index = parsed
	}

	content, err := app.Store.Response(name, index)
	if err != nil {
		return err
	}

	fmt.Println(content)
	return nil
}

// =============================================================================
// AGENT RECORD
// =============================================================================

// HandleRecord appends one turn to an agent's history. Cost comes from the
// price table unless --cost overrides it, and the turn is mirrored into the
// usage recorder when telemetry is enabled.
func (app *App) HandleRecord(args Args) error {
	parser := NewArgParser(args.Raw)
	name := parser.Positional(0)
	roleArg := parser.Positional(1)
	content := JoinPositionalArgs(parser, 2)
	if name == "" || roleArg == "" || content == "" {
		return fmt.Errorf("usage: agentmem record <name> <role> <content...>")
	}

	role, err := model.ParseRole(roleArg)
	if err != nil {
		return err
	}

	tokensIn := parser.FlagIntOrDefault("tokens-in", 0)
	tokensOut := parser.FlagIntOrDefault("tokens-out", 0)
	provider := parser.Flag("provider")
	modelID := parser.Flag("model")

	cost := app.Prices.Cost(provider, modelID, tokensIn, tokensOut)
	if parser.HasFlag("cost") {
		cost = parser.FlagFloatOrDefault("cost", cost)
	}

	if err := app.Store.AppendMessage(name, role, content, tokensIn, tokensOut, cost); err != nil {
		return err
	}

	// Telemetry failures never undo a recorded turn.
	if app.Usage != nil {
		_ = app.Usage.Record(telemetry.UsageRecord{
			Timestamp:  time.Now(),
			Agent:      name,
			Provider:   provider,
			Model:      modelID,
			TokensIn:   tokensIn,
			TokensOut:  tokensOut,
			Cost:       cost,
			DurationMs: int64(parser.FlagIntOrDefault("duration-ms", 0)),
		})
	}

	if !args.Quiet {
		fmt.Printf("%s %s turn for %s (%d in / %d out tokens, $%.4f)\n",
			SuccessStyle.Render("Recorded"), role, name, tokensIn, tokensOut, cost)
	}
	return nil
}

// =============================================================================
// AGENT CLEAR / DELETE
// =============================================================================

// HandleClear clears an agent's history after confirmation.
func (app *App) HandleClear(args Args) error {
	parser := NewArgParser(args.Raw)
	name := parser.Positional(0)
	if name == "" {
		return fmt.Errorf("agent name is required\nUsage: agentmem clear <name> --confirm")
	}
	if !parser.BoolFlag("confirm") {
		return fmt.Errorf("clearing history is irreversible; re-run with --confirm")
	}

	if err := app.Store.ClearHistory(name); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Println(SuccessStyle.Render("Cleared history for agent ") + name)
	}
	return nil
}

// HandleDelete deletes an agent after confirmation.
func (app *App) HandleDelete(args Args) error {
	parser := NewArgParser(args.Raw)
	name := parser.Positional(0)
	if name == "" {
		return fmt.Errorf("agent name is required\nUsage: agentmem delete <name> --confirm")
	}
	if !parser.BoolFlag("confirm") {
		return fmt.Errorf("deleting an agent is irreversible; re-run with --confirm")
	}

	if err := app.Store.DeleteAgent(name); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Println(SuccessStyle.Render("Deleted agent ") + name)
	}
	return nil
}

// =============================================================================
// JSON OUTPUT
// =============================================================================

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
