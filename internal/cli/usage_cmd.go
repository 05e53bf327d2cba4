// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// usage_cmd.go - Usage telemetry CLI commands for agentmem.
//
// Commands:
//   usage               Totals for turns recorded by this process's day file
//   usage trends        Daily, per-provider, per-agent breakdown
//     --days N          Trailing days to aggregate (default: 7)
//
// Examples:
//   agentmem usage
//   agentmem usage trends --days 30
//   agentmem usage trends --json
package cli

import (
	"fmt"

	"github.com/jeranaias/agentmem/internal/format"
)

// HandleUsage prints usage telemetry.
func (app *App) HandleUsage(args Args) error {
	if app.Usage == nil {
		return fmt.Errorf("usage telemetry is disabled (set usage.enabled = true)")
	}

	parser := NewArgParser(args.Raw)
	switch parser.Subcommand() {
	case "", "totals":
		totals := app.Usage.Totals()
		if args.JSON {
			return printJSON(totals)
		}
		fmt.Println(format.UsageTotals(totals))
		return nil

	case "trends":
		days := parser.FlagIntOrDefault("days", 7)
		if days < 1 {
			return fmt.Errorf("--days must be at least 1, got %d", days)
		}
		trends, err := app.Usage.Trends(days)
		if err != nil {
			return err
		}
		if args.JSON {
			return printJSON(trends)
		}
		fmt.Print(format.UsageTrends(trends))
		return nil

	default:
		return fmt.Errorf("unknown usage subcommand: %s\nUsage: agentmem usage [trends]", parser.Subcommand())
	}
}
