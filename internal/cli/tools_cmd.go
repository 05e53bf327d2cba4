// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tools_cmd.go - Tool listing command for agentmem.
//
// Prints the tool definitions an LLM adapter registers, with their
// parameter schemas, so integrators can see the protocol surface.
//
// Examples:
//   agentmem tools
//   agentmem tools --json
package cli

import (
	"fmt"

	"github.com/jeranaias/agentmem/internal/tools"
)

// ToolInfo is the JSON output format for one tool definition.
type ToolInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  []tools.Parameter `json:"parameters,omitempty"`
}

// HandleTools lists the registered tool definitions.
func (app *App) HandleTools(args Args) error {
	registry := tools.NewAgentRegistry(app.ToolService())

	if args.JSON {
		out := make([]ToolInfo, 0, len(registry.All()))
		for _, tool := range registry.All() {
			out = append(out, ToolInfo{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Schema.Parameters,
			})
		}
		return printJSON(out)
	}

	fmt.Println(TitleStyle.Render("Registered tools"))
	for _, tool := range registry.All() {
		fmt.Printf("%s\n  %s\n", HighlightStyle.Render(tool.Name), tool.Description)
		for _, p := range tool.Schema.Parameters {
			req := ""
			if p.Required {
				req = " (required)"
			}
			fmt.Printf("    %-12s %s%s  %s\n", p.Name, p.Type, req, DimStyle.Render(p.Description))
		}
		fmt.Println()
	}
	return nil
}
