// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/agentmem/internal/format"
	"github.com/jeranaias/agentmem/internal/model"
	"github.com/jeranaias/agentmem/internal/pricing"
	"github.com/jeranaias/agentmem/internal/store"
	"github.com/jeranaias/agentmem/internal/telemetry"
)

// =============================================================================
// SERVICE
// =============================================================================

// Service binds the agent tools to their collaborators. Constructed at
// process start and passed in explicitly; there is no package-level store.
type Service struct {
	Store  *store.Store
	Prices *pricing.Table

	// Usage is optional; a nil recorder disables telemetry.
	Usage *telemetry.Recorder
}

// RegisterAgentTools registers the agent management tools on a registry.
func RegisterAgentTools(r *Registry, svc *Service) {
	r.Register(svc.listAgentsTool())
	r.Register(svc.createAgentTool())
	r.Register(svc.agentStatsTool())
	r.Register(svc.agentHistoryTool())
	r.Register(svc.getResponseTool())
	r.Register(svc.recordTurnTool())
	r.Register(svc.clearAgentTool())
	r.Register(svc.deleteAgentTool())
}

// NewAgentRegistry builds a registry carrying the agent tools.
func NewAgentRegistry(svc *Service) *Registry {
	r := NewRegistry()
	RegisterAgentTools(r, svc)
	return r
}

// =============================================================================
// READ TOOLS
// =============================================================================

func (svc *Service) listAgentsTool() *Tool {
	return &Tool{
		Name:        "list_agents",
		Description: "List all agents with message counts, token totals, and cost.",
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			return format.AgentList(svc.Store.Summaries()), nil
		},
	}
}

func (svc *Service) agentStatsTool() *Tool {
	return &Tool{
		Name:        "agent_stats",
		Description: "Show detailed statistics for one agent.",
		Schema: Schema{Parameters: []Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Agent name"},
		}},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			name := stringParam(params, "name")
			a, ok := svc.Store.GetAgent(name)
			if !ok {
				return "", fmt.Errorf("%w: %q", store.ErrAgentNotFound, name)
			}
			return format.AgentStats(a.Summarize()), nil
		},
	}
}

func (svc *Service) agentHistoryTool() *Tool {
	return &Tool{
		Name:        "agent_history",
		Description: "Show an agent's recent messages with truncated previews.",
		Schema: Schema{Parameters: []Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Agent name"},
			{Name: "limit", Type: "integer", Required: false, Default: 10, Description: "Messages to show"},
		}},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			name := stringParam(params, "name")
			a, ok := svc.Store.GetAgent(name)
			if !ok {
				return "", fmt.Errorf("%w: %q", store.ErrAgentNotFound, name)
			}
			return format.RecentMessages(a, intParam(params, "limit")), nil
		},
	}
}

func (svc *Service) getResponseTool() *Tool {
	return &Tool{
		Name:        "get_response",
		Description: "Return the content of a message by position; -1 is the most recent.",
		Schema: Schema{Parameters: []Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Agent name"},
			{Name: "index", Type: "integer", Required: false, Default: -1, Description: "Message position"},
		}},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			return svc.Store.Response(stringParam(params, "name"), intParam(params, "index"))
		},
	}
}

// =============================================================================
// MUTATING TOOLS
// =============================================================================

func (svc *Service) createAgentTool() *Tool {
	return &Tool{
		Name:        "create_agent",
		Description: "Create a named agent with an optional system prompt.",
		Schema: Schema{Parameters: []Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Unique agent name"},
			{Name: "system_prompt", Type: "string", Required: false, Description: "System prompt, immutable after creation"},
		}},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			name := stringParam(params, "name")
			a, err := svc.Store.CreateAgent(name, stringParam(params, "system_prompt"))
			if err != nil {
				return "", err
			}
			return "Created agent " + a.Name, nil
		},
	}
}

// recordTurnTool is the append path the LLM adapters call after each
// successful model round-trip.
func (svc *Service) recordTurnTool() *Tool {
	return &Tool{
		Name:        "record_turn",
		Description: "Append one turn to an agent's history with measured token usage.",
		Schema: Schema{Parameters: []Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Agent name"},
			{Name: "role", Type: "string", Required: true, Enum: []string{"user", "assistant", "system"}, Description: "Turn role"},
			{Name: "content", Type: "string", Required: true, Description: "Turn content"},
			{Name: "tokens_in", Type: "integer", Required: false, Default: 0, Description: "Measured input tokens"},
			{Name: "tokens_out", Type: "integer", Required: false, Default: 0, Description: "Measured output tokens"},
			{Name: "provider", Type: "string", Required: false, Description: "Provider for cost lookup"},
			{Name: "model", Type: "string", Required: false, Description: "Model for cost lookup"},
			{Name: "cost", Type: "number", Required: false, Description: "Explicit cost, overrides the price table"},
			{Name: "duration_ms", Type: "integer", Required: false, Default: 0, Description: "Round-trip duration"},
		}},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			name := stringParam(params, "name")
			role := model.Role(stringParam(params, "role"))
			tokensIn := intParam(params, "tokens_in")
			tokensOut := intParam(params, "tokens_out")
			provider := stringParam(params, "provider")
			modelID := stringParam(params, "model")

			cost := floatParam(params, "cost")
			if _, ok := params["cost"]; !ok {
				cost = svc.Prices.Cost(provider, modelID, tokensIn, tokensOut)
			}

			err := svc.Store.AppendMessage(name, role, stringParam(params, "content"), tokensIn, tokensOut, cost)
			if err != nil {
				return "", err
			}

			// Telemetry is best-effort: a failed write never undoes a
			// turn that already reached the store.
			if svc.Usage != nil {
				_ = svc.Usage.Record(telemetry.UsageRecord{
					Timestamp:  time.Now(),
					Agent:      name,
					Provider:   provider,
					Model:      modelID,
					TokensIn:   tokensIn,
					TokensOut:  tokensOut,
					Cost:       cost,
					DurationMs: int64(intParam(params, "duration_ms")),
				})
			}

			return fmt.Sprintf("Recorded %s turn for %s (%d in / %d out tokens, $%.4f)",
				role, name, tokensIn, tokensOut, cost), nil
		},
	}
}

func (svc *Service) clearAgentTool() *Tool {
	return &Tool{
		Name:        "clear_agent",
		Description: "Clear an agent's history and aggregates, keeping the agent.",
		Schema: Schema{Parameters: []Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Agent name"},
		}},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			name := stringParam(params, "name")
			if err := svc.Store.ClearHistory(name); err != nil {
				return "", err
			}
			return "Cleared history for agent " + name, nil
		},
	}
}

func (svc *Service) deleteAgentTool() *Tool {
	return &Tool{
		Name:        "delete_agent",
		Description: "Delete an agent and its history entirely.",
		Schema: Schema{Parameters: []Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Agent name"},
		}},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			name := stringParam(params, "name")
			if err := svc.Store.DeleteAgent(name); err != nil {
				return "", err
			}
			return "Deleted agent " + name, nil
		},
	}
}
