// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format renders agent state into human-readable summaries.
package format

import (
	"strings"
	"time"

	"github.com/jeranaias/agentmem/internal/model"
	"github.com/jeranaias/agentmem/internal/telemetry"
	"github.com/jeranaias/agentmem/internal/util"
)

// ContentPreviewLen is the display threshold for message content: anything
// longer renders as the first 97 runes plus "...". Purely presentational;
// stored content is never touched.
const ContentPreviewLen = 100

// TruncateContent applies the preview rule to message content.
func TruncateContent(content string) string {
	return util.TruncateRunes(content, ContentPreviewLen)
}

// =============================================================================
// LIST VIEW
// =============================================================================

// AgentList formats agent summaries as a table.
func AgentList(summaries []model.Summary) string {
	if len(summaries) == 0 {
		return "No agents found."
	}

	var sb strings.Builder
	sb.WriteString("Agents:\n")
	sb.WriteString("--------------------------------------------------------------------\n")
	sb.WriteString(util.PadDisplay("Name", 20) + " " +
		util.PadDisplay("Created", 17) + " " +
		util.PadDisplay("Messages", 8) + " " +
		util.PadDisplay("Tokens", 10) + " " +
		"Cost\n")
	sb.WriteString("--------------------------------------------------------------------\n")

	for _, s := range summaries {
		sb.WriteString(util.PadDisplay(util.TruncateRunes(s.Name, 20), 20) + " " +
			util.PadDisplay(s.CreatedAt.Format("2006-01-02 15:04"), 17) + " " +
			util.PadDisplay(util.IntToString(s.MessageCount), 8) + " " +
			util.PadDisplay(util.IntToString(s.TotalTokens), 10) + " " +
			"$" + util.FloatToStringPrec(s.TotalCost, 4) + "\n")
	}
	return sb.String()
}

// =============================================================================
// DETAIL VIEW
// =============================================================================

// AgentStats formats one agent's summary as a detail view.
func AgentStats(s model.Summary) string {
	var sb strings.Builder
	sb.WriteString("Agent: " + s.Name + "\n")
	sb.WriteString("Created:      " + s.CreatedAt.Format(time.RFC3339) + "\n")
	sb.WriteString("Messages:     " + util.IntToString(s.MessageCount) + "\n")
	sb.WriteString("Total tokens: " + util.IntToString(s.TotalTokens) + "\n")
	sb.WriteString("Total cost:   $" + util.FloatToStringPrec(s.TotalCost, 4) + "\n")
	if s.SystemPrompt != "" {
		sb.WriteString("System prompt: " + TruncateContent(util.Flatten(s.SystemPrompt)) + "\n")
	}
	return sb.String()
}

// =============================================================================
// RECENT MESSAGES VIEW
// =============================================================================

// RecentMessages formats the last limit messages of an agent, most recent
// last, with content cut to the preview threshold.
func RecentMessages(a *model.Agent, limit int) string {
	if a.MessageCount() == 0 {
		return "No messages."
	}

	msgs := a.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString("[" + m.Timestamp.Format("15:04:05") + "] " +
			m.Role.DisplayName() + ": " +
			TruncateContent(util.Flatten(m.Content)) + "\n")
	}
	return sb.String()
}

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// TranscriptMarkdown exports an agent's full history as Markdown. Unlike
// the stats views, the transcript carries complete message content.
func TranscriptMarkdown(a *model.Agent) string {
	var sb strings.Builder
	sb.WriteString("# Agent " + a.Name + "\n\n")
	sb.WriteString("Created: " + a.CreatedAt.Format(time.RFC3339) + "\n\n")
	if a.SystemPrompt != "" {
		sb.WriteString("System prompt: " + a.SystemPrompt + "\n\n")
	}
	sb.WriteString("---\n\n")

	for _, m := range a.Messages {
		sb.WriteString("**" + m.Role.DisplayName() + "** (" + m.Timestamp.Format("15:04") + "):\n\n")
		sb.WriteString(m.Content)
		sb.WriteString("\n\n---\n\n")
	}
	return sb.String()
}

// =============================================================================
// USAGE VIEWS
// =============================================================================

// UsageTotals formats process-lifetime usage totals on one line.
func UsageTotals(t telemetry.Totals) string {
	if t.Calls == 0 {
		return "No usage recorded yet"
	}
	return "Usage: " + util.IntToString(t.Calls) + " calls | " +
		util.IntToString(t.TokensIn) + " in / " + util.IntToString(t.TokensOut) + " out tokens | " +
		"$" + util.FloatToStringPrec(t.Cost, 4)
}

// UsageTrends formats a trailing-window trend report.
func UsageTrends(tr *telemetry.Trends) string {
	if tr.TotalCalls == 0 {
		return "No usage recorded in the last " + util.IntToString(tr.Days) + " day(s)."
	}

	var sb strings.Builder
	sb.WriteString("Usage over the last " + util.IntToString(tr.Days) + " day(s): " +
		util.IntToString(tr.TotalCalls) + " calls, $" + util.FloatToStringPrec(tr.TotalCost, 4) + "\n")

	sb.WriteString("\nDaily:\n")
	for _, d := range tr.Daily {
		sb.WriteString("  " + d.Date.Format("2006-01-02") + "  " +
			util.PadDisplay(util.IntToString(d.Calls)+" calls", 12) +
			"$" + util.FloatToStringPrec(d.Cost, 4) + "\n")
	}

	if len(tr.ByProvider) > 0 {
		sb.WriteString("\nBy provider:\n")
		for _, provider := range sortedKeys(tr.ByProvider) {
			sb.WriteString("  " + util.PadDisplay(provider, 12) +
				"$" + util.FloatToStringPrec(tr.ByProvider[provider], 4) + "\n")
		}
	}
	if len(tr.ByAgent) > 0 {
		sb.WriteString("\nBy agent:\n")
		for _, agent := range sortedKeys(tr.ByAgent) {
			sb.WriteString("  " + util.PadDisplay(agent, 12) +
				"$" + util.FloatToStringPrec(tr.ByAgent[agent], 4) + "\n")
		}
	}
	return sb.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return keys
}
