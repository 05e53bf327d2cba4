// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

// Static provider price lists, dollars per million tokens.
// Snapshot of published list prices as of mid-2025; operators can override
// individual entries through the pricing section of the config file.
var defaultPrices = map[string]map[string]ModelPrice{
	"openai": {
		"gpt-5":        {Input: 1.25, Output: 10.00},
		"gpt-5-mini":   {Input: 0.25, Output: 2.00},
		"gpt-5-nano":   {Input: 0.05, Output: 0.40},
		"gpt-4.1":      {Input: 2.00, Output: 8.00},
		"gpt-4.1-mini": {Input: 0.40, Output: 1.60},
		"gpt-4.1-nano": {Input: 0.10, Output: 0.40},
		"gpt-4o":       {Input: 2.50, Output: 10.00},
		"gpt-4o-mini":  {Input: 0.15, Output: 0.60},
		"o3":           {Input: 2.00, Output: 8.00},
		"o4-mini":      {Input: 1.10, Output: 4.40},
	},
	"anthropic": {
		"claude-opus-4-1":   {Input: 15.00, Output: 75.00},
		"claude-opus-4-0":   {Input: 15.00, Output: 75.00},
		"claude-sonnet-4-0": {Input: 3.00, Output: 15.00},
		"claude-3-7-sonnet": {Input: 3.00, Output: 15.00},
		"claude-3-5-haiku":  {Input: 0.80, Output: 4.00},
		"claude-3-haiku":    {Input: 0.25, Output: 1.25},
	},
	"gemini": {
		"gemini-2.5-pro":        {Input: 1.25, Output: 10.00},
		"gemini-2.5-flash":      {Input: 0.30, Output: 2.50},
		"gemini-2.5-flash-lite": {Input: 0.10, Output: 0.40},
		"gemini-2.0-flash":      {Input: 0.10, Output: 0.40},
		"gemini-1.5-pro":        {Input: 1.25, Output: 5.00},
	},
	"xai": {
		"grok-4":      {Input: 3.00, Output: 15.00},
		"grok-3":      {Input: 3.00, Output: 15.00},
		"grok-3-mini": {Input: 0.30, Output: 0.50},
	},
}
