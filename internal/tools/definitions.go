// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools exposes agent memory operations under a shared tool
// protocol: named tools with parameter schemas, dispatched by an executor.
package tools

import (
	"context"
	"time"
)

// =============================================================================
// TOOL DEFINITION
// =============================================================================

// Handler executes a tool call and returns display-ready text.
type Handler func(ctx context.Context, params map[string]interface{}) (string, error)

// Tool represents a callable tool.
type Tool struct {
	// Name is the tool identifier (e.g., "list_agents")
	Name string

	// Description explains what the tool does
	Description string

	// Schema defines the tool's parameters
	Schema Schema

	// Handler performs the call
	Handler Handler
}

// Schema defines a tool's parameters.
type Schema struct {
	Parameters []Parameter
}

// Parameter defines a single tool parameter.
type Parameter struct {
	// Name of the parameter
	Name string

	// Type is the parameter type ("string", "integer", "number", "boolean")
	Type string

	// Required indicates if the parameter must be provided
	Required bool

	// Description explains the parameter
	Description string

	// Default is the value applied when the parameter is omitted
	Default interface{}

	// Enum contains allowed values for string parameters (optional)
	Enum []string
}

// Result holds the outcome of a tool execution.
type Result struct {
	// Success indicates if the tool executed successfully
	Success bool

	// Output is the tool's output (for successful execution)
	Output string

	// Error is the error message (for failed execution)
	Error string

	// Duration is how long execution took
	Duration time.Duration
}

// =============================================================================
// TOOL REGISTRY
// =============================================================================

// Registry holds all available tools, preserving registration order for
// stable listings.
type Registry struct {
	tools map[string]*Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Tool),
	}
}

// Register adds a tool to the registry, replacing any previous tool with
// the same name.
func (r *Registry) Register(tool *Tool) {
	if _, ok := r.tools[tool.Name]; !ok {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = tool
}

// Get retrieves a tool by name, or nil.
func (r *Registry) Get(name string) *Tool {
	return r.tools[name]
}

// All returns the registered tools in registration order.
func (r *Registry) All() []*Tool {
	result := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}
