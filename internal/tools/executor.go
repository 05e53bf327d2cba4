// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrToolNotFound is returned when a call names an unregistered tool.
var ErrToolNotFound = errors.New("tool not found")

// =============================================================================
// EXECUTOR
// =============================================================================

// Executor dispatches tool calls against a registry: it validates
// parameters against the tool's schema, applies defaults, runs the
// handler, and times the call.
type Executor struct {
	registry *Registry
}

// NewExecutor creates an executor over a registry.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Execute runs the named tool. Handler failures come back both as a failed
// Result and as the error, so callers can use errors.Is on store sentinels.
func (e *Executor) Execute(ctx context.Context, name string, params map[string]interface{}) (Result, error) {
	tool := e.registry.Get(name)
	if tool == nil {
		err := fmt.Errorf("%w: %q", ErrToolNotFound, name)
		return Result{Success: false, Error: err.Error()}, err
	}

	validated, err := validateParams(tool.Schema, params)
	if err != nil {
		return Result{Success: false, Error: err.Error()}, err
	}

	start := time.Now()
	output, err := tool.Handler(ctx, validated)
	duration := time.Since(start)

	if err != nil {
		return Result{Success: false, Error: err.Error(), Duration: duration}, err
	}
	return Result{Success: true, Output: output, Duration: duration}, nil
}

// validateParams checks required parameters, rejects type mismatches, and
// fills in defaults. The input map is not mutated.
func validateParams(schema Schema, params map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		out[k] = v
	}

	for _, p := range schema.Parameters {
		v, present := out[p.Name]
		if !present {
			if p.Required {
				return nil, fmt.Errorf("missing required parameter %q", p.Name)
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			}
			continue
		}

		if err := checkType(p, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func checkType(p Parameter, v interface{}) error {
	switch p.Type {
	case "string":
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("parameter %q must be a string", p.Name)
		}
		if len(p.Enum) > 0 {
			for _, allowed := range p.Enum {
				if s == allowed {
					return nil
				}
			}
			return fmt.Errorf("parameter %q must be one of %v", p.Name, p.Enum)
		}
	case "integer", "number":
		// JSON decoding hands numbers over as float64.
		switch v.(type) {
		case int, int64, float64:
		default:
			return fmt.Errorf("parameter %q must be a number", p.Name)
		}
	case "boolean":
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("parameter %q must be a boolean", p.Name)
		}
	}
	return nil
}

// =============================================================================
// PARAM ACCESSORS
// =============================================================================

// stringParam returns a string parameter, or the empty string.
func stringParam(params map[string]interface{}, name string) string {
	s, _ := params[name].(string)
	return s
}

// intParam returns an integer parameter regardless of how the decoder
// represented the number.
func intParam(params map[string]interface{}, name string) int {
	switch v := params[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// floatParam returns a float parameter.
func floatParam(params map[string]interface{}, name string) float64 {
	switch v := params[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
