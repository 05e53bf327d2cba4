// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for agentmem.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.agentmem/config.toml
//   - Built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete agentmem configuration.
type Config struct {
	Version string `toml:"version"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// Usage telemetry configuration
	Usage UsageConfig `toml:"usage"`

	// Pricing configuration
	Pricing PricingConfig `toml:"pricing"`

	// Output configuration
	Output OutputConfig `toml:"output"`
}

// StorageConfig contains agent persistence configuration.
type StorageConfig struct {
	// Backend selects the persistence backend: "file", "sqlite", "memory"
	// "file" (default): one JSON document per agent under DataDir
	// "sqlite": single database file under DataDir
	// "memory": no persistence, process-lifetime only
	Backend string `toml:"backend"`
	// DataDir is the directory holding agent state (empty = ~/.agentmem/agents)
	DataDir string `toml:"data_dir"`
	// SQLitePath overrides the database location for the sqlite backend
	// (empty = DataDir/agents.db)
	SQLitePath string `toml:"sqlite_path"`
}

// UsageConfig contains usage telemetry configuration.
type UsageConfig struct {
	// Enabled controls whether per-turn usage records are written
	Enabled bool `toml:"enabled"`
	// Dir is the directory holding daily usage files (empty = ~/.agentmem/usage)
	Dir string `toml:"dir"`
}

// PricingConfig contains model price table configuration.
type PricingConfig struct {
	// OverridesFile points at a TOML file of per-model price overrides
	// (empty = ~/.agentmem/prices.toml, applied only if it exists)
	OverridesFile string `toml:"overrides_file"`
	// Watch reloads the overrides file when it changes on disk
	Watch bool `toml:"watch"`
}

// OutputConfig contains terminal output configuration.
type OutputConfig struct {
	// Color controls styled output: "auto", "always", "never"
	Color string `toml:"color"`
	// HistoryLimit is the default message count for history views
	HistoryLimit int `toml:"history_limit"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Storage: StorageConfig{
			Backend: "file",
		},

		Usage: UsageConfig{
			Enabled: true,
		},

		Pricing: PricingConfig{
			Watch: false,
		},

		Output: OutputConfig{
			Color:        "auto",
			HistoryLimit: 10,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the agentmem configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("AGENTMEM_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".agentmem"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DataDir resolves the agent storage directory, applying the default when
// the config leaves it empty.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agents"), nil
}

// SQLitePath resolves the sqlite database path.
func (c *Config) SQLitePath() (string, error) {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath, nil
	}
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agents.db"), nil
}

// UsageDir resolves the usage telemetry directory.
func (c *Config) UsageDir() (string, error) {
	if c.Usage.Dir != "" {
		return c.Usage.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "usage"), nil
}

// PricesPath resolves the pricing overrides file path.
func (c *Config) PricesPath() (string, error) {
	if c.Pricing.OverridesFile != "" {
		return c.Pricing.OverridesFile, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prices.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with owner-only
// permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# agentmem configuration file")
	fmt.Fprintln(file, "# Generated by agentmem - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validBackends := map[string]bool{"file": true, "sqlite": true, "memory": true}
	if !validBackends[strings.ToLower(c.Storage.Backend)] {
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite, memory", c.Storage.Backend),
		})
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[strings.ToLower(c.Output.Color)] {
		errs = append(errs, ValidationError{
			Field:   "output.color",
			Message: fmt.Sprintf("invalid color mode '%s', must be one of: auto, always, never", c.Output.Color),
		})
	}

	if c.Output.HistoryLimit < 1 {
		errs = append(errs, ValidationError{
			Field:   "output.history_limit",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Output.HistoryLimit),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value
// configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Output.Color == "" {
		c.Output.Color = defaults.Output.Color
	}
	if c.Output.HistoryLimit == 0 {
		c.Output.HistoryLimit = defaults.Output.HistoryLimit
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - AGENTMEM_BACKEND: overrides storage.backend
//   - AGENTMEM_DATA_DIR: overrides storage.data_dir
//   - AGENTMEM_SQLITE_PATH: overrides storage.sqlite_path
//   - AGENTMEM_USAGE: set to "0" or "false" to disable usage telemetry
//   - AGENTMEM_USAGE_DIR: overrides usage.dir
//   - AGENTMEM_PRICES: overrides pricing.overrides_file
//   - AGENTMEM_COLOR: overrides output.color
func (c *Config) ApplyEnvOverrides() {
	if backend := os.Getenv("AGENTMEM_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if dir := os.Getenv("AGENTMEM_DATA_DIR"); dir != "" {
		c.Storage.DataDir = dir
	}
	if path := os.Getenv("AGENTMEM_SQLITE_PATH"); path != "" {
		c.Storage.SQLitePath = path
	}
	if usage := os.Getenv("AGENTMEM_USAGE"); usage != "" {
		c.Usage.Enabled = usage != "0" && strings.ToLower(usage) != "false"
	}
	if dir := os.Getenv("AGENTMEM_USAGE_DIR"); dir != "" {
		c.Usage.Dir = dir
	}
	if path := os.Getenv("AGENTMEM_PRICES"); path != "" {
		c.Pricing.OverridesFile = path
	}
	if color := os.Getenv("AGENTMEM_COLOR"); color != "" {
		c.Output.Color = color
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "storage.backend").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "storage.backend").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go
// field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type
// conversion. String input is parsed to match the field type, so CLI
// arguments can set numeric and boolean fields.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"storage.backend",
		"storage.data_dir",
		"storage.sqlite_path",
		"usage.enabled",
		"usage.dir",
		"pricing.overrides_file",
		"pricing.watch",
		"output.color",
		"output.history_limit",
	}
}
