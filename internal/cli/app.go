// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Application wiring for the agentmem CLI.
//
// Builds the store, price table, and usage recorder from configuration,
// then dispatches the parsed command to its handler.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/agentmem/internal/config"
	"github.com/jeranaias/agentmem/internal/pricing"
	"github.com/jeranaias/agentmem/internal/store"
	"github.com/jeranaias/agentmem/internal/telemetry"
	"github.com/jeranaias/agentmem/internal/tools"
)

// =============================================================================
// APP
// =============================================================================

// App holds the wired-up collaborators every command handler needs.
type App struct {
	Config *config.Config
	Store  *store.Store
	Prices *pricing.Table

	// Usage is nil when telemetry is disabled.
	Usage *telemetry.Recorder

	priceWatcher *config.PriceWatcher
}

// NewApp loads configuration and opens the configured backends.
func NewApp(args Args) (*App, error) {
	var cfg *config.Config
	var err error
	if args.ConfigFile != "" {
		cfg, err = config.LoadFromPath(args.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	switch cfg.Output.Color {
	case "always":
		ForceColorsEnabled(true)
	case "never":
		ForceColorsEnabled(false)
	}

	app := &App{Config: cfg}

	if err := app.openStore(); err != nil {
		return nil, err
	}

	app.Prices = pricing.Default()
	pricesPath, err := cfg.PricesPath()
	if err == nil {
		if err := config.LoadPriceOverrides(app.Prices, pricesPath); err != nil {
			app.Store.Close()
			return nil, err
		}
		if cfg.Pricing.Watch {
			pw, err := config.NewPriceWatcher(app.Prices, pricesPath, 200*time.Millisecond)
			if err == nil && pw.Watch() == nil {
				app.priceWatcher = pw
			}
		}
	}

	if cfg.Usage.Enabled {
		usageDir, err := cfg.UsageDir()
		if err != nil {
			app.Close()
			return nil, err
		}
		if err := os.MkdirAll(usageDir, 0755); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create usage directory: %w", err)
		}
		app.Usage, err = telemetry.NewRecorder(usageDir)
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	return app, nil
}

func (app *App) openStore() error {
	switch app.Config.Storage.Backend {
	case "memory":
		app.Store = store.NewMemory()
		return nil

	case "sqlite":
		path, err := app.Config.SQLitePath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		app.Store, err = store.OpenSQLite(path)
		return err

	default: // "file"
		dir, err := app.Config.DataDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		app.Store, err = store.Open(dir)
		return err
	}
}

// ToolService returns the tool service bound to this app's collaborators.
func (app *App) ToolService() *tools.Service {
	return &tools.Service{
		Store:  app.Store,
		Prices: app.Prices,
		Usage:  app.Usage,
	}
}

// Close releases the app's resources.
func (app *App) Close() error {
	if app.priceWatcher != nil {
		app.priceWatcher.Close()
	}
	if app.Store != nil {
		return app.Store.Close()
	}
	return nil
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run parses os.Args, executes the command, and returns the exit code.
func Run() int {
	cmd, args := Parse()

	// Commands that need no backing state
	switch cmd {
	case CmdVersion:
		PrintVersion()
		return 0
	case CmdHelp:
		if len(args.Raw) > 0 {
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args.Raw[0])
		}
		PrintUsage()
		if len(args.Raw) > 0 {
			return 1
		}
		return 0
	}

	app, err := NewApp(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		return 1
	}
	defer app.Close()

	switch cmd {
	case CmdAgents:
		err = app.HandleAgents(args)
	case CmdCreate:
		err = app.HandleCreate(args)
	case CmdShow:
		err = app.HandleShow(args)
	case CmdHistory:
		err = app.HandleHistory(args)
	case CmdResponse:
		err = app.HandleResponse(args)
	case CmdRecord:
		err = app.HandleRecord(args)
	case CmdClear:
		err = app.HandleClear(args)
	case CmdDelete:
		err = app.HandleDelete(args)
	case CmdUsage:
		err = app.HandleUsage(args)
	case CmdTools:
		err = app.HandleTools(args)
	case CmdConfig:
		err = app.HandleConfig(args)
	default:
		PrintUsage()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		return 1
	}
	return 0
}
