// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration CLI commands for agentmem.
//
// Commands:
//   config show         Show current configuration (default)
//   config set K V      Set a key (dot notation) and save
//   config path         Print the config file path
//   config keys         List all configuration keys
//
// Examples:
//   agentmem config show
//   agentmem config set storage.backend sqlite
//   agentmem config set output.history_limit 25
//   agentmem config keys
package cli

import (
	"fmt"

	"github.com/jeranaias/agentmem/internal/config"
)

// HandleConfig handles the "config" command.
func (app *App) HandleConfig(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "show":
		return app.handleConfigShow(args)
	case "set":
		return app.handleConfigSet(parser, args)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "keys":
		for _, key := range config.GetAllKeys() {
			fmt.Println(key)
		}
		return nil
	default:
		return fmt.Errorf("unknown config subcommand: %s\nUsage: agentmem config [show|set|path|keys]", parser.Subcommand())
	}
}

func (app *App) handleConfigShow(args Args) error {
	if args.JSON {
		return printJSON(app.Config)
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	for _, key := range config.GetAllKeys() {
		v, err := app.Config.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s %v\n", RenderLabel(key, 24), v)
	}
	return nil
}

func (app *App) handleConfigSet(parser *ArgParser, args Args) error {
	key := parser.Positional(1)
	value := parser.Positional(2)
	if key == "" || value == "" {
		return fmt.Errorf("usage: agentmem config set <key> <value>")
	}

	if err := app.Config.Set(key, value); err != nil {
		return err
	}
	if err := app.Config.Validate(); err != nil {
		return err
	}

	if args.ConfigFile != "" {
		if err := config.SaveTOML(app.Config, args.ConfigFile); err != nil {
			return err
		}
	} else if err := config.Save(app.Config); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Printf("%s %s = %s\n", SuccessStyle.Render("Set"), key, value)
	}
	return nil
}
