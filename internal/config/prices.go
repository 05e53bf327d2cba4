// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/agentmem/internal/pricing"
)

// =============================================================================
// PRICE OVERRIDES
// =============================================================================

// priceOverride is one [provider.model] table in the overrides file.
// Prices are dollars per million tokens.
type priceOverride struct {
	Input  float64 `toml:"input"`
	Output float64 `toml:"output"`
}

// LoadPriceOverrides reads a TOML overrides file and applies every entry to
// the table. The file maps provider tables to model tables:
//
//	[anthropic.claude-sonnet-4-0]
//	input = 3.0
//	output = 15.0
//
// A missing file is not an error; overrides are optional.
func LoadPriceOverrides(table *pricing.Table, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	overrides := make(map[string]map[string]priceOverride)
	if _, err := toml.DecodeFile(path, &overrides); err != nil {
		return fmt.Errorf("failed to decode price overrides: %w", err)
	}

	for provider, models := range overrides {
		for model, p := range models {
			if p.Input < 0 || p.Output < 0 {
				return fmt.Errorf("negative price for %s/%s", provider, model)
			}
			table.SetOverride(provider, model, pricing.ModelPrice{
				Input:  p.Input,
				Output: p.Output,
			})
		}
	}
	return nil
}

// =============================================================================
// PRICE WATCHER
// =============================================================================

// PriceWatcher reloads the price overrides file when it changes on disk.
type PriceWatcher struct {
	table    *pricing.Table
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	changed time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPriceWatcher creates a watcher for the given overrides file.
func NewPriceWatcher(table *pricing.Table, path string, debounce time.Duration) (*PriceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &PriceWatcher{
		table:    table,
		path:     path,
		watcher:  watcher,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for changes to the overrides file.
func (pw *PriceWatcher) Watch() error {
	// Watch the parent directory: editors and atomic writers replace the
	// file, which would orphan a watch on the file itself.
	if err := pw.watcher.Add(filepath.Dir(pw.path)); err != nil {
		return err
	}

	go pw.processEvents()
	go pw.processPending()

	return nil
}

func (pw *PriceWatcher) processEvents() {
	for {
		select {
		case <-pw.ctx.Done():
			return

		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(pw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pw.mu.Lock()
				pw.changed = time.Now()
				pw.mu.Unlock()
			}

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			_ = err
		}
	}
}

func (pw *PriceWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-pw.ctx.Done():
			return

		case <-ticker.C:
			pw.mu.Lock()
			due := !pw.changed.IsZero() && time.Since(pw.changed) >= pw.debounce
			if due {
				pw.changed = time.Time{}
			}
			pw.mu.Unlock()

			if due {
				// A malformed file keeps the previously applied prices.
				_ = LoadPriceOverrides(pw.table, pw.path)
			}
		}
	}
}

// Close stops watching and releases resources.
func (pw *PriceWatcher) Close() error {
	pw.cancel()
	if pw.watcher != nil {
		return pw.watcher.Close()
	}
	return nil
}
