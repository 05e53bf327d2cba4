// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeranaias/agentmem/internal/model"
	"github.com/jeranaias/agentmem/internal/util"
)

// =============================================================================
// FILE BACKEND
// =============================================================================

// fileBackend persists one JSON document per agent under a directory.
// Writes go through util.AtomicWriteFile (temp file + fsync + rename), so a
// crash mid-write leaves either the old record or the new complete one.
type fileBackend struct {
	dir string
}

func newFileBackend(dir string) (*fileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileBackend{dir: dir}, nil
}

// filePath returns the record path for an agent name. Names are
// percent-free; anything that would escape the directory is rejected at
// write time by encodeName.
func (b *fileBackend) filePath(name string) string {
	return filepath.Join(b.dir, encodeName(name)+".json")
}

// encodeName makes an agent name safe to use as a file name.
func encodeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "%%%04x", r)
		}
	}
	return sb.String()
}

func (b *fileBackend) Load() ([]*model.Agent, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var agents []*model.Agent
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(b.dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		var a model.Agent
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("corrupt agent record %s: %w", entry.Name(), err)
		}
		if a.Messages == nil {
			a.Messages = make([]*model.Message, 0)
		}
		agents = append(agents, &a)
	}

	// Directory order is arbitrary; restore creation order.
	sort.Slice(agents, func(i, j int) bool {
		return agents[i].CreatedAt.Before(agents[j].CreatedAt)
	})
	return agents, nil
}

func (b *fileBackend) Save(a *model.Agent) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(b.filePath(a.Name), data, 0644)
}

// Append rewrites the agent's record with the post-append state. The record
// holds the message log and the aggregates in one document, so the two can
// never land on disk separately.
func (b *fileBackend) Append(a *model.Agent, _ *model.Message) error {
	return b.Save(a)
}

func (b *fileBackend) Delete(name string) error {
	if err := os.Remove(b.filePath(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (b *fileBackend) Close() error {
	return nil
}
