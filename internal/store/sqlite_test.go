// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jeranaias/agentmem/internal/model"
)

func openSQLiteStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	return s
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.db")

	s := openSQLiteStore(t, path)
	if _, err := s.CreateAgent("coder", "be brief"); err != nil {
		t.Fatalf("CreateAgent failed: %v", err)
	}
	s.AppendMessage("coder", model.RoleUser, "q", 0, 0, 0)
	s.AppendMessage("coder", model.RoleAssistant, "a", 100, 40, 0.002)
	s.CreateAgent("writer", "")
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openSQLiteStore(t, path)
	defer reopened.Close()

	if reopened.Count() != 2 {
		t.Fatalf("Count after reopen = %d, want 2", reopened.Count())
	}

	a, ok := reopened.GetAgent("coder")
	if !ok {
		t.Fatal("agent missing after reopen")
	}
	if a.SystemPrompt != "be brief" || a.MessageCount() != 2 {
		t.Errorf("agent state lost: %+v", a.Summarize())
	}
	if a.TotalTokens != 140 || a.TotalCost != 0.002 {
		t.Errorf("aggregates lost: tokens=%d cost=%v", a.TotalTokens, a.TotalCost)
	}

	// Message order is the insertion order.
	if a.Messages[0].Content != "q" || a.Messages[1].Content != "a" {
		t.Errorf("message order lost: %q, %q", a.Messages[0].Content, a.Messages[1].Content)
	}

	names := reopened.Summaries()
	if names[0].Name != "coder" || names[1].Name != "writer" {
		t.Errorf("creation order lost: %+v", names)
	}
}

func TestSQLiteStore_DeleteRemovesMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.db")

	s := openSQLiteStore(t, path)
	s.CreateAgent("x", "")
	s.AppendMessage("x", model.RoleUser, "q", 0, 0, 0)
	if err := s.DeleteAgent("x"); err != nil {
		t.Fatalf("DeleteAgent failed: %v", err)
	}

	// Re-creating the same name must start from a clean history, which
	// fails if the old message rows survived the delete.
	if _, err := s.CreateAgent("x", ""); err != nil {
		t.Fatalf("recreate failed: %v", err)
	}
	s.Close()

	reopened := openSQLiteStore(t, path)

	a, ok := reopened.GetAgent("x")
	if !ok {
		t.Fatal("recreated agent missing after reopen")
	}
	if a.MessageCount() != 0 {
		t.Errorf("old messages resurrected: count = %d", a.MessageCount())
	}
	reopened.Close()

	// Check the table directly: the delete must leave no orphaned message
	// rows behind, not just rows the loader happens to skip.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db failed: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("orphaned message rows after delete: %d", count)
	}
}

func TestSQLiteStore_ClearPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.db")

	s := openSQLiteStore(t, path)
	s.CreateAgent("x", "keep me")
	s.AppendMessage("x", model.RoleAssistant, "a", 10, 5, 0.01)
	s.ClearHistory("x")
	s.Close()

	reopened := openSQLiteStore(t, path)
	defer reopened.Close()

	a, ok := reopened.GetAgent("x")
	if !ok {
		t.Fatal("agent missing after reopen")
	}
	if a.MessageCount() != 0 || a.TotalTokens != 0 || a.TotalCost != 0 {
		t.Errorf("clear not persisted: %+v", a.Summarize())
	}
	if a.SystemPrompt != "keep me" {
		t.Error("system prompt lost on clear")
	}
}
