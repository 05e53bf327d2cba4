// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/agentmem/internal/model"
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS agents (
	name          TEXT PRIMARY KEY,
	system_prompt TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL,
	total_tokens  INTEGER NOT NULL DEFAULT 0,
	total_cost    REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	agent_name TEXT NOT NULL REFERENCES agents(name) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	tokens_in  INTEGER NOT NULL DEFAULT 0,
	tokens_out INTEGER NOT NULL DEFAULT 0,
	cost       REAL NOT NULL DEFAULT 0,
	timestamp  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_agent ON messages(agent_name, seq);
`

// =============================================================================
// SQLITE BACKEND
// =============================================================================

// sqliteBackend persists agents and messages in a SQLite database. Each
// append commits the message row and the aggregate columns in one
// transaction.
type sqliteBackend struct {
	db *sql.DB
}

func newSQLiteBackend(path string) (*sqliteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// synchronous=FULL: a committed transaction has reached disk before
	// the mutating store call returns.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &sqliteBackend{db: db}, nil
}

func (b *sqliteBackend) Load() ([]*model.Agent, error) {
	rows, err := b.db.Query(`SELECT name, system_prompt, created_at, total_tokens, total_cost
		FROM agents ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []*model.Agent
	for rows.Next() {
		var a model.Agent
		var createdAt string
		if err := rows.Scan(&a.Name, &a.SystemPrompt, &createdAt, &a.TotalTokens, &a.TotalCost); err != nil {
			return nil, err
		}
		a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt created_at for agent %q: %w", a.Name, err)
		}
		a.Messages = make([]*model.Message, 0)
		agents = append(agents, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, a := range agents {
		if err := b.loadMessages(a); err != nil {
			return nil, err
		}
	}
	return agents, nil
}

func (b *sqliteBackend) loadMessages(a *model.Agent) error {
	rows, err := b.db.Query(`SELECT id, role, content, tokens_in, tokens_out, cost, timestamp
		FROM messages WHERE agent_name = ? ORDER BY seq`, a.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.Message
		var role, ts string
		if err := rows.Scan(&m.ID, &role, &m.Content, &m.TokensIn, &m.TokensOut, &m.Cost, &ts); err != nil {
			return err
		}
		m.Role = model.Role(role)
		m.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return fmt.Errorf("corrupt timestamp in message %s: %w", m.ID, err)
		}
		a.Messages = append(a.Messages, &m)
	}
	return rows.Err()
}

// Save rewrites the agent's full record. Used on create (empty history) and
// on clear; the agent row and the message table change in one transaction.
func (b *sqliteBackend) Save(a *model.Agent) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO agents (name, system_prompt, created_at, total_tokens, total_cost)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET total_tokens = excluded.total_tokens, total_cost = excluded.total_cost`,
		a.Name, a.SystemPrompt, a.CreatedAt.Format(time.RFC3339Nano), a.TotalTokens, a.TotalCost)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE agent_name = ?`, a.Name); err != nil {
		return err
	}
	for seq, m := range a.Messages {
		if err := insertMessage(tx, a.Name, seq, m); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Append inserts the new turn and updates the aggregates atomically.
func (b *sqliteBackend) Append(a *model.Agent, m *model.Message) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertMessage(tx, a.Name, len(a.Messages)-1, m); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE agents SET total_tokens = ?, total_cost = ? WHERE name = ?`,
		a.TotalTokens, a.TotalCost, a.Name); err != nil {
		return err
	}

	return tx.Commit()
}

func insertMessage(tx *sql.Tx, agentName string, seq int, m *model.Message) error {
	_, err := tx.Exec(`INSERT INTO messages (id, agent_name, seq, role, content, tokens_in, tokens_out, cost, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, agentName, seq, m.Role.String(), m.Content, m.TokensIn, m.TokensOut, m.Cost,
		m.Timestamp.Format(time.RFC3339Nano))
	return err
}

// Delete removes the agent row and its messages in one transaction. The
// messages are deleted explicitly rather than via the cascade: foreign_keys
// is a connection-scoped pragma, and a recycled connection without it would
// leave orphaned rows to resurface on a recreate.
func (b *sqliteBackend) Delete(name string) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages WHERE agent_name = ?`, name); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM agents WHERE name = ?`, name); err != nil {
		return err
	}

	return tx.Commit()
}

func (b *sqliteBackend) Close() error {
	return b.db.Close()
}
