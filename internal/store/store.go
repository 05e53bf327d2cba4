// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the mapping from agent name to agent state.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/agentmem/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrAgentNotFound is returned when an operation references an agent
	// name that does not exist. Check with errors.Is.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrAgentExists is returned by CreateAgent when the name is taken.
	ErrAgentExists = errors.New("agent already exists")

	// ErrIndexOutOfRange is returned by Response when the index has no
	// corresponding message.
	ErrIndexOutOfRange = errors.New("message index out of range")

	// ErrInvalidName is returned when an agent name is empty.
	ErrInvalidName = errors.New("agent name cannot be empty")
)

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// backend is the durable layer behind a Store. Every method must reach
// stable storage before returning; the Store commits to memory only after
// the backend reports success, so observed and persisted state never
// diverge.
type backend interface {
	// Load returns all persisted agents in creation order.
	Load() ([]*model.Agent, error)

	// Save writes the agent's full record (create and clear paths).
	Save(a *model.Agent) error

	// Append persists one new turn. a reflects the post-append state,
	// m is the turn being added.
	Append(a *model.Agent, m *model.Message) error

	// Delete removes the agent's record entirely.
	Delete(name string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// STORE
// =============================================================================

// Store is the agent memory manager. All operations are serialized under a
// single lock; mutations on durable stores flush synchronously before they
// commit, so a crash immediately after a successful call cannot lose the
// mutation.
//
// Stores hand out deep copies: callers can never mutate managed state
// behind the lock.
type Store struct {
	mu      sync.RWMutex
	agents  map[string]*model.Agent
	order   []string // names in creation order
	backend backend  // nil for memory-only stores
}

// NewMemory creates a store with no durable backing. State lives for the
// process only; useful for tests and embedding.
func NewMemory() *Store {
	return &Store{
		agents: make(map[string]*model.Agent),
	}
}

// newWithBackend loads existing state from the backend.
func newWithBackend(b backend) (*Store, error) {
	agents, err := b.Load()
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to load agents: %w", err)
	}

	s := &Store{
		agents:  make(map[string]*model.Agent, len(agents)),
		order:   make([]string, 0, len(agents)),
		backend: b,
	}
	for _, a := range agents {
		s.agents[a.Name] = a
		s.order = append(s.order, a.Name)
	}
	return s, nil
}

// Open creates a store backed by one JSON file per agent under dir.
func Open(dir string) (*Store, error) {
	b, err := newFileBackend(dir)
	if err != nil {
		return nil, err
	}
	return newWithBackend(b)
}

// OpenSQLite creates a store backed by a SQLite database at path.
func OpenSQLite(path string) (*Store, error) {
	b, err := newSQLiteBackend(path)
	if err != nil {
		return nil, err
	}
	return newWithBackend(b)
}

// Close releases the durable backend, if any.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// =============================================================================
// CREATE / GET / LIST
// =============================================================================

// CreateAgent registers a new agent. Fails with ErrAgentExists if the name
// is taken; there is no implicit upsert.
func (s *Store) CreateAgent(name, systemPrompt string) (*model.Agent, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrAgentExists, name)
	}

	a := model.NewAgent(name, systemPrompt)
	if s.backend != nil {
		if err := s.backend.Save(a); err != nil {
			return nil, fmt.Errorf("failed to persist agent %q: %w", name, err)
		}
	}

	s.agents[name] = a
	s.order = append(s.order, name)
	return a.Clone(), nil
}

// GetAgent is a pure lookup. It returns absence rather than an error,
// leaving the not-found decision to the caller.
func (s *Store) GetAgent(name string) (*model.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[name]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// ListAgents returns all agents in creation order, reflecting live
// aggregate state.
func (s *Store) ListAgents() []*model.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Agent, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.agents[name].Clone())
	}
	return out
}

// Summaries returns fixed-shape summaries in creation order.
func (s *Store) Summaries() []model.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Summary, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.agents[name].Summarize())
	}
	return out
}

// Count returns the number of agents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// AppendMessage appends one turn to the named agent and updates the running
// aggregates in the same operation. The message and the aggregates commit
// together: partial application is never observable, in memory or on disk.
func (s *Store) AppendMessage(name string, role model.Role, content string, tokensIn, tokensOut int, cost float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agents[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAgentNotFound, name)
	}

	m, err := model.NewMessage(role, content)
	if err != nil {
		return err
	}
	m.TokensIn = tokensIn
	m.TokensOut = tokensOut
	m.Cost = cost

	// Mutate a clone, persist it, then swap it in. If the flush fails the
	// in-memory state is untouched.
	next := a.Clone()
	next.Append(m)

	if s.backend != nil {
		if err := s.backend.Append(next, m); err != nil {
			return fmt.Errorf("failed to persist message for agent %q: %w", name, err)
		}
	}

	s.agents[name] = next
	return nil
}

// ClearHistory resets the named agent's messages and aggregates, preserving
// its name, system prompt, and creation time.
func (s *Store) ClearHistory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agents[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAgentNotFound, name)
	}

	next := a.Clone()
	next.ClearHistory()

	if s.backend != nil {
		if err := s.backend.Save(next); err != nil {
			return fmt.Errorf("failed to persist clear for agent %q: %w", name, err)
		}
	}

	s.agents[name] = next
	return nil
}

// DeleteAgent removes the named agent entirely.
func (s *Store) DeleteAgent(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[name]; !ok {
		return fmt.Errorf("%w: %q", ErrAgentNotFound, name)
	}

	if s.backend != nil {
		if err := s.backend.Delete(name); err != nil {
			return fmt.Errorf("failed to delete agent %q: %w", name, err)
		}
	}

	delete(s.agents, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// =============================================================================
// RESPONSE LOOKUP
// =============================================================================

// Response returns the content of the message at the given position in the
// agent's history. Negative indices count from the end: -1 is the most
// recent message, 0 is the first.
func (s *Store) Response(name string, index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrAgentNotFound, name)
	}

	n := len(a.Messages)
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return "", fmt.Errorf("%w: index %d, agent %q has %d message(s)", ErrIndexOutOfRange, index, name, n)
	}
	return a.Messages[i].Content, nil
}
