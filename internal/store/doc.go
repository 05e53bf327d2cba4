// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the mapping from agent name to agent state and its
// mutation discipline.
//
// # Key Types
//
//   - Store: the agent memory manager; create/get/list/append/clear/delete
//     plus positional response lookup
//   - ErrAgentNotFound, ErrAgentExists, ErrIndexOutOfRange: sentinel
//     errors, checked with errors.Is
//
// # Backends
//
// Three constructors select the durability model:
//
//	s := store.NewMemory()              // process-lifetime only
//	s, err := store.Open(dir)           // one JSON file per agent
//	s, err := store.OpenSQLite(path)    // SQLite database
//
// Durable mutations flush synchronously before returning: a call that
// reports success has reached stable storage, and a failed flush leaves the
// in-memory view untouched.
//
// # Concurrency
//
// All operations are serialized under a single store lock. Returned agents
// are deep copies; callers cannot mutate managed state.
package store
