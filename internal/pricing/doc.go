// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pricing computes per-call monetary cost from token counts.
//
// A Table maps provider and model identifiers to dollar prices per million
// tokens, input and output priced independently. Every cost computation in
// the system funnels through Table.Cost, so updating one entry updates all
// callers consistently.
//
// Unknown models cost zero. This is the documented fallback, not an error:
// cost figures are best-effort telemetry, and a missing table entry must
// never fail the call path that produced the tokens.
package pricing
