// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry provides best-effort usage and cost tracking.
//
// A Recorder accumulates one UsageRecord per model round-trip and persists
// them as daily JSON files. Trends aggregates a trailing window of days
// into per-day, per-provider, and per-agent cost breakdowns.
//
// Telemetry never gates the call path: a failure to record is reported but
// safe to ignore, and it never corrupts agent state, which lives in the
// store, not here.
package telemetry
