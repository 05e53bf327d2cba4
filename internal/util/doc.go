// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared helpers for the agentmem library.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - PadDisplay: display-width aware column padding
//
// Type Conversion:
//   - IntToString, FloatToStringPrec
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
package util
