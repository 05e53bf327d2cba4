// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "strconv"

// IntToString formats an int for table and stats output.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

// FloatToStringPrec formats a float64 with the given number of decimal
// places. Dollar amounts render with prec 4.
func FloatToStringPrec(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}
