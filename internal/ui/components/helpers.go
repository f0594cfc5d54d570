// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// itoa converts a non-negative count to a string; badges cap at 99+.
func itoa(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 99 {
		return "99+"
	}
	if n < 10 {
		return string(rune('0' + n))
	}
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
