// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"math"
	"strconv"
	"strings"
)

// Cents is a monetary amount in minor units. Prices are kept as integers so
// that totals never drift through float rounding.
type Cents int64

// CentsFromFloat converts a decimal amount (e.g. 24.5) to Cents, rounding
// half away from zero.
func CentsFromFloat(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Times returns c multiplied by n.
func (c Cents) Times(n int) Cents {
	return c * Cents(n)
}

// Percent returns p percent of c, rounded half up to the nearest cent.
func (c Cents) Percent(p int64) Cents {
	v := int64(c) * p
	if v >= 0 {
		return Cents((v + 50) / 100)
	}
	return Cents(-((-v + 50) / 100))
}

// Float returns the amount in major units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String formats the amount as "$1,234.50".
func (c Cents) String() string {
	v := int64(c)
	neg := v < 0
	if neg {
		v = -v
	}

	whole := strconv.FormatInt(v/100, 10)
	frac := v % 100

	var b strings.Builder
	b.Grow(len(whole) + len(whole)/3 + 5)
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')

	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}

	b.WriteByte('.')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}
