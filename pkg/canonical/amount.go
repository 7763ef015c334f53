// Package canonical implements the C3 canonical primitives: amount and
// timestamp formatting, canonical hash encoding, and the sorted-key
// canonical-string composition grammar shared by every domain record.
package canonical

import (
	"math"
	"strconv"
)

// FormatAmount renders a finite real number to exactly two fractional
// digits using half-away-from-zero rounding. No thousands separators, no
// sign suppression for negatives. Cross-language parity requires this fixed
// rendering rather than the language's default float-to-string.
func FormatAmount(v float64) string {
	scaled := v * 100
	var rounded float64
	if scaled >= 0 {
		rounded = math.Floor(scaled + 0.5)
	} else {
		rounded = math.Ceil(scaled - 0.5)
	}
	cents := int64(rounded)
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	s := strconv.FormatInt(whole, 10) + "." + pad2(frac)
	if neg {
		s = "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// FormatShare renders a participation share to exactly four decimal digits.
func FormatShare(v float64) string {
	scaled := v * 10000
	var rounded float64
	if scaled >= 0 {
		rounded = math.Floor(scaled + 0.5)
	} else {
		rounded = math.Ceil(scaled - 0.5)
	}
	ticks := int64(rounded)
	neg := ticks < 0
	if neg {
		ticks = -ticks
	}
	whole := ticks / 10000
	frac := ticks % 10000
	s := strconv.FormatInt(whole, 10) + "." + pad4(frac)
	if neg {
		s = "-" + s
	}
	return s
}

func pad4(n int64) string {
	digits := strconv.FormatInt(n, 10)
	for len(digits) < 4 {
		digits = "0" + digits
	}
	return digits
}

// FormatConfidence renders a resolution confidence to exactly two decimal
// digits (same rendering as FormatAmount but kept distinct so callers
// cannot confuse a confidence score's grammar with a monetary amount).
func FormatConfidence(v float64) string {
	return FormatAmount(v)
}
