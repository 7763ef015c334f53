//go:build property
// +build property

package canonical_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
)

func mkTime(y, m, d, h, mi, s int) time.Time {
	return time.Date(y, time.Month(m), d, h, mi, s, 0, time.UTC)
}

// TestHashDeterminism verifies Hash(s) == Hash(s) for any string.
func TestHashDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("canonical hashing is deterministic", prop.ForAll(
		func(s string) bool {
			return canonical.Hash(s) == canonical.Hash(s)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestFormatAmountIdempotent verifies re-parsing and re-formatting a
// canonical amount string yields the same string (two fractional digits
// are a fixed point of the rendering).
func TestFormatAmountIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("amount formatting is idempotent on its own output", prop.ForAll(
		func(cents int64) bool {
			v := float64(cents) / 100
			once := canonical.FormatAmount(v)
			reparsed, err := strconv.ParseFloat(once, 64)
			if err != nil {
				return false
			}
			twice := canonical.FormatAmount(reparsed)
			return once == twice
		},
		gen.Int64Range(-1_000_000_00, 1_000_000_00),
	))

	properties.TestingRun(t)
}

// TestTimestampRoundTrip verifies ParseTimestamp(ts.CanonicalString()) yields
// the same canonical string back.
func TestTimestampRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("timestamp canonical string round-trips", prop.ForAll(
		func(year, month, day, hour, minute, sec int) bool {
			y := 2000 + (year % 50)
			m := 1 + (month % 12)
			d := 1 + (day % 28)
			h := hour % 24
			mi := minute % 60
			s := sec % 60

			raw := canonical.NewTimestamp(mkTime(y, m, d, h, mi, s)).CanonicalString()
			parsed, err := canonical.ParseTimestamp(raw)
			if err != nil {
				return false
			}
			return parsed.CanonicalString() == raw
		},
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
