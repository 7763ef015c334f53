package canonical

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/civic-interconnect/cep-core/pkg/cep"
)

// canonicalLayout is the microsecond-precision UTC wire form:
// YYYY-MM-DDTHH:MM:SS.ffffffZ.
const canonicalLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp wraps a UTC instant and always renders with microsecond
// precision regardless of the precision it was constructed from.
type Timestamp struct {
	t time.Time
}

// NewTimestamp constructs a Timestamp from a time.Time, normalizing to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC()}
}

// Time returns the underlying time.Time (UTC).
func (ts Timestamp) Time() time.Time { return ts.t }

// IsZero reports whether the timestamp was never set.
func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }

// CanonicalString renders the microsecond UTC wire form.
func (ts Timestamp) CanonicalString() string {
	return ts.t.Format(canonicalLayout)
}

// ParseTimestamp accepts the canonical microsecond shape and also a bare
// YYYY-MM-DD date, which is widened to T00:00:00.000000Z.
func ParseTimestamp(raw string) (Timestamp, error) {
	trimmed := strings.TrimSpace(raw)
	if t, err := time.Parse(canonicalLayout, trimmed); err == nil {
		return Timestamp{t: t.UTC()}, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05Z", trimmed); err == nil {
		return Timestamp{t: t.UTC()}, nil
	}
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return Timestamp{t: t.UTC()}, nil
	}
	return Timestamp{}, cep.NewInvalidTimestamp(raw)
}

// MustParseTimestamp panics on error; reserved for compile-time-known
// constants in tests.
func MustParseTimestamp(raw string) Timestamp {
	ts, err := ParseTimestamp(raw)
	if err != nil {
		panic(err)
	}
	return ts
}

// MarshalJSON renders the timestamp as a canonical microsecond JSON string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.CanonicalString())
}

// UnmarshalJSON accepts the canonical microsecond shape and the bare-date
// widening per ParseTimestamp; a JSON null leaves the timestamp zero.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return cep.NewInvalidJSON(err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
