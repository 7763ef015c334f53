package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"

	"github.com/civic-interconnect/cep-core/pkg/cep"
)

// Canonicalize is implemented by every domain record and nested value
// object: it produces a map from field name to already-serialized field
// value string, ready for codepoint-sorted composition.
//
// Optional-absent fields must simply not appear as a key in the returned
// map; numeric, boolean, nested-object, and array values must already be
// pre-serialized as strings by the producer (nested objects as their own
// canonical strings, arrays as "[elem,elem,...]").
type Canonicalize interface {
	CanonicalFields() map[string]string
}

// ToCanonicalString renders the sorted single-line canonical form of any
// Canonicalize implementor: {"k1":v1,"k2":v2,...}. Go's sort.Strings is a
// byte-wise comparison, which is equivalent to Unicode-codepoint order for
// the ASCII field names used throughout this schema.
func ToCanonicalString(c Canonicalize) string {
	fields := c.CanonicalFields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(k)
		b.WriteString(`":`)
		b.WriteString(fields[k])
	}
	b.WriteByte('}')
	return b.String()
}

// Quote wraps a raw string in double quotes, escaping only the minimum
// necessary to preserve the characters (used by every producer of a string
// field value).
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteArray joins already-canonicalized element strings into a bracketed
// array literal: [elem,elem,...].
func QuoteArray(elems []string) string {
	return "[" + strings.Join(elems, ",") + "]"
}

// Hash returns the canonical hash (lowercase 64-char hex SHA-256) of a
// pre-image string, encoded as UTF-8.
func Hash(preimage string) string {
	sum := sha256.Sum256([]byte(preimage))
	return hex.EncodeToString(sum[:])
}

// HashOf returns the canonical hash of a Canonicalize implementor's
// canonical string.
func HashOf(c Canonicalize) string {
	return Hash(ToCanonicalString(c))
}

var canonicalHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateHash checks the 64-lowercase-hex predicate for a string
// purporting to be a canonical hash.
func ValidateHash(raw string) error {
	if !canonicalHashPattern.MatchString(raw) {
		return cep.NewInvalidHash(raw)
	}
	return nil
}
