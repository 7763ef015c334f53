// Package canonjson is a test-time cross-check backend: it independently
// serializes a record's JSON form through RFC 8785 JSON Canonicalization
// Scheme (JCS) and compares the result's top-level key set against the
// hand-rolled canonical string produced by pkg/canonical. It is never used
// on the production hashing path, so it cannot introduce nondeterminism
// into a record's Hash().
package canonjson

import (
	"encoding/json"
	"sort"

	"github.com/gowebpki/jcs"

	"github.com/civic-interconnect/cep-core/pkg/cep"
)

// Canonicalizable is the JSON wire-form side of a record; the hand-rolled
// canonical string is passed to CrossCheck separately.
type Canonicalizable interface {
	json.Marshaler
}

// CrossCheck marshals rec to JSON, runs it through JCS, and compares the
// resulting top-level key set against that of handRolled (the string
// produced by canonical.ToCanonicalString(rec)). The correlationId key is
// left out of the comparison. It reports a mismatch as
// an error rather than panicking, since a divergence here is a modeling
// bug in either serializer, not a malformed record.
func CrossCheck(rec Canonicalizable, handRolled string) error {
	wire, err := rec.MarshalJSON()
	if err != nil {
		return cep.NewSerialization(err)
	}

	jcsBytes, err := jcs.Transform(wire)
	if err != nil {
		return cep.NewSerialization(err)
	}

	var jcsDoc map[string]any
	if err := json.Unmarshal(jcsBytes, &jcsDoc); err != nil {
		return cep.NewInvalidJSON(err)
	}
	// correlationId is host-side bookkeeping carried on the wire but never
	// part of a record's canonical string.
	delete(jcsDoc, "correlationId")

	var handDoc map[string]any
	if err := json.Unmarshal([]byte(handRolled), &handDoc); err != nil {
		return cep.NewInvalidJSON(err)
	}

	return compareKeys(jcsDoc, handDoc)
}

// compareKeys checks that both documents carry the same top-level key set.
// Nested objects and arrays are compared by presence only: the two
// serializers use different field orderings and array-element shapes by
// design (JCS sorts keys but not semantically-ordered arrays like
// intermediaryEntities), so only structural parity is asserted here.
func compareKeys(jcsDoc, handDoc map[string]any) error {
	jcsKeys := sortedKeys(jcsDoc)
	handKeys := sortedKeys(handDoc)

	if len(jcsKeys) != len(handKeys) {
		return cep.NewBuilderError("cross-check key count mismatch: jcs=%v hand=%v", jcsKeys, handKeys)
	}
	for i, k := range jcsKeys {
		if k != handKeys[i] {
			return cep.NewBuilderError("cross-check key mismatch at position %d: jcs=%q hand=%q", i, k, handKeys[i])
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
