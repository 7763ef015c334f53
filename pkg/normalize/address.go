package normalize

import (
	"regexp"
	"strings"
)

// secondaryUnitPattern matches secondary-unit designators that must be
// stripped before the shared unicode/punctuation pass.
var secondaryUnitPattern = regexp.MustCompile(
	`(?i)\bapt\.?\s*#?\s*\w+|\bsuite\s*#?\s*\w+|\bste\.?\s*#?\s*\w+|\bunit\s*#?\s*\w+|\b#\s*\d+\w*|\bfloor\s*\d+|\bfl\.?\s*\d+|\broom\s*\d+|\brm\.?\s*\d+|\bbldg\.?\s*\w+|\bbuilding\s*\w+`,
)

// Address runs the address pipeline: secondary-unit-designator stripping,
// the shared unicode/punctuation pass, then USPS street-type/directional
// expansion.
func Address(raw string) string {
	stripped := secondaryUnitPattern.ReplaceAllString(raw, "")
	s := unicodePunctuationPass(stripped)

	tokens := strings.Fields(s)
	expanded := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if repl, ok := streetTypeTable[tok]; ok {
			expanded = append(expanded, repl)
			continue
		}
		expanded = append(expanded, tok)
	}
	return strings.TrimSpace(strings.Join(expanded, " "))
}

// AddressNormalizedOrEmpty returns Address(raw), treating a result that
// trims empty (input trimmed empty, or normalized to empty) as absent.
func AddressNormalizedOrEmpty(raw string) (value string, present bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	normalized := Address(raw)
	if normalized == "" {
		return "", false
	}
	return normalized, true
}
