// Package normalize implements the C1 Normalizing Functor: lexical
// normalization of legal names and addresses, and the registration-date
// parser, culminating in the canonical input assembly consumed by C4.
package normalize

import "strings"

// LegalNameOptions controls optional behavior of the legal-name pipeline.
type LegalNameOptions struct {
	// RemoveStopWords drops tokens in the stop-word set (step 8).
	RemoveStopWords bool
	// PreserveInitial keeps a leading stop word even when RemoveStopWords is set.
	PreserveInitial bool
}

// LegalName runs the full legal-name pipeline (steps 1-9) and returns the
// normalized, abbreviation-expanded form.
func LegalName(raw string, opts LegalNameOptions) string {
	s := unicodePunctuationPass(raw)
	tokens := strings.Fields(s)

	expanded := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if repl, ok := legalSuffixTable[tok]; ok {
			expanded = append(expanded, strings.Fields(repl)...)
			continue
		}
		expanded = append(expanded, tok)
	}

	// "s.a." becomes the tokens "s" and "a"; only "a" is a stop word, so a bare "s" remains.
	if opts.RemoveStopWords {
		filtered := make([]string, 0, len(expanded))
		for i, tok := range expanded {
			if i == 0 && opts.PreserveInitial && stopWords[tok] {
				filtered = append(filtered, tok)
				continue
			}
			if stopWords[tok] {
				continue
			}
			filtered = append(filtered, tok)
		}
		expanded = filtered
	}

	return strings.TrimSpace(strings.Join(expanded, " "))
}

// IsIdempotent-by-construction: LegalName applied twice to its own output
// is a no-op, since the output contains no characters step 1-6 would
// further transform and no remaining token matches the suffix table or the
// stop-word set a second time.
