package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// isCombiningMark reports whether r falls in one of the combining-mark
// ranges stripped after NFD decomposition (step 2). These ranges are
// byte-identical to the original Rust implementation's predicate.
func isCombiningMark(r rune) bool {
	switch {
	case r >= 0x0300 && r <= 0x036F:
		return true
	case r >= 0x1AB0 && r <= 0x1AFF:
		return true
	case r >= 0x1DC0 && r <= 0x1DFF:
		return true
	case r >= 0x20D0 && r <= 0x20FF:
		return true
	case r >= 0xFE20 && r <= 0xFE2F:
		return true
	default:
		return false
	}
}

// decomposeAndStrip applies NFD decomposition and drops combining marks in
// the ranges above (step 2).
func decomposeAndStrip(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if isCombiningMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// applyLigatureTable replaces ligatures and typographic punctuation per the
// fixed table (step 3).
func applyLigatureTable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := ligatureReplacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// dropControlChars removes Unicode category Cc characters (step 4). Any
// other non-ASCII codepoint (Greek, Cyrillic, CJK, ...) survives unchanged.
func dropControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Cc, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// replaceNonAlnumWithSpace replaces every character that is neither Unicode
// alphanumeric nor whitespace with a single space (step 5).
func replaceNonAlnumWithSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}

// collapseWhitespace collapses runs of whitespace to a single U+0020 and
// trims the result (step 6).
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// unicodePunctuationPass runs steps 1-6 shared by both the legal-name and
// address pipelines.
func unicodePunctuationPass(s string) string {
	s = strings.ToLower(s) // step 1: simple codepoint lowercasing, not full case folding (see DESIGN.md Open Question 3).
	s = decomposeAndStrip(s)
	s = applyLigatureTable(s)
	s = dropControlChars(s)
	s = replaceNonAlnumWithSpace(s)
	s = collapseWhitespace(s)
	return s
}
