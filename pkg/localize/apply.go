package localize

import (
	"regexp"
	"strings"
)

// Activation is the read-only context a rule's optional `when` guard is
// evaluated against.
type Activation struct {
	Jurisdiction string
	EntityType   string
}

// ApplyToName runs apply_to_name(raw) -> intermediate per §4.2: lowercase,
// agency-name substitution, per-token abbreviation replacement,
// entity-type substitution, then ordered rule application. Iteration order
// within a map step is implementation-defined and must not affect the
// output; the rule list is strictly ordered.
func (c Config) ApplyToName(raw string, act Activation) string {
	s := strings.ToLower(raw)

	for abbrev, full := range c.AgencyNames {
		s = replaceWordBoundary(s, abbrev, full)
	}

	tokens := strings.Fields(s)
	for i, tok := range tokens {
		if full, ok := c.Abbreviations[tok]; ok {
			tokens[i] = full
		}
	}
	s = strings.Join(tokens, " ")

	for local, canon := range c.EntityTypes {
		s = replaceWordBoundary(s, local, canon)
	}

	for _, rule := range c.Rules {
		if rule.When != "" && !evaluateGuard(rule.When, act) {
			continue
		}
		if rule.Regex {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				continue // malformed jurisdiction-supplied regex: skip, never panic
			}
			s = re.ReplaceAllString(s, rule.Replacement)
		} else {
			s = strings.ReplaceAll(s, rule.Pattern, rule.Replacement)
		}
	}

	return s
}

func replaceWordBoundary(s, pattern, replacement string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(pattern) + `\b`)
	return re.ReplaceAllString(s, replacement)
}
