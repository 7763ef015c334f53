// Package localize implements the C2 Localization Functor and Registry:
// jurisdiction-scoped pre-normalization with hierarchical configuration
// inheritance, applied before pkg/normalize.
package localize

import "strings"

// Rule is an ordered jurisdiction rewrite rule. If Regex is true, Pattern
// is compiled and substituted globally; otherwise it is a plain substring
// replacement. When is not empty is an optional CEL guard expression (see
// pkg/localize/guard.go); when absent the rule always applies.
type Rule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	Regex       bool   `yaml:"is_regex"`
	When        string `yaml:"when,omitempty"`
}

// Config is a LocalizationConfig: jurisdiction-specific rewrite tables plus
// an optional parent for hierarchical inheritance.
type Config struct {
	Jurisdiction string            `yaml:"jurisdiction"`
	Parent       string            `yaml:"parent,omitempty"`
	Abbreviations map[string]string `yaml:"abbreviations,omitempty"`
	AgencyNames   map[string]string `yaml:"agency_names,omitempty"`
	EntityTypes   map[string]string `yaml:"entity_types,omitempty"`
	Rules         []Rule            `yaml:"rules,omitempty"`
	StopWords     map[string]bool   `yaml:"-"`
	StopWordsList []string          `yaml:"stop_words,omitempty"`
}

// Empty returns an empty config tagged with the given jurisdiction.
func Empty(jurisdiction string) Config {
	return Config{Jurisdiction: strings.ToLower(jurisdiction)}
}

// normalizeStopWords converts the YAML-friendly StopWordsList into the
// lookup-friendly StopWords set. Called once after unmarshal.
func (c *Config) normalizeStopWords() {
	if c.StopWords == nil {
		c.StopWords = make(map[string]bool, len(c.StopWordsList))
	}
	for _, w := range c.StopWordsList {
		c.StopWords[strings.ToLower(w)] = true
	}
}

// Merge produces the child-wins merge of child over parent: the three maps
// union with child taking precedence on key collision; rules are
// concatenated parent-first then child; stop-words are set-unioned;
// jurisdiction takes the child's value; the parent pointer is retained for
// traceability.
func Merge(parent, child Config) Config {
	merged := Config{
		Jurisdiction:  child.Jurisdiction,
		Parent:        child.Parent,
		Abbreviations: mergeMaps(parent.Abbreviations, child.Abbreviations),
		AgencyNames:   mergeMaps(parent.AgencyNames, child.AgencyNames),
		EntityTypes:   mergeMaps(parent.EntityTypes, child.EntityTypes),
		Rules:         append(append([]Rule{}, parent.Rules...), child.Rules...),
		StopWords:     mergeStopWords(parent.StopWords, child.StopWords),
	}
	return merged
}

func mergeMaps(parent, child map[string]string) map[string]string {
	out := make(map[string]string, len(parent)+len(child))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

func mergeStopWords(parent, child map[string]bool) map[string]bool {
	out := make(map[string]bool, len(parent)+len(child))
	for k := range parent {
		out[k] = true
	}
	for k := range child {
		out[k] = true
	}
	return out
}
