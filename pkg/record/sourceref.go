package record

import (
	"sort"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
)

// SourceReference points back to the system of record a field or record
// was sourced from. Shared across Entity, Relationship, and Exchange.
type SourceReference struct {
	SourceSystemURI string `json:"sourceSystemUri"`
	SourceRecordID  string `json:"sourceRecordId"`
	SourceURL       string `json:"sourceUrl,omitempty"` // optional, empty means absent
}

// CanonicalFields implements canonical.Canonicalize.
func (s SourceReference) CanonicalFields() map[string]string {
	m := map[string]string{
		"sourceSystemUri": canonical.Quote(s.SourceSystemURI),
		"sourceRecordId":  canonical.Quote(s.SourceRecordID),
	}
	if s.SourceURL != "" {
		m["sourceUrl"] = canonical.Quote(s.SourceURL)
	}
	return m
}

// SortSourceReferences orders a slice of source references by
// (sourceSystemUri, sourceRecordId), the array ordering contract of §4.4.
// The input slice is not mutated; a sorted copy is returned.
func SortSourceReferences(refs []SourceReference) []SourceReference {
	sorted := make([]SourceReference, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SourceSystemURI != sorted[j].SourceSystemURI {
			return sorted[i].SourceSystemURI < sorted[j].SourceSystemURI
		}
		return sorted[i].SourceRecordID < sorted[j].SourceRecordID
	})
	return sorted
}

// CanonicalSourceReferencesArray renders a sorted slice of source
// references as the bracketed canonical array form, or "" if empty.
func CanonicalSourceReferencesArray(refs []SourceReference) string {
	if len(refs) == 0 {
		return ""
	}
	sorted := SortSourceReferences(refs)
	elems := make([]string, len(sorted))
	for i, r := range sorted {
		elems[i] = canonical.ToCanonicalString(r)
	}
	return canonical.QuoteArray(elems)
}
