package identifier

import (
	"sort"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
)

// CanonicalFields implements canonical.Canonicalize. Optional slots absent
// are simply omitted from the map.
func (ids Identifiers) CanonicalFields() map[string]string {
	m := map[string]string{}
	if ids.LEI != nil {
		m["lei"] = canonical.Quote(ids.LEI.Value())
	}
	if ids.SAMUEI != nil {
		m["samUei"] = canonical.Quote(ids.SAMUEI.Value())
	}
	if ids.SNFEI != nil {
		m["snfei"] = canonical.Quote(ids.SNFEI.Value())
	}
	if ids.CanadianBN != nil {
		m["canadianBn"] = canonical.Quote(ids.CanadianBN.Value())
	}
	if len(ids.AdditionalSchemes) > 0 {
		sorted := make([]AdditionalScheme, len(ids.AdditionalSchemes))
		copy(sorted, ids.AdditionalSchemes)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].SchemeURI < sorted[j].SchemeURI })

		elems := make([]string, len(sorted))
		for i, s := range sorted {
			elems[i] = canonical.ToCanonicalString(additionalSchemeCanon{s})
		}
		m["additionalSchemes"] = canonical.QuoteArray(elems)
	}
	return m
}

type additionalSchemeCanon struct{ s AdditionalScheme }

func (a additionalSchemeCanon) CanonicalFields() map[string]string {
	return map[string]string{
		"schemeUri": canonical.Quote(a.s.SchemeURI),
		"value":     canonical.Quote(a.s.Value),
	}
}
