// Package relationship implements the Relationship domain record (C5):
// bilateral or multilateral parties, financial terms, and the Relationship
// builder that assembles and canonicalizes one from raw input.
package relationship

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/cep"
	"github.com/civic-interconnect/cep-core/pkg/record"
)

// Status code values (§4.4 enum value contract).
const (
	StatusActive     = "ACTIVE"
	StatusCompleted  = "COMPLETED"
	StatusTerminated = "TERMINATED"
)

// typeURIPrefix namespaces the relationship-type URI fallback for a raw
// type string not found in the known-type lookup.
const typeURIPrefix = "cep-relationship-type:"

var knownTypeURIs = map[string]string{
	"contract":    "cep-relationship-type:contract",
	"grant":       "cep-relationship-type:grant",
	"partnership": "cep-relationship-type:partnership",
	"membership":  "cep-relationship-type:membership",
	"oversight":   "cep-relationship-type:oversight",
}

// TypeURI resolves a raw relationship-type string to its canonical URI via
// a small lookup, falling back to a lowercase-namespaced URI for anything
// unrecognized (§4.5).
func TypeURI(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if uri, ok := knownTypeURIs[key]; ok {
		return uri
	}
	return typeURIPrefix + key
}

// Party is a {entityId, roleUri} pair shared by both bilateral slots and
// multilateral members.
type Party struct {
	EntityID string `json:"entityId"`
	RoleURI  string `json:"roleUri"`
}

// CanonicalFields implements canonical.Canonicalize.
func (p Party) CanonicalFields() map[string]string {
	return map[string]string{
		"entityId": canonical.Quote(p.EntityID),
		"roleUri":  canonical.Quote(p.RoleURI),
	}
}

// BilateralParties is the two-sided {partyA, partyB} parties shape:
// partyA initiates/grants/contracts, partyB receives/performs/benefits.
type BilateralParties struct {
	PartyA Party `json:"partyA"`
	PartyB Party `json:"partyB"`
}

// CanonicalFields implements canonical.Canonicalize.
func (b BilateralParties) CanonicalFields() map[string]string {
	return map[string]string{
		"partyA": canonical.ToCanonicalString(b.PartyA),
		"partyB": canonical.ToCanonicalString(b.PartyB),
	}
}

// Member is one entry of a MultilateralMembers set: entityId, roleUri, and
// an optional participation share.
type Member struct {
	EntityID           string
	RoleURI            string
	ParticipationShare *float64 // optional, nil means absent
}

// CanonicalFields implements canonical.Canonicalize.
func (m Member) CanonicalFields() map[string]string {
	fields := map[string]string{
		"entityId": canonical.Quote(m.EntityID),
		"roleUri":  canonical.Quote(m.RoleURI),
	}
	if m.ParticipationShare != nil {
		fields["participationShare"] = canonical.FormatShare(*m.ParticipationShare)
	}
	return fields
}

// MultilateralMembers is a true set of Members keyed by entityId: inserting
// a member whose entityId is already present replaces, never duplicates.
// Canonical order is by entityId regardless of insertion order.
type MultilateralMembers struct {
	byID map[string]Member
}

// NewMultilateralMembers builds a set from members, applying the
// replace-on-duplicate-entityId semantics in insertion order.
func NewMultilateralMembers(members ...Member) MultilateralMembers {
	set := MultilateralMembers{byID: make(map[string]Member, len(members))}
	for _, m := range members {
		set.Add(m)
	}
	return set
}

// Add inserts m, replacing any existing member with the same EntityID.
func (s *MultilateralMembers) Add(m Member) {
	if s.byID == nil {
		s.byID = make(map[string]Member)
	}
	s.byID[m.EntityID] = m
}

// Members returns the set's members ordered by entityId (§3a, §4.4).
func (s MultilateralMembers) Members() []Member {
	out := make([]Member, 0, len(s.byID))
	for _, m := range s.byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out
}

// Len reports the number of distinct members.
func (s MultilateralMembers) Len() int { return len(s.byID) }

// ValidateShares checks the invariant that participation shares are either
// all absent or all present and sum to 1.0 within 1e-4.
func (s MultilateralMembers) ValidateShares() error {
	members := s.Members()
	present := 0
	var sum float64
	for _, m := range members {
		if m.ParticipationShare != nil {
			present++
			sum += *m.ParticipationShare
		}
	}
	if present == 0 {
		return nil
	}
	if present != len(members) {
		return cep.NewBuilderError("participation shares must be all absent or all present, got %d of %d", present, len(members))
	}
	if math.Abs(sum-1.0) > 1e-4 {
		return cep.NewBuilderError("participation shares must sum to 1.0 +/- 1e-4, got %v", sum)
	}
	return nil
}

// CanonicalFields implements canonical.Canonicalize. Members are rendered
// in their inherent entityId-sorted set order, never insertion order.
func (s MultilateralMembers) CanonicalFields() map[string]string {
	members := s.Members()
	elems := make([]string, len(members))
	for i, m := range members {
		elems[i] = canonical.ToCanonicalString(m)
	}
	return map[string]string{"members": canonical.QuoteArray(elems)}
}

// Parties is the tagged union of bilateral or multilateral parties; exactly
// one of Bilateral or Multilateral is set.
type Parties struct {
	Bilateral    *BilateralParties
	Multilateral *MultilateralMembers
}

// CanonicalFields implements canonical.Canonicalize.
func (p Parties) CanonicalFields() map[string]string {
	if p.Bilateral != nil {
		return map[string]string{"bilateral": canonical.ToCanonicalString(*p.Bilateral)}
	}
	if p.Multilateral != nil {
		return map[string]string{"multilateral": canonical.ToCanonicalString(*p.Multilateral)}
	}
	return map[string]string{}
}

// FinancialTerms is the Relationship-only nested value object (§3a),
// distinct from ExchangeValue: optional totalValue, optional
// obligatedValue, currencyCode defaults to "USD" when the caller omits it.
type FinancialTerms struct {
	TotalValue     *float64
	ObligatedValue *float64
	CurrencyCode   string
}

// DefaultCurrencyCode is used when the caller omits a currency code.
const DefaultCurrencyCode = "USD"

// CanonicalFields implements canonical.Canonicalize.
func (f FinancialTerms) CanonicalFields() map[string]string {
	currency := f.CurrencyCode
	if currency == "" {
		currency = DefaultCurrencyCode
	}
	m := map[string]string{"currencyCode": canonical.Quote(currency)}
	if f.TotalValue != nil {
		m["totalValue"] = canonical.FormatAmount(*f.TotalValue)
	}
	if f.ObligatedValue != nil {
		m["obligatedValue"] = canonical.FormatAmount(*f.ObligatedValue)
	}
	return m
}

// Relationship is the CEP Relationship domain record.
type Relationship struct {
	SchemaVersion      string
	RevisionNumber     int
	PreviousRecordHash string // optional
	CorrelationID      string // host-side bookkeeping only, not canonical
	Attestation        record.Attestation

	TypeURI    string
	Parties    Parties
	Effective  canonical.Timestamp
	Expiration *canonical.Timestamp // optional

	Status       string
	Jurisdiction string

	FinancialTerms     *FinancialTerms // optional
	ParentRelationship string          // optional
	TermsAttributes    map[string]string // optional
	SourceReferences   []record.SourceReference // optional
}

// CanonicalFields implements canonical.Canonicalize.
func (r Relationship) CanonicalFields() map[string]string {
	m := map[string]string{
		"schemaVersion":       canonical.Quote(r.SchemaVersion),
		"revisionNumber":      strconv.Itoa(r.RevisionNumber),
		"attestation":         canonical.ToCanonicalString(r.Attestation),
		"typeUri":             canonical.Quote(r.TypeURI),
		"parties":             canonical.ToCanonicalString(r.Parties),
		"effectiveTimestamp":  canonical.Quote(r.Effective.CanonicalString()),
		"status":              canonical.Quote(r.Status),
		"jurisdiction":        canonical.Quote(r.Jurisdiction),
	}
	if r.PreviousRecordHash != "" {
		m["previousRecordHash"] = canonical.Quote(r.PreviousRecordHash)
	}
	if r.Expiration != nil {
		m["expirationTimestamp"] = canonical.Quote(r.Expiration.CanonicalString())
	}
	if r.FinancialTerms != nil {
		m["financialTerms"] = canonical.ToCanonicalString(*r.FinancialTerms)
	}
	if r.ParentRelationship != "" {
		m["parentRelationshipId"] = canonical.Quote(r.ParentRelationship)
	}
	if len(r.TermsAttributes) > 0 {
		keys := make([]string, 0, len(r.TermsAttributes))
		for k := range r.TermsAttributes {
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
			b.WriteString(canonical.Quote(r.TermsAttributes[k]))
		}
		b.WriteByte('}')
		m["termsAttributes"] = b.String()
	}
	if refs := record.CanonicalSourceReferencesArray(r.SourceReferences); refs != "" {
		m["sourceReferences"] = refs
	}
	return m
}

// Hash returns the canonical hash of the relationship's canonical string.
func (r Relationship) Hash() string {
	return canonical.HashOf(r)
}
