// Package exchange implements the Exchange domain record (C5): value
// exchanges between a source and recipient party, with optional provenance
// chain and categorization, and the Exchange builder.
package exchange

import (
	"strconv"
	"strings"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/record"
)

// Status code values.
const (
	StatusActive     = "ACTIVE"
	StatusCompleted  = "COMPLETED"
	StatusTerminated = "TERMINATED"
)

const typeURIPrefix = "cep-exchange-type:"

var knownTypeURIs = map[string]string{
	"grant_disbursement": "cep-exchange-type:grant_disbursement",
	"contract_payment":   "cep-exchange-type:contract_payment",
	"tax_transfer":       "cep-exchange-type:tax_transfer",
	"fee_payment":        "cep-exchange-type:fee_payment",
	"reimbursement":      "cep-exchange-type:reimbursement",
}

// TypeURI resolves a raw exchange-type string to its canonical URI via a
// small lookup, falling back to a lowercase-namespaced URI for anything
// unrecognized (§4.5).
func TypeURI(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if uri, ok := knownTypeURIs[key]; ok {
		return uri
	}
	return typeURIPrefix + key
}

// ExchangeParty is a {entityId, roleUri} pair with an optional account
// identifier, used for both the source and recipient slot.
type ExchangeParty struct {
	EntityID          string
	RoleURI           string
	AccountIdentifier string // optional
}

// CanonicalFields implements canonical.Canonicalize.
func (p ExchangeParty) CanonicalFields() map[string]string {
	m := map[string]string{
		"entityId": canonical.Quote(p.EntityID),
		"roleUri":  canonical.Quote(p.RoleURI),
	}
	if p.AccountIdentifier != "" {
		m["accountIdentifier"] = canonical.Quote(p.AccountIdentifier)
	}
	return m
}

// ExchangeValue is the monetary (or in-kind) value block of an exchange.
// InKindDescription is required together with ValueTypeURI only when the
// value type is in-kind; the builder, not this type, enforces that.
type ExchangeValue struct {
	Amount            float64
	CurrencyCode      string
	ValueTypeURI      string
	InKindDescription string // optional
}

// CanonicalFields implements canonical.Canonicalize.
func (v ExchangeValue) CanonicalFields() map[string]string {
	m := map[string]string{
		"amount":       canonical.FormatAmount(v.Amount),
		"currencyCode": canonical.Quote(v.CurrencyCode),
		"valueTypeUri": canonical.Quote(v.ValueTypeURI),
	}
	if v.InKindDescription != "" {
		m["inKindDescription"] = canonical.Quote(v.InKindDescription)
	}
	return m
}

// ProvenanceChain is the optional funding/provenance trail of an exchange.
// IntermediaryEntities is semantically ordered and must never be sorted.
type ProvenanceChain struct {
	FundingChainTag        string
	UltimateSourceEntityID string
	IntermediaryEntities   []string
	ParentExchangeID       string
}

// HasAny reports whether at least one field of the chain is present.
func (c ProvenanceChain) HasAny() bool {
	return c.FundingChainTag != "" || c.UltimateSourceEntityID != "" ||
		len(c.IntermediaryEntities) > 0 || c.ParentExchangeID != ""
}

// CanonicalFields implements canonical.Canonicalize.
func (c ProvenanceChain) CanonicalFields() map[string]string {
	m := map[string]string{}
	if c.FundingChainTag != "" {
		m["fundingChainTag"] = canonical.Quote(c.FundingChainTag)
	}
	if c.UltimateSourceEntityID != "" {
		m["ultimateSourceEntityId"] = canonical.Quote(c.UltimateSourceEntityID)
	}
	if len(c.IntermediaryEntities) > 0 {
		elems := make([]string, len(c.IntermediaryEntities))
		for i, e := range c.IntermediaryEntities {
			elems[i] = canonical.Quote(e)
		}
		m["intermediaryEntities"] = canonical.QuoteArray(elems)
	}
	if c.ParentExchangeID != "" {
		m["parentExchangeId"] = canonical.Quote(c.ParentExchangeID)
	}
	return m
}

// ExchangeCategorization is the optional classification-code block.
type ExchangeCategorization struct {
	CFDANumber        string
	NAICSCode         string
	GTASAccountCode   string
	LocalCategoryCode string
	LocalCategoryLabel string
}

// HasAny reports whether at least one field of the categorization is present.
func (c ExchangeCategorization) HasAny() bool {
	return c.CFDANumber != "" || c.NAICSCode != "" || c.GTASAccountCode != "" ||
		c.LocalCategoryCode != "" || c.LocalCategoryLabel != ""
}

// CanonicalFields implements canonical.Canonicalize.
func (c ExchangeCategorization) CanonicalFields() map[string]string {
	m := map[string]string{}
	if c.CFDANumber != "" {
		m["cfdaNumber"] = canonical.Quote(c.CFDANumber)
	}
	if c.NAICSCode != "" {
		m["naicsCode"] = canonical.Quote(c.NAICSCode)
	}
	if c.GTASAccountCode != "" {
		m["gtasAccountCode"] = canonical.Quote(c.GTASAccountCode)
	}
	if c.LocalCategoryCode != "" {
		m["localCategoryCode"] = canonical.Quote(c.LocalCategoryCode)
	}
	if c.LocalCategoryLabel != "" {
		m["localCategoryLabel"] = canonical.Quote(c.LocalCategoryLabel)
	}
	return m
}

// Exchange is the CEP Exchange domain record.
type Exchange struct {
	SchemaVersion      string
	RevisionNumber     int
	PreviousRecordHash string // optional
	CorrelationID      string // host-side bookkeeping only, not canonical
	Attestation        record.Attestation

	TypeURI   string
	Source    ExchangeParty
	Recipient ExchangeParty
	Value     ExchangeValue
	Occurred  canonical.Timestamp
	Status    string

	Provenance       *ProvenanceChain         // optional
	Categorization   *ExchangeCategorization  // optional
	SourceReferences []record.SourceReference // optional
}

// CanonicalFields implements canonical.Canonicalize.
func (e Exchange) CanonicalFields() map[string]string {
	m := map[string]string{
		"schemaVersion":      canonical.Quote(e.SchemaVersion),
		"revisionNumber":     strconv.Itoa(e.RevisionNumber),
		"attestation":        canonical.ToCanonicalString(e.Attestation),
		"typeUri":            canonical.Quote(e.TypeURI),
		"sourceParty":        canonical.ToCanonicalString(e.Source),
		"recipientParty":     canonical.ToCanonicalString(e.Recipient),
		"value":              canonical.ToCanonicalString(e.Value),
		"occurredTimestamp":  canonical.Quote(e.Occurred.CanonicalString()),
		"status":             canonical.Quote(e.Status),
	}
	if e.PreviousRecordHash != "" {
		m["previousRecordHash"] = canonical.Quote(e.PreviousRecordHash)
	}
	if e.Provenance != nil && e.Provenance.HasAny() {
		m["provenanceChain"] = canonical.ToCanonicalString(*e.Provenance)
	}
	if e.Categorization != nil && e.Categorization.HasAny() {
		m["categorization"] = canonical.ToCanonicalString(*e.Categorization)
	}
	if refs := record.CanonicalSourceReferencesArray(e.SourceReferences); refs != "" {
		m["sourceReferences"] = refs
	}
	return m
}

// Hash returns the canonical hash of the exchange's canonical string.
func (e Exchange) Hash() string {
	return canonical.HashOf(e)
}

// FormatValueAmount renders v's amount using the same two-decimal canonical
// rendering present in the record's hash pre-image.
func FormatValueAmount(v ExchangeValue) string {
	return canonical.FormatAmount(v.Amount)
}
