// Package identifier implements the C6 identifier taxonomy: validated LEI,
// SAM UEI, Canadian BN, SNFEI, and additional scheme identifiers, plus the
// container that picks a primary identifier by priority.
package identifier

import (
	"regexp"
	"strings"

	"github.com/civic-interconnect/cep-core/pkg/cep"
)

// Scheme tokens used in the wrapped cep-entity:<scheme>:<value> form.
const (
	SchemeLEI        = "lei"
	SchemeSAMUEI     = "sam-uei"
	SchemeSNFEI      = "snfei"
	SchemeCanadianBN = "canadian-bn"
	SchemeOther      = "other"
)

var (
	leiPattern    = regexp.MustCompile(`^[A-Z0-9]{20}$`)
	samUEIPattern = regexp.MustCompile(`^[A-Z0-9]{12}$`)
	canBNPattern  = regexp.MustCompile(`^[0-9]{9}[A-Z]{2}[0-9]{4}$`)
	snfeiPattern  = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// LEI is a validated 20-alphanumeric-character Legal Entity Identifier,
// uppercased on ingest.
type LEI struct{ value string }

// NewLEI validates and constructs an LEI, uppercasing the raw input first.
func NewLEI(raw string) (LEI, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if !leiPattern.MatchString(v) {
		return LEI{}, cep.NewInvalidIdentifier("LEI", raw)
	}
	return LEI{value: v}, nil
}

// Value returns the raw LEI string.
func (l LEI) Value() string { return l.value }

// SAMUEI is a validated 12-character uppercase-alphanumeric SAM UEI.
type SAMUEI struct{ value string }

// NewSAMUEI validates and constructs a SAM UEI, uppercasing the raw input first.
func NewSAMUEI(raw string) (SAMUEI, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if !samUEIPattern.MatchString(v) {
		return SAMUEI{}, cep.NewInvalidIdentifier("SAM UEI", raw)
	}
	return SAMUEI{value: v}, nil
}

// Value returns the raw SAM UEI string.
func (s SAMUEI) Value() string { return s.value }

// CanadianBN is a validated 15-character Canadian Business Number:
// 9 digits + 2 uppercase letters + 4 digits.
type CanadianBN struct{ value string }

// NewCanadianBN validates and constructs a Canadian BN.
func NewCanadianBN(raw string) (CanadianBN, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if !canBNPattern.MatchString(v) {
		return CanadianBN{}, cep.NewInvalidIdentifier("Canadian BN", raw)
	}
	return CanadianBN{value: v}, nil
}

// Value returns the raw Canadian BN string.
func (c CanadianBN) Value() string { return c.value }

// SNFEI is a validated 64-lowercase-hex Sub-National Federated Entity Identifier.
type SNFEI struct{ value string }

// NewSNFEI validates and constructs an SNFEI (already lowercase hex expected).
func NewSNFEI(raw string) (SNFEI, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if !snfeiPattern.MatchString(v) {
		return SNFEI{}, cep.NewInvalidIdentifier("SNFEI", raw)
	}
	return SNFEI{value: v}, nil
}

// Value returns the raw SNFEI string.
func (s SNFEI) Value() string { return s.value }

// AdditionalScheme is an opaque {schemeUri, value} identifier pair for
// schemes not covered by the closed taxonomy above.
type AdditionalScheme struct {
	SchemeURI string `json:"schemeUri"`
	Value     string `json:"value"`
}

// Identifiers is the container for a record's identifier slots.
type Identifiers struct {
	LEI               *LEI
	SAMUEI            *SAMUEI
	SNFEI             *SNFEI
	CanadianBN        *CanadianBN
	AdditionalSchemes []AdditionalScheme // sorted by SchemeURI for canonical output
}

// HasAny reports whether at least one identifier slot is present.
func (ids Identifiers) HasAny() bool {
	return ids.LEI != nil || ids.SAMUEI != nil || ids.SNFEI != nil ||
		ids.CanadianBN != nil || len(ids.AdditionalSchemes) > 0
}

// PrimaryIdentifier returns the wrapped cep-entity:<scheme>:<value> form of
// the first present slot in priority order: LEI -> SAM UEI -> SNFEI ->
// Canadian BN -> first additional scheme.
func (ids Identifiers) PrimaryIdentifier() (string, bool) {
	if ids.LEI != nil {
		return wrap(SchemeLEI, ids.LEI.Value()), true
	}
	if ids.SAMUEI != nil {
		return wrap(SchemeSAMUEI, ids.SAMUEI.Value()), true
	}
	if ids.SNFEI != nil {
		return wrap(SchemeSNFEI, ids.SNFEI.Value()), true
	}
	if ids.CanadianBN != nil {
		return wrap(SchemeCanadianBN, ids.CanadianBN.Value()), true
	}
	if len(ids.AdditionalSchemes) > 0 {
		first := ids.AdditionalSchemes[0]
		return wrap(first.SchemeURI, first.Value), true
	}
	return "", false
}

func wrap(scheme, value string) string {
	return "cep-entity:" + scheme + ":" + value
}
