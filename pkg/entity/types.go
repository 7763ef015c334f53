// Package entity implements the Entity domain record (C5): legal name,
// jurisdiction, entity-type URI, identifiers, status, and the Entity
// builder that assembles and canonicalizes one from raw input.
package entity

import (
	"strconv"
	"strings"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/identifier"
	"github.com/civic-interconnect/cep-core/pkg/record"
)

// TypeCode is the normalized entity-type enumeration (§4.5 step 5).
type TypeCode string

// TypeCode values.
const (
	TypeMunicipality    TypeCode = "municipality"
	TypeCounty          TypeCode = "county"
	TypeState           TypeCode = "state"
	TypeFederal         TypeCode = "federal"
	TypeSchoolDistrict  TypeCode = "school_district"
	TypeSpecialDistrict TypeCode = "special_district"
	TypeOther           TypeCode = "other"
)

// typeURIPrefix namespaces the entity-type URI produced from a TypeCode.
const typeURIPrefix = "cep-entity-type:"

// TypeURI renders the entity-type URI for a TypeCode.
func TypeURI(code TypeCode) string {
	return typeURIPrefix + string(code)
}

var knownTypes = map[string]TypeCode{
	"municipality":     TypeMunicipality,
	"city":             TypeMunicipality,
	"town":             TypeMunicipality,
	"village":          TypeMunicipality,
	"county":           TypeCounty,
	"parish":           TypeCounty,
	"borough":          TypeCounty,
	"state":            TypeState,
	"province":         TypeState,
	"federal":          TypeFederal,
	"national":         TypeFederal,
	"school_district":  TypeSchoolDistrict,
	"school district":  TypeSchoolDistrict,
	"usd":              TypeSchoolDistrict,
	"special_district": TypeSpecialDistrict,
	"special district": TypeSpecialDistrict,
	"authority":        TypeSpecialDistrict,
}

// NormalizeType maps a free-text raw entity type to the enumerated set,
// falling through to TypeOther for anything unrecognized. fellThrough
// reports whether a non-empty raw input nonetheless fell through to
// TypeOther, so the caller (builder) can emit the documented warning.
func NormalizeType(raw string) (code TypeCode, fellThrough bool) {
	key := strings.TrimSpace(strings.ToLower(raw))
	if key == "" {
		return TypeOther, false
	}
	if code, ok := knownTypes[key]; ok {
		return code, false
	}
	return TypeOther, true
}

// Status is the EntityStatus nested value object (§3a): statusCode,
// effectiveTimestamp, optional terminationTimestamp, optional
// successorEntityId.
type Status struct {
	StatusCode           string              `json:"statusCode"`
	EffectiveTimestamp   canonical.Timestamp `json:"effectiveTimestamp"`
	TerminationTimestamp *canonical.Timestamp `json:"terminationTimestamp,omitempty"`
	SuccessorEntityID    string              `json:"successorEntityId,omitempty"` // optional, empty means absent
}

// CanonicalFields implements canonical.Canonicalize.
func (s Status) CanonicalFields() map[string]string {
	m := map[string]string{
		"statusCode":         canonical.Quote(s.StatusCode),
		"effectiveTimestamp": canonical.Quote(s.EffectiveTimestamp.CanonicalString()),
	}
	if s.TerminationTimestamp != nil {
		m["terminationTimestamp"] = canonical.Quote(s.TerminationTimestamp.CanonicalString())
	}
	if s.SuccessorEntityID != "" {
		m["successorEntityId"] = canonical.Quote(s.SuccessorEntityID)
	}
	return m
}

// Status code values.
const (
	StatusActive     = "ACTIVE"
	StatusTerminated = "TERMINATED"
)

// ResolutionConfidence is the nested value object (§3a) recording the
// tiered-identity-resolution outcome that produced the entity's identifier.
type ResolutionConfidence struct {
	Tier       int      `json:"tier"`
	Confidence float64  `json:"confidence"`
	FieldsUsed []string `json:"fieldsUsed"`
}

// CanonicalFields implements canonical.Canonicalize.
func (r ResolutionConfidence) CanonicalFields() map[string]string {
	elems := make([]string, len(r.FieldsUsed))
	for i, f := range r.FieldsUsed {
		elems[i] = canonical.Quote(f)
	}
	return map[string]string{
		"tier":       strconv.Itoa(r.Tier),
		"confidence": canonical.FormatConfidence(r.Confidence),
		"fieldsUsed": canonical.QuoteArray(elems),
	}
}

// Entity is the CEP Entity domain record.
type Entity struct {
	SchemaVersion        string                 `json:"schemaVersion"`
	RevisionNumber       int                    `json:"revisionNumber"`
	PreviousRecordHash   string                 `json:"previousRecordHash,omitempty"` // optional
	CorrelationID        string                 `json:"correlationId,omitempty"`      // host-side bookkeeping only, not canonical
	Attestation          record.Attestation     `json:"attestation"`
	LegalName            string                 `json:"legalName"`
	NormalizedName       string                 `json:"normalizedName,omitempty"` // optional
	Jurisdiction         string                 `json:"jurisdiction"`
	EntityType           TypeCode               `json:"-"`
	EntityTypeURI        string                 `json:"entityTypeUri"`
	Identifiers          identifier.Identifiers `json:"identifiers"`
	Status               Status                 `json:"status"`
	NAICS                string                 `json:"naics,omitempty"` // optional
	ResolutionConfidence *ResolutionConfidence  `json:"resolutionConfidence,omitempty"` // optional
	VerifiableID         string                 `json:"verifiableId"`
}

// CanonicalFields implements canonical.Canonicalize.
func (e Entity) CanonicalFields() map[string]string {
	m := map[string]string{
		"schemaVersion":  canonical.Quote(e.SchemaVersion),
		"revisionNumber": strconv.Itoa(e.RevisionNumber),
		"attestation":    canonical.ToCanonicalString(e.Attestation),
		"legalName":      canonical.Quote(e.LegalName),
		"jurisdiction":   canonical.Quote(e.Jurisdiction),
		"entityTypeUri":  canonical.Quote(e.EntityTypeURI),
		"identifiers":    canonical.ToCanonicalString(e.Identifiers),
		"status":         canonical.ToCanonicalString(e.Status),
		"verifiableId":   canonical.Quote(e.VerifiableID),
	}
	if e.PreviousRecordHash != "" {
		m["previousRecordHash"] = canonical.Quote(e.PreviousRecordHash)
	}
	if e.NormalizedName != "" {
		m["normalizedName"] = canonical.Quote(e.NormalizedName)
	}
	if e.NAICS != "" {
		m["naics"] = canonical.Quote(e.NAICS)
	}
	if e.ResolutionConfidence != nil {
		m["resolutionConfidence"] = canonical.ToCanonicalString(*e.ResolutionConfidence)
	}
	return m
}

// Hash returns the canonical hash of the entity's canonical string.
func (e Entity) Hash() string {
	return canonical.HashOf(e)
}
