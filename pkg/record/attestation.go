// Package record holds the nested value objects shared across the Entity,
// Relationship, and Exchange domain records (§3a): the attestation envelope
// and source references. It sits above both pkg/canonical and pkg/cep so
// that pkg/cep never has to import pkg/canonical, which already imports
// pkg/cep.
package record

import (
	"encoding/json"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/cep"
)

// Attestation is the opaque proof envelope carried by every domain record.
// The core never inspects ProofValue for validity — signature
// generation/verification is out of scope (§1 Non-goals). Defaulting to
// ManualAttestationProof with an empty ProofValue is explicit and must be
// recognizable downstream.
type Attestation struct {
	AttestorID            string
	AttestationTimestamp  canonical.Timestamp
	ProofType             string
	ProofValue            string
	VerificationMethodURI string
	ProofPurpose          string
	AnchorURI             string // optional, empty means absent
}

// CanonicalFields implements canonical.Canonicalize.
func (a Attestation) CanonicalFields() map[string]string {
	m := map[string]string{
		"attestorId":            canonical.Quote(a.AttestorID),
		"attestationTimestamp":  canonical.Quote(a.AttestationTimestamp.CanonicalString()),
		"proofType":             canonical.Quote(a.ProofType),
		"proofValue":            canonical.Quote(a.ProofValue),
		"verificationMethodUri": canonical.Quote(a.VerificationMethodURI),
		"proofPurpose":          canonical.Quote(a.ProofPurpose),
	}
	if a.AnchorURI != "" {
		m["anchorUri"] = canonical.Quote(a.AnchorURI)
	}
	return m
}

// ManualAttestation builds the default attestation envelope a builder fills
// in when the caller supplies an attestor id and timestamp but omits the
// remaining proof fields. Defaults never mask an invalid provided value —
// they only fill gaps the caller left open.
func ManualAttestation(attestorID string, ts canonical.Timestamp) Attestation {
	return Attestation{
		AttestorID:            attestorID,
		AttestationTimestamp:  ts,
		ProofType:             cep.ManualAttestationProof,
		ProofValue:            "",
		VerificationMethodURI: "",
		ProofPurpose:          cep.DefaultProofPurpose,
	}
}

type attestationJSON struct {
	AttestorID            string              `json:"attestorId"`
	AttestationTimestamp  canonical.Timestamp `json:"attestationTimestamp"`
	ProofType             string              `json:"proofType"`
	ProofValue            string              `json:"proofValue"`
	VerificationMethodURI string              `json:"verificationMethodUri,omitempty"`
	ProofPurpose          string              `json:"proofPurpose"`
	AnchorURI             string              `json:"anchorUri,omitempty"`
}

// MarshalJSON implements the wire form of §6: lowerCamelCase field names.
func (a Attestation) MarshalJSON() ([]byte, error) {
	return json.Marshal(attestationJSON{
		AttestorID:            a.AttestorID,
		AttestationTimestamp:  a.AttestationTimestamp,
		ProofType:             a.ProofType,
		ProofValue:            a.ProofValue,
		VerificationMethodURI: a.VerificationMethodURI,
		ProofPurpose:          a.ProofPurpose,
		AnchorURI:             a.AnchorURI,
	})
}

// UnmarshalJSON implements the wire form of §6.
func (a *Attestation) UnmarshalJSON(data []byte) error {
	var dto attestationJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	a.AttestorID = dto.AttestorID
	a.AttestationTimestamp = dto.AttestationTimestamp
	a.ProofType = dto.ProofType
	a.ProofValue = dto.ProofValue
	a.VerificationMethodURI = dto.VerificationMethodURI
	a.ProofPurpose = dto.ProofPurpose
	a.AnchorURI = dto.AnchorURI
	return nil
}
