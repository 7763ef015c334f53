package relationship

import (
	"encoding/json"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/cep"
	"github.com/civic-interconnect/cep-core/pkg/record"
)

type partiesJSON struct {
	Bilateral    *BilateralParties `json:"bilateral,omitempty"`
	Multilateral []Member          `json:"multilateral,omitempty"`
}

type memberJSON struct {
	EntityID           string   `json:"entityId"`
	RoleURI            string   `json:"roleUri"`
	ParticipationShare *float64 `json:"participationShare,omitempty"`
}

// MarshalJSON implements the wire form of §6. Multilateral members are
// rendered as a JSON array in their canonical entityId-sorted order.
func (p Parties) MarshalJSON() ([]byte, error) {
	dto := partiesJSON{}
	if p.Bilateral != nil {
		dto.Bilateral = p.Bilateral
	}
	if p.Multilateral != nil {
		members := p.Multilateral.Members()
		dto.Multilateral = members
	}
	return json.Marshal(dto)
}

// UnmarshalJSON implements the wire form of §6.
func (p *Parties) UnmarshalJSON(data []byte) error {
	var dto partiesJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	if dto.Bilateral != nil {
		p.Bilateral = dto.Bilateral
		p.Multilateral = nil
		return nil
	}
	set := NewMultilateralMembers(dto.Multilateral...)
	p.Multilateral = &set
	p.Bilateral = nil
	return nil
}

func (m Member) MarshalJSON() ([]byte, error) {
	return json.Marshal(memberJSON{
		EntityID:           m.EntityID,
		RoleURI:            m.RoleURI,
		ParticipationShare: m.ParticipationShare,
	})
}

func (m *Member) UnmarshalJSON(data []byte) error {
	var dto memberJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	m.EntityID = dto.EntityID
	m.RoleURI = dto.RoleURI
	m.ParticipationShare = dto.ParticipationShare
	return nil
}

type financialTermsJSON struct {
	TotalValue     *float64 `json:"totalValue,omitempty"`
	ObligatedValue *float64 `json:"obligatedValue,omitempty"`
	CurrencyCode   string   `json:"currencyCode"`
}

func (f FinancialTerms) MarshalJSON() ([]byte, error) {
	currency := f.CurrencyCode
	if currency == "" {
		currency = DefaultCurrencyCode
	}
	return json.Marshal(financialTermsJSON{
		TotalValue:     f.TotalValue,
		ObligatedValue: f.ObligatedValue,
		CurrencyCode:   currency,
	})
}

func (f *FinancialTerms) UnmarshalJSON(data []byte) error {
	var dto financialTermsJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	f.TotalValue = dto.TotalValue
	f.ObligatedValue = dto.ObligatedValue
	f.CurrencyCode = dto.CurrencyCode
	return nil
}

// relationshipJSON mirrors Relationship's wire form.
type relationshipJSON struct {
	SchemaVersion      string                    `json:"schemaVersion"`
	RevisionNumber     int                       `json:"revisionNumber"`
	PreviousRecordHash string                     `json:"previousRecordHash,omitempty"`
	CorrelationID      string                     `json:"correlationId,omitempty"`
	Attestation        record.Attestation         `json:"attestation"`
	TypeURI            string                     `json:"typeUri"`
	Parties            Parties                    `json:"parties"`
	Effective          json.RawMessage            `json:"effectiveTimestamp"`
	Expiration         json.RawMessage            `json:"expirationTimestamp,omitempty"`
	Status             string                     `json:"status"`
	Jurisdiction       string                     `json:"jurisdiction"`
	FinancialTerms     *FinancialTerms            `json:"financialTerms,omitempty"`
	ParentRelationship string                     `json:"parentRelationshipId,omitempty"`
	TermsAttributes    map[string]string          `json:"termsAttributes,omitempty"`
	SourceReferences   []record.SourceReference   `json:"sourceReferences,omitempty"`
}

// MarshalJSON implements the wire form of §6.
func (r Relationship) MarshalJSON() ([]byte, error) {
	effective, err := r.Effective.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var expiration json.RawMessage
	if r.Expiration != nil {
		expiration, err = r.Expiration.MarshalJSON()
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(relationshipJSON{
		SchemaVersion:      r.SchemaVersion,
		RevisionNumber:     r.RevisionNumber,
		PreviousRecordHash: r.PreviousRecordHash,
		CorrelationID:      r.CorrelationID,
		Attestation:        r.Attestation,
		TypeURI:            r.TypeURI,
		Parties:            r.Parties,
		Effective:          effective,
		Expiration:         expiration,
		Status:             r.Status,
		Jurisdiction:       r.Jurisdiction,
		FinancialTerms:     r.FinancialTerms,
		ParentRelationship: r.ParentRelationship,
		TermsAttributes:    r.TermsAttributes,
		SourceReferences:   r.SourceReferences,
	})
}

// UnmarshalJSON implements the wire form of §6, accepting both omitted and
// explicit JSON-null optional fields.
func (r *Relationship) UnmarshalJSON(data []byte) error {
	var dto relationshipJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}

	r.SchemaVersion = dto.SchemaVersion
	r.RevisionNumber = dto.RevisionNumber
	r.PreviousRecordHash = dto.PreviousRecordHash
	r.CorrelationID = dto.CorrelationID
	r.Attestation = dto.Attestation
	r.TypeURI = dto.TypeURI
	r.Parties = dto.Parties
	r.Status = dto.Status
	r.Jurisdiction = dto.Jurisdiction
	r.FinancialTerms = dto.FinancialTerms
	r.ParentRelationship = dto.ParentRelationship
	r.TermsAttributes = dto.TermsAttributes
	r.SourceReferences = dto.SourceReferences

	if len(dto.Effective) > 0 && string(dto.Effective) != "null" {
		if err := r.Effective.UnmarshalJSON(dto.Effective); err != nil {
			return err
		}
	}
	if len(dto.Expiration) > 0 && string(dto.Expiration) != "null" {
		var expTS canonical.Timestamp
		if err := expTS.UnmarshalJSON(dto.Expiration); err != nil {
			return err
		}
		r.Expiration = &expTS
	}
	return nil
}
