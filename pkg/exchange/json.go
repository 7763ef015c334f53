package exchange

import (
	"encoding/json"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/cep"
	"github.com/civic-interconnect/cep-core/pkg/record"
)

type exchangePartyJSON struct {
	EntityID          string `json:"entityId"`
	RoleURI           string `json:"roleUri"`
	AccountIdentifier string `json:"accountIdentifier,omitempty"`
}

func (p ExchangeParty) MarshalJSON() ([]byte, error) {
	return json.Marshal(exchangePartyJSON{
		EntityID:          p.EntityID,
		RoleURI:           p.RoleURI,
		AccountIdentifier: p.AccountIdentifier,
	})
}

func (p *ExchangeParty) UnmarshalJSON(data []byte) error {
	var dto exchangePartyJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	p.EntityID = dto.EntityID
	p.RoleURI = dto.RoleURI
	p.AccountIdentifier = dto.AccountIdentifier
	return nil
}

type exchangeValueJSON struct {
	Amount            float64 `json:"amount"`
	CurrencyCode      string  `json:"currencyCode"`
	ValueTypeURI      string  `json:"valueTypeUri"`
	InKindDescription string  `json:"inKindDescription,omitempty"`
}

func (v ExchangeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(exchangeValueJSON{
		Amount:            v.Amount,
		CurrencyCode:      v.CurrencyCode,
		ValueTypeURI:      v.ValueTypeURI,
		InKindDescription: v.InKindDescription,
	})
}

func (v *ExchangeValue) UnmarshalJSON(data []byte) error {
	var dto exchangeValueJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	v.Amount = dto.Amount
	v.CurrencyCode = dto.CurrencyCode
	v.ValueTypeURI = dto.ValueTypeURI
	v.InKindDescription = dto.InKindDescription
	return nil
}

type provenanceChainJSON struct {
	FundingChainTag        string   `json:"fundingChainTag,omitempty"`
	UltimateSourceEntityID string   `json:"ultimateSourceEntityId,omitempty"`
	IntermediaryEntities   []string `json:"intermediaryEntities,omitempty"`
	ParentExchangeID       string   `json:"parentExchangeId,omitempty"`
}

func (c ProvenanceChain) MarshalJSON() ([]byte, error) {
	return json.Marshal(provenanceChainJSON{
		FundingChainTag:        c.FundingChainTag,
		UltimateSourceEntityID: c.UltimateSourceEntityID,
		IntermediaryEntities:   c.IntermediaryEntities,
		ParentExchangeID:       c.ParentExchangeID,
	})
}

func (c *ProvenanceChain) UnmarshalJSON(data []byte) error {
	var dto provenanceChainJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	c.FundingChainTag = dto.FundingChainTag
	c.UltimateSourceEntityID = dto.UltimateSourceEntityID
	c.IntermediaryEntities = dto.IntermediaryEntities
	c.ParentExchangeID = dto.ParentExchangeID
	return nil
}

type exchangeCategorizationJSON struct {
	CFDANumber         string `json:"cfdaNumber,omitempty"`
	NAICSCode          string `json:"naicsCode,omitempty"`
	GTASAccountCode    string `json:"gtasAccountCode,omitempty"`
	LocalCategoryCode  string `json:"localCategoryCode,omitempty"`
	LocalCategoryLabel string `json:"localCategoryLabel,omitempty"`
}

func (c ExchangeCategorization) MarshalJSON() ([]byte, error) {
	return json.Marshal(exchangeCategorizationJSON{
		CFDANumber:         c.CFDANumber,
		NAICSCode:          c.NAICSCode,
		GTASAccountCode:    c.GTASAccountCode,
		LocalCategoryCode:  c.LocalCategoryCode,
		LocalCategoryLabel: c.LocalCategoryLabel,
	})
}

func (c *ExchangeCategorization) UnmarshalJSON(data []byte) error {
	var dto exchangeCategorizationJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	c.CFDANumber = dto.CFDANumber
	c.NAICSCode = dto.NAICSCode
	c.GTASAccountCode = dto.GTASAccountCode
	c.LocalCategoryCode = dto.LocalCategoryCode
	c.LocalCategoryLabel = dto.LocalCategoryLabel
	return nil
}

type exchangeJSON struct {
	SchemaVersion      string                     `json:"schemaVersion"`
	RevisionNumber     int                        `json:"revisionNumber"`
	PreviousRecordHash string                     `json:"previousRecordHash,omitempty"`
	CorrelationID      string                     `json:"correlationId,omitempty"`
	Attestation        record.Attestation         `json:"attestation"`
	TypeURI            string                     `json:"typeUri"`
	Source             ExchangeParty              `json:"sourceParty"`
	Recipient          ExchangeParty              `json:"recipientParty"`
	Value              ExchangeValue              `json:"value"`
	Occurred           canonical.Timestamp        `json:"occurredTimestamp"`
	Status             string                     `json:"status"`
	Provenance         *ProvenanceChain           `json:"provenanceChain,omitempty"`
	Categorization     *ExchangeCategorization    `json:"categorization,omitempty"`
	SourceReferences   []record.SourceReference   `json:"sourceReferences,omitempty"`
}

// MarshalJSON implements the wire form of §6.
func (e Exchange) MarshalJSON() ([]byte, error) {
	return json.Marshal(exchangeJSON{
		SchemaVersion:      e.SchemaVersion,
		RevisionNumber:     e.RevisionNumber,
		PreviousRecordHash: e.PreviousRecordHash,
		CorrelationID:      e.CorrelationID,
		Attestation:        e.Attestation,
		TypeURI:            e.TypeURI,
		Source:             e.Source,
		Recipient:          e.Recipient,
		Value:              e.Value,
		Occurred:           e.Occurred,
		Status:             e.Status,
		Provenance:         e.Provenance,
		Categorization:     e.Categorization,
		SourceReferences:   e.SourceReferences,
	})
}

// UnmarshalJSON implements the wire form of §6, accepting both omitted and
// explicit JSON-null optional fields.
func (e *Exchange) UnmarshalJSON(data []byte) error {
	var dto exchangeJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	e.SchemaVersion = dto.SchemaVersion
	e.RevisionNumber = dto.RevisionNumber
	e.PreviousRecordHash = dto.PreviousRecordHash
	e.CorrelationID = dto.CorrelationID
	e.Attestation = dto.Attestation
	e.TypeURI = dto.TypeURI
	e.Source = dto.Source
	e.Recipient = dto.Recipient
	e.Value = dto.Value
	e.Occurred = dto.Occurred
	e.Status = dto.Status
	e.Provenance = dto.Provenance
	e.Categorization = dto.Categorization
	e.SourceReferences = dto.SourceReferences
	return nil
}
