package identifier

import (
	"encoding/json"

	"github.com/civic-interconnect/cep-core/pkg/cep"
)

// MarshalJSON renders the validated value as a plain JSON string.
func (l LEI) MarshalJSON() ([]byte, error) { return json.Marshal(l.value) }

// UnmarshalJSON re-validates the raw string through NewLEI.
func (l *LEI) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return cep.NewInvalidJSON(err)
	}
	v, err := NewLEI(raw)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// MarshalJSON renders the validated value as a plain JSON string.
func (s SAMUEI) MarshalJSON() ([]byte, error) { return json.Marshal(s.value) }

// UnmarshalJSON re-validates the raw string through NewSAMUEI.
func (s *SAMUEI) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return cep.NewInvalidJSON(err)
	}
	v, err := NewSAMUEI(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON renders the validated value as a plain JSON string.
func (c CanadianBN) MarshalJSON() ([]byte, error) { return json.Marshal(c.value) }

// UnmarshalJSON re-validates the raw string through NewCanadianBN.
func (c *CanadianBN) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return cep.NewInvalidJSON(err)
	}
	v, err := NewCanadianBN(raw)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalJSON renders the validated value as a plain JSON string.
func (s SNFEI) MarshalJSON() ([]byte, error) { return json.Marshal(s.value) }

// UnmarshalJSON re-validates the raw string through NewSNFEI.
func (s *SNFEI) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return cep.NewInvalidJSON(err)
	}
	v, err := NewSNFEI(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type identifiersJSON struct {
	LEI               *LEI               `json:"lei,omitempty"`
	SAMUEI            *SAMUEI            `json:"samUei,omitempty"`
	SNFEI             *SNFEI             `json:"snfei,omitempty"`
	CanadianBN        *CanadianBN        `json:"canadianBn,omitempty"`
	AdditionalSchemes []AdditionalScheme `json:"additionalSchemes,omitempty"`
}

// MarshalJSON implements the wire form of §6; absent slots are omitted.
func (ids Identifiers) MarshalJSON() ([]byte, error) {
	return json.Marshal(identifiersJSON{
		LEI:               ids.LEI,
		SAMUEI:            ids.SAMUEI,
		SNFEI:             ids.SNFEI,
		CanadianBN:        ids.CanadianBN,
		AdditionalSchemes: ids.AdditionalSchemes,
	})
}

// UnmarshalJSON accepts both omitted and explicit-null optional slots.
func (ids *Identifiers) UnmarshalJSON(data []byte) error {
	var dto identifiersJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	ids.LEI = dto.LEI
	ids.SAMUEI = dto.SAMUEI
	ids.SNFEI = dto.SNFEI
	ids.CanadianBN = dto.CanadianBN
	ids.AdditionalSchemes = dto.AdditionalSchemes
	return nil
}
