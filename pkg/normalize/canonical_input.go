package normalize

import "strings"

// CanonicalInput is the quadruple (normalized_legal_name,
// normalized_address?, country_code_upper, iso_date?) consumed by C4 as the
// SNFEI pre-image.
type CanonicalInput struct {
	LegalNameNormalized string
	AddressNormalized   string // empty means absent
	CountryCode         string
	RegistrationDate    string // empty means absent
}

// BuildCanonicalInput assembles the canonical input from raw fields. The
// legal name pipeline always runs with stop-word removal, per §4.1.
func BuildCanonicalInput(legalName, countryCode string, address, registrationDate *string) CanonicalInput {
	ci := CanonicalInput{
		LegalNameNormalized: LegalName(legalName, LegalNameOptions{RemoveStopWords: true}),
		CountryCode:         strings.ToUpper(countryCode),
	}
	if address != nil {
		if normalized, present := AddressNormalizedOrEmpty(*address); present {
			ci.AddressNormalized = normalized
		}
	}
	if registrationDate != nil {
		if parsed, present := RegistrationDate(*registrationDate); present {
			ci.RegistrationDate = parsed
		}
	}
	return ci
}

// ToHashString is the sole legal SNFEI pre-image: fixed field positions,
// pipe-delimited, empty strings standing in for absent optionals. Never
// substitute ToHashStringCompact here.
func (ci CanonicalInput) ToHashString() string {
	return ci.LegalNameNormalized + "|" + ci.AddressNormalized + "|" + ci.CountryCode + "|" + ci.RegistrationDate
}

// ToHashStringCompact omits empty fields entirely. It exists because the
// original implementation carried a second variant, but it MUST NOT be used
// as an SNFEI pre-image — see DESIGN.md Open Question 1.
func (ci CanonicalInput) ToHashStringCompact() string {
	parts := make([]string, 0, 4)
	if ci.LegalNameNormalized != "" {
		parts = append(parts, ci.LegalNameNormalized)
	}
	if ci.AddressNormalized != "" {
		parts = append(parts, ci.AddressNormalized)
	}
	if ci.CountryCode != "" {
		parts = append(parts, ci.CountryCode)
	}
	if ci.RegistrationDate != "" {
		parts = append(parts, ci.RegistrationDate)
	}
	return strings.Join(parts, "|")
}
