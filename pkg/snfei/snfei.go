// Package snfei implements the C4 Identity Generator: canonical-input
// assembly (via pkg/normalize), SHA-256 digest, and tiered confidence
// classification.
package snfei

import (
	"math"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/normalize"
)

// Result is the outcome of a tiered identity resolution.
type Result struct {
	SNFEI      string
	Canonical  normalize.CanonicalInput
	Confidence float64
	Tier       int
	FieldsUsed []string
}

// Compute returns the SNFEI (64-char lowercase hex) of a canonical input.
// Formation is deterministic and pure.
func Compute(ci normalize.CanonicalInput) string {
	return canonical.Hash(ci.ToHashString())
}

// Request is the tiered-classification input: (legal_name, country,
// address?, registration_date?, lei?, sam_uei?).
type Request struct {
	LegalName        string
	CountryCode      string
	Address          *string
	RegistrationDate *string
	LEI              *string
	SAMUEI           *string
}

// Generate performs the tiered resolution described in §4.3: Tier 1 (LEI of
// exactly 20 characters) and Tier 2 (SAM UEI of exactly 12 characters)
// still compute and return the SNFEI hash; only the tier and confidence
// differ. The identifiers' character format is not checked here. If an LEI
// of 20 characters is given, tier=1 and confidence=1.0 regardless of other
// inputs (tier monotonicity).
func Generate(req Request) Result {
	ci := normalize.BuildCanonicalInput(req.LegalName, req.CountryCode, req.Address, req.RegistrationDate)
	hash := Compute(ci)

	if req.LEI != nil && len(*req.LEI) == 20 {
		return Result{
			SNFEI:      hash,
			Canonical:  ci,
			Confidence: 1.0,
			Tier:       1,
			FieldsUsed: []string{"lei", "legal_name", "country_code"},
		}
	}

	if req.SAMUEI != nil && len(*req.SAMUEI) == 12 {
		return Result{
			SNFEI:      hash,
			Canonical:  ci,
			Confidence: 0.95,
			Tier:       2,
			FieldsUsed: []string{"sam_uei", "legal_name", "country_code"},
		}
	}

	return generateTier3(ci, hash)
}

func generateTier3(ci normalize.CanonicalInput, hash string) Result {
	fieldsUsed := []string{"legal_name", "country_code"}

	hasAddress := ci.AddressNormalized != ""
	hasDate := ci.RegistrationDate != ""
	if hasAddress {
		fieldsUsed = append(fieldsUsed, "address")
	}
	if hasDate {
		fieldsUsed = append(fieldsUsed, "registration_date")
	}

	confidence := 0.5
	if hasAddress {
		confidence += 0.2
	}
	if hasDate {
		confidence += 0.2
	}
	if wordCount(ci.LegalNameNormalized) > 3 {
		confidence += 0.1
	}
	confidence = math.Min(confidence, 0.9)
	confidence = roundTo2(confidence)

	return Result{
		SNFEI:      hash,
		Canonical:  ci,
		Confidence: confidence,
		Tier:       3,
		FieldsUsed: fieldsUsed,
	}
}

func wordCount(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
