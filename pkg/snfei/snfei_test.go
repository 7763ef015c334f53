package snfei

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeDeterminism(t *testing.T) {
	req := Request{LegalName: "Springfield USD", CountryCode: "US"}
	r1 := Generate(req)
	r2 := Generate(req)
	require.Equal(t, r1.SNFEI, r2.SNFEI)
	require.Len(t, r1.SNFEI, 64)
}

func TestNormalizationEquivalence(t *testing.T) {
	names := []string{"Springfield USD", "SPRINGFIELD USD", "springfield usd"}
	var hashes []string
	for _, n := range names {
		hashes = append(hashes, Generate(Request{LegalName: n, CountryCode: "US"}).SNFEI)
	}
	for _, h := range hashes[1:] {
		require.Equal(t, hashes[0], h)
	}
}

func TestTierMonotonicityLEI(t *testing.T) {
	lei := "529900T8BM49AURSDO55"
	samUEI := "J6H4FB3N5YK7"
	r := Generate(Request{LegalName: "Acme Corp", CountryCode: "US", LEI: &lei, SAMUEI: &samUEI})
	require.Equal(t, 1, r.Tier)
	require.Equal(t, 1.0, r.Confidence)
}

func TestTierTwoSAMUEI(t *testing.T) {
	samUEI := "J6H4FB3N5YK7"
	r := Generate(Request{LegalName: "Acme Corp", CountryCode: "US", SAMUEI: &samUEI})
	require.Equal(t, 2, r.Tier)
	require.Equal(t, 0.95, r.Confidence)
}

func TestTierThreeConfidenceFormula(t *testing.T) {
	addr := "123 Main St"
	date := "1985-01-15"
	r := Generate(Request{
		LegalName:        "Springfield School District",
		CountryCode:      "US",
		Address:          &addr,
		RegistrationDate: &date,
	})
	require.Equal(t, 3, r.Tier)
	require.Greater(t, r.Confidence, 0.5)
	require.Contains(t, r.FieldsUsed, "address")
	require.Contains(t, r.FieldsUsed, "registration_date")
}
