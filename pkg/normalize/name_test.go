package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalNameFrenchAccents(t *testing.T) {
	got := LegalName("Société Générale S.A.", LegalNameOptions{RemoveStopWords: true})
	require.Equal(t, "societe generale s", got)
}

func TestLegalNameGermanLegalForm(t *testing.T) {
	got := LegalName("GmbH & Co. KG", LegalNameOptions{RemoveStopWords: true})
	require.Equal(t, "gesellschaft mit beschrankter haftung company kg", got)
}

func TestLegalNameCaseInsensitiveEquivalence(t *testing.T) {
	a := LegalName("Springfield USD", LegalNameOptions{RemoveStopWords: true})
	b := LegalName("SPRINGFIELD USD", LegalNameOptions{RemoveStopWords: true})
	c := LegalName("springfield usd", LegalNameOptions{RemoveStopWords: true})
	require.Equal(t, a, b)
	require.Equal(t, a, c)
}

func TestLegalNameIdempotence(t *testing.T) {
	inputs := []string{"Société Générale S.A.", "GmbH & Co. KG", "Springfield Unified School District"}
	for _, in := range inputs {
		once := LegalName(in, LegalNameOptions{RemoveStopWords: true})
		twice := LegalName(once, LegalNameOptions{RemoveStopWords: true})
		require.Equal(t, once, twice, "normalization must be idempotent for %q", in)
	}
}

func TestAddressNormalization(t *testing.T) {
	got := Address("10 Boulevard Haussmann, Paris")
	require.Equal(t, "10 boulevard haussmann paris", got)
}

func TestAddressSecondaryUnitStripping(t *testing.T) {
	got := Address("123 Main St, Apt 4B")
	require.Equal(t, "123 main street", got)
}

func TestRegistrationDateFormats(t *testing.T) {
	cases := map[string]string{
		"2010-05-01": "2010-05-01",
		"05/01/2010": "2010-05-01",
		"05-01-2010": "2010-05-01",
		"1985":       "1985-01-01",
	}
	for in, want := range cases {
		got, present := RegistrationDate(in)
		require.True(t, present, "expected %q to parse", in)
		require.Equal(t, want, got)
	}

	_, present := RegistrationDate("not-a-date")
	require.False(t, present)
}

func TestCanonicalInputHashString(t *testing.T) {
	addr := "10 Boulevard Haussmann, Paris"
	date := "2010-05-01"
	ci := BuildCanonicalInput("Société Générale S.A.", "fr", &addr, &date)
	require.Equal(t, "societe generale s|10 boulevard haussmann paris|FR|2010-05-01", ci.ToHashString())
}

func TestCanonicalInputHashStringAbsentOptionals(t *testing.T) {
	ci := BuildCanonicalInput("Springfield USD", "US", nil, nil)
	require.Equal(t, "springfield usd||US|", ci.ToHashString())
}
