package exchange

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		TypeRaw:              "grant_disbursement",
		SourceEntityID:       "agency-001",
		SourceRoleURI:        "cep-role:grantor",
		RecipientEntityID:    "citizen-005",
		RecipientRoleURI:     "cep-role:grantee",
		Amount:               50000.756,
		CurrencyCode:         "USD",
		OccurredDate:         "2024-03-01",
		AttestorID:           "attestor-1",
		AttestationTimestamp: "2024-03-01T00:00:00.000000Z",
	}
}

func TestBuildAmountRoundsToTwoDecimals(t *testing.T) {
	e, _, err := NewBuilder().Build(validInput())
	require.NoError(t, err)
	require.Equal(t, "50000.76", FormatValueAmount(e.Value))
}

func TestBuildMissingSourceParty(t *testing.T) {
	in := validInput()
	in.SourceEntityID = ""
	_, _, err := NewBuilder().Build(in)
	require.Error(t, err)
}

func TestBuildInKindRequiresDescription(t *testing.T) {
	in := validInput()
	in.ValueTypeURI = ValueTypeInKind
	_, _, err := NewBuilder().Build(in)
	require.Error(t, err)

	in.InKindDescription = "surplus office equipment"
	_, _, err = NewBuilder().Build(in)
	require.NoError(t, err)
}

func TestBuildDeterministicAcrossCalls(t *testing.T) {
	e1, _, err := NewBuilder().Build(validInput())
	require.NoError(t, err)
	e2, _, err := NewBuilder().Build(validInput())
	require.NoError(t, err)
	require.Equal(t, e1.Hash(), e2.Hash())
}

func TestBuildProvenanceIntermediariesPreserveOrder(t *testing.T) {
	in := validInput()
	in.IntermediaryEntities = []string{"entity-z", "entity-a", "entity-m"}
	e, _, err := NewBuilder().Build(in)
	require.NoError(t, err)
	require.Equal(t, []string{"entity-z", "entity-a", "entity-m"}, e.Provenance.IntermediaryEntities)
}

func TestJSONRoundTrip(t *testing.T) {
	e, _, err := NewBuilder().Build(validInput())
	require.NoError(t, err)

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded Exchange
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, e.Hash(), decoded.Hash())
}

func TestJSONAcceptsNullOptionalFields(t *testing.T) {
	e, _, err := NewBuilder().Build(validInput())
	require.NoError(t, err)

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(data, &asMap))
	asMap["previousRecordHash"] = nil
	asMap["provenanceChain"] = nil

	patched, err := json.Marshal(asMap)
	require.NoError(t, err)

	var decoded Exchange
	require.NoError(t, json.Unmarshal(patched, &decoded))
	require.Empty(t, decoded.PreviousRecordHash)
	require.Nil(t, decoded.Provenance)
}
