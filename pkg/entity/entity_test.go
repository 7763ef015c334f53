package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/civic-interconnect/cep-core/pkg/cepvalidate"
	"github.com/civic-interconnect/cep-core/pkg/localize"
)

const requireLegalNameSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["LegalName"],
	"properties": {
		"LegalName": {"type": "string", "minLength": 1}
	}
}`

func testBuilder() *Builder {
	return NewBuilder(localize.NewRegistry(""))
}

func validInput() Input {
	return Input{
		LegalName:            "Springfield Unified School District",
		CountryCode:          "US",
		Jurisdiction:         "us",
		EntityTypeRaw:        "school_district",
		AttestorID:           "attestor-1",
		AttestationTimestamp: "2024-01-01T00:00:00.000000Z",
	}
}

func TestBuildMissingLegalName(t *testing.T) {
	in := validInput()
	in.LegalName = ""
	_, _, err := testBuilder().Build(in)
	require.Error(t, err)
}

func TestBuildAssignsSNFEIWhenNoOtherIdentifier(t *testing.T) {
	e, warnings, err := testBuilder().Build(validInput())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.NotNil(t, e.Identifiers.SNFEI)
	require.Equal(t, 3, e.ResolutionConfidence.Tier)
	require.Equal(t, "cep-entity:snfei:"+e.Identifiers.SNFEI.Value(), e.VerifiableID)
}

func TestBuildDeterministicAcrossCalls(t *testing.T) {
	e1, _, err := testBuilder().Build(validInput())
	require.NoError(t, err)
	e2, _, err := testBuilder().Build(validInput())
	require.NoError(t, err)
	require.Equal(t, e1.Hash(), e2.Hash())
}

func TestBuildLEIGivesTierOne(t *testing.T) {
	in := validInput()
	in.LEI = "529900T8BM49AURSDO55"
	e, _, err := testBuilder().Build(in)
	require.NoError(t, err)
	require.Equal(t, 1, e.ResolutionConfidence.Tier)
	require.Equal(t, 1.0, e.ResolutionConfidence.Confidence)
}

func TestBuildEntityTypeFallthroughWarns(t *testing.T) {
	in := validInput()
	in.EntityTypeRaw = "spaceport"
	_, warnings, err := testBuilder().Build(in)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
}

func TestBuildRevisionChainRejectsPreviousHashAtRevisionOne(t *testing.T) {
	in := validInput()
	in.RevisionNumber = 1
	in.PreviousRecordHash = "ab" + string(make([]byte, 0))
	for i := 0; i < 62; i++ {
		in.PreviousRecordHash += "c"
	}
	_, _, err := testBuilder().Build(in)
	require.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	e, _, err := testBuilder().Build(validInput())
	require.NoError(t, err)

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded Entity
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, e.Hash(), decoded.Hash())
	require.Equal(t, e.EntityType, decoded.EntityType)
}

func TestJSONAcceptsNullOptionalFields(t *testing.T) {
	e, _, err := testBuilder().Build(validInput())
	require.NoError(t, err)

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(data, &asMap))
	asMap["previousRecordHash"] = nil
	asMap["naics"] = nil

	patched, err := json.Marshal(asMap)
	require.NoError(t, err)

	var decoded Entity
	require.NoError(t, json.Unmarshal(patched, &decoded))
	require.Empty(t, decoded.PreviousRecordHash)
}

func TestBuildSchemaValidationRejectsViolatingInput(t *testing.T) {
	schema, err := cepvalidate.CompileSchema("cep:entity-input-test", []byte(requireLegalNameSchema))
	require.NoError(t, err)

	in := validInput()
	in.LegalName = ""
	in.Schema = schema

	_, _, err = testBuilder().Build(in)
	require.Error(t, err)
}

func TestBuildSchemaValidationAcceptsConformingInput(t *testing.T) {
	schema, err := cepvalidate.CompileSchema("cep:entity-input-test-2", []byte(requireLegalNameSchema))
	require.NoError(t, err)

	in := validInput()
	in.Schema = schema

	e, _, err := testBuilder().Build(in)
	require.NoError(t, err)
	require.NotNil(t, e)
}
