package cepvalidate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	LegalName string `json:"legalName"`
}

const sampleSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["legalName"],
  "properties": {
    "legalName": {"type": "string", "minLength": 1}
  }
}`

func TestValidateNilSchemaIsNoOp(t *testing.T) {
	require.NoError(t, Validate(nil, sampleInput{}))
}

func TestValidateRejectsMissingRequiredField(t *testing.T) {
	schema, err := CompileSchema("https://cep.example/input.schema.json", []byte(sampleSchema))
	require.NoError(t, err)

	err = Validate(schema, sampleInput{})
	require.Error(t, err)
}

func TestValidateAcceptsValidInput(t *testing.T) {
	schema, err := CompileSchema("https://cep.example/input2.schema.json", []byte(sampleSchema))
	require.NoError(t, err)

	err = Validate(schema, sampleInput{LegalName: "Springfield Unified School District"})
	require.NoError(t, err)
}
