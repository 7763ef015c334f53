// Package cepvalidate offers optional request-time validation of a
// builder's raw input struct against a host-supplied JSON Schema, ahead of
// the builder's own field-by-field validation (§4.5 expansion). It never
// touches the filesystem: the caller compiles and owns the schema.
package cepvalidate

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/civic-interconnect/cep-core/pkg/cep"
)

// Validate marshals in to JSON, decodes it back to a generic document, and
// validates that document against schema. A nil schema is a no-op success,
// so callers can wire this in unconditionally and opt out by simply never
// compiling a schema.
func Validate(schema *jsonschema.Schema, in any) error {
	if schema == nil {
		return nil
	}

	raw, err := json.Marshal(in)
	if err != nil {
		return cep.NewSerialization(err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return cep.NewInvalidJSON(err)
	}

	if err := schema.Validate(doc); err != nil {
		return cep.NewInvalidJSON(err)
	}
	return nil
}

// CompileSchema compiles a raw JSON Schema document (Draft 2020-12) under
// the given resource URI, for callers that do not otherwise need direct
// access to the jsonschema package.
func CompileSchema(resourceURI string, schemaJSON []byte) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	if err := c.AddResource(resourceURI, bytes.NewReader(schemaJSON)); err != nil {
		return nil, cep.NewConfiguration("schema resource %q rejected: %v", resourceURI, err)
	}
	compiled, err := c.Compile(resourceURI)
	if err != nil {
		return nil, cep.NewConfiguration("schema %q failed to compile: %v", resourceURI, err)
	}
	return compiled, nil
}
