package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator holds a compiled response schema so repeated extractions
// don't pay compilation per call.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// CompileSchema compiles an in-memory schema map (draft 2020-12 subset).
func CompileSchema(schemaMap map[string]any) (*SchemaValidator, error) {
	raw, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("llm schema: marshal: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("llm schema: add resource: %w", err)
	}
	schema, err := compiler.Compile("extraction.json")
	if err != nil {
		return nil, fmt.Errorf("llm schema: compile: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// Validate checks one sanitized response document against the schema.
func (v *SchemaValidator) Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("llm schema: decode response: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("llm schema: response rejected: %w", err)
	}
	return nil
}

// ValidateJSONAgainstSchema compiles and validates in one shot, for callers
// without a cached validator.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	v, err := CompileSchema(schemaMap)
	if err != nil {
		return err
	}
	return v.Validate(data)
}
