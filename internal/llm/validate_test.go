package llm

import "testing"

func TestSchemaValidator_Reusable(t *testing.T) {
	schema := map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"confidence": map[string]any{"type": "number"}},
		"additionalProperties": false,
	}
	v, err := CompileSchema(schema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if err := v.Validate([]byte(`{"confidence": 0.9}`)); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
	if err := v.Validate([]byte(`{"confidence": "high"}`)); err == nil {
		t.Error("type violation accepted")
	}
	if err := v.Validate([]byte(`{"extra": 1}`)); err == nil {
		t.Error("additional property accepted")
	}
	// Same validator again, no recompilation.
	if err := v.Validate([]byte(`{"confidence": 0.1}`)); err != nil {
		t.Errorf("valid document rejected on reuse: %v", err)
	}
}

func TestCompileSchema_ExtractionSchema(t *testing.T) {
	if _, err := CompileSchema(BuildExtractionJSONSchema()); err != nil {
		t.Fatalf("extraction schema must compile: %v", err)
	}
}

func TestValidateJSONAgainstSchema_OneShot(t *testing.T) {
	schema := map[string]any{"type": "object"}
	if err := ValidateJSONAgainstSchema(schema, []byte(`{}`)); err != nil {
		t.Errorf("one-shot validation failed: %v", err)
	}
	if err := ValidateJSONAgainstSchema(schema, []byte(`not json`)); err == nil {
		t.Error("invalid JSON accepted")
	}
}
