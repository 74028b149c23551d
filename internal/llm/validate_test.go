package llm

import (
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-explanation",
		Description: "A regex explanation",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sentences": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 1,
				},
				"valid_examples":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"invalid_examples": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"flavor":           map[string]any{"type": "string", "enum": []any{"re2", "pcre"}},
			},
			"required": []any{"sentences", "valid_examples"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := `{"sentences":["It matches digits."],"valid_examples":["12"],"invalid_examples":["ab"],"flavor":"re2"}`
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := `{"sentences":["It matches digits."],"valid_examples":[]}`
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"sentences":["x"]}`},
		{"wrong type", `{"sentences":"x","valid_examples":[]}`},
		{"empty sentences", `{"sentences":[],"valid_examples":[]}`},
		{"invalid enum", `{"sentences":["x"],"valid_examples":[],"flavor":"perl"}`},
		{"wrong item type", `{"sentences":["x"],"valid_examples":[1,2]}`},
		{"malformed", `{not json}`},
		{"empty", ``},
		{"trailing value", `{"sentences":["x"],"valid_examples":[]} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), tt.raw)
			if err == nil {
				t.Fatal("expected error")
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
			if invErr.Content != tt.raw {
				t.Errorf("content = %q, want %q", invErr.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, `not even json`); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
