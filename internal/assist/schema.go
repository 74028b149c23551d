package assist

import "github.com/abhisek/regexlab/internal/llm"

// ExplanationSchema defines the JSON shape of a structured explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "regex-explanation",
	Description: "A plain-language explanation of a regular expression with example strings",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentences": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Explanation sentences in reading order",
			},
			"valid_examples": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Strings the pattern matches",
			},
			"invalid_examples": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Strings the pattern does not match",
			},
		},
		"required":             []any{"sentences", "valid_examples", "invalid_examples"},
		"additionalProperties": false,
	},
}
