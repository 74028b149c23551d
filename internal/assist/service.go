// Package assist asks a language model to explain or write regular
// expressions. Output is free text except for ExplainStructured, whose
// JSON is schema-validated and decoded into an explain.Document.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/llm"
	"github.com/abhisek/regexlab/internal/matcher"
)

// Service wraps an llm.Provider with the regex prompts.
type Service struct {
	provider llm.Provider
}

// New creates a Service backed by provider.
func New(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// ModelID reports the model requests are sent to.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

// Explain returns the model's free-text explanation of pattern. An empty
// custom prompt selects the default wording.
func (s *Service) Explain(ctx context.Context, pattern, custom string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	resp, err := s.provider.Generate(ctx, llm.UserPrompt(ExplainPrompt(pattern, custom)))
	if err != nil {
		return "", fmt.Errorf("explain pattern: %w", err)
	}
	return resp.Content, nil
}

// Generation is the result of a generate request.
type Generation struct {
	// Pattern is the extracted regular expression.
	Pattern string
	// Raw is the model output before extraction.
	Raw string
}

// Generate asks the model for a pattern matching description.
func (s *Service) Generate(ctx context.Context, description string) (*Generation, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is empty")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeGenerate)

	resp, err := s.provider.Generate(ctx, llm.UserPrompt(GeneratePrompt(description)))
	if err != nil {
		return nil, fmt.Errorf("generate pattern: %w", err)
	}
	return &Generation{Pattern: ExtractPattern(resp.Content), Raw: resp.Content}, nil
}

// ExplainStructured asks for a JSON explanation and decodes it into a
// Document that renders with explain.Format.
func (s *Service) ExplainStructured(ctx context.Context, pattern string) (explain.Document, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeStructured)

	req := llm.Request{
		System:   structuredSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: structuredUserMessage(pattern)}},
		Schema:   ExplanationSchema,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return explain.Document{}, fmt.Errorf("structured explanation: %w", err)
	}

	var doc explain.Document
	if err := json.Unmarshal([]byte(resp.Content), &doc); err != nil {
		return explain.Document{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return doc, nil
}

// Mismatch is an example whose match outcome contradicts its label.
type Mismatch struct {
	Example string
	// WantMatch is true for a valid example that did not match.
	WantMatch bool
}

func (m Mismatch) String() string {
	if m.WantMatch {
		return fmt.Sprintf("valid example %q does not match", m.Example)
	}
	return fmt.Sprintf("invalid example %q matches", m.Example)
}

// CheckExamples searches every example of doc with pattern and returns
// those whose outcome disagrees with their label. Model-written examples
// are often wrong, so callers show these next to the explanation.
func CheckExamples(pattern string, flags matcher.Flags, doc explain.Document) ([]Mismatch, error) {
	re, err := matcher.Compile(pattern, flags)
	if err != nil {
		return nil, err
	}

	var out []Mismatch
	for _, ex := range doc.ValidExamples {
		if !re.MatchString(ex) {
			out = append(out, Mismatch{Example: ex, WantMatch: true})
		}
	}
	for _, ex := range doc.InvalidExamples {
		if re.MatchString(ex) {
			out = append(out, Mismatch{Example: ex})
		}
	}
	return out, nil
}
