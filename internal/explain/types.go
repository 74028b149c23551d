package explain

import "strings"

// Document is a generated explanation of a pattern.
// Sentence order is significant and determines rendering order.
type Document struct {
	Sentences       []string `json:"sentences"`
	ValidExamples   []string `json:"valid_examples"`
	InvalidExamples []string `json:"invalid_examples"`
}

// HasExamples reports whether the document carries any example strings.
func (d Document) HasExamples() bool {
	return len(d.ValidExamples) > 0 || len(d.InvalidExamples) > 0
}

// Mode controls how a canonical entry's sentences combine with the
// anchor sentence.
type Mode int

const (
	// ModeReplace discards the anchor sentence.
	ModeReplace Mode = iota
	// ModeAppend keeps the anchor sentence and adds the entry's sentences after it.
	ModeAppend
)

// MatchRule decides whether a pattern is a textual occurrence of a
// canonical form. Comparisons are literal: two patterns that are
// equivalent as regular expressions but spelled differently do not match.
type MatchRule struct {
	// Exact lists texts the whole pattern may be equal to.
	Exact []string

	// Contains lists substrings that must all appear in the pattern.
	Contains []string
}

// Matches reports whether pattern satisfies the rule.
func (r MatchRule) Matches(pattern string) bool {
	for _, e := range r.Exact {
		if pattern == e {
			return true
		}
	}
	if len(r.Contains) == 0 {
		return false
	}
	for _, sub := range r.Contains {
		if !strings.Contains(pattern, sub) {
			return false
		}
	}
	return true
}

// CanonicalEntry is a recognized pattern with a curated explanation.
type CanonicalEntry struct {
	Name            string
	Rule            MatchRule
	Mode            Mode
	Sentences       []string
	ValidExamples   []string
	InvalidExamples []string
}
