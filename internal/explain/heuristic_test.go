package explain

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_BraceQuantifiers(t *testing.T) {
	got := Analyze("a{3}", nil)
	assert.Equal(t, []string{"It requires exactly 3 occurrences of an element."}, got)

	got = Analyze("a{2,4}", nil)
	assert.Equal(t, []string{"It requires between 2 and 4 occurrences of an element."}, got)
}

// A lower bound with no upper bound lands in the exact-count branch.
// This pins the current wording; "at least N" would be the accurate reading.
func TestAnalyze_LowerBoundOnlyQuantifierKnownDiscrepancy(t *testing.T) {
	got := Analyze("a{3,}", nil)
	assert.Equal(t, []string{"It requires exactly 3 occurrences of an element."}, got)
}

func TestAnalyze_SkipsWhenPriorIsLong(t *testing.T) {
	prior := []string{"one", "two", "three"}
	got := Analyze("[A-Z]+", prior)
	assert.Equal(t, prior, got)
}

func TestAnalyze_RunsAtThreshold(t *testing.T) {
	prior := []string{"one", "two"}
	got := Analyze("a+", prior)
	assert.Equal(t, []string{"one", "two", "It contains an element that must repeat one or more times (+)."}, got)
}

func TestAnalyze_DoesNotMutatePrior(t *testing.T) {
	prior := make([]string, 1, 8)
	prior[0] = "anchor"

	got := Analyze("a*", prior)
	require.Len(t, got, 2)
	got[0] = "changed"

	assert.Equal(t, "anchor", prior[0])
	assert.Equal(t, "", prior[:2][1], "spare capacity of prior must stay untouched")
}

func TestAnalyze_DetectorOrder(t *testing.T) {
	p := `^[A-Z][a-z0-9\-]*(x|y)?\d\w\s+{2}$`
	got := Analyze(p, []string{SentenceFullString})

	want := []string{
		SentenceFullString,
		"It contains uppercase letters (A to Z).",
		`It contains digits (\d is equivalent to [0-9]).`,
		"It contains alphanumeric characters (letters, digits, underscore).",
		"It contains whitespace (spaces, tabs, line breaks, etc.).",
		"It contains an element that can repeat zero or more times (*).",
		"It contains an element that must repeat one or more times (+).",
		"It contains an optional element (?).",
		"It contains escaped special characters (such as a hyphen or an apostrophe).",
		"It contains a character class including: uppercase letters (A-Z).",
		"It contains a character class including: lowercase letters (a-z), digits (0-9).",
		"It contains 1 capture group(s) to extract specific parts of the text.",
		"It contains an alternative between several options: `x`, `y`.",
		"It requires exactly 2 occurrences of an element.",
	}
	assert.Equal(t, want, got)
}

func TestAnalyze_ClassEscapes(t *testing.T) {
	got := Analyze(`[A-Za-z0-9\s]+`, nil)
	want := []string{
		"It contains whitespace (spaces, tabs, line breaks, etc.).",
		"It contains an element that must repeat one or more times (+).",
		"It contains a character class including: uppercase letters (A-Z), lowercase letters (a-z), digits (0-9).",
		"It accepts whitespace inside a character class.",
	}
	assert.Equal(t, want, got)
}

func TestAnalyze_ClassEscapeOrder(t *testing.T) {
	got := Analyze(`[\w\d\s]`, nil)
	want := []string{
		`It contains digits (\d is equivalent to [0-9]).`,
		"It contains alphanumeric characters (letters, digits, underscore).",
		"It contains whitespace (spaces, tabs, line breaks, etc.).",
		"It accepts whitespace inside a character class.",
		"It accepts digits inside a character class.",
		"It accepts word characters inside a character class.",
	}
	assert.Equal(t, want, got)
}

func TestAnalyze_OneAlternativeSentencePerGroup(t *testing.T) {
	got := Analyze("(a|b)-(c|d|e)", nil)
	want := []string{
		"It contains 2 capture group(s) to extract specific parts of the text.",
		"It contains an alternative between several options: `a`, `b`.",
		"It contains an alternative between several options: `c`, `d`, `e`.",
	}
	assert.Equal(t, want, got)
}

func TestAnalyze_NestedGroupsAreMinimal(t *testing.T) {
	// The non-greedy body stops at the first ')'.
	got := Analyze("((a|b)c)", nil)
	want := []string{
		"It contains 1 capture group(s) to extract specific parts of the text.",
		"It contains an alternative between several options: `(a`, `b`.",
	}
	assert.Equal(t, want, got)
}

func TestAnalyze_EscapedApostrophe(t *testing.T) {
	got := Analyze(`O\'N`, nil)
	assert.Equal(t, []string{sentenceEscapedSpecial}, got)
}

func TestAnalyze_MalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"[",
		"]",
		"][",
		"(",
		")(",
		"{",
		"}{",
		"{}",
		"{,}",
		"{{{}}}",
		"[[[",
		"(((|",
		`\`,
		"a{99999999999999999999}",
		"[\n]",
		"(\n)",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Analyze(in, nil) }, "input %q", in)
		assert.NotPanics(t, func() { Explain(in) }, "input %q", in)
	}
}

func TestAnalyze_UnmatchedDelimitersYieldNothing(t *testing.T) {
	assert.Empty(t, Analyze("][", nil))
	assert.Empty(t, Analyze(")(", nil))
	assert.Empty(t, Analyze("}{", nil))
}

func TestAnalyze_ClassesDoNotSpanLines(t *testing.T) {
	assert.Empty(t, Analyze("[\nA-Z]", nil))
}

func TestExplain_GenericPattern(t *testing.T) {
	doc := Explain(`(\d{2})-(\d{2})`)
	want := []string{
		SentenceAnywhere,
		`It contains digits (\d is equivalent to [0-9]).`,
		"It contains 2 capture group(s) to extract specific parts of the text.",
		"It requires exactly 2 occurrences of an element.",
		"It requires exactly 2 occurrences of an element.",
	}
	assert.Equal(t, want, doc.Sentences)
	assert.False(t, doc.HasExamples())
}

func TestExplain_CanonicalSkipsDetectors(t *testing.T) {
	doc := Explain(`^\d{2}-\d{2}-\d{4}$`)
	require.Len(t, doc.Sentences, 4)
	for _, s := range doc.Sentences {
		assert.False(t, strings.HasPrefix(s, "It requires"), "detector sentence leaked: %q", s)
	}
}

func TestExplain_EmailSkipsDetectors(t *testing.T) {
	// Anchor plus two appended sentences is already above the threshold.
	doc := Explain(`^\S+@\S+\.\S+$`)
	assert.Len(t, doc.Sentences, 3)
	assert.True(t, doc.HasExamples())
}

func TestExplain_Idempotent(t *testing.T) {
	patterns := []string{
		"",
		"abc",
		`^[A-Z][A-Z\s\-']*$`,
		`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`,
		`(?P<jour>\d{2})-(?P<mois>\d{2})-(?P<annee>\d{4})`,
		"((a|b)[0-9]{1,3}",
	}
	for _, p := range patterns {
		first := Explain(p)
		second := Explain(p)
		assert.Equal(t, first, second, "pattern %q", p)
		assert.Equal(t, Format(first), Format(second))
	}
}

func TestExplain_Concurrent(t *testing.T) {
	want := Format(Explain(`^(cat|dog)s?[0-9]{2,3}$`))
	done := make(chan string)
	for range 16 {
		go func() { done <- Format(Explain(`^(cat|dog)s?[0-9]{2,3}$`)) }()
	}
	for range 16 {
		if got := <-done; got != want {
			t.Errorf("concurrent Explain diverged")
		}
	}
}

func TestExplain_NamedGroups(t *testing.T) {
	doc := Explain(`(?P<jour>\d{2})-(?P<mois>\d{2})-(?P<annee>\d{4})`)
	assert.True(t, slices.Contains(doc.Sentences, "It contains 3 capture group(s) to extract specific parts of the text."))
	assert.True(t, slices.Contains(doc.Sentences, "It contains an optional element (?)."))
}
