package structure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/regexlab/internal/explain"
)

func TestParse_Syntax(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{``, `{}`},
		{`(x)|(y)`, `(or (capture x) (capture y))`},
		{`x(?P<name>.)y`, `{x (capture . name) y}`},
		{`(?i)a(?:x|y)b`, `{(flags ?i) a (group (or x y)) b}`},
		{`[a-z]{5}`, `(repeat [a-z] {5})`},
		{`.{3,}`, `(repeat . {3,})`},
		{`^(\d{2})-(?P<year>\d{4})$`, `{^ (capture (repeat \d {2})) - (capture (repeat \d {4}) year) $}`},
		{`a+?b*`, `{(nongreedy (plus a)) (star b)}`},
		{`(?i:ab)|\x41`, `(or (group ab ?i) \x41)`},
		{`[^0-9]?`, `(question [^0-9])`},
	}
	for _, tt := range tests {
		out, err := Parse(tt.pattern)
		require.NoError(t, err, tt.pattern)
		assert.Equal(t, tt.want, out.Syntax, tt.pattern)
	}
}

func TestParse_Groups(t *testing.T) {
	out, err := Parse(`^(\d{2})-(?P<year>\d{4})(?:x|y)$`)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Captures())
	assert.Equal(t, []string{"year"}, out.Names())
	assert.Equal(t, []Group{
		{Index: 1, Text: `(\d{2})`},
		{Index: 2, Name: "year", Text: `(?P<year>\d{4})`},
	}, out.Groups)
}

func TestParse_NestedGroupsNumberedByOpeningParen(t *testing.T) {
	out, err := Parse(`((a)(b))`)
	require.NoError(t, err)
	require.Equal(t, 3, out.Captures())
	assert.Equal(t, "((a)(b))", out.Groups[0].Text)
	assert.Equal(t, "(a)", out.Groups[1].Text)
	assert.Equal(t, "(b)", out.Groups[2].Text)
}

func TestParse_Errors(t *testing.T) {
	for _, p := range []string{`(abc`, `[abc`, `\`, `(?`} {
		out, err := Parse(p)
		assert.Nil(t, out, p)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), "%q: got %v", p, err)
		assert.Equal(t, p, pe.Pattern)
	}
}

func TestTree(t *testing.T) {
	out, err := Parse(`^(\d{2})-(?P<year>\d{4})$`)
	require.NoError(t, err)

	want := `sequence
  start anchor
  group #1
    repeat {2}
      escape \d
  char "-"
  group #2 <year>
    repeat {4}
      escape \d
  end anchor
`
	assert.Equal(t, want, out.Tree())
}

func TestTree_EscapesAndFlags(t *testing.T) {
	out, err := Parse(`(?i)\.\w(?s:.)`)
	require.NoError(t, err)

	want := `sequence
  set flags i
  escape \.
  escape \w
  group with flags s
    any character
`
	assert.Equal(t, want, out.Tree())
}

func TestTree_AlternationAndClasses(t *testing.T) {
	out, err := Parse(`cat|[^0-9]+`)
	require.NoError(t, err)

	want := `alternation (2 branches)
  literal "cat"
  one or more
    negated class [^0-9]
`
	assert.Equal(t, want, out.Tree())
}

// The lexical explainer counts minimal (...) spans; the tree count is the
// real one. They agree on flat patterns and diverge on nesting.
func TestCapturesAgainstHeuristicCount(t *testing.T) {
	for _, e := range explain.Library() {
		_, err := Parse(e.Pattern)
		require.NoError(t, err, e.Name)
	}

	out, err := Parse(`^(0[1-9]|1[0-2])\/20[0-9]{2}$`)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Captures())
	assert.Contains(t, explain.Explain(`(cat|dog)s?`).Sentences,
		"It contains 1 capture group(s) to extract specific parts of the text.")
}
