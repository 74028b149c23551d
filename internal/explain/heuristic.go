package explain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// MaxPriorSentences is the largest number of existing sentences for which
// the generic detectors still contribute. A classifier result longer than
// this is considered a strong match and is left alone.
const MaxPriorSentences = 2

var (
	classBodyRe  = regexp.MustCompile(`\[(.*?)\]`)
	groupBodyRe  = regexp.MustCompile(`\((.*?)\)`)
	braceQuantRe = regexp.MustCompile(`\{(\d+)(?:,(\d+)?)?\}`)
)

type substringRule struct {
	token    string
	sentence string
}

var rangeRules = []substringRule{
	{"[A-Z]", "It contains uppercase letters (A to Z)."},
	{"[a-z]", "It contains lowercase letters (a to z)."},
	{"[0-9]", "It contains digits (0 to 9)."},
}

var escapeRules = []substringRule{
	{`\d`, `It contains digits (\d is equivalent to [0-9]).`},
	{`\w`, "It contains alphanumeric characters (letters, digits, underscore)."},
	{`\s`, "It contains whitespace (spaces, tabs, line breaks, etc.)."},
}

var quantifierRules = []substringRule{
	{"*", "It contains an element that can repeat zero or more times (*)."},
	{"+", "It contains an element that must repeat one or more times (+)."},
	{"?", "It contains an optional element (?)."},
}

const sentenceEscapedSpecial = "It contains escaped special characters (such as a hyphen or an apostrophe)."

var classRanges = []struct {
	token string
	label string
}{
	{"A-Z", "uppercase letters (A-Z)"},
	{"a-z", "lowercase letters (a-z)"},
	{"0-9", "digits (0-9)"},
}

var classEscapes = []struct {
	token string
	label string
}{
	{`\s`, "whitespace"},
	{`\d`, "digits"},
	{`\w`, "word characters"},
}

// Analyze runs the generic detectors over pattern and returns prior with
// their sentences appended. When prior already holds more than
// MaxPriorSentences sentences it is returned unchanged. The caller's slice
// is never modified.
func Analyze(pattern string, prior []string) []string {
	out := slices.Clone(prior)
	if len(prior) > MaxPriorSentences {
		return out
	}

	out = appendSubstringRules(out, pattern, rangeRules)
	out = appendSubstringRules(out, pattern, escapeRules)
	out = appendSubstringRules(out, pattern, quantifierRules)

	if strings.Contains(pattern, `\-`) || strings.Contains(pattern, `\'`) {
		out = append(out, sentenceEscapedSpecial)
	}

	out = append(out, classSentences(pattern)...)
	out = append(out, groupSentences(pattern)...)
	out = append(out, braceSentences(pattern)...)
	return out
}

func appendSubstringRules(out []string, pattern string, rules []substringRule) []string {
	for _, r := range rules {
		if strings.Contains(pattern, r.token) {
			out = append(out, r.sentence)
		}
	}
	return out
}

// classSentences describes every minimal [...] body in pattern.
func classSentences(pattern string) []string {
	if !strings.Contains(pattern, "[") || !strings.Contains(pattern, "]") {
		return nil
	}

	var out []string
	for _, m := range classBodyRe.FindAllStringSubmatch(pattern, -1) {
		body := m[1]
		if strings.Contains(body, "-") {
			var ranges []string
			for _, r := range classRanges {
				if strings.Contains(body, r.token) {
					ranges = append(ranges, r.label)
				}
			}
			if len(ranges) > 0 {
				out = append(out, fmt.Sprintf("It contains a character class including: %s.", strings.Join(ranges, ", ")))
			}
		}
		for _, e := range classEscapes {
			if strings.Contains(body, e.token) {
				out = append(out, fmt.Sprintf("It accepts %s inside a character class.", e.label))
			}
		}
	}
	return out
}

// groupSentences counts the minimal (...) bodies in pattern and lists the
// alternatives of every body that contains a |.
func groupSentences(pattern string) []string {
	if !strings.Contains(pattern, "(") || !strings.Contains(pattern, ")") {
		return nil
	}

	groups := groupBodyRe.FindAllStringSubmatch(pattern, -1)
	if len(groups) == 0 {
		return nil
	}

	out := []string{fmt.Sprintf("It contains %d capture group(s) to extract specific parts of the text.", len(groups))}
	for _, g := range groups {
		body := g[1]
		if !strings.Contains(body, "|") {
			continue
		}
		alts := strings.Split(body, "|")
		quoted := make([]string, len(alts))
		for i, a := range alts {
			quoted[i] = "`" + a + "`"
		}
		out = append(out, fmt.Sprintf("It contains an alternative between several options: %s.", strings.Join(quoted, ", ")))
	}
	return out
}

// braceSentences describes each {n}, {n,} and {n,m} quantifier. A missing
// upper bound falls into the exact-count branch, so {3,} reads as
// "exactly 3".
func braceSentences(pattern string) []string {
	var out []string
	for _, m := range braceQuantRe.FindAllStringSubmatch(pattern, -1) {
		if m[2] != "" {
			out = append(out, fmt.Sprintf("It requires between %s and %s occurrences of an element.", m[1], m[2]))
		} else {
			out = append(out, fmt.Sprintf("It requires exactly %s occurrences of an element.", m[1]))
		}
	}
	return out
}
