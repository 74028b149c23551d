// Package matcher runs a pattern against test lines using Go's regexp
// engine. Each non-blank line is searched, not fully matched, and the
// full match plus positional and named captures are reported.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of compiled patterns kept in memory.
const DefaultCacheSize = 128

// CompileError is returned when a pattern is not valid RE2 syntax.
// Its message is the engine's message, unchanged.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string { return e.Err.Error() }
func (e *CompileError) Unwrap() error { return e.Err }

// Result is the outcome of searching one test line.
type Result struct {
	Line        int                `json:"line"`
	Text        string             `json:"text"`
	Matched     bool               `json:"matched"`
	Match       *string            `json:"match"`
	Groups      []*string          `json:"groups,omitempty"`
	NamedGroups map[string]*string `json:"named_groups,omitempty"`
}

type cacheKey struct {
	pattern string
	flags   Flags
}

// Matcher compiles and caches patterns. It is safe for concurrent use.
type Matcher struct {
	cache *lru.Cache[cacheKey, *regexp.Regexp]
}

// New creates a Matcher caching up to size compiled patterns.
func New(size int) (*Matcher, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, *regexp.Regexp](size)
	if err != nil {
		return nil, fmt.Errorf("create pattern cache: %w", err)
	}
	return &Matcher{cache: c}, nil
}

var defaultMatcher = mustNew(DefaultCacheSize)

func mustNew(size int) *Matcher {
	m, err := New(size)
	if err != nil {
		panic(err)
	}
	return m
}

// Compile compiles pattern with flags applied, reusing a cached result
// when available. Failures are never cached.
func (m *Matcher) Compile(pattern string, flags Flags) (*regexp.Regexp, error) {
	key := cacheKey{pattern: pattern, flags: flags}
	if re, ok := m.cache.Get(key); ok {
		return re, nil
	}

	re, err := regexp.Compile(Source(pattern, flags))
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	m.cache.Add(key, re)
	return re, nil
}

// Source returns the RE2 text compiled for pattern under flags: free
// spacing removed and engine flags prepended as an inline group.
func Source(pattern string, flags Flags) string {
	if flags.Verbose {
		pattern = stripVerbose(pattern)
	}
	return flags.inlinePrefix() + pattern
}

// Test compiles pattern once and searches every non-blank line.
// Line numbers are 1-based positions in lines, so skipped blank lines
// leave gaps. A compile failure is returned as a single *CompileError.
func (m *Matcher) Test(pattern string, flags Flags, lines []string) ([]Result, error) {
	re, err := m.Compile(pattern, flags)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		results = append(results, search(re, i+1, line))
	}
	return results, nil
}

// Len reports how many compiled patterns are cached.
func (m *Matcher) Len() int { return m.cache.Len() }

// Compile uses the package-level cache.
func Compile(pattern string, flags Flags) (*regexp.Regexp, error) {
	return defaultMatcher.Compile(pattern, flags)
}

// Test uses the package-level cache.
func Test(pattern string, flags Flags, lines []string) ([]Result, error) {
	return defaultMatcher.Test(pattern, flags, lines)
}

func search(re *regexp.Regexp, lineNo int, line string) Result {
	r := Result{Line: lineNo, Text: line}

	loc := re.FindStringSubmatchIndex(line)
	if loc == nil {
		return r
	}

	r.Matched = true
	full := line[loc[0]:loc[1]]
	r.Match = &full

	n := re.NumSubexp()
	if n == 0 {
		return r
	}

	r.Groups = make([]*string, n)
	names := re.SubexpNames()
	for g := 1; g <= n; g++ {
		start, end := loc[2*g], loc[2*g+1]
		var val *string
		if start >= 0 {
			s := line[start:end]
			val = &s
		}
		r.Groups[g-1] = val

		if names[g] != "" {
			if r.NamedGroups == nil {
				r.NamedGroups = make(map[string]*string)
			}
			r.NamedGroups[names[g]] = val
		}
	}
	return r
}

// SplitLines splits user input into test lines on \n, \r\n or \r.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Stats counts tested and matching lines.
type Stats struct {
	Tested  int `json:"tested"`
	Matched int `json:"matched"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d lines matched", s.Matched, s.Tested)
}

// Summary tallies results.
func Summary(results []Result) Stats {
	s := Stats{Tested: len(results)}
	for _, r := range results {
		if r.Matched {
			s.Matched++
		}
	}
	return s
}
