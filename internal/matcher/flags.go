package matcher

import "strings"

// Flags are independent compile options. They combine before compilation.
type Flags struct {
	IgnoreCase bool `json:"ignore_case"`
	Multiline  bool `json:"multiline"`
	DotAll     bool `json:"dot_all"`
	Verbose    bool `json:"verbose"`
}

// inlinePrefix returns the RE2 inline flag group for f, or "" if no
// engine flag is set. Verbose is handled separately since RE2 has no
// free-spacing mode.
func (f Flags) inlinePrefix() string {
	var b strings.Builder
	if f.IgnoreCase {
		b.WriteByte('i')
	}
	if f.Multiline {
		b.WriteByte('m')
	}
	if f.DotAll {
		b.WriteByte('s')
	}
	if b.Len() == 0 {
		return ""
	}
	return "(?" + b.String() + ")"
}

// String renders f as short letters, e.g. "imsx", or "-" when unset.
func (f Flags) String() string {
	var b strings.Builder
	for _, fl := range []struct {
		on bool
		c  byte
	}{{f.IgnoreCase, 'i'}, {f.Multiline, 'm'}, {f.DotAll, 's'}, {f.Verbose, 'x'}} {
		if fl.on {
			b.WriteByte(fl.c)
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// stripVerbose removes free-spacing whitespace and # comments from
// pattern. Escaped characters and character class contents are kept.
func stripVerbose(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			b.WriteByte(c)
			if i+1 < len(pattern) {
				i++
				b.WriteByte(pattern[i])
			}
		case inClass:
			b.WriteByte(c)
			switch {
			case c == '[' && i+1 < len(pattern) && pattern[i+1] == ':':
				// [:alpha:] inside a class
				if end := strings.Index(pattern[i+2:], ":]"); end >= 0 {
					b.WriteString(pattern[i+1 : i+2+end+2])
					i += end + 3
				}
			case c == ']':
				inClass = false
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
			// A leading ] (after an optional ^) is a literal.
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
		case c == '#':
			for i+1 < len(pattern) && pattern[i+1] != '\n' {
				i++
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
