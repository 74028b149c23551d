// Package structure parses a pattern into a syntax tree and reports what
// the lexical explainer can only guess at: exact capture-group numbering,
// group names and nesting.
package structure

import (
	"fmt"
	"io"
	"strings"

	"github.com/quasilyte/regex/syntax"
)

// Group is one capturing group, numbered in opening-paren order from 1.
type Group struct {
	Index int
	Name  string // empty for unnamed groups
	Text  string // source text including the parens
}

// Outline is the parsed form of a pattern.
type Outline struct {
	Pattern string
	// Syntax is the s-expression form of the tree.
	Syntax string
	Groups []Group

	re *syntax.Regexp
}

// ParseError reports a pattern the syntax parser rejected.
type ParseError struct {
	Pattern string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Pattern, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse builds the Outline of pattern.
func Parse(pattern string) (out *Outline, err error) {
	// The parser panics with plain errors on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &ParseError{Pattern: pattern, Err: fmt.Errorf("%v", r)}
		}
	}()

	// Parsers reuse their node pool between calls, so each parse gets
	// its own.
	re, perr := syntax.NewParser(nil).Parse(pattern)
	if perr != nil {
		return nil, &ParseError{Pattern: pattern, Err: perr}
	}

	out = &Outline{
		Pattern: pattern,
		Syntax:  formatSyntax(re.Expr),
		re:      re,
	}
	collectGroups(re.Expr, &out.Groups)
	return out, nil
}

// Captures returns the number of capturing groups.
func (o *Outline) Captures() int {
	return len(o.Groups)
}

// Names returns the named groups' names in order.
func (o *Outline) Names() []string {
	var names []string
	for _, g := range o.Groups {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

func collectGroups(e syntax.Expr, groups *[]Group) {
	switch e.Op {
	case syntax.OpCapture:
		*groups = append(*groups, Group{Index: len(*groups) + 1, Text: e.Value})
	case syntax.OpNamedCapture:
		*groups = append(*groups, Group{Index: len(*groups) + 1, Name: e.Args[1].Value, Text: e.Value})
	}
	for _, arg := range children(e) {
		collectGroups(arg, groups)
	}
}

// children returns the sub-expressions worth descending into. Class
// members, literal characters and quantifier counts are folded into
// their parent's label.
func children(e syntax.Expr) []syntax.Expr {
	switch e.Op {
	case syntax.OpConcat, syntax.OpAlt:
		return e.Args
	case syntax.OpCapture, syntax.OpGroup, syntax.OpAtomicGroup,
		syntax.OpPlus, syntax.OpStar, syntax.OpQuestion,
		syntax.OpNonGreedy, syntax.OpPossessive,
		syntax.OpPositiveLookahead, syntax.OpNegativeLookahead,
		syntax.OpPositiveLookbehind, syntax.OpNegativeLookbehind:
		return e.Args[:1]
	case syntax.OpNamedCapture, syntax.OpGroupWithFlags, syntax.OpRepeat:
		// Args[1] is the name, flags or count string.
		return e.Args[:1]
	}
	return nil
}

// formatSyntax renders e as an s-expression: concatenations in braces,
// other compound nodes as (op args...), leaves as their source text.
func formatSyntax(e syntax.Expr) string {
	var b strings.Builder
	writeSyntax(&b, e)
	return b.String()
}

func writeSyntax(b *strings.Builder, e syntax.Expr) {
	switch e.Op {
	case syntax.OpConcat:
		b.WriteByte('{')
		writeArgs(b, e.Args)
		b.WriteByte('}')
		return
	case syntax.OpAlt:
		b.WriteString("(or ")
		writeArgs(b, e.Args)
		b.WriteByte(')')
		return
	case syntax.OpFlagOnlyGroup:
		b.WriteString("(flags ?" + e.Args[0].Value + ")")
		return
	case syntax.OpNamedCapture:
		b.WriteString("(capture ")
		writeSyntax(b, e.Args[0])
		b.WriteString(" " + e.Args[1].Value + ")")
		return
	case syntax.OpGroupWithFlags:
		b.WriteString("(group ")
		writeSyntax(b, e.Args[0])
		b.WriteString(" ?" + e.Args[1].Value + ")")
		return
	case syntax.OpRepeat:
		b.WriteString("(repeat ")
		writeSyntax(b, e.Args[0])
		b.WriteString(" " + e.Args[1].Value + ")")
		return
	}

	args := children(e)
	if len(args) == 0 {
		b.WriteString(e.Value)
		return
	}
	b.WriteString("(" + strings.ToLower(e.Op.String()) + " ")
	writeArgs(b, args)
	b.WriteByte(')')
}

func writeArgs(b *strings.Builder, args []syntax.Expr) {
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeSyntax(b, a)
	}
}

// WriteTree writes an indented tree of the pattern to w.
func (o *Outline) WriteTree(w io.Writer) error {
	n := 0
	return writeNode(w, o.re.Expr, 0, &n)
}

// Tree returns the indented tree as a string.
func (o *Outline) Tree() string {
	var b strings.Builder
	o.WriteTree(&b)
	return b.String()
}

func writeNode(w io.Writer, e syntax.Expr, depth int, captures *int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label(e, captures)); err != nil {
		return err
	}
	for _, arg := range children(e) {
		if err := writeNode(w, arg, depth+1, captures); err != nil {
			return err
		}
	}
	return nil
}

func label(e syntax.Expr, captures *int) string {
	switch e.Op {
	case syntax.OpConcat:
		if len(e.Args) == 0 {
			return "empty"
		}
		return "sequence"
	case syntax.OpAlt:
		return fmt.Sprintf("alternation (%d branches)", len(e.Args))
	case syntax.OpCapture:
		*captures++
		return fmt.Sprintf("group #%d", *captures)
	case syntax.OpNamedCapture:
		*captures++
		return fmt.Sprintf("group #%d <%s>", *captures, e.Args[1].Value)
	case syntax.OpGroup:
		return "non-capturing group"
	case syntax.OpGroupWithFlags:
		return "group with flags " + e.Args[1].Value
	case syntax.OpFlagOnlyGroup:
		return "set flags " + e.Args[0].Value
	case syntax.OpPlus:
		return "one or more"
	case syntax.OpStar:
		return "zero or more"
	case syntax.OpQuestion:
		return "optional"
	case syntax.OpNonGreedy:
		return "lazy"
	case syntax.OpPossessive:
		return "possessive"
	case syntax.OpAtomicGroup:
		return "atomic group"
	case syntax.OpPositiveLookahead:
		return "lookahead"
	case syntax.OpNegativeLookahead:
		return "negative lookahead"
	case syntax.OpPositiveLookbehind:
		return "lookbehind"
	case syntax.OpNegativeLookbehind:
		return "negative lookbehind"
	case syntax.OpRepeat:
		return "repeat " + e.Args[1].Value
	case syntax.OpCharClass:
		return "class " + e.Value
	case syntax.OpNegCharClass:
		return "negated class " + e.Value
	case syntax.OpCaret:
		return "start anchor"
	case syntax.OpDollar:
		return "end anchor"
	case syntax.OpDot:
		return "any character"
	case syntax.OpLiteral:
		return fmt.Sprintf("literal %q", e.Value)
	case syntax.OpChar:
		return fmt.Sprintf("char %q", e.Value)
	case syntax.OpQuote:
		return "quoted " + e.Value
	case syntax.OpPosixClass:
		return "posix class " + e.Value
	case syntax.OpEscapeChar, syntax.OpEscapeMeta, syntax.OpEscapeOctal,
		syntax.OpEscapeUni, syntax.OpEscapeHex:
		return "escape " + e.Value
	}
	return e.Value
}
