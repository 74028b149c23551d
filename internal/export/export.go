// Package export turns a tested pattern into Go source: a compiled
// regexp variable, a validator function and, when the explanation
// carries examples, a table test for them.
package export

import (
	"bytes"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/spf13/afero"

	"github.com/abhisek/regexlab/internal/assist"
	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/matcher"
)

// DefaultPackage is used when Options.Package is empty.
const DefaultPackage = "patterns"

// Options configures Generate.
type Options struct {
	Pattern string
	Flags   matcher.Flags

	// Name is turned into the exported identifier stem, e.g.
	// "french phone" gives FrenchPhoneRegexp and IsFrenchPhone.
	Name    string
	Package string

	// Doc supplies the comment and test examples. When it has no
	// sentences the local explanation of Pattern is used.
	Doc explain.Document
}

// Files holds the rendered sources. Test is nil when there were no
// examples to test.
type Files struct {
	Base   string // file name stem
	Source []byte
	Test   []byte

	// Skipped lists examples left out of the test because the pattern
	// disagrees with them.
	Skipped []assist.Mismatch
}

// Generate renders the Go files for opts. The pattern must compile.
func Generate(opts Options) (*Files, error) {
	if _, err := matcher.Compile(opts.Pattern, opts.Flags); err != nil {
		return nil, err
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	ident := identifier(opts.Name)
	doc := opts.Doc
	if len(doc.Sentences) == 0 {
		doc = explain.Explain(opts.Pattern)
	}

	names := names{
		variable:  ident + "Regexp",
		validator: "Is" + ident,
	}

	src, err := render(sourceFile(pkg, opts, doc, names))
	if err != nil {
		return nil, fmt.Errorf("render source: %w", err)
	}
	files := &Files{Base: strings.ToLower(ident), Source: src}

	files.Skipped, err = assist.CheckExamples(opts.Pattern, opts.Flags, doc)
	if err != nil {
		return nil, err
	}
	tested := withoutMismatches(doc, files.Skipped)

	if tested.HasExamples() {
		test, err := render(testFile(pkg, tested, names))
		if err != nil {
			return nil, fmt.Errorf("render test: %w", err)
		}
		files.Test = test
	}
	return files, nil
}

// withoutMismatches drops the examples the compiled pattern disagrees with.
func withoutMismatches(doc explain.Document, skipped []assist.Mismatch) explain.Document {
	if len(skipped) == 0 {
		return doc
	}
	drop := make(map[string]bool, len(skipped))
	for _, m := range skipped {
		drop[m.Example] = true
	}
	keep := func(examples []string) []string {
		var out []string
		for _, ex := range examples {
			if !drop[ex] {
				out = append(out, ex)
			}
		}
		return out
	}
	doc.ValidExamples = keep(doc.ValidExamples)
	doc.InvalidExamples = keep(doc.InvalidExamples)
	return doc
}

// Write stores files under dir on fs and returns the written paths.
func Write(fs afero.Fs, dir string, files *Files) ([]string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var written []string
	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write(files.Base+".go", files.Source); err != nil {
		return written, err
	}
	if files.Test != nil {
		if err := write(files.Base+"_test.go", files.Test); err != nil {
			return written, err
		}
	}
	return written, nil
}

type names struct {
	variable  string
	validator string
}

func sourceFile(pkg string, opts Options, doc explain.Document, n names) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by regexlab. DO NOT EDIT.")

	f.Commentf("%s matches %s (flags: %s).", n.variable, opts.Pattern, opts.Flags)
	for _, s := range doc.Sentences {
		f.Comment(strings.Join(strings.Fields(s), " "))
	}
	f.Var().Id(n.variable).Op("=").Qual("regexp", "MustCompile").Call(
		jen.Lit(matcher.Source(opts.Pattern, opts.Flags)),
	)
	f.Line()

	f.Commentf("%s reports whether s contains a match of %s.", n.validator, n.variable)
	f.Func().Id(n.validator).Params(jen.Id("s").String()).Bool().Block(
		jen.Return(jen.Id(n.variable).Dot("MatchString").Call(jen.Id("s"))),
	)
	return f
}

func testFile(pkg string, doc explain.Document, n names) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by regexlab. DO NOT EDIT.")

	var rows []jen.Code
	for _, ex := range doc.ValidExamples {
		rows = append(rows, jen.Values(jen.Lit(ex), jen.True()))
	}
	for _, ex := range doc.InvalidExamples {
		rows = append(rows, jen.Values(jen.Lit(ex), jen.False()))
	}

	f.Func().Id("Test"+n.validator).Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.Id("tests").Op(":=").Index().Struct(
			jen.Id("in").String(),
			jen.Id("want").Bool(),
		).Values(rows...),
		jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
			jen.If(
				jen.Id("got").Op(":=").Id(n.validator).Call(jen.Id("tt").Dot("in")),
				jen.Id("got").Op("!=").Id("tt").Dot("want"),
			).Block(
				jen.Id("t").Dot("Errorf").Call(
					jen.Lit(n.validator+"(%q) = %v, want %v"),
					jen.Id("tt").Dot("in"), jen.Id("got"), jen.Id("tt").Dot("want"),
				),
			),
		),
	)
	return f
}

func render(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// identifier turns a free-form name into an exported Go identifier.
func identifier(name string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(word)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	id := b.String()
	if id == "" {
		return "Pattern"
	}
	if unicode.IsDigit([]rune(id)[0]) {
		id = "P" + id
	}
	return id
}
