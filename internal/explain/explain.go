// Package explain turns a regular expression into a plain-language
// description. Recognized patterns get a curated explanation with example
// strings; anything else is described by a battery of lexical detectors.
//
// Analysis is purely textual. It never compiles the pattern and never
// fails, so arbitrary user input (empty, unbalanced, nonsensical) is safe.
// All functions are pure and may be called concurrently.
package explain

import (
	"strings"
)

// Explain classifies pattern and, when the classifier produced no more
// than MaxPriorSentences sentences, appends the generic detector output.
// Examples only ever come from the classifier.
func Explain(pattern string) Document {
	doc := Classify(pattern)
	if len(doc.Sentences) <= MaxPriorSentences {
		doc.Sentences = Analyze(pattern, doc.Sentences)
	}
	return doc
}

// Section headers and the placeholder note used by Format.
const (
	HeaderValid   = "Valid examples:"
	HeaderInvalid = "Invalid examples:"
	NoExamplesTip = "Note: you can enrich this documentation by adding your own valid and invalid examples."
)

// Format renders doc as text: one sentence per line, then bulleted
// example blocks, or a note inviting the user to add examples when there
// are none.
func Format(doc Document) string {
	var b strings.Builder
	b.WriteString(strings.Join(doc.Sentences, "\n"))

	writeBlock(&b, HeaderValid, doc.ValidExamples)
	writeBlock(&b, HeaderInvalid, doc.InvalidExamples)

	if !doc.HasExamples() {
		b.WriteString("\n\n")
		b.WriteString(NoExamplesTip)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n\n")
	b.WriteString(header)
	for _, it := range items {
		b.WriteString("\n- ")
		b.WriteString(it)
	}
}
