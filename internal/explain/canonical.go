package explain

import (
	"slices"
	"strings"
)

// Anchor sentences, one per combination of leading ^ and trailing $.
const (
	SentenceFullString = "This regular expression validates a full string (must match start to end)."
	SentenceStart      = "This regular expression validates the start of a string."
	SentenceEnd        = "This regular expression validates the end of a string."
	SentenceAnywhere   = "This regular expression searches for a pattern anywhere in the string."
)

// canonicalEntries is checked in order; the first matching entry wins.
var canonicalEntries = []CanonicalEntry{
	{
		Name: "uppercase-name",
		Rule: MatchRule{Exact: []string{
			`^[A-Z][A-Z\s\-']*$`,
			`^[A-Z][A-Z\s\-\']*$`,
		}},
		Mode: ModeReplace,
		Sentences: []string{
			"This regular expression validates a name written entirely in UPPERCASE.",
			"The string must start with an uppercase letter ([A-Z]).",
			`It may then contain any number (or none) of the following characters: uppercase letters, spaces, hyphens or apostrophes ([A-Z\s\-']*).`,
			"No other character is allowed (digits, lowercase letters, symbols, etc.).",
		},
		ValidExamples:   []string{"DUPONT", "MARTIN-DURAND", "O'CONNOR", "DE LA FONTAINE"},
		InvalidExamples: []string{"Dupont", "MARTIN2", "dupont", "123NOM"},
	},
	{
		Name: "student-id",
		Rule: MatchRule{Contains: []string{`^[0-9]{9}[A-Z]{2}$`}},
		Mode: ModeReplace,
		Sentences: []string{
			"This regular expression validates an INE code (national student identifier).",
			"The string must contain exactly 9 digits ([0-9]{9}) followed by 2 uppercase letters ([A-Z]{2}).",
			"No space or other character is allowed.",
		},
		ValidExamples:   []string{"123456789AB", "987654321XY"},
		InvalidExamples: []string{"12345678AB", "123456789abc", "ABC123456", "123456789A"},
	},
	{
		Name: "date-dd-mm-yyyy",
		Rule: MatchRule{Contains: []string{`^\d{2}-\d{2}-\d{4}$`}},
		Mode: ModeReplace,
		Sentences: []string{
			"This regular expression validates a date in DD-MM-YYYY format.",
			"The string must contain exactly 2 digits (day), a hyphen, 2 digits (month), a hyphen, then 4 digits (year).",
			"Days and months must be written with 2 digits and the year with 4 digits.",
			"The separator must be a hyphen (-) and no other character.",
		},
		ValidExamples:   []string{"01-01-2023", "31-12-2022"},
		InvalidExamples: []string{"1-1-2023", "01/01/2023"},
	},
	{
		Name: "date-mm-yyyy",
		Rule: MatchRule{Contains: []string{`^(0[1-9]|1[0-2])\/20[0-9]{2}$`}},
		Mode: ModeReplace,
		Sentences: []string{
			"This regular expression validates a date in MM/YYYY format for the 21st century (2000-2099).",
			"The month must be between 01 and 12 (0[1-9] or 1[0-2]).",
			"The separator must be a slash (/).",
			"The year must start with '20' followed by two digits (between 2000 and 2099).",
		},
		ValidExamples:   []string{"01/2023", "12/2099", "05/2010"},
		InvalidExamples: []string{"1/2023", "13/2023", "05/123", "05-2023", "05/1999"},
	},
	{
		Name: "email",
		Rule: MatchRule{Contains: []string{`@`, `\.`}},
		Mode: ModeAppend,
		Sentences: []string{
			"It appears to validate an email address format.",
			"It looks for an '@' character followed by a domain containing a dot.",
		},
		ValidExamples:   []string{"exemple@domaine.com", "prenom.nom@entreprise.fr"},
		InvalidExamples: []string{"exemple@", "exemple@domaine", "@domaine.com"},
	},
}

// CanonicalEntries returns a copy of the recognized patterns in priority order.
func CanonicalEntries() []CanonicalEntry {
	return slices.Clone(canonicalEntries)
}

// Lookup returns the first canonical entry whose rule matches pattern.
func Lookup(pattern string) (CanonicalEntry, bool) {
	for _, e := range canonicalEntries {
		if e.Rule.Matches(pattern) {
			return e, true
		}
	}
	return CanonicalEntry{}, false
}

// AnchorSentence describes how the pattern is anchored.
func AnchorSentence(pattern string) string {
	start := strings.HasPrefix(pattern, "^")
	end := strings.HasSuffix(pattern, "$")
	switch {
	case start && end:
		return SentenceFullString
	case start:
		return SentenceStart
	case end:
		return SentenceEnd
	default:
		return SentenceAnywhere
	}
}

// Classify builds the classifier's document for pattern: the anchor
// sentence, then the curated sentences and examples of the first matching
// canonical entry. An unrecognized pattern yields the anchor sentence alone.
func Classify(pattern string) Document {
	doc := Document{Sentences: []string{AnchorSentence(pattern)}}

	entry, ok := Lookup(pattern)
	if !ok {
		return doc
	}

	switch entry.Mode {
	case ModeReplace:
		doc.Sentences = slices.Clone(entry.Sentences)
	case ModeAppend:
		doc.Sentences = append(doc.Sentences, entry.Sentences...)
	}
	doc.ValidExamples = slices.Clone(entry.ValidExamples)
	doc.InvalidExamples = slices.Clone(entry.InvalidExamples)
	return doc
}
