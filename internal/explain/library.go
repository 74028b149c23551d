package explain

import (
	"slices"
	"strings"
)

// LibraryEntry is a ready-made pattern the user can load into the workbench.
type LibraryEntry struct {
	Name            string   `json:"name"`
	Pattern         string   `json:"pattern"`
	Description     string   `json:"description"`
	ValidExamples   []string `json:"valid_examples"`
	InvalidExamples []string `json:"invalid_examples"`
}

var library = []LibraryEntry{
	{
		Name:            "Uppercase name",
		Pattern:         `^[A-Z][A-Z\s\-']*$`,
		Description:     "Validates a name written entirely in uppercase, with spaces, hyphens or apostrophes.",
		ValidExamples:   []string{"DUPONT", "MARTIN-DURAND", "O'CONNOR", "DE LA FONTAINE"},
		InvalidExamples: []string{"Dupont", "MARTIN2", "dupont", "123NOM"},
	},
	{
		Name:            "INE code",
		Pattern:         `^[0-9]{9}[A-Z]{2}$`,
		Description:     "Validates an INE code (national student identifier): 9 digits followed by 2 uppercase letters.",
		ValidExamples:   []string{"123456789AB", "987654321XY"},
		InvalidExamples: []string{"12345678AB", "123456789abc", "ABC123456", "123456789A"},
	},
	{
		Name:            "Month/year date",
		Pattern:         `^(0[1-9]|1[0-2])\/20[0-9]{2}$`,
		Description:     "Validates a date in MM/YYYY format for the 21st century (2000-2099).",
		ValidExamples:   []string{"01/2023", "12/2099", "05/2010"},
		InvalidExamples: []string{"1/2023", "13/2023", "05/123", "05-2023", "05/1999"},
	},
	{
		Name:            "Simple email",
		Pattern:         `^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`,
		Description:     "Validates a simple email address.",
		ValidExamples:   []string{"exemple@domaine.com", "prenom.nom@entreprise.fr", "nom-compose@site.co.uk"},
		InvalidExamples: []string{"exemple@", "exemple@domaine", "@domaine.com", "exemple@domaine."},
	},
	{
		Name:            "French phone number",
		Pattern:         `^0[1-9]([ .-]?\d{2}){4}$`,
		Description:     "Validates a French phone number.",
		ValidExamples:   []string{"0123456789", "01 23 45 67 89", "01-23-45-67-89", "01.23.45.67.89"},
		InvalidExamples: []string{"00123456789", "0123", "+33123456789"},
	},
}

// Library returns the built-in pattern library.
func Library() []LibraryEntry {
	out := make([]LibraryEntry, len(library))
	for i, e := range library {
		e.ValidExamples = slices.Clone(e.ValidExamples)
		e.InvalidExamples = slices.Clone(e.InvalidExamples)
		out[i] = e
	}
	return out
}

// FindLibraryEntry looks up a library entry by name, ignoring case.
func FindLibraryEntry(name string) (LibraryEntry, bool) {
	for _, e := range Library() {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return LibraryEntry{}, false
}
