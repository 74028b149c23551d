package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/matcher"
	"github.com/abhisek/regexlab/internal/ui/theme"
)

// FlagToggles renders the four compile flags with the keys that toggle them.
type FlagToggles struct {
	Flags matcher.Flags
}

type flagToggle struct {
	key   string
	label string
	on    bool
}

func (f FlagToggles) toggles() []flagToggle {
	return []flagToggle{
		{"F1", "ignore case", f.Flags.IgnoreCase},
		{"F2", "multiline", f.Flags.Multiline},
		{"F3", "dot all", f.Flags.DotAll},
		{"F4", "verbose", f.Flags.Verbose},
	}
}

// Toggle flips the flag bound to key (f1..f4) and reports whether key
// was a flag key.
func (f *FlagToggles) Toggle(key string) bool {
	switch key {
	case "f1":
		f.Flags.IgnoreCase = !f.Flags.IgnoreCase
	case "f2":
		f.Flags.Multiline = !f.Flags.Multiline
	case "f3":
		f.Flags.DotAll = !f.Flags.DotAll
	case "f4":
		f.Flags.Verbose = !f.Flags.Verbose
	default:
		return false
	}
	return true
}

// View renders the toggles on one line.
func (f FlagToggles) View() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, 0, 4)
	for _, t := range f.toggles() {
		box := "[ ]"
		style := theme.Unselected
		if t.on {
			box = "[x]"
			style = theme.Selected
		}
		parts = append(parts, dim.Render(t.key)+" "+style.Render(box+" "+t.label))
	}
	return strings.Join(parts, "  ")
}
