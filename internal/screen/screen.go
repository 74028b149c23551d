package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/regexlab/internal/matcher"
	"github.com/abhisek/regexlab/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// LoadPatternMsg asks the workbench to replace its pattern, flags and test
// lines. Lines is left untouched when nil.
type LoadPatternMsg struct {
	Name    string
	Pattern string
	Flags   matcher.Flags
	Lines   []string
}
