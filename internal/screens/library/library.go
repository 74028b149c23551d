// Package library lists the built-in patterns and loads the chosen one
// into the workbench.
package library

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/router"
	"github.com/abhisek/regexlab/internal/screen"
	"github.com/abhisek/regexlab/internal/ui/components"
	"github.com/abhisek/regexlab/internal/ui/layout"
	"github.com/abhisek/regexlab/internal/ui/theme"
)

// LibraryScreen shows the pattern library next to the selected entry.
type LibraryScreen struct {
	entries []explain.LibraryEntry
	menu    components.Menu
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

// New creates a LibraryScreen over explain.Library().
func New() *LibraryScreen {
	s := &LibraryScreen{entries: explain.Library()}

	items := make([]components.MenuItem, len(s.entries))
	for i, e := range s.entries {
		items[i] = components.MenuItem{
			Label:  e.Name,
			Action: func() tea.Cmd { return load(e) },
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

// load pops back to the workbench with the entry's examples, valid ones
// first, as test lines.
func load(e explain.LibraryEntry) tea.Cmd {
	lines := append(append([]string{}, e.ValidExamples...), e.InvalidExamples...)
	return func() tea.Msg {
		return router.PopScreenMsg{Then: screen.LoadPatternMsg{
			Name:    e.Name,
			Pattern: e.Pattern,
			Lines:   lines,
		}}
	}
}

func (s *LibraryScreen) Init() tea.Cmd { return nil }
func (s *LibraryScreen) Title() string { return "Pattern library" }

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Load into workbench"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the highlighted entry.
func (s *LibraryScreen) Selected() explain.LibraryEntry {
	return s.entries[s.menu.Selected]
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LibraryScreen) View(width, height int) string {
	listWidth := 28
	list := components.Panel("Patterns", s.menu.View(), listWidth, true)
	detail := components.Panel("", s.renderDetail(width-listWidth-6), width-listWidth-2, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)
}

func (s *LibraryScreen) renderDetail(width int) string {
	e := s.Selected()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(theme.Title.Render(e.Name))
	b.WriteString("\n\n")
	b.WriteString(theme.Code.Render(e.Pattern))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(e.Description))
	b.WriteString("\n\n")
	b.WriteString(dim.Render(explain.HeaderValid))
	for _, ex := range e.ValidExamples {
		b.WriteString("\n  " + theme.Match.Render("✓") + " " + ex)
	}
	b.WriteString("\n\n")
	b.WriteString(dim.Render(explain.HeaderInvalid))
	for _, ex := range e.InvalidExamples {
		b.WriteString("\n  " + theme.NoMatch.Render("✗") + " " + ex)
	}
	return b.String()
}
