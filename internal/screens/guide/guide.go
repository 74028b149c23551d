// Package guide shows the regular expression cheat sheet.
package guide

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/screen"
	"github.com/abhisek/regexlab/internal/ui/layout"
	"github.com/abhisek/regexlab/internal/ui/theme"
)

// GuideScreen is a scrollable cheat sheet.
type GuideScreen struct {
	lines  []string
	offset int
	height int
}

var _ screen.Screen = (*GuideScreen)(nil)
var _ screen.KeyHintProvider = (*GuideScreen)(nil)

// New creates a GuideScreen.
func New() *GuideScreen {
	return &GuideScreen{lines: Render(explain.Guide())}
}

func (g *GuideScreen) Init() tea.Cmd { return nil }
func (g *GuideScreen) Title() string { return "Syntax guide" }

func (g *GuideScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GuideScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}
	switch kmsg.String() {
	case "up", "k":
		g.scroll(-1)
	case "down", "j":
		g.scroll(1)
	case "pgup":
		g.scroll(-g.page())
	case "pgdown", "space":
		g.scroll(g.page())
	}
	return g, nil
}

func (g *GuideScreen) page() int {
	if g.height > 1 {
		return g.height - 1
	}
	return 10
}

func (g *GuideScreen) scroll(delta int) {
	g.offset += delta
	maxOffset := len(g.lines) - g.height
	if g.height == 0 {
		maxOffset = len(g.lines) - 1
	}
	if g.offset > maxOffset {
		g.offset = maxOffset
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

func (g *GuideScreen) View(width, height int) string {
	g.height = height
	end := g.offset + height
	if end > len(g.lines) {
		end = len(g.lines)
	}
	visible := g.lines[g.offset:end]
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(visible, "\n"))
}

// Render lays the sections out as styled lines: a title per section and
// one aligned row per entry.
func Render(sections []explain.GuideSection) []string {
	var lines []string
	for i, s := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, theme.Title.Render(s.Title))

		width := 0
		for _, e := range s.Entries {
			width = max(width, lipgloss.Width(e.Syntax))
		}
		for _, e := range s.Entries {
			syntax := theme.Code.Render(fmt.Sprintf("%-*s", width, e.Syntax))
			lines = append(lines, fmt.Sprintf("  %s  %s  %s",
				syntax,
				theme.Body.Render(e.Meaning),
				theme.Hint.Render(e.Example)))
		}
	}
	return lines
}
