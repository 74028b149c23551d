package workbench

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/matcher"
	"github.com/abhisek/regexlab/internal/ui/components"
	"github.com/abhisek/regexlab/internal/ui/layout"
	"github.com/abhisek/regexlab/internal/ui/theme"
)

const linesPanelHeight = 7

func (w *WorkbenchScreen) render(width, height int) string {
	inner := width - 4
	w.pattern.SetWidth(inner - 12)
	w.prompt.SetWidth(inner - 12)

	top := []string{
		w.pattern.View(),
		w.flags.View(),
		w.prompt.View(),
	}

	half := width / 2
	w.lines.SetWidth(half - 4)
	w.lines.SetHeight(linesPanelHeight)

	linesPanel := components.Panel("Test lines", w.lines.View(), half, w.focus == focusLines)
	resultsPanel := components.Panel("Results", w.renderResults(width-half-4, linesPanelHeight), width-half, false)
	middle := lipgloss.JoinHorizontal(lipgloss.Top, linesPanel, resultsPanel)

	stats := matcher.Summary(w.results)
	bar := components.NewProgressBar("Matched", stats.Matched, stats.Tested, inner).View()

	buttons := components.ButtonBar(w.buttons(), inner)

	used := len(top) + lipgloss.Height(middle) + 1 + 1 + lipgloss.Height(buttons) + 2
	explainHeight := height - used - 2
	if explainHeight < 3 {
		explainHeight = 3
	}

	var bottom string
	if w.describing {
		bottom = components.Panel("Generate a pattern",
			w.describe.View()+"\n"+theme.Hint.Render("The generated pattern replaces the current one."),
			width, true)
	} else {
		bottom = components.Panel(w.explainPanelTitle(), w.renderExplanation(inner, explainHeight), width, false)
	}

	sections := append(top, middle, bar, w.statusLine(), bottom, buttons)
	return strings.Join(sections, "\n")
}

func (w *WorkbenchScreen) explainPanelTitle() string {
	if w.explainTitle == "" {
		return "Explanation"
	}
	return w.explainTitle
}

func (w *WorkbenchScreen) buttons() []components.Button {
	ai := w.opts.Assistant != nil
	return []components.Button{
		components.NewButton("^E", "Explain", true),
		components.NewButton("^A", "Explain with AI", ai),
		components.NewButton("^D", "Document with AI", ai),
		components.NewButton("^G", "Generate", ai),
		components.NewButton("^R", "AI history", w.opts.History != nil),
	}
}

func (w *WorkbenchScreen) renderResults(width, height int) string {
	if w.compileErr != "" {
		return theme.ErrorText.Render(wrap("Invalid pattern: "+w.compileErr, width))
	}
	if w.Pattern() == "" {
		return theme.Hint.Render("Enter a pattern to test it.")
	}
	if len(w.results) == 0 {
		return theme.Hint.Render("Add test lines on the left.")
	}

	var rows []string
	for _, r := range w.results {
		rows = append(rows, renderResult(r, width))
	}
	return clip(rows, height)
}

func renderResult(r matcher.Result, width int) string {
	mark := theme.NoMatch.Render("✗")
	if r.Matched {
		mark = theme.Match.Render("✓")
	}

	// Truncate the plain text first so styling never gets cut.
	head := fmt.Sprintf("%d  %s", r.Line, r.Text)
	full := head
	if detail := matcher.FormatMatch(r); detail != "" {
		full += "  " + detail
	}
	full = layout.Truncate(full, width-2)
	if len(full) <= len(head) || !strings.HasPrefix(full, head) {
		return mark + " " + theme.Body.Render(full)
	}
	return mark + " " + theme.Body.Render(full[:len(head)]) + theme.Group.Render(full[len(head):])
}

func (w *WorkbenchScreen) renderExplanation(width, height int) string {
	if w.explanation == "" {
		return theme.Hint.Render("Press Ctrl+E for a local explanation or Ctrl+A to ask the AI.")
	}
	var lines []string
	for _, l := range strings.Split(w.explanation, "\n") {
		lines = append(lines, strings.Split(wrap(l, width), "\n")...)
	}
	for _, m := range w.mismatches {
		lines = append(lines, theme.NoMatch.Render("! "+m.String()))
	}
	return clip(lines, height)
}

// clip keeps at most height lines, replacing the overflow with a marker.
func clip(lines []string, height int) string {
	if len(lines) > height && height > 0 {
		more := len(lines) - height + 1
		lines = append(lines[:height-1], theme.Hint.Render(fmt.Sprintf("… %d more", more)))
	}
	return strings.Join(lines, "\n")
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
