package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/ui/theme"
)

// Button is a keyboard-triggered action shown in an action bar.
type Button struct {
	Key     string
	Label   string
	Enabled bool
}

// NewButton creates a new button.
func NewButton(key, label string, enabled bool) Button {
	return Button{Key: key, Label: label, Enabled: enabled}
}

// View renders the button. Disabled buttons are dimmed.
func (b Button) View() string {
	label := b.Key + " " + b.Label
	if b.Enabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonBar lays buttons out on as many rows as width requires.
func ButtonBar(buttons []Button, width int) string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, b := range buttons {
		v := b.View()
		w := lipgloss.Width(v) + 1
		if rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, strings.Join(row, " "))
			row, rowWidth = nil, 0
		}
		row = append(row, v)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}
