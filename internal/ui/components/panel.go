package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/ui/theme"
)

// Panel draws a titled, bordered box of the given outer width (border
// included). Focused
// panels get the primary border color.
func Panel(title, body string, width int, focused bool) string {
	style := theme.Panel
	titleStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	if focused {
		style = theme.FocusedPanel
		titleStyle = theme.Selected
	}
	if width < 12 {
		width = 12
	}
	content := body
	if title != "" {
		content = titleStyle.Render(title) + "\n" + body
	}
	return style.Width(width).Render(content)
}

// CenteredCard renders content in a card centered in width x height.
func CenteredCard(content string, width, height int) string {
	card := theme.Card.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
