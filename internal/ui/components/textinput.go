package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and an optional
// validity mark shown after the value.
type TextInput struct {
	Label string
	Model textinput.Model

	checked bool
	valid   bool
}

// NewTextInput creates a new labeled single-line input. A positive
// charLimit caps the value length.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Label: label, Model: ti}
}

// Update forwards messages to the underlying input.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and the validity mark.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label + " ")
	if t.Model.Focused() {
		label = theme.Selected.Render(t.Label + " ")
	}
	view := label + t.Model.View()
	if t.checked {
		if t.valid {
			view += " " + theme.Match.Render("✓")
		} else {
			view += " " + theme.NoMatch.Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the value and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// SetWidth sets the visible input width.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// MarkValid shows a ✓ or ✗ after the value.
func (t *TextInput) MarkValid(valid bool) {
	t.checked = true
	t.valid = valid
}
