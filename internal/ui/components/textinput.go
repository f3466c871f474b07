package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is the child's answer box.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput returns a focused input holding at most limit characters.
func NewTextInput(placeholder string, limit int) TextInput {
	m := textinput.New()
	m.Prompt = "› "
	m.Placeholder = placeholder
	m.CharLimit = max(limit, 0)
	m.Focus()
	return TextInput{Model: m}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetWidth fits the box to the chat column.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(max(w-4, 1))
}

func (t TextInput) View() string {
	return t.Model.View()
}

// Value is what was typed with runs of spaces collapsed.
func (t TextInput) Value() string {
	return strings.Join(strings.Fields(t.Model.Value()), " ")
}

func (t *TextInput) Reset() {
	t.Model.Reset()
}
