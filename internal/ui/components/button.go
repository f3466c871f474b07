package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

// Button fires OnPress on Enter or Space while Focused.
type Button struct {
	Label   string
	Focused bool
	OnPress func() tea.Cmd
}

func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{Label: label, Focused: true, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !b.Focused || b.OnPress == nil {
		return b, nil
	}
	switch key.String() {
	case "enter", "space", " ":
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if b.Focused {
		return theme.Button.Render("⭐ " + b.Label)
	}
	return theme.ButtonIdle.Render(b.Label)
}
