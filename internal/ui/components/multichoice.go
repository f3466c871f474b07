package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

// MultiChoice lists quiz options. The child moves with the arrows and
// answers with Enter, or types the option's number (1-9) directly.
// After an answer it stops taking input.
type MultiChoice struct {
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, ChosenIndex: -1}
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.Submitted || len(m.Options) == 0 {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		m.Selected = max(m.Selected-1, 0)
	case "down", "j":
		m.Selected = min(m.Selected+1, len(m.Options)-1)
	case "enter":
		m.pick(m.Selected)
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= min(len(m.Options), 9) {
			m.pick(n - 1)
		}
	}
	return m, nil
}

func (m *MultiChoice) pick(i int) {
	m.Selected = i
	m.ChosenIndex = i
	m.Submitted = true
}

var (
	optionPlain  = lipgloss.NewStyle().Foreground(theme.Text)
	optionCursor = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	optionChosen = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
)

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		marker, style := "  ", optionPlain
		switch {
		case m.Submitted && i == m.ChosenIndex:
			marker, style = "✎ ", optionChosen
		case m.Submitted:
			style = theme.Dim
		case i == m.Selected:
			marker, style = "▸ ", optionCursor
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d)  %s", marker, i+1, opt)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Choice is the 1-based answer, or 0 while the child is still choosing.
func (m MultiChoice) Choice() int {
	if !m.Submitted {
		return 0
	}
	return m.ChosenIndex + 1
}
