package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

// Meter shows how far through a quiz a child is. Short quizzes get one pip
// per question; long ones, or narrow terminals, get a solid bar.
type Meter struct {
	Done, Total int
	Width       int

	// ShowCount appends "done/total".
	ShowCount bool
}

const (
	pipDone = "●"
	pipTodo = "○"
)

func (m Meter) View() string {
	if m.Total <= 0 {
		return ""
	}
	done := min(max(m.Done, 0), m.Total)

	count := ""
	if m.ShowCount {
		count = theme.Dim.Render(fmt.Sprintf("  %d/%d", done, m.Total))
	}
	room := m.Width - lipgloss.Width(count)

	filled := lipgloss.NewStyle().Foreground(theme.Success)
	empty := lipgloss.NewStyle().Foreground(theme.Border)

	// Pips are separated by a space, so n pips need 2n-1 cells.
	if 2*m.Total-1 <= room {
		pips := make([]string, m.Total)
		for i := range pips {
			if i < done {
				pips[i] = filled.Render(pipDone)
			} else {
				pips[i] = empty.Render(pipTodo)
			}
		}
		return strings.Join(pips, " ") + count
	}

	bar := max(room, 4)
	n := bar * done / m.Total
	return lipgloss.NewStyle().Background(theme.Success).Render(strings.Repeat(" ", n)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-n)) +
		count
}
