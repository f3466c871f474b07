package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/homeworkpal/internal/play"
	"github.com/abhisek/homeworkpal/internal/router"
	"github.com/abhisek/homeworkpal/internal/screen"
	"github.com/abhisek/homeworkpal/internal/ui/components"
	"github.com/abhisek/homeworkpal/internal/ui/layout"
	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

// SummaryScreen shows how a finished quest went.
type SummaryScreen struct {
	summary play.Summary
	button  components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.TallyProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary play.Summary) *SummaryScreen {
	home := func() tea.Cmd {
		return func() tea.Msg { return router.PopToRootMsg{} }
	}
	return &SummaryScreen{
		summary: summary,
		button:  components.NewButton("Back to quests", home),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quest Summary"
}

func (s *SummaryScreen) Tally() int {
	return s.summary.Tally
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to quests"},
		{Key: "Esc", Description: "Chat"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.button, cmd = s.button.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Quest complete!"))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Render(sum.Title))
	b.WriteString("\n\n")

	score := fmt.Sprintf("You got %d out of %d right", sum.Correct, sum.Total)
	b.WriteString(center.Foreground(scoreColor(sum)).Bold(true).Render(score))
	b.WriteString("\n\n")

	if sum.Total > 0 {
		meter := components.Meter{Done: sum.Correct, Total: sum.Total, Width: min(width-8, 40), ShowCount: true}
		b.WriteString(center.Render(meter.View()))
		b.WriteString("\n\n")
	}

	stars := strings.Repeat("⭐", min(sum.CompletionStars, 10))
	b.WriteString(center.Foreground(theme.Star).Render(
		fmt.Sprintf("%s  You earned %d ⭐", stars, sum.CompletionStars)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("Stars from answers: %d", sum.Tally)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(s.button.View()))

	return b.String()
}

func scoreColor(sum play.Summary) color.Color {
	switch {
	case sum.Total > 0 && sum.Correct == sum.Total:
		return theme.Success
	case sum.Correct*2 >= sum.Total:
		return theme.Secondary
	default:
		return theme.Accent
	}
}
