package quest

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/homeworkpal/internal/tutor"
	"github.com/abhisek/homeworkpal/internal/ui/components"
	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *QuestScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.driver == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Opening your quest " + s.spinner())
	}

	info := s.renderInfoLine(width)
	input := s.renderInput(width)
	if s.notice != "" {
		input = lipgloss.NewStyle().Foreground(theme.Accent).Render("  "+s.notice) + "\n" + input
	}

	chatHeight := height - lipgloss.Height(info) - lipgloss.Height(input) - 2
	chat := s.renderChat(width, chatHeight)

	return info + "\n" + chat + "\n" + input
}

// renderInfoLine shows the stage, a meter of answered questions and the
// star tally.
func (s *QuestScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(s.stageColor()).
		Bold(true).
		Render("  " + s.stageLabel())
	right := lipgloss.NewStyle().Foreground(theme.Star).Render(fmt.Sprintf("⭐ %d", s.tally))

	meterWidth := width - lipgloss.Width(left) - lipgloss.Width(right) - 8
	meter := ""
	if meterWidth >= 10 {
		meter = components.Meter{Done: s.answered(), Total: s.progress.Total, Width: meterWidth}.View()
	}

	line := left + "  " + meter
	if pad := width - lipgloss.Width(line) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	line += right

	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
	return line + "\n" + rule
}

func (s *QuestScreen) stageLabel() string {
	switch s.progress.Stage {
	case tutor.StageLearning:
		return "Learning"
	case tutor.StageQuiz:
		return fmt.Sprintf("Question %d of %d", s.progress.Presented, s.progress.Total)
	case tutor.StageReward:
		return "Quest complete!"
	default:
		return "Starting"
	}
}

func (s *QuestScreen) stageColor() color.Color {
	switch s.progress.Stage {
	case tutor.StageQuiz:
		return theme.StageQuiz
	case tutor.StageReward:
		return theme.StageReward
	default:
		return theme.StageLearning
	}
}

// answered counts items already judged.
func (s *QuestScreen) answered() int {
	if s.progress.Stage == tutor.StageReward {
		return s.progress.Total
	}
	return max(s.progress.Presented-1, 0)
}

// renderChat draws the conversation and keeps the newest lines that fit.
func (s *QuestScreen) renderChat(width, height int) string {
	if height < 1 {
		return ""
	}
	bubbleWidth := min(width-8, 72)

	var blocks []string
	for _, t := range s.turns {
		blocks = append(blocks, renderTurn(t, width, bubbleWidth))
	}
	if s.echo != "" {
		blocks = append(blocks, renderTurn(tutor.UserTurn(s.echo), width, bubbleWidth))
	}
	if s.pending {
		blocks = append(blocks, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("  Pal is thinking "+s.spinner()))
	}

	lines := strings.Split(strings.Join(blocks, "\n"), "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

func renderTurn(t tutor.Turn, width, bubbleWidth int) string {
	if t.Role == tutor.RoleUser {
		bubble := theme.ChildBubble.Width(min(lipgloss.Width(t.Content)+4, bubbleWidth)).Render(t.Content)
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right, bubble)
	}

	body := t.Content
	if t.QuizQuestion != "" {
		body += "\n\n" + theme.Question.Render(t.QuizQuestion)
	}
	if t.StarsEarned > 0 {
		body += "  " + strings.Repeat("⭐", t.StarsEarned)
	}
	return "  " + theme.TutorBubble.Width(bubbleWidth).Render(body)
}

func (s *QuestScreen) renderInput(width int) string {
	switch {
	case s.pending:
		return theme.Dim.Render("  Waiting for Pal...")
	case s.done:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Star).
			Bold(true).
			Render("Press Enter to see your stars!")
	case s.choiceActive():
		return lipgloss.NewStyle().PaddingLeft(2).Render(s.choice.View())
	case s.progress.Stage == tutor.StageLearning:
		hint := "Ready? Press Enter to start the quiz. "
		s.input.SetWidth(width - lipgloss.Width(hint) - 2)
		return "  " + theme.Dim.Render(hint) + s.input.View()
	default:
		s.input.SetWidth(width - 2)
		return "  " + s.input.View()
	}
}

func (s *QuestScreen) spinner() string {
	return spinnerFrames[s.frame%len(spinnerFrames)]
}

func renderError(width, height int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Error).
		Render("Oh no! " + msg + "\n\nPress Esc to go back.")
}
