package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

// PanelWidth is the inner width shared by every panel inside the cabinet,
// so stacked panels line up.
func PanelWidth(frameWidth int) int {
	// cabinet border (2) and padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// Cabinet draws the double-border arcade frame and centres content in it.
func Cabinet(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel is a rounded box pw cells wide with the given border colour.
func Panel(content string, pw int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(pw-2).
		Padding(0, 1).
		Render(content)
}
