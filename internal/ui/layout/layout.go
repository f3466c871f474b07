// Package layout draws the chrome around every screen: the header with the
// star tally, the footer with key hints and the too-small fallback.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool   { return width < compactWidth }
func IsCompactHeight(height int) bool { return height < compactHeight }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf(
			"Pal needs a bigger window!\n\nPlease make it at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader shows the app name, the screen title centred and the star
// tally on the right. A negative stars value hides the tally.
func RenderHeader(title string, stars, width int) string {
	inner := max(width-4, 0)

	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Homework Pal")
	tally := ""
	if stars >= 0 {
		tally = lipgloss.NewStyle().Foreground(theme.Star).Bold(true).Render(fmt.Sprintf("⭐ %d  ", stars))
	}

	line := spread(brand, lipgloss.NewStyle().Foreground(theme.Text).Render(title), tally, inner)
	return bar.Width(width).Render(line)
}

// spread puts left and right at the edges and title in the middle of the
// whole width. When the title would collide with either side it is placed
// just after left instead.
func spread(left, title, right string, width int) string {
	lw, tw, rw := lipgloss.Width(left), lipgloss.Width(title), lipgloss.Width(right)
	start := (width - tw) / 2
	if start <= lw || start+tw >= width-rw {
		gap := max(width-lw-tw-rw-1, 1)
		return left + " " + title + strings.Repeat(" ", gap) + right
	}
	return left + strings.Repeat(" ", start-lw) + title + strings.Repeat(" ", width-start-tw-rw) + right
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Star).Bold(true)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + theme.Dim.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, theme.Dim.Render("  ·  ")))
}

// RenderFrame stacks header, content and footer, padding the content so
// the footer sits on the last rows.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}
