package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/homeworkpal/internal/ui/components"
	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

const titleBanner = ` _  _                                   _     ___      _
| || |___ _ __  _____ __ _____ _ _| |__ | _ \__ _| |
| __ / _ \ '  \/ -_) V  V / _ \ '_| / / |  _/ _' | |
|_||_\___/_|_|_\___|\_/\_/\___/_| |_\_\ |_| \__,_|_|`

const titleCompact = "H O M E W O R K · P A L"

func renderTitle(pw int, compact bool) string {
	title := titleBanner
	if compact || lipgloss.Width(titleBanner) > pw {
		title = titleCompact
	}
	return lipgloss.PlaceHorizontal(pw, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Star).Bold(true).Render(title))
}

// renderStatsBar shows done/new/stars counts in one line.
func renderStatsBar(c questCounts, pw int, compact bool) string {
	done := fmt.Sprintf("✓ %d/%d DONE", c.completed, c.total)
	fresh := fmt.Sprintf("● %d NEW", c.fresh)
	stars := fmt.Sprintf("⭐ %d EARNED", c.stars)
	sep := "  "
	if compact {
		done = fmt.Sprintf("✓%d/%d", c.completed, c.total)
		fresh = fmt.Sprintf("●%d", c.fresh)
		stars = fmt.Sprintf("⭐%d", c.stars)
		sep = " "
	}

	bold := lipgloss.NewStyle().Bold(true)
	line := strings.Join([]string{
		bold.Foreground(theme.Star).Render(done),
		bold.Foreground(theme.Fresh).Render(fresh),
		bold.Foreground(theme.Accent).Render(stars),
	}, sep)
	return components.Panel(lipgloss.PlaceHorizontal(pw-4, lipgloss.Center, line), pw, theme.Fresh)
}

// renderQuestMenu draws the rows of m that fit in rows lines.
func renderQuestMenu(m components.Menu, pw, rows int) string {
	selected := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Star).Bold(true)
	plain := lipgloss.NewStyle().Foreground(theme.Text)

	start, end := m.Window(rows)
	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, theme.Dim.Render("   ▲ more"))
	}
	for i := start; i < end; i++ {
		label := truncate(m.Items[i].Label, pw-8)
		if i == m.Selected {
			lines = append(lines, selected.Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, plain.Render("   "+label))
		}
	}
	if end < len(m.Items) {
		lines = append(lines, theme.Dim.Render("   ▼ more"))
	}
	return components.Panel(strings.Join(lines, "\n"), pw, theme.Border)
}

func renderEmpty(pw int, readOnly bool) string {
	msg := "No quests yet!\nAsk a grown-up to create one with:\n\nhomeworkpal quest create"
	if readOnly {
		msg = "No quests yet!"
	}
	return theme.Dim.Width(pw).Align(lipgloss.Center).Render(msg)
}

func renderMascot(m mascot, pw int) string {
	art := lipgloss.NewStyle().Foreground(m.color).Render(m.art)
	line := lipgloss.NewStyle().Foreground(m.color).Italic(true).Render("“" + m.line + "”")
	return lipgloss.PlaceHorizontal(pw, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, art, "  ", line))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
