package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/router"
	"github.com/abhisek/homeworkpal/internal/screen"
	questscreen "github.com/abhisek/homeworkpal/internal/screens/quest"
	"github.com/abhisek/homeworkpal/internal/ui/components"
	"github.com/abhisek/homeworkpal/internal/ui/layout"
	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

// QuestSource lists the quests shown on the home screen.
type QuestSource interface {
	List(ctx context.Context) ([]assignment.Assignment, error)
	ReadOnly() bool
}

type questsLoadedMsg struct {
	quests   []assignment.Assignment
	readOnly bool
	err      error
}

type questCounts struct {
	total, completed, fresh, stars int
}

// HomeScreen lists the quests and opens the selected one.
type HomeScreen struct {
	source   QuestSource
	sessions questscreen.Starter

	quests   []assignment.Assignment
	counts   questCounts
	menu     components.Menu
	readOnly bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.TallyProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(source QuestSource, sessions questscreen.Starter) *HomeScreen {
	return &HomeScreen{source: source, sessions: sessions}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Refresh reloads the quest list, so statuses changed by a finished quest
// show up on return.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	source := h.source
	return func() tea.Msg {
		quests, err := source.List(context.Background())
		return questsLoadedMsg{quests: quests, readOnly: source.ReadOnly(), err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Quests"
}

func (h *HomeScreen) Tally() int {
	return h.counts.stars
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Play"},
		{Key: "R", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questsLoadedMsg:
		h.apply(msg)
		return h, nil
	case tea.KeyMsg:
		if msg.String() == "r" {
			return h, h.load()
		}
	}

	if !h.loaded {
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) apply(msg questsLoadedMsg) {
	h.loaded = true
	h.readOnly = msg.readOnly
	if msg.err != nil {
		h.errMsg = fmt.Sprintf("Could not load quests: %v", msg.err)
		return
	}
	h.errMsg = ""
	h.quests = msg.quests
	h.counts = countQuests(msg.quests)

	items := make([]components.MenuItem, 0, len(msg.quests)+1)
	for _, a := range msg.quests {
		items = append(items, components.MenuItem{Label: questLabel(a), Action: h.open(a)})
	}
	items = append(items, components.MenuItem{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }})

	// Keep the cursor where it was across a reload.
	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	h.menu.Selected = min(selected, len(items)-1)
}

func (h *HomeScreen) open(a assignment.Assignment) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: questscreen.New(h.sessions, a)}
		}
	}
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)
	pw := components.PanelWidth(width)

	sections := []string{renderTitle(pw, compact)}
	switch {
	case !h.loaded:
		sections = append(sections, theme.Dim.Render("Loading quests..."))
	case h.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(pw).Render(h.errMsg))
	default:
		if !compact {
			sections = append(sections, renderMascot(mascotFor(h.counts), pw))
		}
		sections = append(sections, renderStatsBar(h.counts, pw, compact))
		if len(h.quests) == 0 {
			sections = append(sections, renderEmpty(pw, h.readOnly))
		}
		used := lipgloss.Height(strings.Join(sections, "\n\n"))
		rows := height - used - 8
		h.menu.Page = max(rows, 1)
		sections = append(sections, renderQuestMenu(h.menu, pw, rows))
	}

	return components.Cabinet(strings.Join(sections, "\n\n"), width, height)
}

func questLabel(a assignment.Assignment) string {
	icon := "●"
	switch a.Status {
	case assignment.StatusInProgress:
		icon = "◐"
	case assignment.StatusCompleted:
		icon = "✓"
	}
	return fmt.Sprintf("%s %s  ⭐%d", icon, a.Title, a.Stars)
}

func countQuests(quests []assignment.Assignment) questCounts {
	c := questCounts{total: len(quests)}
	for _, a := range quests {
		switch a.Status {
		case assignment.StatusCompleted:
			c.completed++
			c.stars += a.Stars
		case assignment.StatusNew:
			c.fresh++
		}
	}
	return c
}
