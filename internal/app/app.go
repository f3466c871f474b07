// Package app is the child-facing terminal UI: a screen stack framed by a
// header with the star tally and a footer with key hints.
package app

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/homeworkpal/internal/router"
	"github.com/abhisek/homeworkpal/internal/screen"
	"github.com/abhisek/homeworkpal/internal/screens/home"
	"github.com/abhisek/homeworkpal/internal/screens/quest"
	"github.com/abhisek/homeworkpal/internal/ui/layout"
)

type Options struct {
	Quests   home.QuestSource
	Sessions quest.Starter
	Logger   *zap.Logger
}

var (
	rootHints = []layout.KeyHint{
		{Key: "↑↓", Description: "Choose a quest"},
		{Key: "Enter", Description: "Play"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	nestedHints = []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
)

type model struct {
	router        *router.Router
	width, height int
}

func newModel(opts Options) model {
	return model{router: router.New(home.New(opts.Quests, opts.Sessions))}
}

func (m model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() == 1 {
				return m, nil
			}
			return m, m.router.Pop()
		}
	}
	return m, m.router.Update(msg)
}

func (m model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	switch {
	case m.width == 0 || m.height == 0:
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
	default:
		v.SetContent(m.frame())
	}
	return v
}

func (m model) frame() string {
	active := m.router.Active()
	stars := -1
	if tp, ok := active.(screen.TallyProvider); ok {
		stars = tp.Tally()
	}

	header := layout.RenderHeader(active.Title(), stars, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)
	body := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, body), footer, m.width, m.height)
}

func (m model) hints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if h := kp.KeyHints(); len(h) > 0 {
			return h
		}
	}
	if m.router.Depth() > 1 {
		return nestedHints
	}
	return rootHints
}

// Run blocks until the child quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	_, err := tea.NewProgram(newModel(opts), tea.WithContext(ctx)).Run()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return nil
	default:
		logger.Error("terminal ui stopped", zap.Error(err))
		return err
	}
}
