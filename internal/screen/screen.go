// Package screen defines what the router needs from a screen, plus the
// optional hooks a screen can implement.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/homeworkpal/internal/ui/layout"
)

type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the body only; the app draws header and footer.
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// TallyProvider puts a star count in the header.
type TallyProvider interface {
	Tally() int
}

// Refresher reloads data when the screen is uncovered by a pop.
type Refresher interface {
	Refresh() tea.Cmd
}

// Closer is told when the screen leaves the stack for good, so it can
// abandon work still in flight.
type Closer interface {
	Close()
}
