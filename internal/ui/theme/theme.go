// Package theme holds the colours and shared styles of the terminal UI.
package theme

import "charm.land/lipgloss/v2"

// Base palette: bright accents on deep navy.
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple, Pal's colour
	Secondary = lipgloss.Color("#14B8A6") // teal, the child's colour
	Accent    = lipgloss.Color("#F97316")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Game colours.
var (
	// Star marks anything worth stars: tallies, rewards, the selected quest.
	Star = lipgloss.Color("#FACC15")
	// Fresh marks quests nobody has started.
	Fresh = lipgloss.Color("#22D3EE")
)

// Stage colours for the quest info line.
var (
	StageLearning = Secondary
	StageQuiz     = Primary
	StageReward   = Star
)

var (
	TutorBubble = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	ChildBubble = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	Question = lipgloss.NewStyle().
			Foreground(Star).
			Bold(true)

	Dim = lipgloss.NewStyle().Foreground(TextDim)

	Button = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Star).
		Bold(true).
		Padding(0, 2)

	ButtonIdle = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
