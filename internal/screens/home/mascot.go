package home

import (
	"image/color"

	"github.com/abhisek/homeworkpal/internal/ui/theme"
)

// mascot is Pal as drawn on the home screen, with what Pal says.
type mascot struct {
	art   string
	color color.Color
	line  string
}

var (
	palWaiting = mascot{
		art: `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ abc │
└─────┘`,
		color: theme.Primary,
		line:  "Pick a quest and let's go!",
	}

	palExcited = mascot{
		art: `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ abc │
└─────┘`,
		color: theme.Accent,
		line:  "New quests are waiting!",
	}

	palCelebrating = mascot{
		art: `┌─────┐
│ ★ ★ │
│  ▿  │
│ abc │
└─╥═╥─┘
  ╚═╝`,
		color: theme.Star,
		line:  "You finished every quest!",
	}

	palLonely = mascot{
		art: `┌─────┐
│ ◡ ◡ │
│  ~  │
│ abc │
└─────┘`,
		color: theme.TextDim,
		line:  "No quests yet...",
	}
)

func mascotFor(c questCounts) mascot {
	switch {
	case c.total == 0:
		return palLonely
	case c.completed == c.total:
		return palCelebrating
	case c.fresh > 0:
		return palExcited
	default:
		return palWaiting
	}
}
