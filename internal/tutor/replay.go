package tutor

import (
	"fmt"

	"github.com/abhisek/homeworkpal/internal/quest"
)

// Replay rebuilds the progress of a stored conversation. Only model turns
// are consulted: the items they presented, the credit they awarded and
// the stage of the last one.
func Replay(c *quest.Content, history []Turn) (Progress, error) {
	if c == nil || c.Len() == 0 {
		return Progress{}, ErrNoContent
	}

	p := Progress{Total: c.Len()}
	for _, t := range history {
		if t.Role != RoleModel {
			continue
		}
		if t.Content == ApologyMessage && t.QuizQuestion == "" && t.StarsEarned == 0 {
			continue
		}
		// Credit is for an item presented by an earlier turn, one star at
		// most, and each item is credited at most once.
		switch {
		case t.StarsEarned < 0 || t.StarsEarned > 1:
			return Progress{}, fmt.Errorf("%w: turn awards %d stars", ErrInconsistentHistory, t.StarsEarned)
		case t.StarsEarned == 1:
			if p.Correct >= p.Presented {
				return Progress{}, fmt.Errorf("%w: credit with no answered item", ErrInconsistentHistory)
			}
			p.Correct++
			p.StarsEarned++
		}
		p.Stage = t.Stage
		if t.PresentsItem() {
			p.Presented++
		}
	}

	if p.Presented > p.Total || p.Correct > p.Presented {
		return Progress{}, fmt.Errorf("%w: %d presented, %d correct, %d items",
			ErrInconsistentHistory, p.Presented, p.Correct, p.Total)
	}
	if p.Stage == StageQuiz && p.Presented == 0 {
		return Progress{}, fmt.Errorf("%w: quiz stage without a presented item", ErrInconsistentHistory)
	}
	return p, nil
}
