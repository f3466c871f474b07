package tutor

import (
	"errors"
	"fmt"
)

// ApologyMessage replaces the assistant turn when the next turn cannot be
// produced. The session stays where it was so the child can try again.
const ApologyMessage = "Oops! I had a little trouble thinking. Could you please ask your question again?"

var (
	// ErrQuestComplete is returned for input after the REWARD turn.
	ErrQuestComplete = errors.New("quest already complete")

	// ErrEmptyTurn is returned for an empty answer during the quiz.
	ErrEmptyTurn = errors.New("empty answer")

	// ErrNoContent is returned when a request carries no quest content.
	ErrNoContent = errors.New("no quest content")

	// ErrInconsistentHistory is returned by Replay when the annotated
	// conversation does not fit the quest.
	ErrInconsistentHistory = errors.New("conversation does not match quest")
)

// GenerationError wraps a failure of the tutoring capability.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("tutor generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
