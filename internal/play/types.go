// Package play drives one child's attempt at a quest: it collects input,
// asks the tutor for the next turn, keeps the star tally and records the
// conversation.
package play

import (
	"context"
	"errors"
	"io"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/questgen"
	"github.com/abhisek/homeworkpal/internal/tutor"
)

var (
	// ErrBusy is returned when a turn is submitted while another is pending.
	ErrBusy = errors.New("a turn is already in progress")

	// ErrStale is returned when a response arrives after the driver moved on.
	ErrStale = errors.New("response superseded by a newer request")

	// ErrEmptyInput is returned for an empty answer during the quiz.
	ErrEmptyInput = errors.New("please type or say an answer")

	// ErrVoiceUnavailable is returned by SubmitVoice without a transcriber.
	ErrVoiceUnavailable = errors.New("voice input is not available")

	// ErrSessionNotFound is returned by Resume for an unknown session id.
	ErrSessionNotFound = errors.New("session not found")
)

// Responder produces the next tutor turn.
type Responder interface {
	Respond(ctx context.Context, req tutor.Request) (tutor.Result, error)
}

// Assignments is the part of the assignment store the driver needs.
type Assignments interface {
	Get(ctx context.Context, id string) (assignment.Assignment, error)
	SetStatus(ctx context.Context, id string, status assignment.Status) error
}

// Storyteller writes the quest intro.
type Storyteller interface {
	Tell(ctx context.Context, title, description string) questgen.Story
}

// Voice narrates turns and transcribes spoken answers.
type Voice interface {
	AudioDataURI(ctx context.Context, text string) string
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Input is one submission from the child. Choice, when set, is the
// 1-based option number picked from a multiple-choice item and wins over
// Text.
type Input struct {
	Text   string
	Choice int
}

// Reply is what the child sees after a submission.
type Reply struct {
	Turn tutor.Turn `json:"turn"`

	// Audio is a data URI of the narrated turn, or empty.
	Audio string `json:"audio,omitempty"`

	Progress tutor.Progress `json:"progress"`

	// Tally is the running sum of per-turn star credits.
	Tally int  `json:"tally"`
	Done  bool `json:"done"`
}

// Summary describes a session for the completion screen.
type Summary struct {
	Title           string `json:"title"`
	Correct         int    `json:"correct"`
	Total           int    `json:"total"`
	Tally           int    `json:"tally"`
	CompletionStars int    `json:"completionStars"`
	Done            bool   `json:"done"`
}
