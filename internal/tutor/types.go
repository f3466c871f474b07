package tutor

import "github.com/abhisek/homeworkpal/internal/quest"

// Stage is the coarse phase of a quest attempt.
type Stage string

const (
	StageLearning Stage = "LEARNING"
	StageQuiz     Stage = "QUIZ"
	StageReward   Stage = "REWARD"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message in a session's conversation. Model turns carry the
// stage they were produced in and, when they present a quiz item, the
// item's prompt and options.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	Stage        Stage    `json:"stage,omitempty"`
	QuizQuestion string   `json:"quizQuestion,omitempty"`
	QuizOptions  []string `json:"quizOptions,omitempty"`

	// StarsEarned is the credit awarded by this turn: 1 when it
	// acknowledges a correct answer, otherwise 0.
	StarsEarned int `json:"starsEarned,omitempty"`

	// Set on the reward turn only.
	TotalCorrect    int `json:"totalCorrect,omitempty"`
	TotalQuestions  int `json:"totalQuestions,omitempty"`
	CompletionStars int `json:"completionStars,omitempty"`
}

// UserTurn returns a user turn with the given text.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Content: text}
}

// PresentsItem reports whether the turn introduces a quiz item.
func (t Turn) PresentsItem() bool {
	return t.Role == RoleModel && t.QuizQuestion != ""
}

// NarrationText is the text read aloud for a model turn.
func (t Turn) NarrationText() string {
	if t.QuizQuestion == "" {
		return t.Content
	}
	return t.Content + " " + t.QuizQuestion
}

// Progress is the explicit session state. The zero value is a session that
// has not produced its first assistant turn.
type Progress struct {
	Stage Stage `json:"stage"`

	// Presented counts quiz items shown so far; it is also the index of
	// the next item to present.
	Presented int `json:"presented"`

	Correct     int `json:"correct"`
	StarsEarned int `json:"starsEarned"`
	Total       int `json:"total"`
}

// Started reports whether the learning turn has been produced.
func (p Progress) Started() bool { return p.Stage != "" }

// Done reports whether the session has reached REWARD.
func (p Progress) Done() bool { return p.Stage == StageReward }

// Request is the input for one tutoring step.
type Request struct {
	Content *quest.Content

	// Stars is the assignment's configured completion reward.
	Stars int

	Progress Progress

	// Input is the latest user turn's text. Ignored for the first turn.
	Input string

	// History is the conversation so far, excluding Input. Strategies may
	// use it for context; the engine never derives state from it.
	History []Turn

	// Intro is an optional story paragraph placed before the learning
	// material on the first turn.
	Intro string
}

// Result is the assistant turn and the progress after it.
type Result struct {
	Turn     Turn
	Progress Progress
}
