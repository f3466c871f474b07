package tutor

import (
	"context"
	"fmt"

	"github.com/abhisek/homeworkpal/internal/quest"
)

// JudgeInput describes one answer to judge.
type JudgeInput struct {
	Kind     quest.Kind
	Item     quest.Item
	Index    int // 0-based position of Item in the quiz
	Total    int
	Answer   string
	Learning string
	History  []Turn
}

// Judgement is a strategy's verdict on an answer.
type Judgement struct {
	Correct  bool
	Feedback string
}

// Strategy judges answers and phrases feedback. The stage machine itself
// belongs to the Engine; a Strategy never decides what comes next.
type Strategy interface {
	Judge(ctx context.Context, in JudgeInput) (Judgement, error)
}

var (
	praisePhrases = []string{
		"Correct! 🎉",
		"You got it! 👍",
		"Amazing! 🎉 You got it!",
		"Great job! ⭐",
	}
	retryChoicePhrases = []string{
		"Nice try! 👍 The answer was %s.",
		"Almost! The right answer was %s. You'll get the next one! 🚀",
	}
	retryLinePhrases = []string{
		"So close! 👍 The line goes like this: %s",
		"Good effort! Here's how that line goes: %s",
	}
)

// RulesStrategy judges answers with a quest.Matcher and picks canned
// feedback deterministically.
type RulesStrategy struct {
	matcher quest.Matcher
}

// NewRulesStrategy creates a rule-based strategy.
func NewRulesStrategy(m quest.Matcher) *RulesStrategy {
	return &RulesStrategy{matcher: m}
}

func (s *RulesStrategy) Judge(_ context.Context, in JudgeInput) (Judgement, error) {
	correct := s.matcher.Check(in.Item, in.Answer)
	return Judgement{Correct: correct, Feedback: cannedFeedback(in, correct)}, nil
}

func cannedFeedback(in JudgeInput, correct bool) string {
	if correct {
		return pick(praisePhrases, in.Index)
	}
	if in.Item.IsMultipleChoice() {
		if in.Item.Answer() == "" {
			return "Nice try! 👍 Let's keep going."
		}
		return fmt.Sprintf(pick(retryChoicePhrases, in.Index), in.Item.Answer())
	}
	return fmt.Sprintf(pick(retryLinePhrases, in.Index), in.Item.Prompt)
}

func pick(phrases []string, i int) string {
	if i < 0 {
		i = -i
	}
	return phrases[i%len(phrases)]
}
