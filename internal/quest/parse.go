package quest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyQuiz is returned when the quiz section holds no items.
var ErrEmptyQuiz = errors.New("quiz section is empty")

// ParseError reports quest content that cannot be turned into a quiz.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse quest content: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	// "3. What is 10 - 2?": numbered question or numbered memorization line.
	questionLine = regexp.MustCompile(`^\d+\.\s+(.*)$`)

	// "2) Jupiter*", "b) Mars", "B. Mars": a labeled option.
	optionLine = regexp.MustCompile(`^(?:\d+\)|[A-Da-d][).])\s+(.*)$`)
)

// Parse splits a raw description into learning material and quiz items.
//
// Text without a quiz marker is parsed in degraded mode: the whole text
// is the quiz source and the learning material is empty. A quiz is
// multiple-choice when any option carries the correct sentinel; otherwise
// every non-empty line becomes a memorization item.
func Parse(raw string) (*Content, error) {
	learning, quiz := splitSections(raw)

	lines := nonEmptyLines(quiz)
	if len(lines) == 0 {
		return nil, &ParseError{Err: ErrEmptyQuiz}
	}

	c := &Content{Learning: learning}
	if hasMarkedOption(lines) {
		c.Kind = KindMultipleChoice
		c.Items = parseMultipleChoice(lines)
	} else {
		c.Kind = KindMemorization
		c.Items = parseMemorization(lines)
	}

	if len(c.Items) == 0 {
		return nil, &ParseError{Err: ErrEmptyQuiz}
	}
	return c, nil
}

// LearningPreview returns the learning section of raw, or "" when the
// text carries no learning marker. Used for dashboard listings where a
// full parse is unnecessary.
func LearningPreview(raw string) string {
	i := strings.Index(raw, LearningMarker)
	if i < 0 {
		return ""
	}
	rest := raw[i+len(LearningMarker):]
	if j := strings.Index(rest, QuizMarker); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

func splitSections(raw string) (learning, quiz string) {
	qi := strings.Index(raw, QuizMarker)
	if qi < 0 {
		return "", strings.Replace(raw, LearningMarker, "", 1)
	}

	quiz = raw[qi+len(QuizMarker):]
	head := raw[:qi]
	if li := strings.Index(head, LearningMarker); li >= 0 {
		head = head[li+len(LearningMarker):]
	}
	return strings.TrimSpace(head), quiz
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func hasMarkedOption(lines []string) bool {
	for _, l := range lines {
		if m := optionLine.FindStringSubmatch(l); m != nil {
			if strings.HasSuffix(strings.TrimSpace(m[1]), CorrectSentinel) {
				return true
			}
		}
	}
	return false
}

func parseMultipleChoice(lines []string) []Item {
	var items []Item
	var cur *Item

	flush := func() {
		if cur != nil {
			items = append(items, *cur)
			cur = nil
		}
	}

	for _, l := range lines {
		if m := optionLine.FindStringSubmatch(l); m != nil && cur != nil {
			text := strings.TrimSpace(m[1])
			if strings.HasSuffix(text, CorrectSentinel) {
				text = strings.TrimSpace(strings.TrimSuffix(text, CorrectSentinel))
				if cur.Correct < 0 {
					cur.Correct = len(cur.Options)
				}
			}
			cur.Options = append(cur.Options, text)
			continue
		}

		if m := questionLine.FindStringSubmatch(l); m != nil {
			flush()
			cur = &Item{Prompt: strings.TrimSpace(m[1]), Correct: -1}
			continue
		}

		// Unnumbered text: a continuation of the current prompt, or a
		// question of its own when no question is open yet.
		switch {
		case cur == nil:
			cur = &Item{Prompt: l, Correct: -1}
		case len(cur.Options) == 0:
			cur.Prompt += " " + l
		default:
			flush()
			cur = &Item{Prompt: l, Correct: -1}
		}
	}
	flush()
	return items
}

func parseMemorization(lines []string) []Item {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		if m := questionLine.FindStringSubmatch(l); m != nil {
			l = strings.TrimSpace(m[1])
		}
		if l == "" {
			continue
		}
		items = append(items, Item{Prompt: l, Correct: -1})
	}
	return items
}
