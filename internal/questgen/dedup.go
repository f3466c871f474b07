package questgen

import (
	"strings"

	"github.com/abhisek/homeworkpal/internal/quest"
)

// DuplicateValidator rejects multiple-choice quizzes that ask the same
// question twice or offer the same option twice. Memorization lines may
// repeat, as refrains do.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(c *quest.Content) *ValidationError {
	if c.Kind != quest.KindMultipleChoice {
		return nil
	}
	seen := make(map[string]bool, c.Len())
	for _, it := range c.Items {
		key := normalize(it.Prompt)
		if seen[key] {
			return &ValidationError{Validator: v.Name(), Message: "repeated question: " + it.Prompt, Retryable: true}
		}
		seen[key] = true

		opts := make(map[string]bool, len(it.Options))
		for _, o := range it.Options {
			k := normalize(o)
			if opts[k] {
				return &ValidationError{Validator: v.Name(), Message: "repeated option in: " + it.Prompt, Retryable: true}
			}
			opts[k] = true
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
