package questgen

import (
	"fmt"

	"github.com/abhisek/homeworkpal/internal/quest"
)

// StructuralValidator checks item counts, option counts and answer keys.
type StructuralValidator struct {
	MinItems int
	MaxItems int
}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *quest.Content) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	n := c.Len()
	if n < v.MinItems || (v.MaxItems > 0 && n > v.MaxItems) {
		return fail("quiz has %d items, want %d-%d", n, v.MinItems, v.MaxItems)
	}
	if c.Kind == quest.KindMultipleChoice && c.Learning == "" {
		return fail("learning material is empty")
	}
	for i, it := range c.Items {
		if len(it.Prompt) > 300 {
			return fail("item %d exceeds 300 characters", i+1)
		}
		if c.Kind != quest.KindMultipleChoice {
			continue
		}
		if len(it.Options) < 2 || len(it.Options) > 4 {
			return fail("item %d has %d options, want 2-4", i+1, len(it.Options))
		}
		if it.Correct < 0 {
			return fail("item %d has no marked answer", i+1)
		}
	}
	return nil
}
