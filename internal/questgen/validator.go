package questgen

import (
	"fmt"

	"github.com/abhisek/homeworkpal/internal/quest"
)

// Validator checks a designed quest before it is returned.
type Validator interface {
	// Name is a short identifier used in error messages, e.g. "structural".
	Name() string

	// Validate returns nil if c passes.
	Validate(c *quest.Content) *ValidationError
}

// ValidationError describes why a design was rejected.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
