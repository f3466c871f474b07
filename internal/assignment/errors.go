package assignment

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrNotFound is returned for an unknown assignment id.
	ErrNotFound = errors.New("assignment not found")

	// ErrUnsupported is returned when the backend refuses writes.
	ErrUnsupported = errors.New("operation not supported by this deployment")
)

// ValidationError lists the invalid fields of a create request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid assignment: " + strings.Join(parts, "; ")
}

// PersistenceError wraps a failure to read or write the backend.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s assignments: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
