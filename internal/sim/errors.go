package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGenerations indicates a run configured with no generations.
	ErrInvalidGenerations = errors.New("sim: generations must be positive")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("sim: run canceled by context")
)

// RunError wraps an error with the generation at which the run stopped.
type RunError struct {
	Generation int
	Wrapped    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("generation %d: %v", e.Generation, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
