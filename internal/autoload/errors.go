package autoload

import (
	"errors"
	"fmt"
)

// Sentinel errors for the autoload engine.
var (
	// ErrInvalidPattern is returned when a rule pattern does not compile.
	ErrInvalidPattern = errors.New("invalid rule pattern")

	// ErrActionPanic is returned when a rule action panics during dispatch.
	ErrActionPanic = errors.New("rule action panicked")
)

// PatternError reports a rule pattern that failed to compile at
// registration time. The registration is rejected and the table is left
// unchanged.
type PatternError struct {
	// Pattern is the pattern text that failed to compile.
	Pattern string

	// Err is the underlying regexp compilation error.
	Err error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("autoload: pattern %q does not compile: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match PatternError with ErrInvalidPattern.
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// ActionError reports a rule action that failed during dispatch. It is
// delivered to the diagnostic Reporter and never propagated to the
// dispatch caller.
type ActionError struct {
	// Index is the rule's position in the table at dispatch time.
	Index int

	// Pattern is the rule's pattern text.
	Pattern string

	// Path is the normalized path the rule matched.
	Path string

	// Err is the action's error, or an ErrActionPanic-wrapping error if
	// the action panicked.
	Err error

	// Stack holds the stack trace when the action panicked.
	Stack string
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	return fmt.Sprintf("autoload: rule %d (%q) failed on %q: %v", e.Index, e.Pattern, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ActionError) Unwrap() error {
	return e.Err
}
