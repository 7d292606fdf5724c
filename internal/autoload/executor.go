package autoload

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Result captures the outcome of one isolated action invocation.
type Result struct {
	// Success is true when the action returned nil and did not panic.
	Success bool

	// Error is the action's returned error, if any.
	Error error

	// Panicked is true when the action panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked.
	PanicValue any

	// Stack is the stack trace captured at panic time.
	Stack string

	// Duration is how long the action ran.
	Duration time.Duration
}

// executor invokes rule actions with panic recovery. One misbehaving
// action must not take down dispatch for the remaining rules.
type executor struct{}

// invoke runs action with the enable flag and returns the outcome.
func (executor) invoke(action Action, flag int) (result Result) {
	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			result.Success = false
			result.Panicked = true
			result.PanicValue = r
			result.Stack = string(debug.Stack())
			result.Error = fmt.Errorf("%w: %v", ErrActionPanic, r)
		}
	}()

	if err := action.Enable(flag); err != nil {
		result.Success = false
		result.Error = err
		return result
	}

	result.Success = true
	return result
}
