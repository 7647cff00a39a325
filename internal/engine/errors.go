package engine

import "fmt"

// ValidationError indicates user input violated a precondition. The
// operation was rejected and no state changed.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EmptyPublishError is returned when publish is attempted with no
// accumulated sessions. No gateway calls are made.
type EmptyPublishError struct{}

func (EmptyPublishError) Error() string {
	return "nothing to publish: no sessions recorded in this work period"
}

// PersistenceError wraps a gateway failure. The engine never retries on
// its own and leaves the accumulator intact so a retry is safe.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }
