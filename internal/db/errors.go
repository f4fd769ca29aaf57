package db

import "errors"

// Sentinel errors for backend operations.
var (
	ErrMatcherClosed = errors.New("db: matcher closed")
)

// Op constants name backend operations for error context.
const (
	OpBuild = "BUILD"
	OpMatch = "MATCH"
	OpClose = "CLOSE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Backend string
	Op      string
	Err     error
}

func (e *Error) Error() string { return e.Backend + " " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Wrap annotates err with backend and op. Returns nil for a nil err.
func Wrap(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Backend: backend, Op: op, Err: err}
}
