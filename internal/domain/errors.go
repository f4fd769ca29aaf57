package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCycleDetected signals a folder that contains itself.
	ErrCycleDetected = errors.New("folder cycle detected")
	// ErrDuplicateID signals two entities sharing one id within a record set.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrMaxDepthExceeded signals a folder tree deeper than the configured limit.
	ErrMaxDepthExceeded = errors.New("max folder depth exceeded")
	// ErrInvalidRecord signals a record that fails validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEngineClosed signals use of a closed engine.
	ErrEngineClosed = errors.New("engine closed")
)

// CycleError wraps ErrCycleDetected with the folder path that closes the cycle.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycleDetected.Error(), strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// NewCycleError creates a cycle error for the given id path.
func NewCycleError(path []string) error {
	p := make([]string, len(path))
	copy(p, path)
	return &CycleError{Path: p}
}
