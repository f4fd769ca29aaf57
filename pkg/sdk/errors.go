package foldex

import "github.com/kailas-cloud/foldex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrCycleDetected    = domain.ErrCycleDetected
	ErrDuplicateID      = domain.ErrDuplicateID
	ErrMaxDepthExceeded = domain.ErrMaxDepthExceeded
	ErrInvalidRecord    = domain.ErrInvalidRecord
	ErrInvalidQuery     = domain.ErrInvalidQuery
	ErrClosed           = domain.ErrEngineClosed
)

// CycleError carries the folder id path that closes a cycle. Use errors.As() to extract it.
type CycleError = domain.CycleError
