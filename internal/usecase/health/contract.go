package health

import (
	"context"

	"github.com/kailas-cloud/foldex/internal/db"
)

// Repository exposes the live generation for probing.
type Repository interface {
	View(ctx context.Context, fn func(ctx context.Context, g db.Generation) error) error
}
