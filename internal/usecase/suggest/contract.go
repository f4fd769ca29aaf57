package suggest

import (
	"context"

	"github.com/kailas-cloud/foldex/internal/db"
)

// Repository defines the generation store contract for suggestions.
type Repository interface {
	View(ctx context.Context, fn func(ctx context.Context, g db.Generation) error) error
}
