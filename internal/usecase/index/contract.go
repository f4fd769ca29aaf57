package index

import (
	"context"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/record"
)

// Repository defines the generation store contract for indexing.
type Repository interface {
	Replace(ctx context.Context, records []record.Record) (db.Generation, error)
	Reset(ctx context.Context) (db.Generation, error)
	View(ctx context.Context, fn func(ctx context.Context, g db.Generation) error) error
}
