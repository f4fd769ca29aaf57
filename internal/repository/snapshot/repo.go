// Package snapshot holds the live record generation and its backends.
// One writer replaces generations; any number of readers query the current one.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain"
	"github.com/kailas-cloud/foldex/internal/domain/record"
)

// Compile-time check: Generation implements db.Generation.
var _ db.Generation = (*Generation)(nil)

// Generation is one immutable, fully built record set.
type Generation struct {
	id        uint64
	records   []record.Record
	positions map[string]int
	prefix    db.Matcher
	fuzzy     db.Matcher
}

// ID returns the generation number. Zero is the initial empty generation.
func (g *Generation) ID() uint64 { return g.id }

// Records returns the records in insertion order. Callers must not modify the slice.
func (g *Generation) Records() []record.Record { return g.records }

// Len returns the record count.
func (g *Generation) Len() int { return len(g.records) }

// Position returns the insertion position of id.
func (g *Generation) Position(id string) (int, bool) {
	p, ok := g.positions[id]
	return p, ok
}

// Prefix returns the token/prefix backend.
func (g *Generation) Prefix() db.Matcher { return g.prefix }

// Fuzzy returns the approximate backend.
func (g *Generation) Fuzzy() db.Matcher { return g.fuzzy }

func (g *Generation) close() error {
	return errors.Join(g.prefix.Close(), g.fuzzy.Close())
}

// Builders constructs the backends of each generation.
type Builders struct {
	Prefix db.MatcherBuilder
	Fuzzy  db.MatcherBuilder
}

// Repo implements the generation store used by the index, search and suggest usecases.
type Repo struct {
	builders Builders
	logger   *zap.Logger

	// writeMu serializes Replace so generation ids follow build order.
	writeMu sync.Mutex

	mu     sync.RWMutex
	cur    *Generation
	closed bool
}

// New creates a store holding an empty generation. A nil logger discards output.
func New(b Builders, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{builders: b, logger: logger, cur: emptyGeneration(0)}
}

func emptyGeneration(id uint64) *Generation {
	return &Generation{id: id, positions: map[string]int{}, prefix: db.Empty{}, fuzzy: db.Empty{}}
}

// Replace builds a new generation from records and makes it current.
// Backends are built before the swap, so readers never see a half-built generation.
// On error the current generation is untouched. Records must have unique ids.
func (r *Repo) Replace(ctx context.Context, records []record.Record) (db.Generation, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if r.isClosed() {
		return nil, domain.ErrEngineClosed
	}

	next, err := r.build(ctx, records)
	if err != nil {
		return nil, err
	}
	r.swap(next)
	return next, nil
}

// Reset makes an empty generation current.
func (r *Repo) Reset(_ context.Context) (db.Generation, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if r.isClosed() {
		return nil, domain.ErrEngineClosed
	}
	next := emptyGeneration(r.current().id + 1)
	r.swap(next)
	return next, nil
}

// View runs fn against the current generation under a read lock.
func (r *Repo) View(ctx context.Context, fn func(ctx context.Context, g db.Generation) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return domain.ErrEngineClosed
	}
	return fn(ctx, r.cur)
}

// Current returns the current generation without holding the lock.
// Its backends may be closed by a concurrent Replace; use View to query them.
func (r *Repo) Current() db.Generation {
	return r.current()
}

func (r *Repo) current() *Generation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cur
}

// Close releases the current generation. Later calls fail with domain.ErrEngineClosed.
func (r *Repo) Close() error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.cur.close()
}

func (r *Repo) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

func (r *Repo) build(ctx context.Context, records []record.Record) (*Generation, error) {
	positions := make(map[string]int, len(records))
	for i := range records {
		id := records[i].ID()
		if _, dup := positions[id]; dup {
			return nil, fmt.Errorf("record %q: %w", id, domain.ErrDuplicateID)
		}
		positions[id] = i
	}

	owned := make([]record.Record, len(records))
	copy(owned, records)

	prefix, err := r.builders.Prefix(ctx, owned)
	if err != nil {
		return nil, fmt.Errorf("build prefix backend: %w", err)
	}
	fuzzy, err := r.builders.Fuzzy(ctx, owned)
	if err != nil {
		_ = prefix.Close()
		return nil, fmt.Errorf("build fuzzy backend: %w", err)
	}

	return &Generation{
		id:        r.current().id + 1,
		records:   owned,
		positions: positions,
		prefix:    prefix,
		fuzzy:     fuzzy,
	}, nil
}

// swap installs next and closes the previous generation once no reader holds it.
// A failed close is logged; next is live either way.
func (r *Repo) swap(next *Generation) {
	r.mu.Lock()
	prev := r.cur
	r.cur = next
	r.mu.Unlock()

	if err := prev.close(); err != nil {
		r.logger.Warn("failed to close previous generation",
			zap.Uint64("generation", prev.id),
			zap.Uint64("current", next.id),
			zap.Error(err),
		)
	}
}
