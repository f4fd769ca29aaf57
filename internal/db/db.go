package db

import (
	"context"

	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
)

// Matcher is a query backend built over one generation of records.
// Hit positions index into the record slice the Matcher was built from.
type Matcher interface {
	Match(ctx context.Context, query string) ([]result.Hit, error)
	Close() error
}

// MatcherBuilder builds a Matcher over records.
type MatcherBuilder func(ctx context.Context, records []record.Record) (Matcher, error)

// Empty is a Matcher with no records.
type Empty struct{}

// Match returns no hits.
func (Empty) Match(context.Context, string) ([]result.Hit, error) { return nil, nil }

// Close is a no-op.
func (Empty) Close() error { return nil }

// Generation is a read-only view of one built record set and its backends.
type Generation interface {
	ID() uint64
	Records() []record.Record
	Len() int
	Position(id string) (int, bool)
	Prefix() Matcher
	Fuzzy() Matcher
}
