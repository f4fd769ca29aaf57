// Package bleve implements the prefix/token backend on an in-memory bleve index.
package bleve

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	blevelib "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	unitok "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/record"
)

// backendName labels errors raised by this package.
const backendName = "bleve"

// analyzerName is the index and query analyzer: unicode word segmentation + lowercase.
// No stop-word filter, so short words stay searchable.
const analyzerName = "foldex_words"

// Compile-time check: Index implements db.Matcher.
var _ db.Matcher = (*Index)(nil)

// document is the indexed shape of a record.
type document struct {
	Name        string   `json:"name"`
	Body        string   `json:"body"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// Index is an in-memory bleve index over one record generation.
// Documents are keyed by their position in the record slice.
type Index struct {
	idx     blevelib.Index
	mapping *mapping.IndexMappingImpl
	size    int
	closed  atomic.Bool
}

// Build is a db.MatcherBuilder backed by bleve.
// An empty record set yields db.Empty without allocating an index.
func Build(ctx context.Context, records []record.Record) (db.Matcher, error) {
	if len(records) == 0 {
		return db.Empty{}, nil
	}
	idx, err := New(ctx, records)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// New indexes records into a fresh in-memory index.
func New(ctx context.Context, records []record.Record) (*Index, error) {
	m, err := newMapping()
	if err != nil {
		return nil, db.Wrap(backendName, db.OpBuild, err)
	}

	idx, err := blevelib.NewMemOnly(m)
	if err != nil {
		return nil, db.Wrap(backendName, db.OpBuild, fmt.Errorf("create index: %w", err))
	}

	batch := idx.NewBatch()
	for i := range records {
		if err := ctx.Err(); err != nil {
			_ = idx.Close()
			return nil, db.Wrap(backendName, db.OpBuild, err)
		}
		if err := batch.Index(strconv.Itoa(i), toDocument(&records[i])); err != nil {
			_ = idx.Close()
			return nil, db.Wrap(backendName, db.OpBuild, fmt.Errorf("index record %q: %w", records[i].ID(), err))
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, db.Wrap(backendName, db.OpBuild, fmt.Errorf("commit batch: %w", err))
	}

	return &Index{idx: idx, mapping: m, size: len(records)}, nil
}

// Close releases the index.
func (i *Index) Close() error {
	if !i.closed.CompareAndSwap(false, true) {
		return nil
	}
	return db.Wrap(backendName, db.OpClose, i.idx.Close())
}

func newMapping() (*mapping.IndexMappingImpl, error) {
	m := blevelib.NewIndexMapping()
	err := m.AddCustomAnalyzer(analyzerName, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unitok.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("register analyzer: %w", err)
	}
	m.DefaultAnalyzer = analyzerName
	return m, nil
}

func toDocument(r *record.Record) document {
	return document{
		Name:        r.DisplayName(),
		Body:        r.Body(),
		Description: r.Description(),
		Category:    r.Category(),
		Tags:        r.Tags(),
	}
}
