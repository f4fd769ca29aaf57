// Package fuzzy implements the weighted approximate backend.
//
// Every record is scored field by field. A field's distance is 0 when it
// contains the query, otherwise the better of a word-window edit distance
// and a subsequence distance. Matching field distances are combined as a
// weighted geometric product, so a strong name match outweighs a weak body
// match.
package fuzzy

import (
	"context"
	"math"
	"strings"
	"sync/atomic"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
)

const backendName = "fuzzy"

// DefaultThreshold is the permissive per-field distance cutoff.
const DefaultThreshold = 0.6

// Field weights.
const (
	WeightName        = 0.4
	WeightBody        = 0.3
	WeightDescription = 0.2
	WeightTags        = 0.1
)

// epsilon keeps exact matches from collapsing the product to zero.
const epsilon = 0.001

// maxWindowWords bounds the edit-distance scan over long bodies.
const maxWindowWords = 256

// Compile-time check: Index implements db.Matcher.
var _ db.Matcher = (*Index)(nil)

// Config tunes the matcher.
type Config struct {
	// Threshold is the max field distance in [0,1] that still counts as a match.
	// Zero selects DefaultThreshold.
	Threshold float64
}

func (c Config) threshold() float64 {
	if c.Threshold <= 0 || c.Threshold > 1 {
		return DefaultThreshold
	}
	return c.Threshold
}

type field struct {
	weight float64
	text   string // lowercased
}

type entry struct {
	fields []field
}

// Index holds the lowercased searchable fields of one record generation.
type Index struct {
	entries   []entry
	threshold float64
	closed    atomic.Bool
}

// NewBuilder returns a db.MatcherBuilder producing fuzzy indexes with cfg.
func NewBuilder(cfg Config) db.MatcherBuilder {
	return func(ctx context.Context, records []record.Record) (db.Matcher, error) {
		if len(records) == 0 {
			return db.Empty{}, nil
		}
		idx, err := New(ctx, records, cfg)
		if err != nil {
			return nil, err
		}
		return idx, nil
	}
}

// New prepares records for matching.
func New(ctx context.Context, records []record.Record, cfg Config) (*Index, error) {
	entries := make([]entry, len(records))
	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, db.Wrap(backendName, db.OpBuild, err)
		}
		r := &records[i]
		entries[i] = entry{fields: []field{
			{weight: WeightName, text: strings.ToLower(r.DisplayName())},
			{weight: WeightBody, text: strings.ToLower(r.Body())},
			{weight: WeightDescription, text: strings.ToLower(r.Description())},
			{weight: WeightTags, text: strings.ToLower(strings.Join(r.Tags(), " "))},
		}}
	}
	return &Index{entries: entries, threshold: cfg.threshold()}, nil
}

// Close marks the index unusable.
func (i *Index) Close() error {
	i.closed.Store(true)
	return nil
}

// Match scores every record against q. Hits are ordered by position with scores in [0,100].
func (i *Index) Match(ctx context.Context, q string) ([]result.Hit, error) {
	if i.closed.Load() {
		return nil, db.Wrap(backendName, db.OpMatch, db.ErrMatcherClosed)
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil, nil
	}
	qWords := splitWords(q)

	var hits []result.Hit
	for pos := range i.entries {
		if pos%512 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, db.Wrap(backendName, db.OpMatch, err)
			}
		}
		total, ok := i.recordDistance(q, qWords, &i.entries[pos])
		if !ok {
			continue
		}
		hits = append(hits, result.NewHit(pos, (1-total)*100))
	}
	return hits, nil
}

func (i *Index) recordDistance(q string, qWords []string, e *entry) (float64, bool) {
	total := 1.0
	matched := false
	for _, f := range e.fields {
		if f.text == "" {
			continue
		}
		d := fieldDistance(q, qWords, f.text)
		if d > i.threshold {
			continue
		}
		matched = true
		total *= math.Pow(math.Max(d, epsilon), f.weight)
	}
	return total, matched
}

func fieldDistance(q string, qWords []string, text string) float64 {
	if strings.Contains(text, q) {
		return 0
	}
	return math.Min(windowDistance(q, qWords, text), subsequenceDistance(q, text))
}
