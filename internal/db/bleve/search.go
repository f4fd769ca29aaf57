package bleve

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	blevelib "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
)

// Match returns every record in which each query token prefixes some indexed token.
// Hits are unscored (raw score 0) and ordered by position.
func (i *Index) Match(ctx context.Context, q string) ([]result.Hit, error) {
	if i.closed.Load() {
		return nil, db.Wrap(backendName, db.OpMatch, db.ErrMatcherClosed)
	}
	if i.size == 0 {
		return nil, nil
	}

	tokens, err := i.tokens(q)
	if err != nil {
		return nil, db.Wrap(backendName, db.OpMatch, err)
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	conjuncts := make([]query.Query, len(tokens))
	for n, tok := range tokens {
		conjuncts[n] = blevelib.NewPrefixQuery(tok)
	}
	req := blevelib.NewSearchRequestOptions(blevelib.NewConjunctionQuery(conjuncts...), i.size, 0, false)

	res, err := i.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, db.Wrap(backendName, db.OpMatch, err)
	}

	hits := make([]result.Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		pos, err := strconv.Atoi(h.ID)
		if err != nil {
			return nil, db.Wrap(backendName, db.OpMatch, fmt.Errorf("unexpected document id %q", h.ID))
		}
		hits = append(hits, result.NewHit(pos, 0))
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].Position() < hits[b].Position() })

	return hits, nil
}

// tokens runs q through the index analyzer so query and index agree on segmentation and case.
// Duplicate tokens are dropped.
func (i *Index) tokens(q string) ([]string, error) {
	stream, err := i.mapping.AnalyzeText(analyzerName, []byte(q))
	if err != nil {
		return nil, fmt.Errorf("analyze query: %w", err)
	}
	seen := make(map[string]struct{}, len(stream))
	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		term := string(tok.Term)
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out, nil
}
