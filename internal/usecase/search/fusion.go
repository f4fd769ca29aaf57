package search

import (
	"sort"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/search/request"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
)

// candidates accumulates scores per record id across backends and passes.
// A record seen twice keeps its best score.
type candidates struct {
	byID map[string]int // id -> index into hits
	hits []result.Hit
}

func newCandidates() *candidates {
	return &candidates{byID: make(map[string]int)}
}

func (c *candidates) add(g db.Generation, h result.Hit) {
	recs := g.Records()
	if h.Position() < 0 || h.Position() >= len(recs) {
		return
	}
	id := recs[h.Position()].ID()
	if i, ok := c.byID[id]; ok {
		if h.Score() > c.hits[i].Score() {
			c.hits[i] = c.hits[i].WithScore(h.Score())
		}
		return
	}
	c.byID[id] = len(c.hits)
	c.hits = append(c.hits, h)
}

func (c *candidates) len() int { return len(c.hits) }

// rank orders candidates by score descending with ties by record position,
// applies the kind and category filters, then truncates to the request limit.
func rank(g db.Generation, c *candidates, req *request.Request) []result.Scored {
	hits := c.hits
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score() != hits[j].Score() {
			return hits[i].Score() > hits[j].Score()
		}
		return hits[i].Position() < hits[j].Position()
	})

	recs := g.Records()
	out := make([]result.Scored, 0, min(len(hits), req.Limit()))
	for _, h := range hits {
		r := recs[h.Position()]
		if !req.Kinds().Matches(r.Kind()) {
			continue
		}
		if req.Category() != "" && r.Category() != req.Category() {
			continue
		}
		out = append(out, result.NewScored(r, h.Score()))
		if len(out) == req.Limit() {
			break
		}
	}
	return out
}
