package result

import "github.com/kailas-cloud/foldex/internal/domain/record"

// Hit is a backend match: a position in the generation's record slice and a raw score.
type Hit struct {
	position int
	score    float64
}

// NewHit creates a backend hit.
func NewHit(position int, score float64) Hit {
	return Hit{position: position, score: score}
}

// Position returns the record position within its generation.
func (h Hit) Position() int { return h.position }

// Score returns the raw backend score.
func (h Hit) Score() float64 { return h.score }

// WithScore returns a copy carrying score.
func (h Hit) WithScore(score float64) Hit {
	return Hit{position: h.position, score: score}
}

// Scored is a ranked search result: the full record plus its fused score.
type Scored struct {
	rec   record.Record
	score float64
}

// NewScored creates a ranked result.
func NewScored(rec record.Record, score float64) Scored {
	return Scored{rec: rec, score: score}
}

// Record returns the matched record.
func (s *Scored) Record() record.Record { return s.rec }

// Score returns the fused relevance score.
func (s *Scored) Score() float64 { return s.score }

// Records strips scores, keeping order.
func Records(scored []Scored) []record.Record {
	out := make([]record.Record, len(scored))
	for i := range scored {
		out[i] = scored[i].rec
	}
	return out
}
