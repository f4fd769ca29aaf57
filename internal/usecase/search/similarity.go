package search

import "github.com/kailas-cloud/foldex/internal/domain/hangul"

// Field multipliers for the script-aware similarity pass.
const (
	nameFactor        = 1.0
	bodyFactor        = 0.8
	descriptionFactor = 0.8
	tagFactor         = 0.6
)

// recordSimilarity is the best weighted hangul.Similarity of q over a record's fields.
func recordSimilarity(q, name, body, description string, tags []string) float64 {
	best := nameFactor * hangul.Similarity(q, name)
	if body != "" {
		best = max(best, bodyFactor*hangul.Similarity(q, body))
	}
	if description != "" {
		best = max(best, descriptionFactor*hangul.Similarity(q, description))
	}
	for _, t := range tags {
		best = max(best, tagFactor*hangul.Similarity(q, t))
	}
	return best
}
