// Package suggest offers autocomplete strings and the popular query list.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/hangul"
)

// DefaultLimit is the suggestion count when the caller asks for none.
const DefaultLimit = 5

// hangulFloor is the similarity a display name must exceed to be suggested for a Hangul query.
const hangulFloor = 50

// popular is a fixed list; no query telemetry is collected.
var popular = []string{"recipes", "notes", "bookmarks", "travel", "music"}

// Service scans the live generation for completions.
type Service struct {
	repo Repository
}

// New creates a suggestion service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggestions returns up to limit distinct display names and tags that complete query,
// in record insertion order. An empty query yields an empty list.
func (s *Service) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := strings.ToLower(query)
	withHangul := hangul.ContainsHangul(query)

	out := []string{}
	err := s.repo.View(ctx, func(_ context.Context, g db.Generation) error {
		seen := make(map[string]struct{})
		add := func(v string) bool {
			if _, ok := seen[v]; ok {
				return false
			}
			seen[v] = struct{}{}
			out = append(out, v)
			return len(out) >= limit
		}

		recs := g.Records()
		for i := range recs {
			name := recs[i].DisplayName()
			if name != "" && qualifies(q, query, name, withHangul) && add(name) {
				return nil
			}
			for _, tag := range recs[i].Tags() {
				if strings.Contains(strings.ToLower(tag), q) && add(tag) {
					return nil
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("view generation: %w", err)
	}
	return out, nil
}

func qualifies(lowerQuery, query, name string, withHangul bool) bool {
	if strings.Contains(strings.ToLower(name), lowerQuery) {
		return true
	}
	return withHangul && hangul.Similarity(query, name) > hangulFloor
}

// PopularQueries returns a fixed list of common queries.
func (s *Service) PopularQueries() []string {
	return append([]string(nil), popular...)
}
