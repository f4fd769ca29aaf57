package index

import (
	"context"
	"testing"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/content"
	"github.com/kailas-cloud/foldex/internal/domain/record"
)

// mockGeneration implements db.Generation for tests.
type mockGeneration struct {
	id      uint64
	records []record.Record
}

func (g *mockGeneration) ID() uint64               { return g.id }
func (g *mockGeneration) Records() []record.Record { return g.records }
func (g *mockGeneration) Len() int                 { return len(g.records) }
func (g *mockGeneration) Prefix() db.Matcher       { return db.Empty{} }
func (g *mockGeneration) Fuzzy() db.Matcher        { return db.Empty{} }

func (g *mockGeneration) Position(id string) (int, bool) {
	for i := range g.records {
		if g.records[i].ID() == id {
			return i, true
		}
	}
	return 0, false
}

// mockRepo implements Repository for tests.
type mockRepo struct {
	cur        *mockGeneration
	replaceErr error
	replaced   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{cur: &mockGeneration{}}
}

func (m *mockRepo) Replace(_ context.Context, records []record.Record) (db.Generation, error) {
	if m.replaceErr != nil {
		return nil, m.replaceErr
	}
	m.replaced++
	m.cur = &mockGeneration{id: m.cur.id + 1, records: records}
	return m.cur, nil
}

func (m *mockRepo) Reset(context.Context) (db.Generation, error) {
	m.cur = &mockGeneration{id: m.cur.id + 1}
	return m.cur, nil
}

func (m *mockRepo) View(ctx context.Context, fn func(ctx context.Context, g db.Generation) error) error {
	return fn(ctx, m.cur)
}

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	return New(repo, -1, nil), repo
}

// recipeTree is Recipes > Soups with one item at each level.
func recipeTree() []content.Folder {
	return []content.Folder{{
		ID:       "f1",
		Name:     "Recipes",
		Category: "cooking",
		Tags:     []string{"food"},
		Items: []content.Item{
			{ID: "i1", Name: "Tomato Stew", Content: "slow cooked stew", Tags: []string{"dinner"}},
		},
		Children: []content.Folder{{
			ID:   "f2",
			Name: "Soups",
			Items: []content.Item{
				{ID: "i2", Name: "Miso Soup", Content: "dashi and miso"},
			},
		}},
	}}
}

func recordByID(t *testing.T, recs []record.Record, id string) record.Record {
	t.Helper()
	for i := range recs {
		if recs[i].ID() == id {
			return recs[i]
		}
	}
	t.Fatalf("record %q not found", id)
	return record.Record{}
}
