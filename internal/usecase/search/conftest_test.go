package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
	"github.com/kailas-cloud/foldex/internal/domain/search/request"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
)

// mockMatcher implements db.Matcher for tests.
type mockMatcher struct {
	matchFn func(ctx context.Context, q string) ([]result.Hit, error)
	calls   int
}

func (m *mockMatcher) Match(ctx context.Context, q string) ([]result.Hit, error) {
	m.calls++
	if m.matchFn != nil {
		return m.matchFn(ctx, q)
	}
	return nil, nil
}

func (m *mockMatcher) Close() error { return nil }

func hits(h ...result.Hit) func(context.Context, string) ([]result.Hit, error) {
	return func(context.Context, string) ([]result.Hit, error) { return h, nil }
}

// mockGeneration implements db.Generation for tests.
type mockGeneration struct {
	id      uint64
	records []record.Record
	prefix  *mockMatcher
	fuzzy   *mockMatcher
}

func (g *mockGeneration) ID() uint64               { return g.id }
func (g *mockGeneration) Records() []record.Record { return g.records }
func (g *mockGeneration) Len() int                 { return len(g.records) }
func (g *mockGeneration) Prefix() db.Matcher       { return g.prefix }
func (g *mockGeneration) Fuzzy() db.Matcher        { return g.fuzzy }

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
	gen     *mockGeneration
	viewErr error
}

func (m *mockRepo) View(ctx context.Context, fn func(ctx context.Context, g db.Generation) error) error {
	if m.viewErr != nil {
		return m.viewErr
	}
	return fn(ctx, m.gen)
}

func mustRecord(t *testing.T, id string, k kind.Kind, name, body, category string, tags ...string) record.Record {
	t.Helper()
	r, err := record.New(id, k, name, body, "", category, "", tags)
	if err != nil {
		t.Fatalf("record.New(%q): %v", id, err)
	}
	return r
}

// testRecords: f1 folder, i1 item, s1 shared tech, s2 shared lifestyle, k1 hangul item.
func testRecords(t *testing.T) []record.Record {
	t.Helper()
	return []record.Record{
		mustRecord(t, "f1", kind.Folder, "Recipes", "Recipes", "cooking"),
		mustRecord(t, "i1", kind.Item, "Tomato Stew", "slow cooked stew", "cooking"),
		mustRecord(t, "s1", kind.Shared, "Go tips", "channels", "tech"),
		mustRecord(t, "s2", kind.Shared, "Yoga", "stretching", "lifestyle"),
		mustRecord(t, "k1", kind.Item, "김치찌개", "김치와 돼지고기", "cooking", "한식"),
	}
}

func newTestService(t *testing.T, cfg Config) (*Service, *mockRepo) {
	t.Helper()
	repo := &mockRepo{gen: &mockGeneration{
		id:      1,
		records: testRecords(t),
		prefix:  &mockMatcher{},
		fuzzy:   &mockMatcher{},
	}}
	svc, err := New(repo, cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc, repo
}

func mustRequest(t *testing.T, q string, kinds kind.Filter, category string, limit int, scriptAware bool) *request.Request {
	t.Helper()
	req := request.New(q, kinds, category, limit, scriptAware)
	return &req
}

func ids(scored []result.Scored) []string {
	out := make([]string, len(scored))
	for i := range scored {
		r := scored[i].Record()
		out[i] = r.ID()
	}
	return out
}
