package snapshot

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
)

// mockMatcher implements db.Matcher for tests.
type mockMatcher struct {
	size     int
	closeErr error
	closed   atomic.Bool
}

func (m *mockMatcher) Match(context.Context, string) ([]result.Hit, error) {
	if m.closed.Load() {
		return nil, db.ErrMatcherClosed
	}
	hits := make([]result.Hit, m.size)
	for i := range hits {
		hits[i] = result.NewHit(i, 0)
	}
	return hits, nil
}

func (m *mockMatcher) Close() error {
	m.closed.Store(true)
	return m.closeErr
}

// recordingBuilder hands out mockMatchers and remembers them.
type recordingBuilder struct {
	built    []*mockMatcher
	err      error
	closeErr error
}

func (b *recordingBuilder) build(_ context.Context, records []record.Record) (db.Matcher, error) {
	if b.err != nil {
		return nil, b.err
	}
	m := &mockMatcher{size: len(records), closeErr: b.closeErr}
	b.built = append(b.built, m)
	return m, nil
}

func newTestRepo(t *testing.T) (*Repo, *recordingBuilder, *recordingBuilder) {
	t.Helper()
	prefix, fuzzy := &recordingBuilder{}, &recordingBuilder{}
	return New(Builders{Prefix: prefix.build, Fuzzy: fuzzy.build}, zap.NewNop()), prefix, fuzzy
}

func mustRecord(t *testing.T, id string) record.Record {
	t.Helper()
	r, err := record.New(id, kind.Item, id, "", "", "", "", nil)
	if err != nil {
		t.Fatalf("record.New(%q): %v", id, err)
	}
	return r
}

var errBuild = errors.New("build failed")
