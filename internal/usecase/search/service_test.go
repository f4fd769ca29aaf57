package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
)

func TestSearch_EmptyQuery(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	got, err := svc.Search(context.Background(), mustRequest(t, "   ", kind.Any(), "", 0, true))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
	if repo.gen.prefix.calls+repo.gen.fuzzy.calls != 0 {
		t.Error("empty query must not reach backends")
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	repo.gen.records = nil
	got, err := svc.SearchScored(context.Background(), mustRequest(t, "stew", kind.Any(), "", 0, true))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestSearch_GeneralMergeKeepsMax(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	repo.gen.prefix.matchFn = hits(result.NewHit(0, 0), result.NewHit(1, 0))
	repo.gen.fuzzy.matchFn = hits(result.NewHit(1, 97), result.NewHit(0, 40), result.NewHit(2, 55))

	got, err := svc.SearchScored(context.Background(), mustRequest(t, "stew", kind.Any(), "", 0, true))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if strings.Join(ids(got), ",") != "i1,f1,s1" {
		t.Fatalf("order = %v", ids(got))
	}
	wantScores := []float64{97, DefaultTokenHitScore, 55}
	for i, w := range wantScores {
		if got[i].Score() != w {
			t.Errorf("result %d score = %v, want %v", i, got[i].Score(), w)
		}
	}
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	repo.gen.fuzzy.matchFn = hits(result.NewHit(3, 50), result.NewHit(1, 50), result.NewHit(2, 50))

	got, err := svc.SearchScored(context.Background(), mustRequest(t, "x", kind.Any(), "", 0, true))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if strings.Join(ids(got), ",") != "i1,s1,s2" {
		t.Errorf("tie order = %v", ids(got))
	}
}

func TestSearch_Filters(t *testing.T) {
	all := hits(
		result.NewHit(0, 90), result.NewHit(1, 80), result.NewHit(2, 70),
		result.NewHit(3, 60), result.NewHit(4, 50),
	)
	tests := []struct {
		name     string
		kinds    kind.Filter
		category string
		limit    int
		want     string
	}{
		{"all", kind.Any(), "", 0, "f1,i1,s1,s2,k1"},
		{"kind item", kind.Only(kind.Item), "", 0, "i1,k1"},
		{"kind shared", kind.Only(kind.Shared), "", 0, "s1,s2"},
		{"category tech", kind.Any(), "tech", 0, "s1"},
		{"kind and category", kind.Only(kind.Item), "cooking", 0, "i1,k1"},
		{"category excludes all of kind", kind.Only(kind.Folder), "tech", 0, ""},
		{"limit after filters", kind.Only(kind.Shared), "", 1, "s1"},
		{"limit", kind.Any(), "", 2, "f1,i1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t, Config{CacheSize: -1})
			repo.gen.fuzzy.matchFn = all
			got, err := svc.SearchScored(context.Background(), mustRequest(t, "q", tt.kinds, tt.category, tt.limit, true))
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if strings.Join(ids(got), ",") != tt.want {
				t.Errorf("got %v, want %s", ids(got), tt.want)
			}
		})
	}
}

func TestSearch_ScriptAwareRoute(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	got, err := svc.SearchScored(context.Background(), mustRequest(t, "ㄱㅊ", kind.Any(), "", 0, true))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.gen.prefix.calls != 0 {
		t.Error("script-aware route must not use the prefix backend")
	}
	if repo.gen.fuzzy.calls != 1 {
		t.Errorf("fuzzy backend calls = %d, want 1", repo.gen.fuzzy.calls)
	}
	if strings.Join(ids(got), ",") != "k1" {
		t.Fatalf("initials query = %v, want [k1]", ids(got))
	}
	// leading components of the name match: 60 points
	if got[0].Score() != 60 {
		t.Errorf("similarity score = %v, want 60", got[0].Score())
	}
}

func TestSearch_ScriptAwareMergesWithFuzzy(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	repo.gen.fuzzy.matchFn = hits(result.NewHit(4, 20), result.NewHit(1, 45))

	got, err := svc.SearchScored(context.Background(), mustRequest(t, "김치", kind.Any(), "", 0, true))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if strings.Join(ids(got), ",") != "k1,i1" {
		t.Fatalf("order = %v", ids(got))
	}
	if got[0].Score() <= 100 {
		t.Errorf("similarity should win over the fuzzy score, got %v", got[0].Score())
	}
	if got[1].Score() != 45 {
		t.Errorf("fuzzy-only hit score = %v, want 45", got[1].Score())
	}
}

func TestSearch_ScriptAwareDisabled(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	if _, err := svc.Search(context.Background(), mustRequest(t, "김치", kind.Any(), "", 0, false)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.gen.prefix.calls != 1 {
		t.Error("disabled script-aware matching should take the general route")
	}
}

func TestSearch_CacheByGeneration(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	repo.gen.fuzzy.matchFn = hits(result.NewHit(1, 70))
	ctx := context.Background()
	req := mustRequest(t, "stew", kind.Any(), "", 0, true)

	first, err := svc.Search(ctx, req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	second, err := svc.Search(ctx, req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.gen.fuzzy.calls != 1 {
		t.Errorf("repeated query should be served from cache, backend calls = %d", repo.gen.fuzzy.calls)
	}
	if len(first) != 1 || len(second) != 1 || first[0].ID() != second[0].ID() {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}

	repo.gen = &mockGeneration{
		id:      2,
		records: testRecords(t)[:1],
		prefix:  &mockMatcher{},
		fuzzy:   &mockMatcher{matchFn: hits(result.NewHit(0, 70))},
	}
	third, err := svc.Search(ctx, req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(third) != 1 || third[0].ID() != "f1" {
		t.Errorf("new generation must not serve stale results, got %v", third)
	}
}

func TestSearch_Idempotent(t *testing.T) {
	svc, repo := newTestService(t, Config{CacheSize: -1})
	repo.gen.prefix.matchFn = hits(result.NewHit(3, 0), result.NewHit(0, 0))
	repo.gen.fuzzy.matchFn = hits(result.NewHit(2, 90))
	req := mustRequest(t, "q", kind.Any(), "", 0, true)

	first, err := svc.SearchScored(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.SearchScored(context.Background(), req)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if strings.Join(ids(again), ",") != strings.Join(ids(first), ",") {
			t.Fatalf("run %d order %v differs from %v", i, ids(again), ids(first))
		}
	}
	if strings.Join(ids(first), ",") != "f1,s1,s2" {
		t.Errorf("order = %v", ids(first))
	}
}

func TestSearch_BackendError(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	boom := errors.New("boom")
	repo.gen.prefix.matchFn = func(context.Context, string) ([]result.Hit, error) { return nil, boom }

	_, err := svc.Search(context.Background(), mustRequest(t, "stew", kind.Any(), "", 0, true))
	if !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestSearch_ViewError(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	boom := errors.New("closed")
	repo.viewErr = boom
	if _, err := svc.Search(context.Background(), mustRequest(t, "stew", kind.Any(), "", 0, true)); !errors.Is(err, boom) {
		t.Fatalf("expected view error, got %v", err)
	}
}

func TestSearch_IgnoresOutOfRangeHits(t *testing.T) {
	svc, repo := newTestService(t, Config{})
	repo.gen.fuzzy.matchFn = hits(result.NewHit(-1, 99), result.NewHit(99, 99), result.NewHit(0, 10))
	got, err := svc.SearchScored(context.Background(), mustRequest(t, "q", kind.Any(), "", 0, true))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if strings.Join(ids(got), ",") != "f1" {
		t.Errorf("got %v", ids(got))
	}
}
