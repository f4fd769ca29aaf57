package foldex

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/foldex/internal/domain/content"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
	"github.com/kailas-cloud/foldex/internal/domain/search/request"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/foldex/internal/usecase/health"
)

func mustRecord(t *testing.T, id string, k kind.Kind, name string) record.Record {
	t.Helper()
	r, err := record.New(id, k, name, name, "", "", "", []string{"t"})
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}
	return r
}

func TestEngine_SearchPassesOptions(t *testing.T) {
	var got *request.Request
	rec := mustRecord(t, "i1", kind.Item, "Tomato Stew")
	off := false
	e := &Engine{searchSvc: &mockSearchUC{
		searchFn: func(_ context.Context, req *request.Request) ([]result.Scored, error) {
			got = req
			return []result.Scored{result.NewScored(rec, 97.5)}, nil
		},
	}}

	out, err := e.SearchScored(context.Background(), "  stew ", &SearchOptions{
		Kind:                   KindItem,
		Category:               "cooking",
		Limit:                  500,
		UseScriptAwareMatching: &off,
	})
	if err != nil {
		t.Fatalf("SearchScored: %v", err)
	}
	if got.Query() != "stew" || got.Category() != "cooking" || got.Limit() != request.MaxLimit || got.ScriptAware() {
		t.Errorf("request = q %q cat %q limit %d script %v", got.Query(), got.Category(), got.Limit(), got.ScriptAware())
	}
	if k, ok := got.Kinds().Kind(); !ok || k != kind.Item {
		t.Errorf("kind filter = %v", got.Kinds())
	}
	if len(out) != 1 || out[0].ID != "i1" || out[0].Score != 97.5 || out[0].Kind != KindItem {
		t.Errorf("out = %+v", out)
	}
}

func TestEngine_SearchDefaults(t *testing.T) {
	var got *request.Request
	e := &Engine{searchSvc: &mockSearchUC{
		searchFn: func(_ context.Context, req *request.Request) ([]result.Scored, error) {
			got = req
			return nil, nil
		},
	}}
	out, err := e.Search(context.Background(), "stew", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("out = %v, want empty non-nil", out)
	}
	if got.Limit() != request.DefaultLimit || !got.ScriptAware() {
		t.Errorf("defaults = limit %d script %v", got.Limit(), got.ScriptAware())
	}
	if _, ok := got.Kinds().Kind(); ok {
		t.Error("nil options should not filter by kind")
	}
}

func TestEngine_ErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	e := &Engine{
		indexSvc: &mockIndexUC{
			foldersFn:  func(context.Context, []content.Folder) (record.Stats, error) { return record.Stats{}, boom },
			sharedFn:   func(context.Context, []content.SharedEntry) (record.Stats, error) { return record.Stats{}, boom },
			snapshotFn: func(context.Context, content.Snapshot) (record.Stats, error) { return record.Stats{}, boom },
			statsFn:    func(context.Context) (record.Stats, error) { return record.Stats{}, boom },
			resetFn:    func(context.Context) error { return boom },
		},
		searchSvc: &mockSearchUC{
			searchFn: func(context.Context, *request.Request) ([]result.Scored, error) { return nil, boom },
		},
		suggestSvc: &mockSuggestUC{
			suggestFn: func(context.Context, string, int) ([]string, error) { return nil, boom },
		},
	}
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["IndexFolders"] = e.IndexFolders(ctx, nil)
	_, checks["IndexSharedFolders"] = e.IndexSharedFolders(ctx, nil)
	_, checks["IndexSnapshot"] = e.IndexSnapshot(ctx, Snapshot{})
	_, checks["Stats"] = e.Stats(ctx)
	checks["Reset"] = e.Reset(ctx)
	_, checks["Search"] = e.Search(ctx, "x", nil)
	_, checks["Suggestions"] = e.Suggestions(ctx, "x", 3)

	for name, err := range checks {
		if !errors.Is(err, boom) {
			t.Errorf("%s err = %v, want boom", name, err)
		}
	}
}

func TestEngine_ConvertsInput(t *testing.T) {
	var got []content.Folder
	e := &Engine{indexSvc: &mockIndexUC{
		foldersFn: func(_ context.Context, f []content.Folder) (record.Stats, error) {
			got = f
			return record.Stats{TotalItems: 3, Folders: 2, StorageItems: 1}, nil
		},
	}}

	st, err := e.IndexFolders(context.Background(), []Folder{{
		ID: "f1", Name: "Recipes", Tags: []string{"food"},
		Items:    []Item{{ID: "i1", Name: "Stew", Content: "tomato", URL: "https://example.com/stew"}},
		Children: []Folder{{ID: "f2", Name: "Soups"}},
	}})
	if err != nil {
		t.Fatalf("IndexFolders: %v", err)
	}
	if st != (Stats{TotalItems: 3, Folders: 2, StorageItems: 1}) {
		t.Errorf("stats = %+v", st)
	}
	if len(got) != 1 || got[0].Tags[0] != "food" || got[0].Children[0].ID != "f2" {
		t.Fatalf("folders = %+v", got)
	}
	if it := got[0].Items[0]; it.Content != "tomato" || it.URL != "https://example.com/stew" {
		t.Errorf("item = %+v", it)
	}
}

func TestEngine_HealthMapsReport(t *testing.T) {
	e := &Engine{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status:     healthuc.Degraded,
		Checks:     map[string]healthuc.CheckResult{"prefix": healthuc.CheckOK, "fuzzy": healthuc.CheckError},
		Generation: 7,
		Records:    42,
	}}}

	h := e.Health(context.Background())
	if h.Status != "degraded" || h.Checks["fuzzy"] != "error" || h.Generation != 7 || h.Records != 42 {
		t.Errorf("health = %+v", h)
	}
}

func TestEngine_ObservesOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	e := &Engine{
		obs: obs,
		suggestSvc: &mockSuggestUC{
			suggestFn: func(context.Context, string, int) ([]string, error) { return []string{"a", "b"}, nil },
		},
	}

	if _, err := e.Suggestions(context.Background(), "a", 5); err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if v := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("suggestions", "ok")); v != 1 {
		t.Errorf("operations{suggestions,ok} = %v, want 1", v)
	}
	if n := testutil.CollectAndCount(obs.metrics.results); n != 1 {
		t.Errorf("results series = %d, want 1", n)
	}
}
