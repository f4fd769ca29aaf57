package foldex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/foldex/internal/db/bleve"
	"github.com/kailas-cloud/foldex/internal/db/fuzzy"
	"github.com/kailas-cloud/foldex/internal/domain/content"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/search/request"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
	"github.com/kailas-cloud/foldex/internal/repository/snapshot"
	healthuc "github.com/kailas-cloud/foldex/internal/usecase/health"
	indexuc "github.com/kailas-cloud/foldex/internal/usecase/index"
	searchuc "github.com/kailas-cloud/foldex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/foldex/internal/usecase/suggest"
)

// Internal interfaces, swapped for mocks in tests.
type indexUseCase interface {
	IndexFolders(ctx context.Context, folders []content.Folder) (record.Stats, error)
	IndexSharedFolders(ctx context.Context, entries []content.SharedEntry) (record.Stats, error)
	IndexSnapshot(ctx context.Context, snap content.Snapshot) (record.Stats, error)
	Stats(ctx context.Context) (record.Stats, error)
	Reset(ctx context.Context) error
}

type searchUseCase interface {
	SearchScored(ctx context.Context, req *request.Request) ([]result.Scored, error)
}

type suggestUseCase interface {
	Suggestions(ctx context.Context, query string, limit int) ([]string, error)
	PopularQueries() []string
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Engine is the foldex entry point. It is safe for concurrent use.
type Engine struct {
	repo       *snapshot.Repo
	indexSvc   indexUseCase
	searchSvc  searchUseCase
	suggestSvc suggestUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates an Engine with an empty index.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{maxDepth: indexuc.DefaultMaxDepth}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.fuzzyThreshold < 0 || cfg.fuzzyThreshold > 1 {
		return nil, fmt.Errorf("foldex: fuzzy threshold must be in (0, 1], got %g", cfg.fuzzyThreshold)
	}
	if cfg.maxDepth < 0 {
		return nil, fmt.Errorf("foldex: max depth must not be negative, got %d", cfg.maxDepth)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireEngine(cfg, obs)
}

func wireEngine(cfg *engineConfig, obs *observer) (*Engine, error) {
	// Usecases log through zap; the engine reports through its own slog observer.
	nop := zap.NewNop()
	repo := snapshot.New(snapshot.Builders{
		Prefix: bleve.Build,
		Fuzzy:  fuzzy.NewBuilder(fuzzy.Config{Threshold: cfg.fuzzyThreshold}),
	}, nop)

	searchSvc, err := searchuc.New(repo, searchuc.Config{CacheSize: cfg.cacheSize}, nop)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("foldex: %w", err)
	}

	return &Engine{
		repo:       repo,
		indexSvc:   indexuc.New(repo, cfg.maxDepth, nop),
		searchSvc:  searchSvc,
		suggestSvc: suggestuc.New(repo),
		healthSvc:  healthuc.New(repo),
		obs:        obs,
	}, nil
}

// Close releases both backends. Calls after Close fail with ErrClosed.
func (e *Engine) Close() error {
	if e.repo == nil {
		return nil
	}
	if err := e.repo.Close(); err != nil {
		return fmt.Errorf("foldex: close: %w", err)
	}
	return nil
}

// IndexFolders replaces the index with the flattened folder forest.
func (e *Engine) IndexFolders(ctx context.Context, folders []Folder) (st Stats, err error) {
	start := time.Now()
	defer func() { e.obs.observe("index.folders", start, err) }()

	s, err := e.indexSvc.IndexFolders(ctx, toContentFolders(folders))
	if err != nil {
		return Stats{}, fmt.Errorf("index folders: %w", err)
	}
	return fromDomainStats(s), nil
}

// IndexSharedFolders replaces the index with the shared entries.
func (e *Engine) IndexSharedFolders(ctx context.Context, entries []SharedEntry) (st Stats, err error) {
	start := time.Now()
	defer func() { e.obs.observe("index.shared", start, err) }()

	s, err := e.indexSvc.IndexSharedFolders(ctx, toContentShared(entries))
	if err != nil {
		return Stats{}, fmt.Errorf("index shared: %w", err)
	}
	return fromDomainStats(s), nil
}

// IndexSnapshot replaces the index with folders and shared entries together.
// Ids must be unique across both.
func (e *Engine) IndexSnapshot(ctx context.Context, snap Snapshot) (st Stats, err error) {
	start := time.Now()
	defer func() { e.obs.observe("index.snapshot", start, err) }()

	s, err := e.indexSvc.IndexSnapshot(ctx, toContentSnapshot(snap))
	if err != nil {
		return Stats{}, fmt.Errorf("index snapshot: %w", err)
	}
	return fromDomainStats(s), nil
}

// Search returns the records matching query, best first.
func (e *Engine) Search(ctx context.Context, query string, opts *SearchOptions) ([]Record, error) {
	scored, err := e.SearchScored(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(scored))
	for i := range scored {
		out[i] = scored[i].Record
	}
	return out, nil
}

// SearchScored is Search with the fused score of every record.
func (e *Engine) SearchScored(ctx context.Context, query string, opts *SearchOptions) (out []ScoredRecord, err error) {
	start := time.Now()
	defer func() { e.obs.observeResults("search", start, len(out), err) }()

	req, err := toSearchRequest(query, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	res, err := e.searchSvc.SearchScored(ctx, &req)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by the search service
	}
	return fromDomainScored(res), nil
}

// Suggestions returns up to limit names and tags that autocomplete query.
// limit <= 0 selects the default of 5.
func (e *Engine) Suggestions(ctx context.Context, query string, limit int) (out []string, err error) {
	start := time.Now()
	defer func() { e.obs.observeResults("suggestions", start, len(out), err) }()

	out, err = e.suggestSvc.Suggestions(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return out, nil
}

// PopularQueries returns a fixed list of common queries.
func (e *Engine) PopularQueries() []string {
	return e.suggestSvc.PopularQueries()
}

// Stats counts the indexed records.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	s, err := e.indexSvc.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return fromDomainStats(s), nil
}

// Reset empties the index.
func (e *Engine) Reset(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { e.obs.observe("reset", start, err) }()

	if err = e.indexSvc.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
