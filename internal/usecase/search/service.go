// Package search answers free-text queries over the live generation.
package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/search/mode"
	"github.com/kailas-cloud/foldex/internal/domain/search/request"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
	"github.com/kailas-cloud/foldex/internal/metrics"
)

// Defaults for Config fields left zero.
const (
	DefaultTokenHitScore   = 90
	DefaultSimilarityFloor = 30
	DefaultCacheSize       = 1024
)

var tracer = otel.Tracer("github.com/kailas-cloud/foldex/internal/usecase/search")

// Config tunes ranking and caching.
type Config struct {
	// TokenHitScore is the flat score given to prefix backend hits.
	TokenHitScore float64
	// SimilarityFloor is the score a script-aware similarity hit must exceed to be added.
	SimilarityFloor float64
	// CacheSize is the number of memoized result lists. Negative disables the cache.
	CacheSize int
}

func (c Config) withDefaults() Config {
	if c.TokenHitScore <= 0 {
		c.TokenHitScore = DefaultTokenHitScore
	}
	if c.SimilarityFloor <= 0 {
		c.SimilarityFloor = DefaultSimilarityFloor
	}
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}
	return c
}

// Service runs the dual-backend query engine and fuses its results.
type Service struct {
	repo   Repository
	cfg    Config
	cache  *lru.Cache[string, []result.Scored]
	logger *zap.Logger
}

// New creates a search service.
func New(repo Repository, cfg Config, logger *zap.Logger) (*Service, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{repo: repo, cfg: cfg, logger: logger}
	if cfg.CacheSize > 0 {
		c, err := lru.New[string, []result.Scored](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		s.cache = c
	}
	return s, nil
}

// Search returns the ranked records matching req.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]record.Record, error) {
	scored, err := s.SearchScored(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Records(scored), nil
}

// SearchScored returns the ranked records matching req with their fused scores.
// An empty query or an empty index yields an empty list.
func (s *Service) SearchScored(ctx context.Context, req *request.Request) ([]result.Scored, error) {
	if req.IsEmpty() {
		return []result.Scored{}, nil
	}

	route := mode.Select(req.Query(), req.ScriptAware())
	ctx, span := tracer.Start(ctx, "search", trace.WithAttributes(
		attribute.String("foldex.route", string(route)),
		attribute.Int("foldex.limit", req.Limit()),
	))
	defer span.End()

	start := time.Now()
	var out []result.Scored
	err := s.repo.View(ctx, func(ctx context.Context, g db.Generation) error {
		if g.Len() == 0 {
			out = []result.Scored{}
			return nil
		}

		key := cacheKey(g.ID(), req)
		if cached, ok := s.cacheGet(key); ok {
			span.SetAttributes(attribute.Bool("foldex.cache_hit", true))
			out = cached
			return nil
		}

		c, err := s.collect(ctx, g, route, req)
		if err != nil {
			return err
		}
		out = rank(g, c, req)
		s.cachePut(key, out)
		return nil
	})
	duration := time.Since(start)

	if err != nil {
		metrics.SearchesTotal.WithLabelValues(string(route), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("Search failed",
			zap.String("route", string(route)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("search: %w", err)
	}

	metrics.SearchesTotal.WithLabelValues(string(route), "ok").Inc()
	metrics.SearchDuration.WithLabelValues(string(route)).Observe(duration.Seconds())
	metrics.SearchResults.WithLabelValues(string(route)).Observe(float64(len(out)))
	span.SetAttributes(attribute.Int("foldex.results", len(out)))
	s.logger.Debug("Search completed",
		zap.String("route", string(route)),
		zap.Int("results", len(out)),
		zap.Duration("duration", duration),
	)
	return out, nil
}

// collect runs the backends for route and merges their hits.
func (s *Service) collect(
	ctx context.Context, g db.Generation, route mode.Mode, req *request.Request,
) (*candidates, error) {
	c := newCandidates()
	q := req.Query()

	switch route {
	case mode.ScriptAware:
		if err := s.matchFuzzy(ctx, g, q, c); err != nil {
			return nil, err
		}
		s.matchSimilarity(ctx, g, q, c)
	case mode.General:
		if err := s.matchPrefix(ctx, g, q, c); err != nil {
			return nil, err
		}
		if err := s.matchFuzzy(ctx, g, q, c); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported search route: %s", route)
	}
	return c, nil
}

func (s *Service) matchPrefix(ctx context.Context, g db.Generation, q string, c *candidates) error {
	ctx, span := tracer.Start(ctx, "search.prefix")
	defer span.End()

	hits, err := g.Prefix().Match(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("prefix backend: %w", err)
	}
	for _, h := range hits {
		c.add(g, h.WithScore(s.cfg.TokenHitScore))
	}
	span.SetAttributes(attribute.Int("foldex.hits", len(hits)))
	return nil
}

func (s *Service) matchFuzzy(ctx context.Context, g db.Generation, q string, c *candidates) error {
	ctx, span := tracer.Start(ctx, "search.fuzzy")
	defer span.End()

	hits, err := g.Fuzzy().Match(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("fuzzy backend: %w", err)
	}
	for _, h := range hits {
		c.add(g, h)
	}
	span.SetAttributes(attribute.Int("foldex.hits", len(hits)))
	return nil
}

// matchSimilarity scores every record with the Hangul-aware similarity and adds those above the floor.
func (s *Service) matchSimilarity(ctx context.Context, g db.Generation, q string, c *candidates) {
	_, span := tracer.Start(ctx, "search.similarity")
	defer span.End()

	recs := g.Records()
	added := 0
	for pos := range recs {
		r := &recs[pos]
		score := recordSimilarity(q, r.DisplayName(), r.Body(), r.Description(), r.Tags())
		if score > s.cfg.SimilarityFloor {
			c.add(g, result.NewHit(pos, score))
			added++
		}
	}
	span.SetAttributes(attribute.Int("foldex.hits", added))
}

func cacheKey(generation uint64, req *request.Request) string {
	return strconv.FormatUint(generation, 10) + "\x00" + req.Key()
}

func (s *Service) cacheGet(key string) ([]result.Scored, bool) {
	if s.cache == nil {
		return nil, false
	}
	v, ok := s.cache.Get(key)
	if !ok {
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
	return cloneScored(v), true
}

func (s *Service) cachePut(key string, v []result.Scored) {
	if s.cache == nil {
		return
	}
	s.cache.Add(key, cloneScored(v))
}

func cloneScored(v []result.Scored) []result.Scored {
	out := make([]result.Scored, len(v))
	copy(out, v)
	return out
}

// Purge drops memoized results.
func (s *Service) Purge() {
	if s.cache != nil {
		s.cache.Purge()
	}
}
