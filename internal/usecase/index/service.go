// Package index flattens upstream content into records and publishes them as a new generation.
package index

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/kailas-cloud/foldex/internal/db"
	"github.com/kailas-cloud/foldex/internal/domain/content"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
	"github.com/kailas-cloud/foldex/internal/metrics"
)

// DefaultMaxDepth bounds folder nesting unless configured otherwise.
const DefaultMaxDepth = 64

// Rebuild sources, used as metric and log labels.
const (
	SourceFolders  = "folders"
	SourceShared   = "shared"
	SourceSnapshot = "snapshot"
	SourceReset    = "reset"
)

var tracer = otel.Tracer("github.com/kailas-cloud/foldex/internal/usecase/index")

// Service rebuilds the record set. Every call replaces the whole generation.
type Service struct {
	repo     Repository
	maxDepth int
	logger   *zap.Logger
}

// New creates an index service. maxDepth < 0 selects DefaultMaxDepth; 0 disables the limit.
func New(repo Repository, maxDepth int, logger *zap.Logger) *Service {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, maxDepth: maxDepth, logger: logger}
}

// IndexFolders replaces the record set with the flattened folder trees.
func (s *Service) IndexFolders(ctx context.Context, folders []content.Folder) (record.Stats, error) {
	return s.rebuild(ctx, SourceFolders, func(f *flattener) error { return f.folders(folders) })
}

// IndexSharedFolders replaces the record set with the shared entries.
func (s *Service) IndexSharedFolders(ctx context.Context, entries []content.SharedEntry) (record.Stats, error) {
	return s.rebuild(ctx, SourceShared, func(f *flattener) error { return f.shared(entries) })
}

// IndexSnapshot replaces the record set with folders and shared entries together.
// Ids must be unique across both.
func (s *Service) IndexSnapshot(ctx context.Context, snap content.Snapshot) (record.Stats, error) {
	return s.rebuild(ctx, SourceSnapshot, func(f *flattener) error {
		if err := f.folders(snap.Folders); err != nil {
			return err
		}
		return f.shared(snap.Shared)
	})
}

// Stats counts the live generation by kind.
func (s *Service) Stats(ctx context.Context) (record.Stats, error) {
	var st record.Stats
	err := s.repo.View(ctx, func(_ context.Context, g db.Generation) error {
		st = record.Count(g.Records())
		return nil
	})
	if err != nil {
		return record.Stats{}, fmt.Errorf("view generation: %w", err)
	}
	return st, nil
}

// Reset drops the live generation.
func (s *Service) Reset(ctx context.Context) error {
	g, err := s.repo.Reset(ctx)
	if err != nil {
		metrics.IndexRebuildsTotal.WithLabelValues(SourceReset, "error").Inc()
		return fmt.Errorf("reset generation: %w", err)
	}
	metrics.IndexRebuildsTotal.WithLabelValues(SourceReset, "ok").Inc()
	recordGauges(record.Stats{})
	s.logger.Info("Index reset", zap.Uint64("generation", g.ID()))
	return nil
}

func (s *Service) rebuild(ctx context.Context, source string, fill func(*flattener) error) (record.Stats, error) {
	ctx, span := tracer.Start(ctx, "index.rebuild")
	defer span.End()
	span.SetAttributes(attribute.String("foldex.source", source))

	start := time.Now()
	st, gen, err := s.replace(ctx, fill)
	duration := time.Since(start)
	metrics.IndexRebuildDuration.WithLabelValues(source).Observe(duration.Seconds())

	if err != nil {
		metrics.IndexRebuildsTotal.WithLabelValues(source, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("Index rebuild failed",
			zap.String("source", source),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return record.Stats{}, err
	}

	metrics.IndexRebuildsTotal.WithLabelValues(source, "ok").Inc()
	recordGauges(st)
	span.SetAttributes(
		attribute.Int("foldex.records", st.TotalItems),
		attribute.Int64("foldex.generation", int64(gen)), //nolint:gosec // generation counts rebuilds
	)
	s.logger.Info("Index rebuilt",
		zap.String("source", source),
		zap.Uint64("generation", gen),
		zap.Int("records", st.TotalItems),
		zap.Int("folders", st.Folders),
		zap.Int("items", st.StorageItems),
		zap.Int("shared", st.SharedFolders),
		zap.Duration("duration", duration),
	)
	return st, nil
}

func (s *Service) replace(ctx context.Context, fill func(*flattener) error) (record.Stats, uint64, error) {
	f := newFlattener(s.maxDepth)
	if err := fill(f); err != nil {
		return record.Stats{}, 0, fmt.Errorf("flatten: %w", err)
	}
	g, err := s.repo.Replace(ctx, f.records)
	if err != nil {
		return record.Stats{}, 0, fmt.Errorf("replace generation: %w", err)
	}
	return record.Count(g.Records()), g.ID(), nil
}

func recordGauges(st record.Stats) {
	metrics.IndexRecords.WithLabelValues(string(kind.Folder)).Set(float64(st.Folders))
	metrics.IndexRecords.WithLabelValues(string(kind.Item)).Set(float64(st.StorageItems))
	metrics.IndexRecords.WithLabelValues(string(kind.Shared)).Set(float64(st.SharedFolders))
}
