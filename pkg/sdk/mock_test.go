package foldex

import (
	"context"

	"github.com/kailas-cloud/foldex/internal/domain/content"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/search/request"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/foldex/internal/usecase/health"
)

// --- indexUseCase mock ---

type mockIndexUC struct {
	foldersFn  func(ctx context.Context, folders []content.Folder) (record.Stats, error)
	sharedFn   func(ctx context.Context, entries []content.SharedEntry) (record.Stats, error)
	snapshotFn func(ctx context.Context, snap content.Snapshot) (record.Stats, error)
	statsFn    func(ctx context.Context) (record.Stats, error)
	resetFn    func(ctx context.Context) error
}

func (m *mockIndexUC) IndexFolders(ctx context.Context, folders []content.Folder) (record.Stats, error) {
	return m.foldersFn(ctx, folders)
}

func (m *mockIndexUC) IndexSharedFolders(ctx context.Context, entries []content.SharedEntry) (record.Stats, error) {
	return m.sharedFn(ctx, entries)
}

func (m *mockIndexUC) IndexSnapshot(ctx context.Context, snap content.Snapshot) (record.Stats, error) {
	return m.snapshotFn(ctx, snap)
}

func (m *mockIndexUC) Stats(ctx context.Context) (record.Stats, error) {
	return m.statsFn(ctx)
}

func (m *mockIndexUC) Reset(ctx context.Context) error {
	return m.resetFn(ctx)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) ([]result.Scored, error)
}

func (m *mockSearchUC) SearchScored(ctx context.Context, req *request.Request) ([]result.Scored, error) {
	return m.searchFn(ctx, req)
}

// --- suggestUseCase mock ---

type mockSuggestUC struct {
	suggestFn func(ctx context.Context, query string, limit int) ([]string, error)
	popular   []string
}

func (m *mockSuggestUC) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	return m.suggestFn(ctx, query, limit)
}

func (m *mockSuggestUC) PopularQueries() []string { return m.popular }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
