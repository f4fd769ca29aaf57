package foldex

import (
	"fmt"

	"github.com/kailas-cloud/foldex/internal/domain"
	"github.com/kailas-cloud/foldex/internal/domain/content"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
	"github.com/kailas-cloud/foldex/internal/domain/search/request"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
)

func toContentFolders(in []Folder) []content.Folder {
	if in == nil {
		return nil
	}
	out := make([]content.Folder, len(in))
	for i := range in {
		f := &in[i]
		out[i] = content.Folder{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			Category:    f.Category,
			Tags:        f.Tags,
			Items:       toContentItems(f.Items),
			Children:    toContentFolders(f.Children),
		}
	}
	return out
}

func toContentItems(in []Item) []content.Item {
	if in == nil {
		return nil
	}
	out := make([]content.Item, len(in))
	for i := range in {
		it := &in[i]
		out[i] = content.Item{
			ID:          it.ID,
			Name:        it.Name,
			Content:     it.Content,
			URL:         it.URL,
			Description: it.Description,
			Category:    it.Category,
			Tags:        it.Tags,
		}
	}
	return out
}

func toContentShared(in []SharedEntry) []content.SharedEntry {
	if in == nil {
		return nil
	}
	out := make([]content.SharedEntry, len(in))
	for i := range in {
		e := &in[i]
		out[i] = content.SharedEntry{
			ID:          e.ID,
			Title:       e.Title,
			Content:     e.Content,
			URL:         e.URL,
			Description: e.Description,
			Category:    e.Category,
			Tags:        e.Tags,
		}
	}
	return out
}

func toContentSnapshot(s Snapshot) content.Snapshot {
	return content.Snapshot{
		Folders: toContentFolders(s.Folders),
		Shared:  toContentShared(s.Shared),
	}
}

func fromDomainRecord(r *record.Record) Record {
	t := r.Tags()
	tags := make([]string, len(t))
	copy(tags, t)
	return Record{
		ID:          r.ID(),
		Kind:        Kind(r.Kind()),
		DisplayName: r.DisplayName(),
		Body:        r.Body(),
		Description: r.Description(),
		Category:    r.Category(),
		ParentID:    r.ParentID(),
		Tags:        tags,
	}
}

func fromDomainScored(in []result.Scored) []ScoredRecord {
	out := make([]ScoredRecord, len(in))
	for i := range in {
		rec := in[i].Record()
		out[i] = ScoredRecord{Record: fromDomainRecord(&rec), Score: in[i].Score()}
	}
	return out
}

func fromDomainStats(s record.Stats) Stats {
	return Stats{
		TotalItems:    s.TotalItems,
		Folders:       s.Folders,
		StorageItems:  s.StorageItems,
		SharedFolders: s.SharedFolders,
	}
}

// toSearchRequest validates options. A nil opts searches every kind with the default limit.
func toSearchRequest(query string, opts *SearchOptions) (request.Request, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	filter, err := kind.ParseFilter(string(opts.Kind))
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	scriptAware := true
	if opts.UseScriptAwareMatching != nil {
		scriptAware = *opts.UseScriptAwareMatching
	}
	return request.New(query, filter, opts.Category, opts.Limit, scriptAware), nil
}
