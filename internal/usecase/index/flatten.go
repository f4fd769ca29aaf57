package index

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/foldex/internal/domain"
	"github.com/kailas-cloud/foldex/internal/domain/content"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
)

// BreadcrumbSeparator joins folder names in a folder record's body.
const BreadcrumbSeparator = " > "

// flattener turns content into records, enforcing id uniqueness across everything it sees.
type flattener struct {
	maxDepth int
	records  []record.Record
	seen     map[string]struct{}

	// current root-to-folder walk
	pathIDs   []string
	pathNames []string
	onPath    map[string]struct{}
}

func newFlattener(maxDepth int) *flattener {
	return &flattener{
		maxDepth: maxDepth,
		seen:     make(map[string]struct{}),
		onPath:   make(map[string]struct{}),
	}
}

// folders walks the trees depth-first, emitting each folder before its items and sub-folders.
func (f *flattener) folders(roots []content.Folder) error {
	for i := range roots {
		if err := f.folder(&roots[i], 1); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) folder(node *content.Folder, depth int) error {
	if f.maxDepth > 0 && depth > f.maxDepth {
		return fmt.Errorf("folder %q at depth %d (max %d): %w", node.ID, depth, f.maxDepth, domain.ErrMaxDepthExceeded)
	}
	if _, loop := f.onPath[node.ID]; loop {
		return domain.NewCycleError(append(append([]string(nil), f.pathIDs...), node.ID))
	}

	parentID := ""
	if n := len(f.pathIDs); n > 0 {
		parentID = f.pathIDs[n-1]
	}

	f.pathNames = append(f.pathNames, node.Name)
	breadcrumb := strings.Join(f.pathNames, BreadcrumbSeparator)
	err := f.add(node.ID, kind.Folder, node.Name, breadcrumb, node.Description, node.Category, parentID, node.Tags)
	if err != nil {
		f.pathNames = f.pathNames[:len(f.pathNames)-1]
		return err
	}

	f.pathIDs = append(f.pathIDs, node.ID)
	f.onPath[node.ID] = struct{}{}
	defer func() {
		delete(f.onPath, node.ID)
		f.pathIDs = f.pathIDs[:len(f.pathIDs)-1]
		f.pathNames = f.pathNames[:len(f.pathNames)-1]
	}()

	for i := range node.Items {
		it := &node.Items[i]
		if err := f.add(it.ID, kind.Item, it.Name, it.Content, it.Description, it.Category, node.ID, it.Tags); err != nil {
			return err
		}
	}
	for i := range node.Children {
		if err := f.folder(&node.Children[i], depth+1); err != nil {
			return err
		}
	}
	return nil
}

// shared maps flat entries one to one.
func (f *flattener) shared(entries []content.SharedEntry) error {
	for i := range entries {
		e := &entries[i]
		if err := f.add(e.ID, kind.Shared, e.Title, e.Content, e.Description, e.Category, "", e.Tags); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) add(
	id string, k kind.Kind,
	displayName, body, description, category, parentID string,
	tags []string,
) error {
	if _, dup := f.seen[id]; dup {
		return fmt.Errorf("%s %q: %w", k, id, domain.ErrDuplicateID)
	}
	r, err := record.New(id, k, displayName, body, description, category, parentID, tags)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
	}
	f.seen[id] = struct{}{}
	f.records = append(f.records, r)
	return nil
}
