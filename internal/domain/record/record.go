package record

import (
	"fmt"

	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
)

// MaxIDLength is the maximum record identifier length.
const MaxIDLength = 256

// Record is the flat, uniform unit of indexing (immutable value object).
type Record struct {
	id          string
	k           kind.Kind
	displayName string
	body        string
	description string
	category    string
	parentID    string
	tags        []string
}

// New validates and creates a Record.
// ID: non-empty, max 256 chars. Kind: one of the closed set. Nil tags become an empty slice.
func New(
	id string, k kind.Kind,
	displayName, body, description, category, parentID string,
	tags []string,
) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record ID is required")
	}
	if len(id) > MaxIDLength {
		return Record{}, fmt.Errorf("record ID too long (max %d)", MaxIDLength)
	}
	if !k.IsValid() {
		return Record{}, fmt.Errorf("record %q: invalid kind %q", id, k)
	}
	return Reconstruct(id, k, displayName, body, description, category, parentID, tags), nil
}

// Reconstruct creates a Record without validation.
func Reconstruct(
	id string, k kind.Kind,
	displayName, body, description, category, parentID string,
	tags []string,
) Record {
	return Record{
		id:          id,
		k:           k,
		displayName: displayName,
		body:        body,
		description: description,
		category:    category,
		parentID:    parentID,
		tags:        cloneTags(tags),
	}
}

// ID returns the record identifier.
func (r *Record) ID() string { return r.id }

// Kind returns the entity type.
func (r *Record) Kind() kind.Kind { return r.k }

// DisplayName returns the primary label.
func (r *Record) DisplayName() string { return r.displayName }

// Body returns the free-text content (a breadcrumb path for folders).
func (r *Record) Body() string { return r.body }

// Description returns the secondary free text.
func (r *Record) Description() string { return r.description }

// Category returns the classification label.
func (r *Record) Category() string { return r.category }

// ParentID returns the owning folder id, empty for top-level records.
func (r *Record) ParentID() string { return r.parentID }

// Tags returns the short labels. Never nil.
func (r *Record) Tags() []string { return r.tags }

func cloneTags(tags []string) []string {
	c := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			c = append(c, t)
		}
	}
	return c
}
