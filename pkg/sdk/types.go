package foldex

// Kind distinguishes record types.
type Kind string

// Kind constants.
const (
	KindFolder Kind = "folder"
	KindItem   Kind = "item"
	KindShared Kind = "shared"
)

// Folder is a node of a folder tree.
type Folder struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Items       []Item   `json:"items,omitempty"`
	Children    []Folder `json:"children,omitempty"`
}

// Item is a leaf stored inside a folder. Content is indexed as the body; URL is not indexed.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Content     string   `json:"content,omitempty"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// SharedEntry is a flat shared-content record.
type SharedEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content,omitempty"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Snapshot is a folder forest plus shared entries, indexed together.
type Snapshot struct {
	Folders []Folder      `json:"folders"`
	Shared  []SharedEntry `json:"shared"`
}

// Record is one searchable entry.
type Record struct {
	ID          string
	Kind        Kind
	DisplayName string
	Body        string
	Description string
	Category    string
	ParentID    string
	Tags        []string
}

// ScoredRecord is a record with its fused relevance score.
type ScoredRecord struct {
	Record
	Score float64
}

// SearchOptions narrows a search. A nil *SearchOptions uses the defaults.
type SearchOptions struct {
	// Kind keeps only records of this kind. Empty keeps all.
	Kind Kind
	// Category keeps only records with this exact category. Empty keeps all.
	Category string
	// Limit caps the result count. Zero means 20; values above 100 are clamped.
	Limit int
	// UseScriptAwareMatching enables the jamo-aware route for Hangul queries.
	// Nil means enabled.
	UseScriptAwareMatching *bool
}

// Stats counts the indexed records by kind.
type Stats struct {
	TotalItems    int
	Folders       int
	StorageItems  int
	SharedFolders int
}

// HealthStatus represents the engine health.
type HealthStatus struct {
	Status     string            // "ok", "degraded", "error"
	Checks     map[string]string // component -> "ok"/"error"
	Generation uint64
	Records    int
}
