// Package content defines the shapes upstream stores push into the indexer.
package content

// Folder is a node of a user's folder tree.
type Folder struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Items       []Item   `json:"items,omitempty" yaml:"items,omitempty"`
	Children    []Folder `json:"children,omitempty" yaml:"children,omitempty"`
}

// Item is a leaf stored inside a folder.
type Item struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Content     string   `json:"content,omitempty" yaml:"content,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// SharedEntry is a flat shared-content record.
type SharedEntry struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Content     string   `json:"content,omitempty" yaml:"content,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Snapshot is a full content dump: a folder tree plus shared entries.
type Snapshot struct {
	Folders []Folder      `json:"folders" yaml:"folders"`
	Shared  []SharedEntry `json:"shared" yaml:"shared"`
}
