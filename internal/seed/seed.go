// Package seed reads content snapshots from disk.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/foldex/internal/domain/content"
)

// Load reads a snapshot file. Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func Load(path string) (content.Snapshot, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return content.Snapshot{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a snapshot. ext selects the format the same way Load does.
func Parse(data []byte, ext string) (content.Snapshot, error) {
	var snap content.Snapshot
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return content.Snapshot{}, fmt.Errorf("parse yaml seed: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return content.Snapshot{}, fmt.Errorf("parse json seed: %w", err)
		}
	}
	return snap, nil
}
