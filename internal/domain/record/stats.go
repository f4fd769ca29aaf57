package record

import "github.com/kailas-cloud/foldex/internal/domain/record/kind"

// Stats counts a record set by kind.
type Stats struct {
	TotalItems    int
	Folders       int
	StorageItems  int
	SharedFolders int
}

// Count tallies records by kind.
func Count(records []Record) Stats {
	s := Stats{TotalItems: len(records)}
	for i := range records {
		switch records[i].Kind() {
		case kind.Folder:
			s.Folders++
		case kind.Item:
			s.StorageItems++
		case kind.Shared:
			s.SharedFolders++
		}
	}
	return s
}
