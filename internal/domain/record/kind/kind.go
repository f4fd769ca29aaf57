package kind

import "fmt"

// Kind is the closed set of indexed entity types.
type Kind string

// Kind constants.
const (
	Folder Kind = "folder"
	Item   Kind = "item"
	// Shared is a flat shared-content entry.
	Shared Kind = "shared"
)

// all is the filter keyword that disables kind filtering.
const all = "all"

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case Folder, Item, Shared:
		return true
	default:
		return false
	}
}

// Parse converts a string into a Kind.
func Parse(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid kind %q", s)
	}
	return k, nil
}

// Filter restricts results to a single kind. The zero value matches every kind.
type Filter struct {
	kind Kind
}

// Any returns a filter that matches every kind.
func Any() Filter { return Filter{} }

// Only returns a filter that matches k alone.
func Only(k Kind) Filter { return Filter{kind: k} }

// ParseFilter accepts a kind name, "all" or the empty string.
func ParseFilter(s string) (Filter, error) {
	if s == "" || s == all {
		return Any(), nil
	}
	k, err := Parse(s)
	if err != nil {
		return Filter{}, err
	}
	return Only(k), nil
}

// Matches reports whether k passes the filter.
func (f Filter) Matches(k Kind) bool {
	return f.kind == "" || f.kind == k
}

// Kind returns the filtered kind and false when the filter matches everything.
func (f Filter) Kind() (Kind, bool) {
	return f.kind, f.kind != ""
}

func (f Filter) String() string {
	if f.kind == "" {
		return all
	}
	return string(f.kind)
}
