package record

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
)

func TestNew_Valid(t *testing.T) {
	r, err := New("i1", kind.Item, "Kimchi Stew", "spicy stew", "desc", "food", "f1", []string{"korean", "soup"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID() != "i1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Kind() != kind.Item {
		t.Errorf("Kind() = %q", r.Kind())
	}
	if r.DisplayName() != "Kimchi Stew" || r.Body() != "spicy stew" || r.Description() != "desc" {
		t.Errorf("unexpected text fields: %q %q %q", r.DisplayName(), r.Body(), r.Description())
	}
	if r.Category() != "food" || r.ParentID() != "f1" {
		t.Errorf("Category() = %q, ParentID() = %q", r.Category(), r.ParentID())
	}
	if len(r.Tags()) != 2 {
		t.Errorf("Tags() = %v", r.Tags())
	}
}

func TestNew_EmptyID(t *testing.T) {
	if _, err := New("", kind.Folder, "x", "", "", "", "", nil); err == nil {
		t.Fatal("expected error for empty ID")
	}
}

func TestNew_IDTooLong(t *testing.T) {
	if _, err := New(strings.Repeat("a", MaxIDLength+1), kind.Folder, "x", "", "", "", "", nil); err == nil {
		t.Fatal("expected error for long ID")
	}
}

func TestNew_InvalidKind(t *testing.T) {
	if _, err := New("x", kind.Kind("bogus"), "x", "", "", "", "", nil); err == nil {
		t.Fatal("expected error for invalid kind")
	}
}

func TestNew_NilTagsBecomeEmpty(t *testing.T) {
	r, err := New("x", kind.Shared, "x", "", "", "", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Tags() == nil {
		t.Fatal("Tags() must never be nil")
	}
	if len(r.Tags()) != 0 {
		t.Errorf("Tags() = %v, want empty", r.Tags())
	}
}

func TestNew_TagsCopied(t *testing.T) {
	tags := []string{"a", "", "b"}
	r, err := New("x", kind.Item, "x", "", "", "", "", tags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tags[0] = "mutated"
	if r.Tags()[0] != "a" {
		t.Errorf("tags aliased caller slice: %v", r.Tags())
	}
	if len(r.Tags()) != 2 {
		t.Errorf("empty tags should be dropped: %v", r.Tags())
	}
}
