package kind

import "testing"

func TestParse(t *testing.T) {
	for _, s := range []string{"folder", "item", "shared"} {
		k, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if string(k) != s {
			t.Errorf("Parse(%q) = %q", s, k)
		}
	}

	for _, s := range []string{"", "all", "Folder", "sharedEntry", "storage"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): expected error", s)
		}
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "all", false},
		{"all", "all", false},
		{"folder", "folder", false},
		{"shared", "shared", false},
		{"bogus", "", true},
	}
	for _, tt := range tests {
		f, err := ParseFilter(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFilter(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFilter(%q): %v", tt.in, err)
		}
		if f.String() != tt.want {
			t.Errorf("ParseFilter(%q).String() = %q, want %q", tt.in, f.String(), tt.want)
		}
	}
}

func TestFilter_Matches(t *testing.T) {
	anyKind := Any()
	for _, k := range []Kind{Folder, Item, Shared} {
		if !anyKind.Matches(k) {
			t.Errorf("Any() should match %q", k)
		}
	}

	only := Only(Item)
	if !only.Matches(Item) {
		t.Error("Only(Item) should match Item")
	}
	if only.Matches(Folder) || only.Matches(Shared) {
		t.Error("Only(Item) should not match other kinds")
	}

	if k, ok := only.Kind(); !ok || k != Item {
		t.Errorf("Kind() = %q, %v", k, ok)
	}
	if _, ok := anyKind.Kind(); ok {
		t.Error("Any().Kind() should report false")
	}
}
