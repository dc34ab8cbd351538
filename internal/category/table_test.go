package category

import (
	"strings"
	"testing"
)

func TestClassifyDefaultTable(t *testing.T) {
	table := Default("")
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", "Images"},
		{"PHOTO.JPEG", "Images"},
		{"report.Pdf", "Documents"},
		{"notes.txt", "Documents"},
		{"clip.MKV", "Videos"},
		{"song.mp3", "Music"},
		{"backup.tar.gz", "Archives"},
		{"deploy.sh", "Scripts"},
		{"README", "Others"},
		{".bashrc", "Others"},
		{"weird.", "Others"},
		{"data.parquet", "Others"},
		{"", "Others"},
	}
	for _, tc := range tests {
		if got := table.Classify(tc.name); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLookupAcceptsBareAndDottedExtensions(t *testing.T) {
	table := Default("")
	for _, ext := range []string{".png", "png", "PNG", " .Png "} {
		if got := table.Lookup(ext); got != "Images" {
			t.Fatalf("Lookup(%q) = %q, want Images", ext, got)
		}
	}
	if got := table.Lookup(""); got != DefaultCatchAll {
		t.Fatalf("Lookup(\"\") = %q, want catch-all", got)
	}
}

func TestNewTableFirstMatchWins(t *testing.T) {
	table, err := NewTable([]Rule{
		{Name: "Text", Extensions: []string{".txt", ".md"}},
		{Name: "Notes", Extensions: []string{".TXT", ".org"}},
	}, "Misc")
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if got := table.Classify("a.txt"); got != "Text" {
		t.Fatalf("expected first rule to win, got %q", got)
	}
	if got := table.Classify("a.org"); got != "Notes" {
		t.Fatalf("expected Notes for .org, got %q", got)
	}
	rules := table.Rules()
	if got := strings.Join(rules[1].Extensions, ","); got != ".org" {
		t.Fatalf("expected duplicate extension dropped from later rule, got %q", got)
	}
	if last := rules[len(rules)-1]; last.Name != "Misc" || len(last.Extensions) != 0 {
		t.Fatalf("expected catch-all last with no extensions, got %+v", last)
	}
}

func TestNewTableDropsEmptyCatchAllRule(t *testing.T) {
	table, err := NewTable([]Rule{
		{Name: "Images", Extensions: []string{".jpg"}},
		{Name: "Others"},
	}, "Others")
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if got := strings.Join(table.Names(), ","); got != "Images,Others" {
		t.Fatalf("unexpected names: %q", got)
	}
}

func TestNewTableRejectsInvalidRules(t *testing.T) {
	cases := map[string]struct {
		rules    []Rule
		catchAll string
	}{
		"empty catch-all": {nil, ""},
		"empty name":      {[]Rule{{Name: " "}}, "Others"},
		"duplicate name":  {[]Rule{{Name: "A"}, {Name: "a"}}, "Others"},
		"nested name":     {[]Rule{{Name: "a/b"}}, "Others"},
		"dot name":        {[]Rule{{Name: ".."}}, "Others"},
	}
	for name, tc := range cases {
		if _, err := NewTable(tc.rules, tc.catchAll); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTableIsImmutable(t *testing.T) {
	table := Default("")
	rules := table.Rules()
	rules[0].Extensions[0] = ".xyz"
	if table.Lookup(".jpg") != "Images" {
		t.Fatal("mutating Rules() result must not affect the table")
	}
	if table.IsCategory("xyz") || !table.IsCategory("Images") || !table.IsCategory("Others") {
		t.Fatal("unexpected IsCategory result")
	}
}

func TestExtensionsSorted(t *testing.T) {
	exts := Default("").Extensions()
	for i := 1; i < len(exts); i++ {
		if exts[i-1] > exts[i] {
			t.Fatalf("extensions not sorted: %v", exts)
		}
	}
	if len(exts) != 27 {
		t.Fatalf("expected 27 built-in extensions, got %d", len(exts))
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, stem, ext string
	}{
		{"photo.JPG", "photo", ".JPG"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{".bashrc", ".bashrc", ""},
		{".hidden.txt", ".hidden", ".txt"},
		{"README", "README", ""},
		{"trailing.", "trailing", "."},
	}
	for _, tc := range tests {
		stem, ext := SplitName(tc.in)
		if stem != tc.stem || ext != tc.ext {
			t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)", tc.in, stem, ext, tc.stem, tc.ext)
		}
	}
}
