package organizer

import (
	"path/filepath"
	"testing"
)

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name      string
		existing  []string
		candidate string
		want      string
	}{
		{name: "free", candidate: "a.jpg", want: "a.jpg"},
		{name: "one collision", existing: []string{"a.jpg"}, candidate: "a.jpg", want: "a(1).jpg"},
		{name: "several collisions", existing: []string{"a.jpg", "a(1).jpg", "a(2).jpg"}, candidate: "a.jpg", want: "a(3).jpg"},
		{name: "gap is reused", existing: []string{"a.jpg", "a(2).jpg"}, candidate: "a.jpg", want: "a(1).jpg"},
		{name: "no extension", existing: []string{"Makefile"}, candidate: "Makefile", want: "Makefile(1)"},
		{name: "multi dot keeps last extension", existing: []string{"backup.tar.gz"}, candidate: "backup.tar.gz", want: "backup.tar(1).gz"},
		{name: "dotfile", existing: []string{".bashrc"}, candidate: ".bashrc", want: ".bashrc(1)"},
		{name: "extension case kept", existing: []string{"IMG.JPG"}, candidate: "IMG.JPG", want: "IMG(1).JPG"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tc.existing {
				writeFile(t, filepath.Join(dir, name), name)
			}
			got, err := UniqueName(dir, tc.candidate)
			if err != nil {
				t.Fatalf("UniqueName: %v", err)
			}
			if got != tc.want {
				t.Fatalf("UniqueName(%q) = %q, want %q", tc.candidate, got, tc.want)
			}
		})
	}
}

func TestUniqueNameMissingDirectoryIsFree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	got, err := UniqueName(dir, "x.txt")
	if err != nil || got != "x.txt" {
		t.Fatalf("UniqueName = %q, %v", got, err)
	}
}
