package category

import (
	"os"
	"path/filepath"
	"testing"

	"filesort/internal/config"
)

func writeTableFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeTableFile(t, "cats.yaml", `
catch_all: Unsorted
categories:
  - name: Pictures
    extensions: [".jpg", "PNG"]
  - name: Books
    extensions: [".epub"]
`)
	table, err := LoadFile(path, "Others")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := table.Classify("cover.png"); got != "Pictures" {
		t.Fatalf("unexpected category %q", got)
	}
	if got := table.Classify("novel.epub"); got != "Books" {
		t.Fatalf("unexpected category %q", got)
	}
	if table.CatchAll() != "Unsorted" {
		t.Fatalf("expected file catch-all, got %q", table.CatchAll())
	}
}

func TestLoadFileTOMLUsesFallbackCatchAll(t *testing.T) {
	path := writeTableFile(t, "cats.toml", `
[[categories]]
name = "Code"
extensions = [".go", ".rs"]
`)
	table, err := LoadFile(path, "Leftovers")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := table.Classify("main.go"); got != "Code" {
		t.Fatalf("unexpected category %q", got)
	}
	if got := table.Classify("a.jpg"); got != "Leftovers" {
		t.Fatalf("unexpected catch-all %q", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	cases := map[string]string{
		"cats.json":  `{"categories": []}`,
		"empty.yaml": "catch_all: Others\n",
		"bad.toml":   "[[categories]]\nname = \"A\"\ncolour = \"red\"\n",
		"bad.yml":    "categories:\n  - nme: A\n",
	}
	for name, body := range cases {
		path := writeTableFile(t, name, body)
		if _, err := LoadFile(path, "Others"); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "Others"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	table, err := FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig default: %v", err)
	}
	if table.Classify("a.zip") != "Archives" {
		t.Fatal("expected built-in table")
	}

	cfg.Organize.CatchAll = "Rest"
	cfg.Categories = []config.Category{{Name: "Sheets", Extensions: []string{".csv"}}}
	table, err = FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig inline: %v", err)
	}
	if table.Classify("a.csv") != "Sheets" || table.Classify("a.zip") != "Rest" {
		t.Fatalf("unexpected inline table: %v", table.Names())
	}

	cfg.Categories = nil
	cfg.Organize.CategoriesFile = writeTableFile(t, "cats.yml", "categories:\n  - name: Audio\n    extensions: [.flac]\n")
	table, err = FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig file: %v", err)
	}
	if table.Classify("a.flac") != "Audio" || table.CatchAll() != "Rest" {
		t.Fatalf("unexpected file table: %v", table.Names())
	}
}
