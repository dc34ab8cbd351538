package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"filesort/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckRootNamesTarget(t *testing.T) {
	result := CheckRoot(t.TempDir())
	if !result.Passed || result.Name != "Target directory" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "categories.yaml")
	if err := os.WriteFile(f, []byte("categories: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckReadableFile("Categories file", f); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckReadableFile("Categories file", dir); r.Passed {
		t.Fatal("expected failure for directory")
	}
	if r := CheckReadableFile("Categories file", filepath.Join(dir, "missing.yaml")); r.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestRunAllCreatesDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Organize.CategoriesFile = filepath.Join(base, "missing.toml")

	results := RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %+v", results)
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Categories file" {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	if _, err := os.Stat(cfg.Paths.StateDir); err != nil {
		t.Fatalf("state dir not created: %v", err)
	}
}
