package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path, including parents, with the given content.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteFiles creates every name below root, using the name as the content.
func WriteFiles(t testing.TB, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), name)
	}
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
