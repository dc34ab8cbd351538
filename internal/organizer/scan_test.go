package organizer

import (
	"path/filepath"
	"testing"
)

func TestScanFlatSortedRegularFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "a.JPG"), "a")
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "c")

	tasks, err := scanFlat(root)
	if err != nil {
		t.Fatalf("scanFlat: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("tasks = %+v", tasks)
	}
	if tasks[0].Name != "a.JPG" || tasks[0].Extension != ".jpg" {
		t.Fatalf("first task = %+v", tasks[0])
	}
	if tasks[1].SourcePath != filepath.Join(root, "b.txt") {
		t.Fatalf("second task = %+v", tasks[1])
	}
}

func TestScanRecursiveListsWholeTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z.txt"), "z")
	writeFile(t, filepath.Join(root, "a", "b", "deep.png"), "d")

	var skipped []string
	tasks, err := scanRecursive(root, func(path string, err error) { skipped = append(skipped, path) })
	if err != nil {
		t.Fatalf("scanRecursive: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if len(tasks) != 2 || tasks[0].Name != "deep.png" || tasks[1].Name != "z.txt" {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestNormalizeAllowList(t *testing.T) {
	got := normalizeAllowList([]string{"JPG", ".jpg", " .Txt ", "", "."})
	if len(got) != 2 || got[0] != ".jpg" || got[1] != ".txt" {
		t.Fatalf("normalizeAllowList = %v", got)
	}
	if normalizeAllowList(nil) != nil {
		t.Fatal("empty allow-list should stay nil")
	}
}
