package organizer

import (
	"io/fs"
	"os"
	"path/filepath"

	"filesort/internal/category"
)

// scanFlat lists the regular files directly below root in name order.
func scanFlat(root string) ([]Task, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		tasks = append(tasks, newTask(filepath.Join(root, entry.Name())))
	}
	return tasks, nil
}

// scanRecursive walks root in lexical order and returns every regular file.
// The full list is built before anything moves, so files moved during the pass
// are never rediscovered. Unreadable subdirectories are reported through
// onSkip and skipped; only a failure on root itself is returned.
func scanRecursive(root string, onSkip func(path string, err error)) ([]Task, error) {
	var tasks []Task
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			onSkip(path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			tasks = append(tasks, newTask(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func newTask(path string) Task {
	name := filepath.Base(path)
	return Task{SourcePath: path, Name: name, Extension: category.Extension(name)}
}
