// Package cleanup removes the empty subdirectories a recursive organize pass
// leaves behind.
package cleanup

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"filesort/internal/logging"
)

// Result contains the outcome of an empty-directory cleanup.
type Result struct {
	Removed []string
	Errors  []Error
}

// Error pairs a directory path with its cleanup error.
type Error struct {
	Path  string
	Error error
}

// RemoveEmptyParents deletes the directories between each of files and root
// that are empty after the files moved out, deepest first, so a chain of
// directories emptied by a pass disappears entirely. Directories that held
// none of files are never touched, even when empty. root itself and any
// directory for which keep returns true are never removed; os.Remove refuses
// directories that still hold anything.
func RemoveEmptyParents(ctx context.Context, root string, files []string, keep func(path string) bool, logger *slog.Logger) Result {
	result := Result{}

	root = strings.TrimSpace(root)
	if root == "" || len(files) == 0 {
		return result
	}
	root = filepath.Clean(root)
	if logger == nil {
		logger = logging.NewNop()
	}

	seen := make(map[string]struct{})
	var dirs []string
	for _, file := range files {
		for dir := filepath.Dir(filepath.Clean(file)); dir != root; dir = filepath.Dir(dir) {
			rel, err := filepath.Rel(root, dir)
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				break
			}
			if _, ok := seen[dir]; ok {
				break
			}
			seen[dir] = struct{}{}
			if keep != nil && keep(dir) {
				continue
			}
			dirs = append(dirs, dir)
		}
	}

	// Deeper paths sort after their parents; reversing visits children first.
	slices.SortFunc(dirs, func(a, b string) int {
		if da, db := strings.Count(a, string(filepath.Separator)), strings.Count(b, string(filepath.Separator)); da != db {
			return da - db
		}
		return strings.Compare(a, b)
	})
	slices.Reverse(dirs)
	for _, dir := range dirs {
		if ctx.Err() != nil {
			break
		}
		err := os.Remove(dir)
		switch {
		case err == nil:
			result.Removed = append(result.Removed, dir)
			logger.Debug("removed empty directory",
				logging.String("path", dir),
				logging.String(logging.FieldEventType, "empty_dir_removed"),
			)
		case errors.Is(err, syscall.ENOTEMPTY), errors.Is(err, syscall.EEXIST), errors.Is(err, fs.ErrNotExist):
			// Still holds files, or already gone.
		default:
			result.Errors = append(result.Errors, Error{Path: dir, Error: err})
			logging.WarnWithContext(logger, "failed to remove empty directory", "empty_dir_cleanup_failed",
				logging.String("path", dir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the parent directory"),
				logging.String(logging.FieldImpact, "an empty directory remains in the tree"),
			)
		}
	}
	return result
}
