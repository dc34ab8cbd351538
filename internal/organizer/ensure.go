package organizer

import (
	"errors"
	"io/fs"
	"os"
)

// EnsureDir creates path and any missing parents. An existing directory is a
// no-op; an existing non-directory entry is an ErrDirectoryCreate failure.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return Wrap(ErrDirectoryCreate, "ensure directory", path+" exists and is not a directory", nil)
	case !errors.Is(err, fs.ErrNotExist):
		return Wrap(ErrDirectoryCreate, "ensure directory", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Wrap(ErrDirectoryCreate, "ensure directory", path, err)
	}
	return nil
}
