package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"filesort/internal/category"
)

// maxCollisionSuffix bounds the probe loop in UniqueName.
const maxCollisionSuffix = 100000

// UniqueName returns candidate if dir has no entry by that name, otherwise the
// first free "stem(N)ext" with N counting up from 1. Only a single caller per
// directory is supported; the name can be taken between this call and the move.
func UniqueName(dir, candidate string) (string, error) {
	stem, ext := category.SplitName(candidate)
	name := candidate
	for n := 1; n <= maxCollisionSuffix; n++ {
		taken, err := entryExists(filepath.Join(dir, name))
		if err != nil {
			return "", Wrap(ErrResolve, "probe destination", name, err)
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s(%d)%s", stem, n, ext)
	}
	return "", Wrap(ErrResolve, "probe destination", fmt.Sprintf("no free name for %q after %d attempts", candidate, maxCollisionSuffix), nil)
}

// entryExists uses Lstat so dangling symlinks count as taken.
func entryExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
