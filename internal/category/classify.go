package category

import (
	"path/filepath"
	"strings"
)

// SplitName splits a file name into stem and extension. The extension keeps
// its original case and includes the dot. Leading dots belong to the stem, so
// ".bashrc" has no extension.
func SplitName(name string) (stem, ext string) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return base, ""
	}
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return base, ""
	}
	cut := len(base) - len(trimmed) + idx
	return base[:cut], base[cut:]
}

// Extension returns the case-folded extension of a file name, or "" when the
// name has none.
func Extension(name string) string {
	_, ext := SplitName(name)
	if ext == "" || ext == "." {
		return ""
	}
	return fold(ext)
}
