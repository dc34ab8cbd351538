package organizer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFatalScan marks a root directory that is missing, not a directory, or unreadable.
	ErrFatalScan = errors.New("scan failed")
	// ErrDirectoryCreate marks a category folder that could not be created.
	ErrDirectoryCreate = errors.New("directory create failed")
	// ErrResolve marks a failure while probing for a free destination name.
	ErrResolve = errors.New("name resolution failed")
	// ErrMove marks a file that could not be moved; the source is left in place.
	ErrMove = errors.New("move failed")
)

// Wrap builds an error that carries operation context and is tagged with
// marker for errors.Is classification. marker should be one of the exported
// sentinels above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrMove
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "organizer failure"
	}
	return strings.Join(parts, ": ")
}

// kindOf maps a per-file error to its diagnostic kind.
func kindOf(err error) DiagnosticKind {
	switch {
	case errors.Is(err, ErrFatalScan):
		return KindFatalScan
	case errors.Is(err, ErrDirectoryCreate):
		return KindDirectoryCreate
	case errors.Is(err, ErrResolve):
		return KindResolve
	default:
		return KindMove
	}
}
