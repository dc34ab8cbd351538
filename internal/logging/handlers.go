package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// FieldSessionID identifies a long-lived process such as a watcher.
const FieldSessionID = "session_id"

const (
	// Console lines use the same second-resolution layout as the CSV move log.
	consoleTimeLayout = "2006-01-02 15:04:05"
	// JSON lines keep milliseconds so several passes within one second stay ordered.
	jsonTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(consoleTimeLayout)
}

// newJSONHandler writes one object per line to the activity log. Empty string
// attributes are dropped; most of them are optional fields such as the
// category of a file that failed before classification.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				if len(groups) == 0 && attr.Value.Kind() == slog.KindTime {
					return slog.String("ts", attr.Value.Time().UTC().Format(jsonTimeLayout))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
				return attr
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
				return attr
			}
			if attr.Value.Kind() == slog.KindString && attr.Value.String() == "" {
				return slog.Attr{}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}

// sessionHandler stamps every record with the session of the process that
// wrote it, so lines from one watcher can be told apart from one-shot runs
// sharing the same log file.
type sessionHandler struct {
	base    slog.Handler
	session slog.Attr
}

func newSessionHandler(base slog.Handler, sessionID string) slog.Handler {
	if base == nil {
		return NoopHandler{}
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return base
	}
	return &sessionHandler{base: base, session: slog.String(FieldSessionID, sessionID)}
}

func (h *sessionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *sessionHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(h.session)
	return h.base.Handle(ctx, record)
}

func (h *sessionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sessionHandler{base: h.base.WithAttrs(attrs), session: h.session}
}

func (h *sessionHandler) WithGroup(name string) slog.Handler {
	return &sessionHandler{base: h.base.WithGroup(name), session: h.session}
}
