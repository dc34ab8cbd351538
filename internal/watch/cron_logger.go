package watch

import (
	"log/slog"

	"filesort/internal/logging"
)

// cronLogger adapts slog to the logger interface robfig/cron expects.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	attrs := []logging.Attr{
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "see the error for the failing scheduled pass"),
	}
	if len(keysAndValues) > 0 {
		attrs = append(attrs, logging.Any("cron", keysAndValues))
	}
	logging.ErrorWithContext(l.logger, "cron: "+msg, "cron_error", attrs...)
}
