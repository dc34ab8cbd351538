package organizer

import (
	"log/slog"

	"filesort/internal/logging"
)

// diagnosticHints maps each diagnostic kind to the next step an operator should take.
var diagnosticHints = map[DiagnosticKind]string{
	KindFatalScan:       "check that the directory exists and is readable",
	KindWalk:            "check permissions on the skipped subdirectory",
	KindDirectoryCreate: "check write permission on the root and that no file shares the category name",
	KindResolve:         "check permissions on the category folder",
	KindMove:            "check permissions and free space on the destination",
}

func logDiagnostic(logger *slog.Logger, diag Diagnostic) {
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, string(diag.Kind)),
		logging.String(logging.FieldErrorHint, diagnosticHints[diag.Kind]),
		logging.String("path", diag.Path),
	}
	if diag.Category != "" {
		attrs = append(attrs, logging.String("category", diag.Category))
	}
	if diag.Err != nil {
		attrs = append(attrs, logging.Error(diag.Err))
	}

	switch diag.Severity {
	case SeverityError:
		if diag.Kind == KindFatalScan {
			logging.ErrorWithContext(logger, diag.Message, string(diag.Kind), attrs...)
			return
		}
		attrs = append(attrs, logging.String(logging.FieldImpact, "file left in place; the rest of the batch continues"))
		logging.WarnWithContext(logger, diag.Message, string(diag.Kind), attrs...)
	case SeverityWarning:
		logging.WarnWithContext(logger, diag.Message, string(diag.Kind), attrs...)
	default:
		logger.Info(diag.Message, logging.Args(attrs...)...)
	}
}

// logDecision logs why a file was skipped with consistent decision fields.
func logDecision(logger *slog.Logger, decisionType, result, reason string, task Task) {
	attrs := logging.DecisionAttrs(decisionType, result, reason)
	attrs = append(attrs,
		logging.String("file", task.Name),
		logging.String("extension", task.Extension),
	)
	logger.Debug("organize decision", logging.Args(attrs...)...)
}
