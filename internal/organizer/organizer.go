package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"filesort/internal/category"
	"filesort/internal/fileutil"
	"filesort/internal/logging"
)

// Engine classifies and moves files. It holds no state between calls and may
// be reused for any number of Organize passes.
type Engine struct {
	table        *category.Table
	logger       *slog.Logger
	now          func() time.Time
	move         func(src, dst string) error
	onRecord     func(Record)
	onDiagnostic func(Diagnostic)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger; the engine tags it with component=organizer.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logging.NewComponentLogger(logger, "organizer") }
}

// WithClock overrides the timestamp source for records and diagnostics.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRecordHook streams each record to fn as soon as its move succeeds.
func WithRecordHook(fn func(Record)) Option {
	return func(e *Engine) { e.onRecord = fn }
}

// WithDiagnosticHook streams each diagnostic to fn as soon as it is raised.
func WithDiagnosticHook(fn func(Diagnostic)) Option {
	return func(e *Engine) { e.onDiagnostic = fn }
}

// New constructs an engine for the given table. A nil table selects the
// built-in categories.
func New(table *category.Table, opts ...Option) *Engine {
	if table == nil {
		table = category.Default("")
	}
	e := &Engine{
		table:  table,
		logger: logging.NewComponentLogger(nil, "organizer"),
		now:    time.Now,
		move:   fileutil.MoveFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the category table the engine classifies with.
func (e *Engine) Table() *category.Table {
	return e.table
}

// Organize runs one pass over req.Root. Per-file failures are returned as
// diagnostics in the result. The returned error is non-nil only when the root
// cannot be enumerated (ErrFatalScan, with an empty record list) or when ctx
// is cancelled between files (records processed so far are kept).
func (e *Engine) Organize(ctx context.Context, req Request) (Result, error) {
	runID, ok := logging.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, e.logger)

	res := Result{
		RunID:       runID,
		Recursive:   req.Recursive,
		Extensions:  normalizeAllowList(req.Extensions),
		Records:     []Record{},
		Diagnostics: []Diagnostic{},
		StartedAt:   e.now(),
	}
	root, err := filepath.Abs(req.Root)
	if err != nil {
		res.Root = req.Root
		return e.fatal(logger, res, req.Root, err)
	}
	// WalkDir does not descend into a symlinked root. A root that cannot be
	// resolved is left for scan to report.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	res.Root = root

	logger.Info("organize pass started",
		logging.String("root", root),
		logging.Bool("recursive", req.Recursive),
		logging.Int("extension_filter_count", len(res.Extensions)),
	)

	tasks, err := e.scan(logger, &res, root, req.Recursive)
	if err != nil {
		return e.fatal(logger, res, root, err)
	}
	res.Scanned = len(tasks)

	allowed := make(map[string]struct{}, len(res.Extensions))
	for _, ext := range res.Extensions {
		allowed[ext] = struct{}{}
	}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			logging.WarnWithContext(logger, "organize pass cancelled; remaining files left in place", "organize_cancelled",
				logging.Int("processed", len(res.Records)+res.Failed()),
				logging.Int("scanned", res.Scanned),
				logging.String(logging.FieldImpact, "files after the cancellation point were not organized"),
				logging.String(logging.FieldErrorHint, "rerun organize to finish the directory"),
			)
			res.FinishedAt = e.now()
			return res, err
		}
		e.processTask(logger, &res, root, task, allowed)
	}

	res.FinishedAt = e.now()
	logger.Info("organize pass complete",
		logging.String(logging.FieldEventType, "organize_complete"),
		logging.Int("scanned", res.Scanned),
		logging.Int("moved", len(res.Records)),
		logging.Int("failed", res.Failed()),
		logging.Int("filtered", res.Filtered),
		logging.Int("already_sorted", res.AlreadySorted),
		logging.Duration("duration", res.FinishedAt.Sub(res.StartedAt)),
	)
	return res, nil
}

func (e *Engine) scan(logger *slog.Logger, res *Result, root string, recursive bool) ([]Task, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	if !recursive {
		return scanFlat(root)
	}
	return scanRecursive(root, func(path string, err error) {
		e.report(logger, res, Diagnostic{
			Severity: SeverityWarning,
			Kind:     KindWalk,
			Path:     path,
			Message:  "skipped unreadable entry during recursive scan",
			Detail:   err.Error(),
			Err:      err,
		})
	})
}

// processTask runs the per-file pipeline. Every failure is converted into a
// diagnostic; nothing escapes to the caller.
func (e *Engine) processTask(logger *slog.Logger, res *Result, root string, task Task, allowed map[string]struct{}) {
	if len(allowed) > 0 {
		if _, ok := allowed[task.Extension]; !ok {
			res.Filtered++
			logDecision(logger, "extension_filter", "skip", "extension_not_selected", task)
			return
		}
	}

	cat := e.table.Classify(task.Name)
	destDir := filepath.Join(root, cat)

	if filepath.Dir(task.SourcePath) == destDir {
		res.AlreadySorted++
		logDecision(logger, "self_containment", "skip", "already_in_category_folder", task)
		return
	}

	if err := EnsureDir(destDir); err != nil {
		e.fail(logger, res, task, cat, "could not create category folder", err)
		return
	}

	finalName, err := UniqueName(destDir, task.Name)
	if err != nil {
		e.fail(logger, res, task, cat, "could not pick a free destination name", err)
		return
	}

	if err := e.move(task.SourcePath, filepath.Join(destDir, finalName)); err != nil {
		e.fail(logger, res, task, cat, "could not move file", Wrap(ErrMove, "move", task.Name, err))
		return
	}

	record := Record{
		OriginalName: task.Name,
		Category:     cat,
		MovedTo:      cat + "/" + finalName,
		SourcePath:   task.SourcePath,
		Time:         e.now(),
	}
	res.Records = append(res.Records, record)
	if e.onRecord != nil {
		e.onRecord(record)
	}
	logger.Info("moved file",
		logging.String("original_name", record.OriginalName),
		logging.String("category", record.Category),
		logging.String("moved_to", record.MovedTo),
		logging.Bool("renamed", finalName != task.Name),
	)
}

func (e *Engine) fail(logger *slog.Logger, res *Result, task Task, cat, message string, err error) {
	e.report(logger, res, Diagnostic{
		Severity: SeverityError,
		Kind:     kindOf(err),
		Path:     task.SourcePath,
		Category: cat,
		Message:  message,
		Detail:   err.Error(),
		Err:      err,
	})
}

// fatal records the single diagnostic for an unusable root and clears any
// partial results.
func (e *Engine) fatal(logger *slog.Logger, res Result, root string, err error) (Result, error) {
	wrapped := Wrap(ErrFatalScan, "list root", root, err)
	res.Records = []Record{}
	res.Diagnostics = []Diagnostic{}
	res.Scanned = 0
	e.report(logger, &res, Diagnostic{
		Severity: SeverityError,
		Kind:     KindFatalScan,
		Path:     root,
		Message:  "root directory could not be listed",
		Detail:   wrapped.Error(),
		Err:      wrapped,
	})
	res.FinishedAt = e.now()
	return res, wrapped
}

func (e *Engine) report(logger *slog.Logger, res *Result, diag Diagnostic) {
	if diag.Time.IsZero() {
		diag.Time = e.now()
	}
	res.Diagnostics = append(res.Diagnostics, diag)
	logDiagnostic(logger, diag)
	if e.onDiagnostic != nil {
		e.onDiagnostic(diag)
	}
}

func normalizeAllowList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		ext := category.NormalizeExtension(value)
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}
