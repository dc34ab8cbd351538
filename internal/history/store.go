package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"filesort/internal/config"
	"filesort/internal/organizer"
)

// ErrRunNotFound is returned when no stored run matches an identifier.
var ErrRunNotFound = errors.New("run not found")

// ErrAmbiguousRun is returned when a run ID prefix matches more than one run.
var ErrAmbiguousRun = errors.New("run id prefix is ambiguous")

// Store manages move history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at cfg.HistoryPath().
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(context.Background(), cfg.HistoryPath())
}

// OpenPath opens the database at an explicit path, creating it when missing.
func OpenPath(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps PRAGMA foreign_keys in effect for every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun stores a finished pass with its moves and diagnostics in one
// transaction. Fatal scans are stored too, so failed invocations show up in
// the history listing.
func (s *Store) RecordRun(ctx context.Context, res organizer.Result) error {
	if res.RunID == "" {
		return errors.New("record run: missing run id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var fatal string
	for _, d := range res.Diagnostics {
		if d.Kind == organizer.KindFatalScan {
			fatal = d.Detail
			break
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, root, recursive, extensions, started_at, finished_at,
            scanned, moved, failed, filtered, already_sorted, fatal_error
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID,
		res.Root,
		boolToInt(res.Recursive),
		joinExtensions(res.Extensions),
		formatTime(res.StartedAt),
		formatTime(res.FinishedAt),
		res.Scanned,
		len(res.Records),
		res.Failed(),
		res.Filtered,
		res.AlreadySorted,
		nullableString(fatal),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, rec := range res.Records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO moves (run_id, seq, original_name, category, moved_to, source_path, moved_at)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			res.RunID, i, rec.OriginalName, rec.Category, rec.MovedTo,
			nullableString(rec.SourcePath), formatTime(rec.Time),
		); err != nil {
			return fmt.Errorf("insert move %q: %w", rec.OriginalName, err)
		}
	}

	for i, d := range res.Diagnostics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diagnostics (run_id, seq, severity, kind, path, category, message, detail, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			res.RunID, i, string(d.Severity), string(d.Kind), nullableString(d.Path),
			nullableString(d.Category), d.Message, nullableString(d.Detail), formatTime(d.Time),
		); err != nil {
			return fmt.Errorf("insert diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = `id, root, recursive, extensions, started_at, finished_at,
    scanned, moved, failed, filtered, already_sorted, fatal_error`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run        Run
		recursive  int
		extensions sql.NullString
		started    string
		finished   string
		fatal      sql.NullString
	)
	if err := row.Scan(
		&run.ID, &run.Root, &recursive, &extensions, &started, &finished,
		&run.Scanned, &run.Moved, &run.Failed, &run.Filtered, &run.AlreadySorted, &fatal,
	); err != nil {
		return Run{}, err
	}
	run.Recursive = recursive != 0
	run.Extensions = splitExtensions(extensions.String)
	run.FatalError = fatal.String
	var err error
	if run.StartedAt, err = parseTimeString(started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = parseTimeString(finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FindRun looks up a run by full ID or by a unique ID prefix, such as the
// eight characters shown in console logs.
func (s *Store) FindRun(ctx context.Context, idOrPrefix string) (Run, error) {
	if idOrPrefix == "" {
		return Run{}, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id = ? DESC LIMIT 2`,
		idOrPrefix, len(idOrPrefix), idOrPrefix, idOrPrefix,
	)
	if err != nil {
		return Run{}, fmt.Errorf("find run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("find run: %w", err)
	}
	switch {
	case len(matches) == 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case matches[0].ID == idOrPrefix || len(matches) == 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousRun, idOrPrefix)
	}
}

// Moves returns the records of a run in processing order.
func (s *Store) Moves(ctx context.Context, runID string) ([]organizer.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT original_name, category, moved_to, source_path, moved_at
         FROM moves WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	records := []organizer.Record{}
	for rows.Next() {
		var (
			rec    organizer.Record
			source sql.NullString
			moved  string
		)
		if err := rows.Scan(&rec.OriginalName, &rec.Category, &rec.MovedTo, &source, &moved); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		rec.SourcePath = source.String
		if rec.Time, err = parseTimeString(moved); err != nil {
			return nil, fmt.Errorf("parse moved_at: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Diagnostics returns the diagnostics of a run in processing order.
func (s *Store) Diagnostics(ctx context.Context, runID string) ([]organizer.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT severity, kind, path, category, message, detail, created_at
         FROM diagnostics WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	defer rows.Close()

	diags := []organizer.Diagnostic{}
	for rows.Next() {
		var (
			d                      organizer.Diagnostic
			severity, kind         string
			path, category, detail sql.NullString
			created                string
		)
		if err := rows.Scan(&severity, &kind, &path, &category, &d.Message, &detail, &created); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		d.Severity = organizer.Severity(severity)
		d.Kind = organizer.DiagnosticKind(kind)
		d.Path = path.String
		d.Category = category.String
		d.Detail = detail.String
		if d.Time, err = parseTimeString(created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		diags = append(diags, d)
	}
	return diags, rows.Err()
}

// Prune deletes all but the newest keep runs and returns how many were removed.
// keep <= 0 removes every run.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if keep <= 0 {
		res, err = s.db.ExecContext(ctx, `DELETE FROM runs`)
	} else {
		res, err = s.db.ExecContext(ctx,
			`DELETE FROM runs WHERE id NOT IN (
                SELECT id FROM runs ORDER BY started_at DESC, id LIMIT ?
            )`, keep)
	}
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
