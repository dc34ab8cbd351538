package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"filesort/internal/cleanup"
	"filesort/internal/config"
	"filesort/internal/export"
	"filesort/internal/logging"
	"filesort/internal/organizer"
	"filesort/internal/preflight"
)

type organizeFlags struct {
	recursive      bool
	extensions     []string
	categoriesFile string
	csvPath        string
	jsonOutput     bool
	noHistory      bool
	pruneEmpty     bool
}

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var flags organizeFlags

	cmd := &cobra.Command{
		Use:   "organize <dir>",
		Short: "Move the files in a directory into category folders",
		Long: `Classify every regular file in <dir> by extension and move it into a
category folder directly below <dir>. Name collisions are resolved by
appending (1), (2), ... to the file stem; nothing is overwritten.

By default only the immediate children of <dir> are organized. With
--recursive every file in the tree is moved up into <dir>'s category folders;
files that already sit in their category folder are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "Organize files in subdirectories too")
	cmd.Flags().StringSliceVarP(&flags.extensions, "ext", "e", nil, "Only organize these extensions (e.g. .jpg,.txt)")
	cmd.Flags().StringVar(&flags.categoriesFile, "categories", "", "Category table file (TOML or YAML) overriding the configured table")
	cmd.Flags().StringVar(&flags.csvPath, "csv", "", "Write the move log as CSV to this file, or to a timestamped file in this directory")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Do not record this run in the history database")
	cmd.Flags().BoolVar(&flags.pruneEmpty, "prune-empty", false, "With --recursive, remove subdirectories emptied by moving their files out")
	return cmd
}

func runOrganize(cmd *cobra.Command, ctx *commandContext, dir string, flags organizeFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	table, err := ctx.categoryTable(flags.categoriesFile)
	if err != nil {
		return err
	}
	root, err := config.ExpandPath(dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}

	req := buildRequest(cmd, cfg, root, flags.recursive, flags.extensions)
	if _, statErr := os.Stat(root); statErr == nil {
		if check := preflight.CheckRoot(root); !check.Passed {
			fmt.Fprintln(cmd.ErrOrStderr(), renderStatusLine(check.Name, statusWarn, check.Detail, shouldColorize(cmd.ErrOrStderr())))
		}
	}

	engine := organizer.New(table, organizer.WithLogger(logger))
	res, runErr := engine.Organize(cmd.Context(), req)

	if runErr == nil && req.Recursive && flags.pruneEmpty {
		isCategoryDir := func(path string) bool {
			return filepath.Dir(path) == res.Root && table.IsCategory(filepath.Base(path))
		}
		sources := make([]string, 0, len(res.Records))
		for _, rec := range res.Records {
			sources = append(sources, rec.SourcePath)
		}
		pruned := cleanup.RemoveEmptyParents(cmd.Context(), res.Root, sources, isCategoryDir, logger)
		if n := len(pruned.Removed); n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Removed %d empty %s\n", n, plural(n, "directory", "directories"))
		}
	}

	if cfg.History.Enabled && !flags.noHistory {
		recordHistory(cmd.Context(), ctx, logger, res)
	}

	if flags.csvPath != "" && runErr == nil {
		path, err := export.WriteCSVFile(flags.csvPath, res.Records, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote move log to %s\n", path)
	}

	if flags.jsonOutput {
		if err := writeJSON(cmd, export.NewDocument(res)); err != nil {
			return err
		}
	} else {
		renderOrganizeResult(cmd.OutOrStdout(), res, shouldColorize(cmd.OutOrStdout()))
	}
	return runErr
}

// buildRequest applies config defaults for flags the user did not set.
func buildRequest(cmd *cobra.Command, cfg *config.Config, root string, recursive bool, extensions []string) organizer.Request {
	req := organizer.Request{
		Root:       root,
		Recursive:  cfg.Organize.Recursive,
		Extensions: cfg.Organize.Extensions,
	}
	if cmd.Flags().Changed("recursive") {
		req.Recursive = recursive
	}
	if cmd.Flags().Changed("ext") {
		req.Extensions = config.NormalizeExtensions(extensions)
	}
	return req
}

func recordHistory(ctx context.Context, cc *commandContext, logger *slog.Logger, res organizer.Result) {
	store, err := cc.openHistory()
	if err == nil {
		defer store.Close()
		err = store.RecordRun(context.WithoutCancel(ctx), res)
	}
	if err != nil {
		logging.WarnWithContext(logger, "failed to record run history", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldRunID, res.RunID),
			logging.String(logging.FieldImpact, "this run is missing from filesort history"),
			logging.String(logging.FieldErrorHint, "check permissions on the history database or pass --no-history"),
		)
	}
}

func renderOrganizeResult(out io.Writer, res organizer.Result, colorize bool) {
	renderDiagnostics(out, res.Diagnostics, colorize)

	if len(res.Records) == 0 {
		if res.Failed() == 0 && !hasFatal(res) {
			fmt.Fprintln(out, "No matching files found to move.")
		}
		return
	}

	fmt.Fprintln(out, renderMovesTable(res.Records, false))

	summary := fmt.Sprintf("Moved %d %s into %s", len(res.Records), plural(len(res.Records), "file", "files"), res.Root)
	if failed := res.Failed(); failed > 0 {
		summary += fmt.Sprintf(" (%d failed)", failed)
	}
	fmt.Fprintln(out, summary)
}

func hasFatal(res organizer.Result) bool {
	for _, d := range res.Diagnostics {
		if d.Kind == organizer.KindFatalScan {
			return true
		}
	}
	return false
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
