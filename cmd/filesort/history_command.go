package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"filesort/internal/export"
	"filesort/internal/history"
	"filesort/internal/organizer"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		runID      string
		csvPath    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past organize runs and their moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			if runID != "" {
				return showRun(cmd, store, runID, csvPath, jsonOutput)
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}
			renderRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the moves of one run (full ID or unique prefix)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "With --run, write the run's moves as CSV to this file or directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print as JSON")

	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if !all && !cmd.Flags().Changed("keep") {
				return fmt.Errorf("refusing to clear history without --keep N or --all")
			}
			if all {
				keep = 0
			} else if keep < 1 {
				return fmt.Errorf("--keep must be at least 1 (use --all to delete every run)")
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s from history\n", removed, plural(int(removed), "run", "runs"))
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "Keep the newest N runs")
	cmd.Flags().Bool("all", false, "Delete every run")
	return cmd
}

type runDetail struct {
	Run         history.Run            `json:"run"`
	Moves       []organizer.Record     `json:"moves"`
	Diagnostics []organizer.Diagnostic `json:"diagnostics"`
}

func showRun(cmd *cobra.Command, store *history.Store, id, csvPath string, jsonOutput bool) error {
	ctx := cmd.Context()
	run, err := store.FindRun(ctx, id)
	if err != nil {
		return err
	}
	moves, err := store.Moves(ctx, run.ID)
	if err != nil {
		return err
	}
	diags, err := store.Diagnostics(ctx, run.ID)
	if err != nil {
		return err
	}

	if csvPath != "" {
		path, err := export.WriteCSVFile(csvPath, moves, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote move log to %s\n", path)
	}
	if jsonOutput {
		return writeJSON(cmd, runDetail{Run: run, Moves: moves, Diagnostics: diags})
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	fmt.Fprintln(out, renderSectionHeader("Run "+run.ID, colorize))
	fmt.Fprintf(out, "Root:      %s\n", run.Root)
	fmt.Fprintf(out, "Started:   %s\n", run.StartedAt.Local().Format(historyTimeLayout))
	fmt.Fprintf(out, "Recursive: %s\n", yesNo(run.Recursive))
	if run.FatalError != "" {
		fmt.Fprintln(out, renderStatusLine("Scan", statusError, run.FatalError, colorize))
	}
	if len(moves) > 0 {
		fmt.Fprintln(out, renderMovesTable(moves, true))
	}
	renderDiagnostics(out, diags, colorize)
	return nil
}

var runColumns = []tableColumn{
	{title: "Run"},
	{title: "Started"},
	{title: "Root"},
	{title: "Moved", right: true},
	{title: "Failed", right: true},
	{title: "Duration", right: true},
	{title: "Status"},
}

func renderRuns(out io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		status := "ok"
		if r.FatalError != "" {
			status = "scan failed"
		}
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format(historyTimeLayout),
			r.Root,
			strconv.Itoa(r.Moved),
			strconv.Itoa(r.Failed),
			r.Duration().Round(time.Millisecond).String(),
			status,
		})
	}
	fmt.Fprintln(out, renderTable(runColumns, rows, nil))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
