package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"filesort/internal/config"
	"filesort/internal/logging"
	"filesort/internal/organizer"
	"filesort/internal/preflight"
	"filesort/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var (
		schedule       string
		recursive      bool
		extensions     []string
		categoriesFile string
		runNow         bool
		noHistory      bool
	)

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Organize a directory repeatedly on a cron schedule",
		Long: `Run an organize pass over <dir> on a schedule until interrupted.

The schedule accepts standard five-field cron expressions and descriptors
such as "@hourly" or "@every 10m". Only one watcher may run per state
directory; a tick that fires while the previous pass is still running is
skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}
			if check := preflight.CheckRoot(root); !check.Passed {
				return errors.New(check.Detail)
			}
			table, err := ctx.categoryTable(categoriesFile)
			if err != nil {
				return err
			}

			sessionID := uuid.NewString()
			logger, err := logging.NewFromConfigWithSession(cfg, sessionID)
			if err != nil {
				return err
			}

			opts := []watch.Option{watch.WithLogger(logger), watch.WithSchedule(schedule)}
			if runNow {
				opts = append(opts, watch.WithRunOnStart())
			}
			if cfg.History.Enabled && !noHistory {
				store, err := ctx.openHistory()
				if err != nil {
					return err
				}
				defer store.Close()
				opts = append(opts, watch.WithRecorder(store))
			}

			req := buildRequest(cmd, cfg, root, recursive, extensions)
			engine := organizer.New(table, organizer.WithLogger(logger))
			watcher, err := watch.New(cfg, engine, req, opts...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (schedule %q); press Ctrl+C to stop\n", root, watcher.Schedule())
			return watcher.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron schedule (defaults to watch.schedule from config)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Organize files in subdirectories too")
	cmd.Flags().StringSliceVarP(&extensions, "ext", "e", nil, "Only organize these extensions (e.g. .jpg,.txt)")
	cmd.Flags().StringVar(&categoriesFile, "categories", "", "Category table file (TOML or YAML) overriding the configured table")
	cmd.Flags().BoolVar(&runNow, "now", false, "Run one pass immediately instead of waiting for the first tick")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record runs in the history database")
	return cmd
}
