package main

import (
	"github.com/spf13/cobra"

	"enconv/internal/history"
	"enconv/internal/pipeline"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var include, exclude []string

	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Detect encodings and report what convert would do",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg := *cfg
			if len(include) > 0 {
				runCfg.Scan.Include = include
			}
			if len(exclude) > 0 {
				runCfg.Scan.Exclude = exclude
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var summary *pipeline.Summary
			err = ctx.withStore(cmd.Context(), func(store *history.Store) error {
				runner := pipeline.New(&runCfg, logger, store)
				var runErr error
				summary, runErr = runner.Run(cmd.Context(), args, pipeline.RunOptions{
					Mode:   "scan",
					DryRun: true,
				})
				return runErr
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, summaryView(summary))
			}
			renderScan(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "Glob patterns to include (relative to each root)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns to exclude")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the scan report as JSON")

	return cmd
}
