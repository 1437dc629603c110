package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enconv/internal/history"
	"enconv/internal/pipeline"
)

type convertFlags struct {
	dryRun   bool
	noBackup bool
	backup   string
	jobs     int
	assume   string
	newline  string
	include  []string
	exclude  []string
	jsonOut  bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <path>...",
		Short: "Rewrite files or directory trees as UTF-8 in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg := *cfg
			if flags.noBackup {
				runCfg.Convert.Backup = false
			}
			if flags.backup != "" {
				runCfg.Paths.BackupDir = flags.backup
			}
			if flags.jobs > 0 {
				runCfg.Convert.Jobs = flags.jobs
			}
			if flags.newline != "" {
				runCfg.Convert.Newline = flags.newline
			}
			if len(flags.include) > 0 {
				runCfg.Scan.Include = flags.include
			}
			if len(flags.exclude) > 0 {
				runCfg.Scan.Exclude = flags.exclude
			}
			if err := runCfg.Validate(); err != nil {
				return err
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
					Mode:           "convert",
					DryRun:         flags.dryRun,
					AssumeEncoding: flags.assume,
				})
				return runErr
			})
			if err != nil {
				return err
			}

			if flags.jsonOut {
				return writeJSON(cmd, summaryView(summary))
			}
			renderSummary(cmd, summary)
			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Detect and report without rewriting anything")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "Skip backing up originals before rewriting")
	cmd.Flags().StringVar(&flags.backup, "backup-dir", "", "Directory for original-file backups")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "Parallel conversion workers (default: CPU count)")
	cmd.Flags().StringVar(&flags.assume, "assume", "", "Assume this source encoding instead of detecting")
	cmd.Flags().StringVar(&flags.newline, "newline", "", "Line ending policy: keep, lf, or crlf")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "Glob patterns to include (relative to each root)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "Glob patterns to exclude")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Emit the run summary as JSON")

	return cmd
}
