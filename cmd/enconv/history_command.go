package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"enconv/internal/history"
	"enconv/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect previous conversion runs",
	}
	cmd.AddCommand(newHistoryListCommand(ctx))
	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withStore(cmd.Context(), func(store *history.Store) error {
				if store == nil {
					return errors.New("history is disabled in configuration")
				}
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, runs)
				}
				renderRuns(cmd, runs)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show every file touched by a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withStore(cmd.Context(), func(store *history.Store) error {
				if store == nil {
					return errors.New("history is disabled in configuration")
				}
				run, files, err := store.GetRun(cmd.Context(), id)
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %q not found", id)
				}
				if jsonOut {
					return writeJSON(cmd, struct {
						Run   *history.Run      `json:"run"`
						Files []history.RunFile `json:"files"`
					}{run, files})
				}
				renderRunDetail(cmd, run, files)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withStore(cmd.Context(), func(store *history.Store) error {
				if store == nil {
					return errors.New("history is disabled in configuration")
				}
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			})
		},
	}
}

func renderRuns(cmd *cobra.Command, runs []history.Run) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		mode := run.Mode
		if run.DryRun {
			mode += " (dry-run)"
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			mode,
			fmt.Sprintf("%d", run.FilesScanned),
			fmt.Sprintf("%d", run.FilesConverted),
			fmt.Sprintf("%d", run.FilesFailed),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Mode", "Scanned", "Converted", "Failed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
}

func renderRunDetail(cmd *cobra.Command, run *history.Run, files []history.RunFile) {
	out := cmd.OutOrStdout()
	elapsed := run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)
	fmt.Fprintf(out, "Run %s (%s, %s)\n", run.ID, run.Mode, elapsed)
	fmt.Fprintf(out, "Roots: %s\n", strings.Join(run.Roots, ", "))
	fmt.Fprintf(out, "%s scanned: %d converted, %d unchanged, %d skipped, %d failed\n",
		textutil.FormatCount(run.FilesScanned, "file", "files"),
		run.FilesConverted, run.FilesUnchanged, run.FilesSkipped, run.FilesFailed)

	if len(files) == 0 {
		return
	}
	rows := make([][]string, 0, len(files))
	for _, file := range files {
		detail := file.Detail
		if file.Replacements > 0 {
			detail = fmt.Sprintf("%d replacement(s)", file.Replacements)
		}
		rows = append(rows, []string{
			file.Path,
			textutil.DisplayEncoding(file.Encoding),
			string(file.Action),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Encoding", "Action", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
}
