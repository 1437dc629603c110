package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"enconv/internal/history"
	"enconv/internal/pipeline"
	"enconv/internal/textutil"
)

// writeJSON renders v as indented JSON on the command's stdout. HTML
// escaping is off so file paths survive round-trips untouched.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outcomeView is the JSON shape for one processed file.
type outcomeView struct {
	Path         string `json:"path"`
	Encoding     string `json:"encoding,omitempty"`
	Confidence   int    `json:"confidence,omitempty"`
	Action       string `json:"action"`
	Detail       string `json:"detail,omitempty"`
	Replacements int    `json:"replacements,omitempty"`
	BackupPath   string `json:"backup_path,omitempty"`
}

// runView is the JSON shape for a run summary.
type runView struct {
	RunID        string        `json:"run_id"`
	Mode         string        `json:"mode"`
	DryRun       bool          `json:"dry_run"`
	Elapsed      string        `json:"elapsed"`
	Scanned      int           `json:"scanned"`
	Converted    int           `json:"converted"`
	Unchanged    int           `json:"unchanged"`
	Skipped      int           `json:"skipped"`
	Failed       int           `json:"failed"`
	Replacements int           `json:"replacements"`
	Files        []outcomeView `json:"files"`
}

func summaryView(summary *pipeline.Summary) runView {
	view := runView{
		RunID:        summary.RunID,
		Mode:         summary.Mode,
		DryRun:       summary.DryRun,
		Elapsed:      summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond).String(),
		Scanned:      summary.Scanned,
		Converted:    summary.Converted,
		Unchanged:    summary.Unchanged,
		Skipped:      summary.Skipped,
		Failed:       summary.Failed,
		Replacements: summary.Replacements,
	}
	for _, outcome := range summary.Outcomes {
		view.Files = append(view.Files, outcomeView{
			Path:         outcome.Path,
			Encoding:     outcome.Detection.Encoding,
			Confidence:   outcome.Detection.Confidence,
			Action:       string(outcome.Action),
			Detail:       outcome.Detail,
			Replacements: outcome.Replacements,
			BackupPath:   outcome.BackupPath,
		})
	}
	return view
}

// renderSummary prints a convert run: one table row per non-trivial
// outcome plus aggregate counts.
func renderSummary(cmd *cobra.Command, summary *pipeline.Summary) {
	rows := make([][]string, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		if outcome.Action == history.ActionUnchanged {
			continue
		}
		detail := outcome.Detail
		if outcome.Replacements > 0 {
			detail = fmt.Sprintf("%d replacement(s)", outcome.Replacements)
		}
		rows = append(rows, []string{
			outcome.Path,
			textutil.DisplayEncoding(outcome.Detection.Encoding),
			string(outcome.Action),
			detail,
		})
	}

	out := cmd.OutOrStdout()
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"File", "Encoding", "Action", "Detail"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		))
	}
	fmt.Fprintf(out, "%s scanned: %d converted, %d unchanged, %d skipped, %d failed\n",
		textutil.FormatCount(summary.Scanned, "file", "files"),
		summary.Converted, summary.Unchanged, summary.Skipped, summary.Failed)
	if summary.DryRun {
		fmt.Fprintln(out, "Dry run: nothing was rewritten.")
	}
}

// renderScan prints a detection report covering every file, including
// the ones that are already clean.
func renderScan(cmd *cobra.Command, summary *pipeline.Summary) {
	rows := make([][]string, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		verdict := "clean"
		switch outcome.Action {
		case history.ActionConverted:
			verdict = "needs conversion"
		case history.ActionSkipped:
			verdict = "skipped: " + outcome.Detail
		case history.ActionFailed:
			verdict = "error: " + outcome.Detail
		}
		confidence := ""
		if outcome.Detection.Confidence > 0 {
			confidence = fmt.Sprintf("%d%%", outcome.Detection.Confidence)
		}
		rows = append(rows, []string{
			outcome.Path,
			textutil.DisplayEncoding(outcome.Detection.Encoding),
			confidence,
			verdict,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Encoding", "Confidence", "Verdict"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "%s would be converted.\n",
		textutil.FormatCount(summary.Converted, "file", "files"))
}
