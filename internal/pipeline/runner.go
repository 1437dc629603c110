package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"enconv/internal/config"
	"enconv/internal/convert"
	"enconv/internal/detect"
	"enconv/internal/fileutil"
	"enconv/internal/history"
	"enconv/internal/logging"
	"enconv/internal/scan"
)

// Outcome is the per-file result of a run.
type Outcome struct {
	Path         string
	Size         int64
	Detection    detect.Result
	Action       history.Action
	Detail       string
	Replacements int
	BackupPath   string
}

// Summary aggregates a completed run.
type Summary struct {
	RunID      string
	Mode       string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome

	Scanned      int
	Converted    int
	Unchanged    int
	Skipped      int
	Failed       int
	Replacements int
}

// RunOptions carries per-invocation overrides.
type RunOptions struct {
	// Mode labels the run in logs and history ("convert" or "scan").
	Mode string
	// DryRun stops after detection; nothing is rewritten.
	DryRun bool
	// AssumeEncoding bypasses detection with a fixed source encoding.
	AssumeEncoding string
}

// Runner executes conversion runs under a fixed configuration.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	detector *detect.Detector
	walker   *scan.Walker
	store    *history.Store
}

// New constructs a Runner. The history store may be nil to disable
// run recording.
func New(cfg *config.Config, logger *slog.Logger, store *history.Store) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "pipeline"),
		detector: detect.New(detect.Options{
			SampleBytes:         cfg.Scan.SampleBytes,
			FallbackEncoding:    cfg.Convert.FallbackEncoding,
			ConfidenceThreshold: cfg.Convert.ConfidenceThreshold,
		}),
		walker: scan.New(scan.Options{
			Include:        cfg.Scan.Include,
			Exclude:        cfg.Scan.Exclude,
			Extensions:     cfg.Scan.Extensions,
			MaxFileSize:    cfg.MaxFileSizeBytes(),
			FollowSymlinks: cfg.Scan.FollowSymlinks,
			SampleBytes:    cfg.Scan.SampleBytes,
		}),
		store: store,
	}
}

// Run walks roots and processes every candidate. It returns an error only
// for run-level problems (bad roots, preflight failure); per-file errors
// land in the summary as failed outcomes.
func (r *Runner) Run(ctx context.Context, roots []string, opts RunOptions) (*Summary, error) {
	if opts.Mode == "" {
		opts.Mode = "convert"
	}
	summary := &Summary{
		RunID:     uuid.NewString(),
		Mode:      opts.Mode,
		DryRun:    opts.DryRun,
		StartedAt: time.Now(),
	}
	logger := r.logger.With(logging.String(logging.FieldRunID, summary.RunID))

	candidates, skippedFiles, err := r.walker.Collect(roots)
	if err != nil {
		return nil, err
	}
	summary.Scanned = len(candidates) + len(skippedFiles)

	for _, s := range skippedFiles {
		summary.Outcomes = append(summary.Outcomes, Outcome{
			Path:   s.Path,
			Action: history.ActionSkipped,
			Detail: string(s.Reason),
		})
	}

	if !opts.DryRun {
		if err := r.preflight(candidates); err != nil {
			return nil, err
		}
	}

	logger.Info("run started",
		logging.String("mode", opts.Mode),
		logging.Bool("dry_run", opts.DryRun),
		logging.Int("candidates", len(candidates)),
		logging.Int("skipped", len(skippedFiles)),
	)

	jobs := r.cfg.Convert.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	outcomes := make([]Outcome, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.processFile(logger, candidate, opts)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary.Outcomes = append(summary.Outcomes, outcomes...)
	summary.FinishedAt = time.Now()
	for _, outcome := range summary.Outcomes {
		switch outcome.Action {
		case history.ActionConverted:
			summary.Converted++
		case history.ActionUnchanged:
			summary.Unchanged++
		case history.ActionSkipped:
			summary.Skipped++
		case history.ActionFailed:
			summary.Failed++
		}
		summary.Replacements += outcome.Replacements
	}

	logger.Info("run finished",
		logging.Int("converted", summary.Converted),
		logging.Int("unchanged", summary.Unchanged),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("replacements", summary.Replacements),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)

	if err := r.record(ctx, roots, summary); err != nil {
		logger.Warn("record run history", logging.Error(err))
	}
	return summary, nil
}

func (r *Runner) processFile(logger *slog.Logger, candidate scan.Candidate, opts RunOptions) Outcome {
	outcome := Outcome{Path: candidate.Path, Size: candidate.Size}

	if opts.AssumeEncoding != "" {
		outcome.Detection = detect.Result{Encoding: opts.AssumeEncoding, Confidence: 100}
	} else {
		detection, err := r.detector.DetectFile(candidate.Path)
		if err != nil {
			outcome.Action = history.ActionFailed
			outcome.Detail = err.Error()
			logger.Warn("detection failed", logging.String(logging.FieldPath, candidate.Path), logging.Error(err))
			return outcome
		}
		outcome.Detection = detection
	}

	needed := opts.AssumeEncoding != "" ||
		outcome.Detection.NeedsConversion(r.cfg.Convert.StripBOM) ||
		r.cfg.Convert.Newline != "keep" ||
		r.cfg.Convert.NormalizeForm != "none"

	if !needed {
		outcome.Action = history.ActionUnchanged
		return outcome
	}
	if opts.DryRun {
		outcome.Action = history.ActionConverted
		outcome.Detail = "dry-run"
		return outcome
	}

	result, err := convert.File(candidate.Path, outcome.Detection.Encoding, convert.FileOptions{
		Options: convert.Options{
			Newline:       r.cfg.Convert.Newline,
			NormalizeForm: r.cfg.Convert.NormalizeForm,
			StripBOM:      r.cfg.Convert.StripBOM,
		},
		Backup:    r.cfg.Convert.Backup,
		BackupDir: r.cfg.Paths.BackupDir,
	})
	if err != nil {
		outcome.Action = history.ActionFailed
		outcome.Detail = err.Error()
		logger.Warn("conversion failed", logging.String(logging.FieldPath, candidate.Path), logging.Error(err))
		return outcome
	}

	outcome.Replacements = result.Replacements
	outcome.BackupPath = result.BackupPath
	if result.Changed {
		outcome.Action = history.ActionConverted
		logger.Info("converted",
			logging.String(logging.FieldPath, candidate.Path),
			logging.String(logging.FieldEncoding, outcome.Detection.Encoding),
			logging.Int("replacements", result.Replacements),
		)
	} else {
		outcome.Action = history.ActionUnchanged
	}
	return outcome
}

// preflight checks there is room for backups before any file is touched.
func (r *Runner) preflight(candidates []scan.Candidate) error {
	if !r.cfg.Convert.Backup {
		return nil
	}
	dir := r.cfg.Paths.BackupDir
	if dir == "" {
		return nil
	}

	var total uint64
	for _, c := range candidates {
		total += uint64(c.Size)
	}
	free, err := fileutil.FreeSpace(dir)
	if err != nil {
		return fmt.Errorf("check backup space: %w", err)
	}
	if free > 0 && free < total {
		return fmt.Errorf("backup dir %s has %d bytes free, need %d", dir, free, total)
	}
	return nil
}

func (r *Runner) record(ctx context.Context, roots []string, summary *Summary) error {
	if r.store == nil || !r.cfg.History.Enabled {
		return nil
	}

	files := make([]history.RunFile, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		files = append(files, history.RunFile{
			RunID:        summary.RunID,
			Path:         outcome.Path,
			Encoding:     outcome.Detection.Encoding,
			Confidence:   outcome.Detection.Confidence,
			Action:       outcome.Action,
			Detail:       outcome.Detail,
			Replacements: outcome.Replacements,
			BackupPath:   outcome.BackupPath,
		})
	}

	run := history.Run{
		ID:             summary.RunID,
		Mode:           summary.Mode,
		Roots:          roots,
		DryRun:         summary.DryRun,
		StartedAt:      summary.StartedAt,
		FinishedAt:     summary.FinishedAt,
		FilesScanned:   summary.Scanned,
		FilesConverted: summary.Converted,
		FilesUnchanged: summary.Unchanged,
		FilesSkipped:   summary.Skipped,
		FilesFailed:    summary.Failed,
		Replacements:   summary.Replacements,
	}
	if err := r.store.RecordRun(ctx, run, files); err != nil {
		return err
	}
	return r.store.Prune(ctx, r.cfg.History.KeepRuns)
}
