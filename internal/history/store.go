package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

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

	store := &Store{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location on disk.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// RecordRun persists a run and its per-file outcomes in one transaction.
// The store's file lock serializes writers from concurrent processes.
func (s *Store) RecordRun(ctx context.Context, run Run, files []RunFile) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, mode, roots, dry_run, started_at, finished_at,
            files_scanned, files_converted, files_unchanged,
            files_skipped, files_failed, replacements
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Mode,
		strings.Join(run.Roots, string(os.PathListSeparator)),
		boolToInt(run.DryRun),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.FilesScanned,
		run.FilesConverted,
		run.FilesUnchanged,
		run.FilesSkipped,
		run.FilesFailed,
		run.Replacements,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_files (
            run_id, path, encoding, confidence, action, detail, replacements, backup_path
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare run_files insert: %w", err)
	}
	defer stmt.Close()

	for _, file := range files {
		if _, err := stmt.ExecContext(ctx,
			run.ID, file.Path, file.Encoding, file.Confidence,
			string(file.Action), file.Detail, file.Replacements, file.BackupPath,
		); err != nil {
			return fmt.Errorf("insert run file %s: %w", file.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0
// returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
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

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one run and its file outcomes. A missing run returns
// (nil, nil, nil).
func (s *Store) GetRun(ctx context.Context, id string) (*Run, []RunFile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, path, encoding, confidence, action, detail, replacements, backup_path
         FROM run_files WHERE run_id = ? ORDER BY path`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list run files: %w", err)
	}
	defer rows.Close()

	var files []RunFile
	for rows.Next() {
		var file RunFile
		var action string
		if err := rows.Scan(
			&file.RunID, &file.Path, &file.Encoding, &file.Confidence,
			&action, &file.Detail, &file.Replacements, &file.BackupPath,
		); err != nil {
			return nil, nil, fmt.Errorf("scan run file: %w", err)
		}
		file.Action = Action(action)
		files = append(files, file)
	}
	return &run, files, rows.Err()
}

// Clear removes all recorded runs.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

// Prune drops the oldest runs beyond keep. A keep of 0 disables pruning.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
        )`, keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

const runColumns = `id, mode, roots, dry_run, started_at, finished_at,
    files_scanned, files_converted, files_unchanged, files_skipped, files_failed, replacements`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var roots string
	var dryRun int
	var started, finished string
	if err := row.Scan(
		&run.ID, &run.Mode, &roots, &dryRun, &started, &finished,
		&run.FilesScanned, &run.FilesConverted, &run.FilesUnchanged,
		&run.FilesSkipped, &run.FilesFailed, &run.Replacements,
	); err != nil {
		return Run{}, err
	}
	if roots != "" {
		run.Roots = strings.Split(roots, string(os.PathListSeparator))
	}
	run.DryRun = dryRun != 0
	if ts, err := time.Parse(time.RFC3339Nano, started); err == nil {
		run.StartedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, finished); err == nil {
		run.FinishedAt = ts
	}
	return run, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
