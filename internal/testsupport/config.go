// Package testsupport provides fixtures shared by enconv package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"enconv/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDB = filepath.Join(base, "history.db")
	cfg.Convert.Jobs = 2
	cfg.History.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithBackupDir points backups at the given directory.
func WithBackupDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.BackupDir = dir
	}
}

// WithHistory enables history recording for the test.
func WithHistory() ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Enabled = true
	}
}
