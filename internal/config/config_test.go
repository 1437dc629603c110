package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config")
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Convert.FallbackEncoding != "utf-8" {
		t.Fatalf("fallback encoding = %q", cfg.Convert.FallbackEncoding)
	}
	if cfg.Convert.Jobs <= 0 {
		t.Fatalf("jobs should default to CPU count, got %d", cfg.Convert.Jobs)
	}
	if !cfg.Convert.Backup {
		t.Fatal("backup should default to true")
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
backup_dir = "` + filepath.Join(dir, "backups") + `"

[convert]
fallback_encoding = "Windows_1252"
newline = "LF"
jobs = 4

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Convert.FallbackEncoding != "windows-1252" {
		t.Fatalf("fallback encoding not canonicalized: %q", cfg.Convert.FallbackEncoding)
	}
	if cfg.Convert.Newline != "lf" {
		t.Fatalf("newline not lowercased: %q", cfg.Convert.Newline)
	}
	if cfg.Convert.Jobs != 4 {
		t.Fatalf("jobs = %d", cfg.Convert.Jobs)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
	if cfg.Paths.BackupDir != filepath.Join(dir, "backups") {
		t.Fatalf("backup dir = %q", cfg.Paths.BackupDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad newline",
			content: "[convert]\nnewline = \"cr\"\n",
			wantErr: "convert.newline",
		},
		{
			name:    "bad confidence",
			content: "[convert]\nconfidence_threshold = 150\n",
			wantErr: "confidence_threshold",
		},
		{
			name:    "bad normalize form",
			content: "[convert]\nnormalize_form = \"nfx\"\n",
			wantErr: "normalize_form",
		},
		{
			name:    "bad log format",
			content: "[logging]\nformat = \"pretty\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "tiny sample",
			content: "[scan]\nsample_bytes = 16\n",
			wantErr: "sample_bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	cfg := Default()
	cfg.Scan.Extensions = []string{"TXT", " .Md ", "", "csv"}
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	want := []string{".txt", ".md", ".csv"}
	if len(cfg.Scan.Extensions) != len(want) {
		t.Fatalf("extensions = %v", cfg.Scan.Extensions)
	}
	for i, ext := range want {
		if cfg.Scan.Extensions[i] != ext {
			t.Fatalf("extensions[%d] = %q, want %q", i, cfg.Scan.Extensions[i], ext)
		}
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/data")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "data") {
		t.Fatalf("ExpandPath(~/data) = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[convert]") {
		t.Fatal("sample config missing [convert] section")
	}

	// The sample must itself parse and validate.
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
