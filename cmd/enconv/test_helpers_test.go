package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/encoding/charmap"

	"enconv/internal/config"
	"enconv/internal/testsupport"
)

// newTestConfigFile materializes cfg as a TOML file under a temp dir and
// returns its path for use with --config.
func newTestConfigFile(t *testing.T, cfg *config.Config) string {
	t.Helper()

	quiet := *cfg
	quiet.Logging.Level = "error"
	encoded, err := toml.Marshal(quiet)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// latin1Fixture is long enough for statistical detection to be unambiguous.
func latin1Fixture(t *testing.T, dir, name string) (string, string) {
	t.Helper()
	text := strings.Repeat("Kitzbühel im März: schöne Grüße aus Österreich. ", 50)
	path := filepath.Join(dir, name)
	testsupport.WriteEncoded(t, path, charmap.ISO8859_1, text)
	return path, text
}
