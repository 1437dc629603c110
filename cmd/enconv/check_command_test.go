package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"enconv/internal/testsupport"
)

func TestCheckCommandCleanFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := newTestConfigFile(t, cfg)

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "clean.txt"), []byte("plain utf-8 text\n"))

	out, _, err := runCLI(t, configPath, "check", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "ok    ")
	requireContains(t, out, "1 file checked, 0 invalid")
}

func TestCheckCommandFlagsInvalidBytes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := newTestConfigFile(t, cfg)

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "broken.txt"), []byte{'o', 'k', 0xFF, 0xFE, 0xFD, '\n'})

	out, _, err := runCLI(t, configPath, "check", dir)
	if err == nil {
		t.Fatal("expected non-nil error for invalid file")
	}
	requireContains(t, out, "bad   ")
}

func TestCheckCommandFlagsBOM(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := newTestConfigFile(t, cfg)

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "bom.txt"), append([]byte{0xEF, 0xBB, 0xBF}, []byte("text\n")...))

	out, _, err := runCLI(t, configPath, "check", "--json", dir)
	if err == nil {
		t.Fatal("expected non-nil error for BOM file")
	}

	var results []checkResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode check JSON: %v\n%s", err, out)
	}
	if len(results) != 1 || results[0].Valid {
		t.Fatalf("unexpected results: %+v", results)
	}
	requireContains(t, results[0].Reason, "byte-order mark")
}
