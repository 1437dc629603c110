package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileUTF8Idempotent(t *testing.T) {
	dir := t.TempDir()
	original := []byte("already clean utf-8: café\n")
	path := writeFile(t, dir, "clean.txt", original)

	res, err := File(path, "utf-8", FileOptions{
		Options: Options{StripBOM: true},
		Backup:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Fatal("clean utf-8 should not be rewritten")
	}
	if res.BackupPath != "" {
		t.Fatal("no backup expected for untouched file")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, original) {
		t.Fatalf("file changed: %q", got)
	}
}

func TestFileLatin1Rewrite(t *testing.T) {
	dir := t.TempDir()
	src, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("Österreich"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "legacy.txt", src)

	res, err := File(path, "iso-8859-1", FileOptions{Backup: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed {
		t.Fatal("expected rewrite")
	}
	if res.Replacements != 0 {
		t.Fatalf("replacements = %d", res.Replacements)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Österreich" {
		t.Fatalf("content %q", got)
	}

	backup, err := os.ReadFile(res.BackupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Equal(backup, src) {
		t.Fatal("backup does not match original bytes")
	}
}

func TestFileInvalidBytesSubstituted(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.txt", []byte{'o', 'k', 0xFF, '!'})

	res, err := File(path, "utf-8", FileOptions{Backup: false})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed || res.Replacements != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ok�!" {
		t.Fatalf("content %q", got)
	}
}

func TestFileBOMStrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bom.txt", append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello\n")...))

	res, err := File(path, "utf-8", FileOptions{Options: Options{StripBOM: true}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed {
		t.Fatal("BOM strip should rewrite")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello\n" {
		t.Fatalf("content %q", got)
	}
}

func TestFileBackupDir(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backups, 0o755); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "crlf.txt", []byte("a\r\nb\r\n"))

	res, err := File(path, "utf-8", FileOptions{
		Options:   Options{Newline: "lf"},
		Backup:    true,
		BackupDir: backups,
	})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(res.BackupPath) != backups {
		t.Fatalf("backup landed in %s", res.BackupPath)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a\nb\n" {
		t.Fatalf("content %q", got)
	}
}
