package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding"
)

// WriteFile creates path (and parent directories) with the given bytes.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteEncoded writes text to path after encoding it with enc.
func WriteEncoded(t testing.TB, path string, enc encoding.Encoding, text string) {
	t.Helper()
	data, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatalf("encode for %s: %v", path, err)
	}
	WriteFile(t, path, data)
}
