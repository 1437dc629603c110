package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, root, rel string, data []byte) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func reasonsByPath(skipped []Skipped) map[string]SkipReason {
	out := make(map[string]SkipReason, len(skipped))
	for _, s := range skipped {
		out[s.Path] = s.Reason
	}
	return out
}

func TestCollectFiltersTree(t *testing.T) {
	root := t.TempDir()
	keep := write(t, root, "docs/a.txt", []byte("hello"))
	write(t, root, "docs/b.bin", []byte("hello"))
	binary := write(t, root, "docs/c.txt", []byte{'a', 0x00, 'b'})
	big := write(t, root, "docs/d.txt", make([]byte, 2048))

	w := New(Options{
		Extensions:  []string{".txt"},
		MaxFileSize: 1024,
	})
	candidates, skipped, err := w.Collect([]string{root})
	if err != nil {
		t.Fatal(err)
	}

	if len(candidates) != 1 || candidates[0].Path != keep {
		t.Fatalf("candidates = %+v", candidates)
	}

	reasons := reasonsByPath(skipped)
	if reasons[binary] != SkipBinary {
		t.Fatalf("c.txt reason = %q", reasons[binary])
	}
	if reasons[big] != SkipTooLarge {
		t.Fatalf("d.txt reason = %q", reasons[big])
	}
}

func TestCollectExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/readme.txt", []byte("x"))
	excluded := write(t, root, "vendor/dep.txt", []byte("x"))

	w := New(Options{
		Extensions: []string{".txt"},
		Exclude:    []string{"vendor/*"},
	})
	candidates, skipped, err := w.Collect([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %+v", candidates)
	}
	if reasonsByPath(skipped)[excluded] != SkipExcluded {
		t.Fatal("vendor file not excluded")
	}
}

func TestCollectIncludeGlobs(t *testing.T) {
	root := t.TempDir()
	keep := write(t, root, "notes.md", []byte("x"))
	write(t, root, "notes.txt", []byte("x"))

	w := New(Options{
		Extensions: []string{".txt", ".md"},
		Include:    []string{"*.md"},
	})
	candidates, _, err := w.Collect([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 || candidates[0].Path != keep {
		t.Fatalf("candidates = %+v", candidates)
	}
}

func TestCollectExplicitFileBypassesFilters(t *testing.T) {
	root := t.TempDir()
	path := write(t, root, "data.bin", []byte("textual despite the extension"))

	w := New(Options{Extensions: []string{".txt"}})
	candidates, _, err := w.Collect([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 || candidates[0].Path != path {
		t.Fatalf("candidates = %+v", candidates)
	}
}

func TestCollectExplicitBinaryStillSkipped(t *testing.T) {
	root := t.TempDir()
	path := write(t, root, "blob.txt", []byte{0x7F, 'E', 'L', 'F', 0x00, 0x01})

	w := New(Options{})
	candidates, skipped, err := w.Collect([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 0 {
		t.Fatalf("candidates = %+v", candidates)
	}
	if reasonsByPath(skipped)[path] != SkipBinary {
		t.Fatalf("skipped = %+v", skipped)
	}
}

func TestCollectUTF16NotBinary(t *testing.T) {
	root := t.TempDir()
	path := write(t, root, "wide.txt", []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00})

	w := New(Options{Extensions: []string{".txt"}})
	candidates, _, err := w.Collect([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 || candidates[0].Path != path {
		t.Fatalf("utf-16 file misclassified: %+v", candidates)
	}
}

func TestCollectSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	target := write(t, root, "real.txt", []byte("x"))
	link := filepath.Join(root, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	w := New(Options{Extensions: []string{".txt"}})
	candidates, skipped, err := w.Collect([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %+v", candidates)
	}
	if reasonsByPath(skipped)[link] != SkipSymlink {
		t.Fatalf("skipped = %+v", skipped)
	}

	w = New(Options{Extensions: []string{".txt"}, FollowSymlinks: true})
	candidates, _, err = w.Collect([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 2 {
		t.Fatalf("followed candidates = %+v", candidates)
	}
}
