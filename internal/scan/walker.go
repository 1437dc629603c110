package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SkipReason explains why a file was excluded from conversion.
type SkipReason string

const (
	SkipExtension  SkipReason = "extension"
	SkipExcluded   SkipReason = "excluded"
	SkipTooLarge   SkipReason = "too_large"
	SkipBinary     SkipReason = "binary"
	SkipSymlink    SkipReason = "symlink"
	SkipUnreadable SkipReason = "unreadable"
)

// Candidate is a file selected for detection and conversion.
type Candidate struct {
	Path string
	Size int64
}

// Skipped records a file the walker rejected and why.
type Skipped struct {
	Path   string
	Reason SkipReason
}

// Options configures a Walker.
type Options struct {
	// Include globs match against the path relative to the walk root;
	// empty means everything is included. Exclude wins over include.
	Include []string
	Exclude []string
	// Extensions is the lowercase allowlist applied to walked files.
	Extensions []string
	// MaxFileSize skips larger files; 0 disables the limit.
	MaxFileSize int64
	// FollowSymlinks resolves symlinked files instead of skipping them.
	FollowSymlinks bool
	// SampleBytes bounds the binary sniff window. Zero uses 64 KiB.
	SampleBytes int
}

// Walker discovers candidate files under one or more roots.
type Walker struct {
	opts Options
}

// New constructs a Walker.
func New(opts Options) *Walker {
	if opts.SampleBytes <= 0 {
		opts.SampleBytes = 64 * 1024
	}
	return &Walker{opts: opts}
}

// Collect gathers candidates from the given roots. A root that is a file
// bypasses the extension and glob filters; directory trees get the full
// filter set. Results are sorted by path.
func (w *Walker) Collect(roots []string) ([]Candidate, []Skipped, error) {
	var candidates []Candidate
	var skipped []Skipped

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", abs, err)
		}

		if !info.IsDir() {
			w.consider(abs, info.Size(), &candidates, &skipped)
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				if !w.opts.FollowSymlinks {
					skipped = append(skipped, Skipped{Path: path, Reason: SkipSymlink})
					return nil
				}
				resolved, err := os.Stat(path)
				if err != nil || resolved.IsDir() {
					skipped = append(skipped, Skipped{Path: path, Reason: SkipSymlink})
					return nil
				}
				if !w.filterWalked(abs, path, &skipped) {
					return nil
				}
				w.consider(path, resolved.Size(), &candidates, &skipped)
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !w.filterWalked(abs, path, &skipped) {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				skipped = append(skipped, Skipped{Path: path, Reason: SkipUnreadable})
				return nil
			}
			w.consider(path, fi.Size(), &candidates, &skipped)
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("walk %s: %w", abs, err)
		}
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		return strings.Compare(a.Path, b.Path)
	})
	return candidates, skipped, nil
}

// filterWalked applies the extension and glob filters to a walked file.
// It reports whether the file survives.
func (w *Walker) filterWalked(root, path string, skipped *[]Skipped) bool {
	if len(w.opts.Extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(w.opts.Extensions, ext) {
			*skipped = append(*skipped, Skipped{Path: path, Reason: SkipExtension})
			return false
		}
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	if matchAny(w.opts.Exclude, rel) {
		*skipped = append(*skipped, Skipped{Path: path, Reason: SkipExcluded})
		return false
	}
	if len(w.opts.Include) > 0 && !matchAny(w.opts.Include, rel) {
		*skipped = append(*skipped, Skipped{Path: path, Reason: SkipExcluded})
		return false
	}
	return true
}

// consider applies the size and binary guards and records the outcome.
func (w *Walker) consider(path string, size int64, candidates *[]Candidate, skipped *[]Skipped) {
	if w.opts.MaxFileSize > 0 && size > w.opts.MaxFileSize {
		*skipped = append(*skipped, Skipped{Path: path, Reason: SkipTooLarge})
		return
	}

	binary, err := w.sniffBinary(path)
	if err != nil {
		*skipped = append(*skipped, Skipped{Path: path, Reason: SkipUnreadable})
		return
	}
	if binary {
		*skipped = append(*skipped, Skipped{Path: path, Reason: SkipBinary})
		return
	}

	*candidates = append(*candidates, Candidate{Path: path, Size: size})
}

// matchAny reports whether rel matches any pattern against the full
// relative path or its base name.
func matchAny(patterns []string, rel string) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
		// Directory patterns like "vendor/*" should also match deeper paths.
		if strings.HasSuffix(pattern, "/*") {
			if strings.HasPrefix(rel, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		}
	}
	return false
}
