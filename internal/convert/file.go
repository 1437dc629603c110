package convert

import (
	"bytes"
	"fmt"
	"os"

	"enconv/internal/fileutil"
)

// FileOptions configures a single-file conversion.
type FileOptions struct {
	Options
	// Backup copies the original aside before the rewrite.
	Backup bool
	// BackupDir receives backups; empty keeps them next to the original.
	BackupDir string
}

// FileResult summarizes a completed file conversion.
type FileResult struct {
	Path         string
	Encoding     string
	Replacements int
	// Changed reports whether the file was rewritten. Files already in
	// policy-conformant UTF-8 are left untouched.
	Changed    bool
	BackupPath string
	BytesIn    int64
	BytesOut   int64
}

// File decodes the file at path from the named encoding and rewrites it
// in place as UTF-8 under the given policy. The rewrite is atomic; the
// original is backed up first when requested. Files whose rewritten form
// is byte-identical are not touched.
func File(path, encodingName string, opts FileOptions) (FileResult, error) {
	result := FileResult{Path: path, Encoding: encodingName}

	info, err := os.Stat(path)
	if err != nil {
		return result, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", path, err)
	}
	result.BytesIn = int64(len(data))

	decoded, replacements, err := Decode(data, encodingName)
	if err != nil {
		return result, err
	}
	result.Replacements = replacements

	output := ApplyPolicy(decoded, opts.Options)
	result.BytesOut = int64(len(output))

	if bytes.Equal(output, data) {
		return result, nil
	}

	if opts.Backup {
		backupPath, err := fileutil.BackupPath(path, opts.BackupDir)
		if err != nil {
			return result, fmt.Errorf("derive backup path: %w", err)
		}
		if err := fileutil.CopyFile(path, backupPath); err != nil {
			return result, fmt.Errorf("back up %s: %w", path, err)
		}
		result.BackupPath = backupPath
	}

	if err := fileutil.WriteFileAtomic(path, output, info.Mode().Perm()); err != nil {
		return result, fmt.Errorf("rewrite %s: %w", path, err)
	}
	result.Changed = true
	return result, nil
}
