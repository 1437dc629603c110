package config

import (
	"fmt"
	"runtime"
	"strings"

	"enconv/internal/textutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeConvert()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) != "" {
		if c.Paths.BackupDir, err = expandPath(c.Paths.BackupDir); err != nil {
			return fmt.Errorf("paths.backup_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeScan() {
	exts := make([]string, 0, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Scan.Extensions = exts

	if c.Scan.SampleBytes <= 0 {
		c.Scan.SampleBytes = defaultSampleBytes
	}
	if c.Scan.MaxFileSizeMiB < 0 {
		c.Scan.MaxFileSizeMiB = 0
	}
}

func (c *Config) normalizeConvert() {
	c.Convert.FallbackEncoding = textutil.CanonicalEncoding(c.Convert.FallbackEncoding)
	if c.Convert.FallbackEncoding == "" {
		c.Convert.FallbackEncoding = defaultFallbackEncoding
	}
	c.Convert.Newline = strings.ToLower(strings.TrimSpace(c.Convert.Newline))
	if c.Convert.Newline == "" {
		c.Convert.Newline = defaultNewline
	}
	c.Convert.NormalizeForm = strings.ToLower(strings.TrimSpace(c.Convert.NormalizeForm))
	if c.Convert.NormalizeForm == "" {
		c.Convert.NormalizeForm = defaultNormalizeForm
	}
	if c.Convert.Jobs <= 0 {
		c.Convert.Jobs = runtime.NumCPU()
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
