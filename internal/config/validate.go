package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScan() error {
	if c.Scan.SampleBytes < 512 {
		return errors.New("scan.sample_bytes must be at least 512")
	}
	return nil
}

func (c *Config) validateConvert() error {
	if c.Convert.ConfidenceThreshold < 0 || c.Convert.ConfidenceThreshold > 100 {
		return errors.New("convert.confidence_threshold must be between 0 and 100")
	}
	if !slices.Contains(NewlinePolicies, c.Convert.Newline) {
		return fmt.Errorf("convert.newline must be one of %v", NewlinePolicies)
	}
	if !slices.Contains(NormalizeForms, c.Convert.NormalizeForm) {
		return fmt.Errorf("convert.normalize_form must be one of %v", NormalizeForms)
	}
	if c.Convert.Jobs > 256 {
		return errors.New("convert.jobs must be 256 or fewer")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.KeepRuns < 0 {
		return errors.New("history.keep_runs must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
