package config

const (
	defaultLogDir              = "~/.local/share/enconv/logs"
	defaultHistoryDB           = "~/.local/share/enconv/history.db"
	defaultFallbackEncoding    = "utf-8"
	defaultConfidenceThreshold = 40
	defaultNewline             = "keep"
	defaultNormalizeForm       = "none"
	defaultMaxFileSizeMiB      = 64
	defaultSampleBytes         = 64 * 1024
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultHistoryKeepRuns     = 100
)

// NewlinePolicies are the accepted values for convert.newline.
var NewlinePolicies = []string{"keep", "lf", "crlf"}

// NormalizeForms are the accepted values for convert.normalize_form.
var NormalizeForms = []string{"none", "nfc", "nfd", "nfkc", "nfkd"}

func defaultExtensions() []string {
	return []string{
		".txt", ".md", ".rst", ".csv", ".tsv", ".json", ".yaml", ".yml",
		".xml", ".html", ".htm", ".srt", ".vtt", ".log", ".tex",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Scan: Scan{
			Extensions:     defaultExtensions(),
			MaxFileSizeMiB: defaultMaxFileSizeMiB,
			SampleBytes:    defaultSampleBytes,
		},
		Convert: Convert{
			FallbackEncoding:    defaultFallbackEncoding,
			ConfidenceThreshold: defaultConfidenceThreshold,
			Newline:             defaultNewline,
			NormalizeForm:       defaultNormalizeForm,
			Backup:              true,
			StripBOM:            true,
		},
		History: History{
			Enabled:  true,
			KeepRuns: defaultHistoryKeepRuns,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
