package textutil

import (
	"fmt"
	"strings"
)

// FormatBytes renders a byte count using binary units (KiB, MiB, ...).
// Values below 1 KiB are printed as plain bytes.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatCount renders a count with a singular or plural noun.
func FormatCount(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// CanonicalEncoding lowercases an encoding label and strips separators so
// spellings like "UTF-8", "utf8", and "utf_8" compare equal.
func CanonicalEncoding(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, "_", "-")
	label = strings.ReplaceAll(label, " ", "-")
	if label == "utf8" {
		return "utf-8"
	}
	return label
}

// DisplayEncoding renders an encoding label the way users expect to read it:
// well-known names in their conventional capitalization, everything else
// lowercased.
func DisplayEncoding(label string) string {
	switch CanonicalEncoding(label) {
	case "utf-8":
		return "UTF-8"
	case "utf-16le":
		return "UTF-16LE"
	case "utf-16be":
		return "UTF-16BE"
	case "utf-32le":
		return "UTF-32LE"
	case "utf-32be":
		return "UTF-32BE"
	case "ascii", "us-ascii":
		return "ASCII"
	}
	return CanonicalEncoding(label)
}
