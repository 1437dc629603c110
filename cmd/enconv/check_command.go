package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enconv/internal/detect"
	"enconv/internal/scan"
	"enconv/internal/textutil"
)

// checkResult is the per-file verdict emitted by `enconv check`.
type checkResult struct {
	Path     string `json:"path"`
	Valid    bool   `json:"valid"`
	Encoding string `json:"encoding,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Verify files are valid UTF-8; exits non-zero when any is not",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			walker := scan.New(scan.Options{
				Include:        cfg.Scan.Include,
				Exclude:        cfg.Scan.Exclude,
				Extensions:     cfg.Scan.Extensions,
				MaxFileSize:    cfg.MaxFileSizeBytes(),
				FollowSymlinks: cfg.Scan.FollowSymlinks,
				SampleBytes:    cfg.Scan.SampleBytes,
			})
			candidates, _, err := walker.Collect(args)
			if err != nil {
				return err
			}

			detector := detect.New(detect.Options{
				SampleBytes:         cfg.Scan.SampleBytes,
				ConfidenceThreshold: cfg.Convert.ConfidenceThreshold,
			})

			results := make([]checkResult, 0, len(candidates))
			invalid := 0
			for _, candidate := range candidates {
				result := checkResult{Path: candidate.Path}
				detection, err := detector.DetectFile(candidate.Path)
				switch {
				case err != nil:
					result.Reason = err.Error()
				case detection.Encoding == "utf-8" && detection.ValidUTF8 && detection.BOM == detect.BOMNone:
					result.Valid = true
					result.Encoding = "utf-8"
				case detection.BOM == detect.BOMUTF8:
					result.Encoding = "utf-8"
					result.Reason = "utf-8 byte-order mark"
				case !detection.ValidUTF8 && detection.Encoding == "utf-8":
					result.Encoding = "utf-8"
					result.Reason = "invalid byte sequences"
				default:
					result.Encoding = detection.Encoding
					result.Reason = fmt.Sprintf("looks like %s", textutil.DisplayEncoding(detection.Encoding))
				}
				if !result.Valid {
					invalid++
				}
				results = append(results, result)
			}

			if jsonOut {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, result := range results {
					if result.Valid {
						fmt.Fprintf(out, "ok    %s\n", result.Path)
					} else {
						fmt.Fprintf(out, "bad   %s (%s)\n", result.Path, result.Reason)
					}
				}
				fmt.Fprintf(out, "%s checked, %d invalid\n", textutil.FormatCount(len(results), "file", "files"), invalid)
			}

			if invalid > 0 {
				return fmt.Errorf("%d file(s) are not clean UTF-8", invalid)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit per-file verdicts as JSON")
	return cmd
}
