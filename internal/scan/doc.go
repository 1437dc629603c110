// Package scan discovers candidate text files for conversion.
//
// It walks directory trees applying extension allowlists, include and
// exclude globs, size limits, and a binary-content sniff, producing the
// candidate list the pipeline operates on. Explicitly named files bypass
// the extension and glob filters but still face the binary and size
// guards.
package scan
