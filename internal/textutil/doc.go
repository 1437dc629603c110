// Package textutil provides small text formatting helpers shared by the
// detection, conversion, and CLI layers.
//
// The primary use cases are:
//   - Formatting byte counts and large numbers for console output
//   - Canonicalizing encoding labels for display and comparison
package textutil
