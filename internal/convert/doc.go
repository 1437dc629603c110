// Package convert decodes text under a detected encoding and rewrites it
// as UTF-8.
//
// Decoding is best-effort: byte sequences that are invalid under the
// source encoding become U+FFFD instead of failing the file. The rewrite
// policy optionally strips byte-order marks, normalizes line endings,
// and applies a Unicode normalization form. File rewrites are atomic and
// may back up the original first.
package convert
