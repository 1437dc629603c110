// Package detect estimates the character encoding of text files.
//
// Detection is layered: a byte-order mark wins outright, a clean UTF-8
// sample short-circuits the statistical pass, and everything else goes
// through the chardet heuristics with a configurable confidence floor.
// Inconclusive input falls back to a configured encoding (UTF-8 by
// default) so callers always receive a usable answer.
package detect
