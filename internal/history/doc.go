// Package history persists conversion runs in SQLite.
//
// Each CLI invocation that touches files becomes a run row plus one row
// per processed file, so past conversions can be reviewed and audited
// with `enconv history`. A file lock serializes writers across
// concurrent enconv processes sharing a database.
package history
