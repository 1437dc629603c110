// Package pipeline orchestrates batch conversion runs.
//
// A run walks the requested roots, detects each candidate's encoding,
// and rewrites non-conforming files through a bounded worker pool.
// Individual file failures are recorded in the run summary rather than
// aborting the batch; completed runs are persisted to the history store
// when one is supplied.
package pipeline
