package history

import "time"

// Action classifies what happened to a file during a run.
type Action string

const (
	ActionConverted Action = "converted"
	ActionUnchanged Action = "unchanged"
	ActionSkipped   Action = "skipped"
	ActionFailed    Action = "failed"
)

// Run summarizes one CLI invocation.
type Run struct {
	ID             string
	Mode           string
	Roots          []string
	DryRun         bool
	StartedAt      time.Time
	FinishedAt     time.Time
	FilesScanned   int
	FilesConverted int
	FilesUnchanged int
	FilesSkipped   int
	FilesFailed    int
	Replacements   int
}

// RunFile records the outcome for a single file within a run.
type RunFile struct {
	RunID        string
	Path         string
	Encoding     string
	Confidence   int
	Action       Action
	Detail       string
	Replacements int
	BackupPath   string
}
