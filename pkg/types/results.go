package types

// ValidationResult is the outcome of static parameter validation. It is
// produced exactly once per operation, before any file access.
type ValidationResult struct {
	// Valid is true when the parameters are well formed for the mode
	Valid bool

	// Code is the stable error code when Valid is false, empty otherwise.
	// Kept as a string so callers can assert on it without importing the
	// errors package.
	Code string

	// Message explains what was wrong, empty when valid
	Message string
}

// TransformResult is the outcome of applying a transformer to content.
type TransformResult struct {
	// Content is the complete transformed text
	Content string

	// LinesChanged counts lines added, removed, or modified by the transform
	LinesChanged int
}

// DiffEntry is one line of a positional diff. Line numbers are 1-based and
// refer to the before side for removed/modified/unchanged lines and to the
// after side for added lines.
type DiffEntry struct {
	Line      int
	Before    string
	After     string
	HasBefore bool
	HasAfter  bool
	Kind      ChangeKind
}

// EditResult is the full report of one edit operation.
type EditResult struct {
	// RequestID uniquely identifies this engine request in logs
	RequestID string

	// Target is the file the operation addressed
	Target string

	// Success is true when the pipeline ran to completion
	Success bool

	// DryRun echoes the request's dry-run flag
	DryRun bool

	// LinesChanged is the transformer's change count (0 on failure)
	LinesChanged int

	// Backup is the verified snapshot record, nil when no backup was taken
	Backup *BackupRecord

	// Diff is the positional line diff when requested or on dry runs
	Diff []DiffEntry

	// Stage is the stage that failed, or StageReport on success
	Stage EditStage

	// Err is the coded failure, nil on success
	Err error
}
