package types

// EditOperation is a single edit request against one target file. It is
// built once, validated before any file access, and never mutated by the
// pipeline.
type EditOperation struct {
	// Mode selects the transformer
	Mode EditMode

	// Target is the path of the file to edit
	Target string

	// Params are the mode-specific inputs; Params.Mode() must match Mode
	Params Params

	// CreateBackup snapshots the target before transforming it
	CreateBackup bool

	// Strategy picks the backup naming scheme when CreateBackup is set
	Strategy BackupStrategy

	// DryRun previews the edit without creating a backup or writing
	DryRun bool

	// ReportDiff includes a positional line diff in the result
	ReportDiff bool
}
