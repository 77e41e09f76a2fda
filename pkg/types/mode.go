package types

// EditMode selects the transformer that interprets an operation's
// parameters. The set is closed: operations carry exactly one mode.
type EditMode string

const (
	// ModeSubstitute applies a sed-style expression (s///, d, a, i)
	ModeSubstitute EditMode = "substitute"

	// ModeLines edits by line number (replace, delete, insert)
	ModeLines EditMode = "lines"

	// ModeColumns extracts, aggregates, or filters delimited fields
	ModeColumns EditMode = "columns"

	// ModeLiteral replaces a literal string with no metacharacter handling
	ModeLiteral EditMode = "literal"

	// ModeScript runs a sandboxed Lua transform function
	ModeScript EditMode = "script"
)

// AllModes lists every registered edit mode in display order.
func AllModes() []EditMode {
	return []EditMode{ModeSubstitute, ModeLines, ModeColumns, ModeLiteral, ModeScript}
}

// BackupStrategy controls how backup paths are derived from source paths.
type BackupStrategy string

const (
	// StrategyCanonical keeps a single rolling backup at path + ".bak"
	StrategyCanonical BackupStrategy = "canonical"

	// StrategyTimestamped keeps one backup per snapshot, timestamp in the name
	StrategyTimestamped BackupStrategy = "timestamped"
)

// LineAction is the operation a line-mode edit performs on addressed lines.
type LineAction string

const (
	// LineReplace rewrites each addressed line with the given text
	LineReplace LineAction = "replace"
	// LineDelete removes the addressed lines
	LineDelete LineAction = "delete"
	// LineInsert adds the given text after each addressed line
	LineInsert LineAction = "insert"
)

// EditStage identifies where in the pipeline an operation currently is,
// or where it failed.
type EditStage string

const (
	// StageValidate checks parameters before any file access
	StageValidate EditStage = "validate"
	// StageSnapshot writes and verifies the pre-edit backup
	StageSnapshot EditStage = "snapshot"
	// StageTransform runs the mode's transformer over the content
	StageTransform EditStage = "transform"
	// StageWrite atomically replaces the target file
	StageWrite EditStage = "write"
	// StageReport assembles the result and optional diff
	StageReport EditStage = "report"
)

// ChangeKind classifies a single line in a positional diff.
type ChangeKind string

const (
	// ChangeAdded means the line exists only in the after content
	ChangeAdded ChangeKind = "added"
	// ChangeRemoved means the line exists only in the before content
	ChangeRemoved ChangeKind = "removed"
	// ChangeModified means both sides have the line position but text differs
	ChangeModified ChangeKind = "modified"
	// ChangeUnchanged means the line is identical on both sides
	ChangeUnchanged ChangeKind = "unchanged"
)
