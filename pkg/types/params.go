package types

// Params carries the mode-specific inputs of an edit operation. The set of
// implementations is closed; dispatch happens by EditMode, never by type
// probing at call sites.
type Params interface {
	// Mode returns the edit mode these parameters belong to
	Mode() EditMode
}

// SubstituteParams holds a sed-style expression for substitute mode.
//
// The expression grammar is [address]s<delim>pattern<delim>replacement<delim>[flags]
// for substitutions, or [address]<command> where command is one of d (delete),
// a (append after), i (insert before). Addresses are a line number, a range
// N,M, $ for the last line, or /regex/.
type SubstituteParams struct {
	Expression string
}

// Mode implements Params
func (SubstituteParams) Mode() EditMode { return ModeSubstitute }

// LineEditParams addresses lines by 1-based number for lines mode.
// End of zero means the single line Start; a range end past the last
// line clamps to it.
type LineEditParams struct {
	Action LineAction
	Start  int
	End    int
	Text   string
}

// Mode implements Params
func (LineEditParams) Mode() EditMode { return ModeLines }

// ColumnParams holds a field expression for columns mode. An empty
// Separator splits on runs of whitespace, awk style.
//
// Supported expressions: "$N" extracts field N, "sum" / "sum $N" emits the
// numeric total of a field, and "$N <op> <value>" keeps lines whose field
// compares true, with op one of ==, !=, <, <=, >, >=.
type ColumnParams struct {
	Separator  string
	Expression string
}

// Mode implements Params
func (ColumnParams) Mode() EditMode { return ModeColumns }

// LiteralParams holds a verbatim find/replace pair for literal mode.
// Find is never interpreted as a pattern. ReplaceAll false replaces only
// the first occurrence in the content.
type LiteralParams struct {
	Find       string
	Replace    string
	ReplaceAll bool
}

// Mode implements Params
func (LiteralParams) Mode() EditMode { return ModeLiteral }

// ScriptParams holds Lua source for script mode. The source must define a
// global function transform(content) returning the new content string.
type ScriptParams struct {
	Source string
}

// Mode implements Params
func (ScriptParams) Mode() EditMode { return ModeScript }
