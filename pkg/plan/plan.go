// Package plan loads and runs declarative edit plans. A plan is a YAML
// document listing steps; each step is one edit operation against a file
// or a glob of files. Steps run in order and the first failure stops the
// plan.
package plan

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Plan is a parsed edit plan.
type Plan struct {
	Steps []Step `yaml:"steps"`
}

// Step is one edit in a plan. Exactly one of File or Glob names the
// target(s); the mode decides which of the remaining fields apply.
type Step struct {
	File string `yaml:"file,omitempty"`
	Glob string `yaml:"glob,omitempty"`
	Mode string `yaml:"mode"`

	// substitute and columns
	Expression string `yaml:"expression,omitempty"`

	// lines
	Action string `yaml:"action,omitempty"`
	Start  int    `yaml:"start,omitempty"`
	End    int    `yaml:"end,omitempty"`
	Text   string `yaml:"text,omitempty"`

	// columns
	Separator string `yaml:"separator,omitempty"`

	// literal
	Find    string `yaml:"find,omitempty"`
	Replace string `yaml:"replace,omitempty"`
	All     bool   `yaml:"all,omitempty"`

	// script (inline Lua source)
	Source string `yaml:"source,omitempty"`

	// Backup defaults to true when omitted
	Backup   *bool  `yaml:"backup,omitempty"`
	Strategy string `yaml:"strategy,omitempty"`
}

// Parse decodes a plan document. Unknown fields are errors so a typo in
// a step never silently becomes a no-op.
func Parse(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrPlanParse, "plan is empty")
		}
		return nil, errors.Wrap(err, errors.ErrPlanParse, "cannot parse plan")
	}

	if len(p.Steps) == 0 {
		return nil, errors.New(errors.ErrPlanParse, "plan has no steps")
	}
	for i := range p.Steps {
		if err := p.Steps[i].check(i); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Load reads and parses a plan file.
func Load(fsys types.FS, path string) (*Plan, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.MapOS(err, errors.ErrSourceNotFound, path)
	}
	return Parse(data)
}

// check enforces the structural rules Parse cannot express in the
// schema. Mode-specific parameter validation happens in the engine.
func (s *Step) check(index int) error {
	if s.File == "" && s.Glob == "" {
		return stepErr(index, "needs a file or a glob")
	}
	if s.File != "" && s.Glob != "" {
		return stepErr(index, "cannot have both a file and a glob")
	}
	if s.Mode == "" {
		return stepErr(index, "needs a mode")
	}

	known := false
	for _, mode := range types.AllModes() {
		if types.EditMode(s.Mode) == mode {
			known = true
			break
		}
	}
	if !known {
		return stepErr(index, "has unknown mode %q", s.Mode)
	}

	switch types.BackupStrategy(s.Strategy) {
	case "", types.StrategyCanonical, types.StrategyTimestamped:
	default:
		return stepErr(index, "has unknown strategy %q", s.Strategy)
	}
	return nil
}

func stepErr(index int, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrPlanParse, "step %d "+format,
		append([]interface{}{index + 1}, args...)...).
		WithDetail("step", index+1)
}

// params maps the step's fields to the mode's parameter type.
func (s *Step) params() types.Params {
	switch types.EditMode(s.Mode) {
	case types.ModeSubstitute:
		return types.SubstituteParams{Expression: s.Expression}
	case types.ModeLines:
		return types.LineEditParams{
			Action: types.LineAction(s.Action),
			Start:  s.Start,
			End:    s.End,
			Text:   s.Text,
		}
	case types.ModeColumns:
		return types.ColumnParams{Separator: s.Separator, Expression: s.Expression}
	case types.ModeLiteral:
		return types.LiteralParams{Find: s.Find, Replace: s.Replace, ReplaceAll: s.All}
	case types.ModeScript:
		return types.ScriptParams{Source: s.Source}
	default:
		return nil
	}
}
