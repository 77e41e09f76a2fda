// Package lineedit implements the lines mode: replace, delete, or
// insert-after by 1-based line number or inclusive range.
package lineedit

import (
	"context"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/internal/textutil"
	"github.com/arthur-debert/sedit/pkg/transform"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Name is the registry name of the line edit transformer.
const Name = "lines"

// Transformer applies line-number edits to content.
type Transformer struct{}

// New creates the line edit transformer.
func New() *Transformer {
	return &Transformer{}
}

// Mode implements transform.Transformer
func (t *Transformer) Mode() types.EditMode { return types.ModeLines }

// Name implements transform.Transformer
func (t *Transformer) Name() string { return Name }

// Describe implements transform.Transformer
func (t *Transformer) Describe() string {
	return "line-number edits (replace, delete, insert after)"
}

// Validate checks the action and the addressed range. Line content is
// not consulted; bounds are checked at apply time.
func (t *Transformer) Validate(params types.Params) error {
	p, ok := params.(types.LineEditParams)
	if !ok {
		return errors.New(errors.ErrInvalidInput, "lines mode requires LineEditParams")
	}

	switch p.Action {
	case types.LineReplace, types.LineDelete, types.LineInsert:
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown line action '%s'", p.Action)
	}

	if p.Start < 1 {
		return errors.Newf(errors.ErrInvalidRange, "line numbers are 1-based, got start %d", p.Start).
			WithDetail("start", p.Start)
	}
	if p.End != 0 && p.End < p.Start {
		return errors.Newf(errors.ErrInvalidRange, "range %d,%d is inverted", p.Start, p.End).
			WithDetails(map[string]interface{}{"start": p.Start, "end": p.End})
	}

	return nil
}

// Apply edits the addressed lines. A start line past the end of the
// content fails with LINE_OUT_OF_BOUNDS; a range end past the last
// line clamps to it.
func (t *Transformer) Apply(ctx context.Context, content string, params types.Params) (types.TransformResult, error) {
	p, ok := params.(types.LineEditParams)
	if !ok {
		return types.TransformResult{}, errors.New(errors.ErrInvalidInput, "lines mode requires LineEditParams")
	}
	if err := t.Validate(p); err != nil {
		return types.TransformResult{}, err
	}

	lines, terminated := textutil.SplitLines(content)

	if p.Start > len(lines) {
		return types.TransformResult{}, errors.Newf(errors.ErrLineOutOfBounds,
			"line %d is out of bounds, content has %d line(s)", p.Start, len(lines)).
			WithDetails(map[string]interface{}{"line": p.Start, "total": len(lines)})
	}

	end := p.End
	if end == 0 {
		end = p.Start
	}
	if end > len(lines) {
		end = len(lines)
	}

	switch p.Action {
	case types.LineReplace:
		return applyReplace(lines, terminated, p.Start, end, p.Text), nil
	case types.LineDelete:
		return applyDelete(lines, terminated, p.Start, end), nil
	default:
		return applyInsert(lines, terminated, p.Start, end, p.Text), nil
	}
}

func applyReplace(lines []string, terminated bool, start, end int, text string) types.TransformResult {
	changed := 0
	for i := start - 1; i < end; i++ {
		if lines[i] != text {
			lines[i] = text
			changed++
		}
	}
	return types.TransformResult{
		Content:      textutil.JoinLines(lines, terminated),
		LinesChanged: changed,
	}
}

func applyDelete(lines []string, terminated bool, start, end int) types.TransformResult {
	kept := make([]string, 0, len(lines))
	kept = append(kept, lines[:start-1]...)
	kept = append(kept, lines[end:]...)

	return types.TransformResult{
		Content:      textutil.JoinLines(kept, terminated),
		LinesChanged: end - start + 1,
	}
}

func applyInsert(lines []string, terminated bool, start, end int, text string) types.TransformResult {
	textLines, _ := textutil.SplitLines(text)
	if len(textLines) == 0 {
		textLines = []string{""}
	}

	out := make([]string, 0, len(lines)+len(textLines))
	added := 0
	for i, line := range lines {
		out = append(out, line)
		num := i + 1
		if num >= start && num <= end {
			out = append(out, textLines...)
			added += len(textLines)
		}
	}

	return types.TransformResult{
		Content:      textutil.JoinLines(out, terminated),
		LinesChanged: added,
	}
}

func init() {
	transform.MustRegister(New())
}
