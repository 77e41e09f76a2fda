// Package literal implements the literal mode: verbatim string
// replacement with no metacharacter interpretation. The find string is
// escaped and pushed through the substitution machinery; literal input
// never reaches a raw regex.
package literal

import (
	"context"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/transform"
	"github.com/arthur-debert/sedit/pkg/transform/substitute"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Name is the registry name of the literal transformer.
const Name = "literal"

// Transformer applies verbatim find/replace to content.
type Transformer struct{}

// New creates the literal transformer.
func New() *Transformer {
	return &Transformer{}
}

// Mode implements transform.Transformer
func (t *Transformer) Mode() types.EditMode { return types.ModeLiteral }

// Name implements transform.Transformer
func (t *Transformer) Name() string { return Name }

// Describe implements transform.Transformer
func (t *Transformer) Describe() string {
	return "verbatim string replacement"
}

// Validate requires a non-empty find string; everything else is
// accepted verbatim.
func (t *Transformer) Validate(params types.Params) error {
	p, ok := params.(types.LiteralParams)
	if !ok {
		return errors.New(errors.ErrInvalidInput, "literal mode requires LiteralParams")
	}
	if p.Find == "" {
		return errors.New(errors.ErrMalformedPattern, "find string cannot be empty")
	}
	return nil
}

// Apply replaces occurrences of Find with Replace. ReplaceAll false
// replaces only the first occurrence in the content.
func (t *Transformer) Apply(ctx context.Context, content string, params types.Params) (types.TransformResult, error) {
	p, ok := params.(types.LiteralParams)
	if !ok {
		return types.TransformResult{}, errors.New(errors.ErrInvalidInput, "literal mode requires LiteralParams")
	}
	if err := t.Validate(p); err != nil {
		return types.TransformResult{}, err
	}

	return substitute.ApplyLiteral(content, p.Find, p.Replace, p.ReplaceAll), nil
}

func init() {
	transform.MustRegister(New())
}
