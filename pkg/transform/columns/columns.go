// Package columns implements the columns mode: field extraction,
// numeric aggregation, and numeric filters over delimited lines. The
// expression vocabulary is fixed: "$N", "sum", "sum $N", and
// "$N <op> <value>" with op one of ==, !=, <, <=, >, >=.
package columns

import (
	"context"
	"strconv"
	"strings"

	"github.com/arthur-debert/sedit/pkg/diff"
	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/internal/textutil"
	"github.com/arthur-debert/sedit/pkg/transform"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Name is the registry name of the columns transformer.
const Name = "columns"

type exprKind int

const (
	kindExtract exprKind = iota
	kindSum
	kindFilter
)

// columnExpr is a parsed column expression.
type columnExpr struct {
	kind  exprKind
	field int // 1-based
	op    string
	value float64
}

// Transformer applies field expressions to content.
type Transformer struct{}

// New creates the columns transformer.
func New() *Transformer {
	return &Transformer{}
}

// Mode implements transform.Transformer
func (t *Transformer) Mode() types.EditMode { return types.ModeColumns }

// Name implements transform.Transformer
func (t *Transformer) Name() string { return Name }

// Describe implements transform.Transformer
func (t *Transformer) Describe() string {
	return "field extraction, sums, and numeric filters"
}

// Validate checks the expression against the fixed vocabulary.
func (t *Transformer) Validate(params types.Params) error {
	p, ok := params.(types.ColumnParams)
	if !ok {
		return errors.New(errors.ErrInvalidInput, "columns mode requires ColumnParams")
	}
	_, err := parseColumnExpr(p.Expression)
	return err
}

// Apply runs the expression over every line. An empty separator splits
// on runs of whitespace.
func (t *Transformer) Apply(ctx context.Context, content string, params types.Params) (types.TransformResult, error) {
	p, ok := params.(types.ColumnParams)
	if !ok {
		return types.TransformResult{}, errors.New(errors.ErrInvalidInput, "columns mode requires ColumnParams")
	}

	expr, err := parseColumnExpr(p.Expression)
	if err != nil {
		return types.TransformResult{}, err
	}

	lines, terminated := textutil.SplitLines(content)

	var out []string
	switch expr.kind {
	case kindExtract:
		out = applyExtract(lines, p.Separator, expr.field)
	case kindSum:
		out = []string{applySum(lines, p.Separator, expr.field)}
	case kindFilter:
		out = applyFilter(lines, p.Separator, expr)
	}

	newContent := textutil.JoinLines(out, terminated)
	return types.TransformResult{
		Content:      newContent,
		LinesChanged: diff.Changed(diff.Compute(content, newContent)),
	}, nil
}

// parseColumnExpr recognizes the fixed vocabulary; anything else fails
// with UNSUPPORTED_EXPRESSION.
func parseColumnExpr(raw string) (*columnExpr, error) {
	tokens := strings.Fields(raw)

	switch len(tokens) {
	case 1:
		if tokens[0] == "sum" {
			return &columnExpr{kind: kindSum, field: 1}, nil
		}
		field, err := parseFieldRef(tokens[0])
		if err != nil {
			return nil, err
		}
		return &columnExpr{kind: kindExtract, field: field}, nil

	case 2:
		if tokens[0] != "sum" {
			return nil, unsupported(raw)
		}
		field, err := parseFieldRef(tokens[1])
		if err != nil {
			return nil, err
		}
		return &columnExpr{kind: kindSum, field: field}, nil

	case 3:
		field, err := parseFieldRef(tokens[0])
		if err != nil {
			return nil, err
		}
		op := tokens[1]
		switch op {
		case "==", "!=", "<", "<=", ">", ">=":
		default:
			return nil, errors.Newf(errors.ErrUnsupportedExpression,
				"unknown comparison operator %q", op)
		}
		value, err2 := strconv.ParseFloat(tokens[2], 64)
		if err2 != nil {
			return nil, errors.Newf(errors.ErrUnsupportedExpression,
				"comparison value %q is not numeric", tokens[2])
		}
		return &columnExpr{kind: kindFilter, field: field, op: op, value: value}, nil

	default:
		return nil, unsupported(raw)
	}
}

func parseFieldRef(token string) (int, error) {
	if !strings.HasPrefix(token, "$") {
		return 0, errors.Newf(errors.ErrUnsupportedExpression,
			"expected a field reference like $1, got %q", token)
	}
	n, err := strconv.Atoi(token[1:])
	if err != nil || n < 1 {
		return 0, errors.Newf(errors.ErrUnsupportedExpression,
			"field references are 1-based, got %q", token)
	}
	return n, nil
}

func unsupported(raw string) error {
	return errors.Newf(errors.ErrUnsupportedExpression,
		"unsupported column expression %q", raw).
		WithDetail("expression", raw)
}

// splitFields splits a line into fields. An empty separator means
// awk-style runs of whitespace.
func splitFields(line, separator string) []string {
	if separator == "" {
		return strings.Fields(line)
	}
	return strings.Split(line, separator)
}

// fieldAt returns the 1-based field and whether the line has it.
func fieldAt(line, separator string, n int) (string, bool) {
	fields := splitFields(line, separator)
	if n > len(fields) {
		return "", false
	}
	return fields[n-1], true
}

func applyExtract(lines []string, separator string, field int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		value, ok := fieldAt(line, separator, field)
		if !ok {
			out[i] = ""
			continue
		}
		out[i] = value
	}
	return out
}

// applySum totals the numeric values of the field across all lines.
// Non-numeric and missing fields contribute nothing.
func applySum(lines []string, separator string, field int) string {
	total := 0.0
	for _, line := range lines {
		value, ok := fieldAt(line, separator, field)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		total += n
	}
	return strconv.FormatFloat(total, 'f', -1, 64)
}

// applyFilter keeps lines whose field compares true numerically.
// Lines with a missing or non-numeric field are dropped.
func applyFilter(lines []string, separator string, expr *columnExpr) []string {
	var out []string
	for _, line := range lines {
		value, ok := fieldAt(line, separator, expr.field)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		if compare(n, expr.op, expr.value) {
			out = append(out, line)
		}
	}
	return out
}

func compare(left float64, op string, right float64) bool {
	switch op {
	case "==":
		return left == right
	case "!=":
		return left != right
	case "<":
		return left < right
	case "<=":
		return left <= right
	case ">":
		return left > right
	case ">=":
		return left >= right
	}
	return false
}

func init() {
	transform.MustRegister(New())
}
