package literal_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/transform/literal"
	"github.com/arthur-debert/sedit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, content string, params types.LiteralParams) types.TransformResult {
	t.Helper()
	result, err := literal.New().Apply(context.Background(), content, params)
	require.NoError(t, err)
	return result
}

func TestFirstOccurrenceOnly(t *testing.T) {
	result := apply(t, "foo bar foo baz foo\n", types.LiteralParams{
		Find:    "foo",
		Replace: "qux",
	})

	assert.Equal(t, "qux bar foo baz foo\n", result.Content)
	assert.Equal(t, 1, result.LinesChanged)
}

func TestReplaceAll(t *testing.T) {
	result := apply(t, "foo bar foo\nfoo\n", types.LiteralParams{
		Find:       "foo",
		Replace:    "qux",
		ReplaceAll: true,
	})

	assert.Equal(t, "qux bar qux\nqux\n", result.Content)
	assert.Equal(t, 2, result.LinesChanged)
}

func TestFirstOccurrenceSpansLines(t *testing.T) {
	// first occurrence in the whole content, not per line
	result := apply(t, "nothing here\ntarget\ntarget\n", types.LiteralParams{
		Find:    "target",
		Replace: "hit",
	})

	assert.Equal(t, "nothing here\nhit\ntarget\n", result.Content)
}

func TestMetacharactersAreNotPatterns(t *testing.T) {
	result := apply(t, "price is $5.00 (sale)\n", types.LiteralParams{
		Find:       "$5.00 (sale)",
		Replace:    "$6.00",
		ReplaceAll: true,
	})

	assert.Equal(t, "price is $6.00\n", result.Content)
}

func TestDotDoesNotMatchAnyCharacter(t *testing.T) {
	result := apply(t, "axb a.b\n", types.LiteralParams{
		Find:       "a.b",
		Replace:    "X",
		ReplaceAll: true,
	})

	assert.Equal(t, "axb X\n", result.Content)
}

func TestReplacementDollarIsLiteral(t *testing.T) {
	result := apply(t, "cost: 10\n", types.LiteralParams{
		Find:    "10",
		Replace: "$10",
	})

	assert.Equal(t, "cost: $10\n", result.Content)
}

func TestNoOccurrenceIsNoOp(t *testing.T) {
	content := "unchanged\n"

	result := apply(t, content, types.LiteralParams{Find: "missing", Replace: "x"})

	assert.Equal(t, content, result.Content)
	assert.Equal(t, 0, result.LinesChanged)
}

func TestEmptyReplacementDeletesText(t *testing.T) {
	result := apply(t, "keep DROP keep\n", types.LiteralParams{
		Find:       " DROP",
		Replace:    "",
		ReplaceAll: true,
	})

	assert.Equal(t, "keep keep\n", result.Content)
}

func TestValidateRejectsEmptyFind(t *testing.T) {
	err := literal.New().Validate(types.LiteralParams{Find: "", Replace: "x"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedPattern))
}

func TestValidateRejectsWrongParamsType(t *testing.T) {
	err := literal.New().Validate(types.ColumnParams{Expression: "$1"})

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestValidateAcceptsMetacharacters(t *testing.T) {
	err := literal.New().Validate(types.LiteralParams{Find: "[a-z]+ (.*) $", Replace: ""})

	assert.NoError(t, err)
}
