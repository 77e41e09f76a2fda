package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sedit/pkg/diff"
	"github.com/arthur-debert/sedit/pkg/types"
)

func TestComputeIdenticalContent(t *testing.T) {
	entries := diff.Compute("a\nb\n", "a\nb\n")

	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, types.ChangeUnchanged, e.Kind)
	}
	assert.Equal(t, 0, diff.Changed(entries))
}

func TestComputeModifiedLine(t *testing.T) {
	entries := diff.Compute("a\nb\nc\n", "a\nB\nc\n")

	require.Len(t, entries, 3)
	assert.Equal(t, types.ChangeUnchanged, entries[0].Kind)
	assert.Equal(t, types.ChangeModified, entries[1].Kind)
	assert.Equal(t, "b", entries[1].Before)
	assert.Equal(t, "B", entries[1].After)
	assert.Equal(t, 2, entries[1].Line)
	assert.Equal(t, types.ChangeUnchanged, entries[2].Kind)
	assert.Equal(t, 1, diff.Changed(entries))
}

func TestComputeAddedLines(t *testing.T) {
	entries := diff.Compute("a\n", "a\nb\nc\n")

	require.Len(t, entries, 3)
	assert.Equal(t, types.ChangeUnchanged, entries[0].Kind)
	assert.Equal(t, types.ChangeAdded, entries[1].Kind)
	assert.False(t, entries[1].HasBefore)
	assert.Equal(t, "b", entries[1].After)
	assert.Equal(t, types.ChangeAdded, entries[2].Kind)
	assert.Equal(t, "c", entries[2].After)
}

func TestComputeRemovedLines(t *testing.T) {
	entries := diff.Compute("a\nb\nc\n", "a\n")

	require.Len(t, entries, 3)
	assert.Equal(t, types.ChangeUnchanged, entries[0].Kind)
	assert.Equal(t, types.ChangeRemoved, entries[1].Kind)
	assert.Equal(t, "b", entries[1].Before)
	assert.False(t, entries[1].HasAfter)
	assert.Equal(t, types.ChangeRemoved, entries[2].Kind)
}

func TestComputeShiftReportsPositionally(t *testing.T) {
	// Deleting the first line shifts everything up: positional comparison
	// reports each position as modified plus one removal at the end.
	entries := diff.Compute("a\nb\nc\n", "b\nc\n")

	require.Len(t, entries, 3)
	assert.Equal(t, types.ChangeModified, entries[0].Kind)
	assert.Equal(t, types.ChangeModified, entries[1].Kind)
	assert.Equal(t, types.ChangeRemoved, entries[2].Kind)
}

func TestComputeEmptySides(t *testing.T) {
	t.Run("both_empty", func(t *testing.T) {
		assert.Empty(t, diff.Compute("", ""))
	})

	t.Run("before_empty", func(t *testing.T) {
		entries := diff.Compute("", "a\n")
		require.Len(t, entries, 1)
		assert.Equal(t, types.ChangeAdded, entries[0].Kind)
	})

	t.Run("after_empty", func(t *testing.T) {
		entries := diff.Compute("a\n", "")
		require.Len(t, entries, 1)
		assert.Equal(t, types.ChangeRemoved, entries[0].Kind)
	})
}

func TestComputeUnterminatedFinalLine(t *testing.T) {
	entries := diff.Compute("a\nb", "a\nb\n")

	// Terminator-only differences are not line differences
	require.Len(t, entries, 2)
	assert.Equal(t, types.ChangeUnchanged, entries[0].Kind)
	assert.Equal(t, types.ChangeUnchanged, entries[1].Kind)
}
