// Package diff computes positional line diffs between two versions of a
// file's content. Lines are compared strictly by index: a line that moves
// shows up as modified at its old position, not as a move. That keeps the
// report linear in file size and is exactly what a preview of a line-based
// edit needs; this is not a general diff algorithm.
package diff

import (
	"github.com/arthur-debert/sedit/pkg/internal/textutil"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Compute aligns before and after line by line and returns one entry per
// position, including unchanged lines, in order. Positions past the end of
// before are added lines; positions past the end of after are removed.
func Compute(before, after string) []types.DiffEntry {
	beforeLines, _ := textutil.SplitLines(before)
	afterLines, _ := textutil.SplitLines(after)

	n := len(beforeLines)
	if len(afterLines) > n {
		n = len(afterLines)
	}

	entries := make([]types.DiffEntry, 0, n)
	for i := 0; i < n; i++ {
		entry := types.DiffEntry{Line: i + 1}
		if i < len(beforeLines) {
			entry.Before = beforeLines[i]
			entry.HasBefore = true
		}
		if i < len(afterLines) {
			entry.After = afterLines[i]
			entry.HasAfter = true
		}

		switch {
		case entry.HasBefore && entry.HasAfter && entry.Before == entry.After:
			entry.Kind = types.ChangeUnchanged
		case entry.HasBefore && entry.HasAfter:
			entry.Kind = types.ChangeModified
		case entry.HasAfter:
			entry.Kind = types.ChangeAdded
		default:
			entry.Kind = types.ChangeRemoved
		}
		entries = append(entries, entry)
	}
	return entries
}

// Changed counts the entries that are not unchanged.
func Changed(entries []types.DiffEntry) int {
	count := 0
	for _, e := range entries {
		if e.Kind != types.ChangeUnchanged {
			count++
		}
	}
	return count
}
