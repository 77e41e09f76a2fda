// Package textutil holds the line splitting helpers shared by the
// transformers and the diff reporter. All of sedit treats \n as the line
// terminator; carriage returns are content and ride along inside lines.
package textutil

import "strings"

// SplitLines splits content on \n and reports whether the content ended
// with a terminator. The final unterminated line, when present, is kept as
// the last element. Empty content yields no lines.
func SplitLines(content string) ([]string, bool) {
	if content == "" {
		return nil, false
	}
	terminated := strings.HasSuffix(content, "\n")
	if terminated {
		content = content[:len(content)-1]
	}
	return strings.Split(content, "\n"), terminated
}

// JoinLines is the inverse of SplitLines: it reassembles lines and
// reattaches the trailing terminator when the original content had one.
// No lines with a terminator yields an empty string, matching SplitLines
// on "".
func JoinLines(lines []string, terminated bool) string {
	if len(lines) == 0 {
		return ""
	}
	joined := strings.Join(lines, "\n")
	if terminated {
		joined += "\n"
	}
	return joined
}
