package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantLines      []string
		wantTerminated bool
	}{
		{"empty", "", nil, false},
		{"single_terminated", "a\n", []string{"a"}, true},
		{"single_unterminated", "a", []string{"a"}, false},
		{"multi_terminated", "a\nb\nc\n", []string{"a", "b", "c"}, true},
		{"multi_unterminated", "a\nb\nc", []string{"a", "b", "c"}, false},
		{"blank_lines_kept", "a\n\nb\n", []string{"a", "", "b"}, true},
		{"lone_newline", "\n", []string{""}, true},
		{"crlf_rides_along", "a\r\nb\r\n", []string{"a\r", "b\r"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, terminated := SplitLines(tt.content)
			assert.Equal(t, tt.wantLines, lines)
			assert.Equal(t, tt.wantTerminated, terminated)
		})
	}
}

func TestJoinLinesRoundTrip(t *testing.T) {
	contents := []string{
		"",
		"a\n",
		"a",
		"a\nb\nc\n",
		"a\nb\nc",
		"a\n\nb\n",
		"\n",
	}

	for _, content := range contents {
		lines, terminated := SplitLines(content)
		assert.Equal(t, content, JoinLines(lines, terminated), "round trip of %q", content)
	}
}
