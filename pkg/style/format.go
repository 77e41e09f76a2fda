package style

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/sedit/pkg/errors"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks terminal or text based on the output's capabilities
	FormatAuto Format = iota
	// FormatTerminal styles output with colors
	FormatTerminal
	// FormatText emits unstyled text
	FormatText
)

// String returns the format as a --color flag value
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "always"
	case FormatText:
		return "never"
	default:
		return "unknown"
	}
}

// ParseFormat parses a color mode string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "always", "term", "terminal":
		return FormatTerminal, nil
	case "never", "text", "plain":
		return FormatText, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s)
	}
}

// DetectFormat determines the output format from the environment and the
// output's terminal capabilities
func DetectFormat(output *os.File) Format {
	// NO_COLOR always wins
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	// Piped or redirected output gets plain text
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// Resolve turns FormatAuto into a concrete format for output
func Resolve(f Format, output *os.File) Format {
	if f == FormatAuto {
		return DetectFormat(output)
	}
	return f
}
