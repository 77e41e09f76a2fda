// Package style renders sedit's human-facing output: edit results,
// diffs, backup tables, and validation verdicts. Formatting adapts to
// the terminal; plain mode carries the same information unstyled.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminal backgrounds.
var (
	successColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8B949E"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#6639BA", Dark: "#A371F7"}

	addedColor    = lipgloss.AdaptiveColor{Light: "#116329", Dark: "#7EE787"}
	removedColor  = lipgloss.AdaptiveColor{Light: "#A40E26", Dark: "#FF7B72"}
	modifiedColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#E3B341"}
)

var (
	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(infoColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	pathStyle    = lipgloss.NewStyle().Foreground(pathColor).Italic(true)

	diffAddStyle    = lipgloss.NewStyle().Foreground(addedColor)
	diffRemoveStyle = lipgloss.NewStyle().Foreground(removedColor)
	diffModifyStyle = lipgloss.NewStyle().Foreground(modifiedColor)
)

// Gutter marks for rendered results
var (
	successIndicator = successStyle.Render("✓")
	errorIndicator   = errorStyle.Render("✗")
	infoIndicator    = infoStyle.Render("•")
)

func indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
