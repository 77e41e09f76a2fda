package sedit

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sedit/pkg/style"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Styling only applies when stdout is a terminal so piped help stays clean
func terminalOut() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func formatBold(s string) string {
	if !terminalOut() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting registers the helpers the usage template expects
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"boldUpper": formatBoldUpper,
	})
}

// printResults renders edits to stdout and returns the number of failures.
// Diffs print per result when present; batches end with a summary line.
func printResults(renderer style.Renderer, results []types.EditResult) int {
	failed := 0
	withDiffs := false
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
		if len(result.Diff) > 0 {
			withDiffs = true
		}
	}

	if !withDiffs {
		fmt.Println(renderer.RenderResults(results))
		return failed
	}

	for _, result := range results {
		fmt.Println(renderer.RenderResult(result))
		if len(result.Diff) > 0 {
			fmt.Println(renderer.RenderDiff(result.Diff))
		}
	}
	if len(results) > 1 {
		fmt.Printf(MsgEditSummary, len(results)-failed, len(results))
	}
	return failed
}
