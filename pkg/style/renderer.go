package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Renderer defines the interface for rendering sedit output
type Renderer interface {
	RenderResult(result types.EditResult) string
	RenderResults(results []types.EditResult) string
	RenderDiff(entries []types.DiffEntry) string
	RenderBackups(records []types.BackupRecord) string
	RenderValidation(mode types.EditMode, v types.ValidationResult) string
	RenderError(err error) string
}

// NewRenderer picks the renderer for a resolved format
func NewRenderer(f Format) Renderer {
	if f == FormatTerminal {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

const timeLayout = "2006-01-02 15:04:05"

func lineWord(n int) string {
	if n == 1 {
		return "line"
	}
	return "lines"
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderResult renders one edit outcome
func (r *TerminalRenderer) RenderResult(result types.EditResult) string {
	target := pathStyle.Render(result.Target)

	if result.Err != nil {
		return fmt.Sprintf("%s %s [%s] %s (failed at %s)",
			errorIndicator,
			target,
			errorStyle.Render(string(errors.GetErrorCode(result.Err))),
			result.Err.Error(),
			result.Stage)
	}

	var line string
	if result.DryRun {
		line = fmt.Sprintf("%s %s would change %d %s %s",
			infoIndicator, target, result.LinesChanged,
			lineWord(result.LinesChanged), mutedStyle.Render("(dry run)"))
	} else {
		line = fmt.Sprintf("%s %s %d %s changed",
			successIndicator, target, result.LinesChanged, lineWord(result.LinesChanged))
	}

	if result.Backup != nil {
		line += "\n" + indent(mutedStyle.Render("backup: "+result.Backup.BackupPath), 1)
	}
	return line
}

// RenderResults renders a batch of outcomes with a closing summary
func (r *TerminalRenderer) RenderResults(results []types.EditResult) string {
	if len(results) == 0 {
		return mutedStyle.Render("No files matched")
	}

	var out strings.Builder
	failed := 0
	for _, result := range results {
		out.WriteString(r.RenderResult(result) + "\n")
		if result.Err != nil {
			failed++
		}
	}

	if len(results) > 1 {
		summary := fmt.Sprintf("%d files edited", len(results)-failed)
		if failed > 0 {
			summary = fmt.Sprintf("%d files edited, %s",
				len(results)-failed, errorStyle.Render(fmt.Sprintf("%d failed", failed)))
		}
		out.WriteString(summary)
	}
	return strings.TrimRight(out.String(), "\n")
}

// RenderDiff renders the changed entries of a positional diff with a
// +/-/~ gutter and line numbers
func (r *TerminalRenderer) RenderDiff(entries []types.DiffEntry) string {
	var out strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case types.ChangeAdded:
			out.WriteString(diffAddStyle.Render(fmt.Sprintf("+ %4d  %s", e.Line, e.After)) + "\n")
		case types.ChangeRemoved:
			out.WriteString(diffRemoveStyle.Render(fmt.Sprintf("- %4d  %s", e.Line, e.Before)) + "\n")
		case types.ChangeModified:
			out.WriteString(diffModifyStyle.Render(fmt.Sprintf("~ %4d  %s → %s", e.Line, e.Before, e.After)) + "\n")
		}
	}
	if out.Len() == 0 {
		return mutedStyle.Render("no changes")
	}
	return strings.TrimRight(out.String(), "\n")
}

// RenderBackups renders backups as a table
func (r *TerminalRenderer) RenderBackups(records []types.BackupRecord) string {
	if len(records) == 0 {
		return mutedStyle.Render("No backups found")
	}

	data := pterm.TableData{
		{"BACKUP", "SOURCE", "STRATEGY", "CREATED", "SIZE"},
	}
	for _, record := range records {
		data = append(data, []string{
			record.BackupPath,
			record.SourcePath,
			string(record.Strategy),
			record.CreatedAt.Format(timeLayout),
			fmt.Sprintf("%d B", record.SizeBytes),
		})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return plainBackupRows(records)
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderValidation renders a validation verdict
func (r *TerminalRenderer) RenderValidation(mode types.EditMode, v types.ValidationResult) string {
	if v.Valid {
		return fmt.Sprintf("%s %s parameters are valid", successIndicator, mode)
	}
	return fmt.Sprintf("%s [%s] %s", errorIndicator, errorStyle.Render(v.Code), v.Message)
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	if editErr, ok := errors.AsEditError(err); ok {
		return fmt.Sprintf("%s [%s] %s",
			errorIndicator, errorStyle.Render(string(editErr.Code)), err.Error())
	}
	return fmt.Sprintf("%s %s", errorIndicator, err.Error())
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderResult renders one edit outcome as plain text
func (r *PlainRenderer) RenderResult(result types.EditResult) string {
	if result.Err != nil {
		return fmt.Sprintf("failed %s [%s] %s (stage %s)",
			result.Target, errors.GetErrorCode(result.Err), result.Err.Error(), result.Stage)
	}

	var line string
	if result.DryRun {
		line = fmt.Sprintf("dry-run %s (%d %s would change)",
			result.Target, result.LinesChanged, lineWord(result.LinesChanged))
	} else {
		line = fmt.Sprintf("ok %s (%d %s changed)",
			result.Target, result.LinesChanged, lineWord(result.LinesChanged))
	}

	if result.Backup != nil {
		line += fmt.Sprintf("\n  backup: %s", result.Backup.BackupPath)
	}
	return line
}

// RenderResults renders a batch of plain outcomes
func (r *PlainRenderer) RenderResults(results []types.EditResult) string {
	if len(results) == 0 {
		return "No files matched"
	}

	var out strings.Builder
	failed := 0
	for _, result := range results {
		out.WriteString(r.RenderResult(result) + "\n")
		if result.Err != nil {
			failed++
		}
	}

	if len(results) > 1 {
		if failed > 0 {
			out.WriteString(fmt.Sprintf("%d files edited, %d failed", len(results)-failed, failed))
		} else {
			out.WriteString(fmt.Sprintf("%d files edited", len(results)))
		}
	}
	return strings.TrimRight(out.String(), "\n")
}

// RenderDiff renders a plain diff listing
func (r *PlainRenderer) RenderDiff(entries []types.DiffEntry) string {
	var out strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case types.ChangeAdded:
			out.WriteString(fmt.Sprintf("+ %4d  %s\n", e.Line, e.After))
		case types.ChangeRemoved:
			out.WriteString(fmt.Sprintf("- %4d  %s\n", e.Line, e.Before))
		case types.ChangeModified:
			out.WriteString(fmt.Sprintf("~ %4d  %s -> %s\n", e.Line, e.Before, e.After))
		}
	}
	if out.Len() == 0 {
		return "no changes"
	}
	return strings.TrimRight(out.String(), "\n")
}

// RenderBackups renders plain backup rows
func (r *PlainRenderer) RenderBackups(records []types.BackupRecord) string {
	if len(records) == 0 {
		return "No backups found"
	}
	return plainBackupRows(records)
}

// RenderValidation renders a plain validation verdict
func (r *PlainRenderer) RenderValidation(mode types.EditMode, v types.ValidationResult) string {
	if v.Valid {
		return fmt.Sprintf("valid: %s parameters", mode)
	}
	return fmt.Sprintf("invalid [%s]: %s", v.Code, v.Message)
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	if editErr, ok := errors.AsEditError(err); ok {
		return fmt.Sprintf("error [%s]: %s", editErr.Code, err.Error())
	}
	return fmt.Sprintf("error: %s", err.Error())
}

func plainBackupRows(records []types.BackupRecord) string {
	var out strings.Builder
	for _, record := range records {
		out.WriteString(fmt.Sprintf("%s  %s  %s  %s  %d B\n",
			record.BackupPath,
			record.SourcePath,
			record.Strategy,
			record.CreatedAt.Format(timeLayout),
			record.SizeBytes))
	}
	return strings.TrimRight(out.String(), "\n")
}
