package plan

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/sedit/pkg/engine"
	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/logging"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Runner executes plans through an engine.
type Runner struct {
	engine *engine.Engine
	logger zerolog.Logger
}

// NewRunner creates a runner bound to eng.
func NewRunner(eng *engine.Engine) *Runner {
	return &Runner{
		engine: eng,
		logger: logging.GetLogger("plan.runner"),
	}
}

// RunOptions adjust how a plan executes without editing the plan itself.
type RunOptions struct {
	// DryRun previews every step without mutating anything
	DryRun bool

	// ReportDiff includes diffs in each result
	ReportDiff bool

	// NoBackup disables backups for every step, overriding the plan
	NoBackup bool

	// Strategy applies to steps that do not name their own
	Strategy types.BackupStrategy
}

// StepResult pairs a step with the edit results it produced. A glob step
// yields one result per matched file.
type StepResult struct {
	Index   int
	Step    Step
	Results []types.EditResult
}

// Run executes the plan's steps in order, stopping at the first failure.
// Results for the work done so far are returned alongside the error, so
// callers can report partial progress.
func (r *Runner) Run(ctx context.Context, p *Plan, opts RunOptions) ([]StepResult, error) {
	var out []StepResult

	for i, step := range p.Steps {
		r.logger.Debug().
			Int("step", i+1).
			Str("mode", step.Mode).
			Str("file", step.File).
			Str("glob", step.Glob).
			Msg("Running plan step")

		op := types.EditOperation{
			Mode:         types.EditMode(step.Mode),
			Params:       step.params(),
			CreateBackup: step.Backup == nil || *step.Backup,
			Strategy:     types.BackupStrategy(step.Strategy),
			DryRun:       opts.DryRun,
			ReportDiff:   opts.ReportDiff,
		}
		if opts.NoBackup {
			op.CreateBackup = false
		}
		if op.Strategy == "" {
			op.Strategy = opts.Strategy
		}

		var results []types.EditResult
		if step.Glob != "" {
			globResults, err := r.engine.ApplyGlob(ctx, step.Glob, op)
			if err != nil {
				return out, err
			}
			results = globResults
		} else {
			op.Target = step.File
			results = []types.EditResult{r.engine.Apply(ctx, op)}
		}

		out = append(out, StepResult{Index: i, Step: step, Results: results})

		for _, result := range results {
			if result.Err != nil {
				return out, errors.Wrapf(result.Err, errors.GetErrorCode(result.Err),
					"step %d failed on %s", i+1, result.Target).
					WithDetail("step", i+1).
					WithDetail("target", result.Target)
			}
		}
	}

	return out, nil
}
