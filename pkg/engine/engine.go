package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/sedit/pkg/backup"
	"github.com/arthur-debert/sedit/pkg/diff"
	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/filesystem"
	"github.com/arthur-debert/sedit/pkg/logging"
	"github.com/arthur-debert/sedit/pkg/transform"
	"github.com/arthur-debert/sedit/pkg/types"
)

const (
	// DefaultTransformTimeout bounds a single transformer run
	DefaultTransformTimeout = 10 * time.Second

	// DefaultMaxParallel bounds concurrent edits in batch operations
	DefaultMaxParallel = 4
)

// Options configure an Engine. Zero values fall back to defaults.
type Options struct {
	// FS is the filesystem edits go through; defaults to the OS
	FS types.FS

	// TransformTimeout bounds each transformer run
	TransformTimeout time.Duration

	// MaxParallel bounds concurrent operations in ApplyGlob
	MaxParallel int
}

// Engine applies edit operations to files.
type Engine struct {
	fs     types.FS
	store  *backup.Store
	locks  *pathLocks
	logger zerolog.Logger

	timeout     time.Duration
	maxParallel int
}

// New creates an engine with the given options.
func New(opts Options) *Engine {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	timeout := opts.TransformTimeout
	if timeout <= 0 {
		timeout = DefaultTransformTimeout
	}
	parallel := opts.MaxParallel
	if parallel <= 0 {
		parallel = DefaultMaxParallel
	}

	return &Engine{
		fs:          fsys,
		store:       backup.NewStore(fsys),
		locks:       newPathLocks(),
		logger:      logging.GetLogger("engine"),
		timeout:     timeout,
		maxParallel: parallel,
	}
}

// Backups returns the engine's backup store, bound to the same
// filesystem the engine edits through.
func (e *Engine) Backups() *backup.Store {
	return e.store
}

// Validate checks mode parameters without touching any file.
func Validate(mode types.EditMode, params types.Params) types.ValidationResult {
	return transform.Validate(mode, params)
}

// Apply runs one edit operation through the pipeline. The result always
// carries the request id and the stage reached; failures are coded,
// never raw. Validation failures return before any file access. The
// per-path lock is held from the first read through the final write, so
// two operations on the same target never interleave.
func (e *Engine) Apply(ctx context.Context, op types.EditOperation) types.EditResult {
	result := types.EditResult{
		RequestID: uuid.NewString(),
		Target:    op.Target,
		DryRun:    op.DryRun,
		Stage:     types.StageValidate,
	}

	logger := e.logger.With().
		Str("request_id", result.RequestID).
		Str("target", op.Target).
		Str("mode", string(op.Mode)).
		Logger()

	logger.Debug().Str("stage", string(types.StageValidate)).Msg("Validating parameters")

	if op.Target == "" {
		return fail(logger, result, errors.New(errors.ErrInvalidInput,
			"operation target cannot be empty"))
	}
	if v := transform.Validate(op.Mode, op.Params); !v.Valid {
		return fail(logger, result, errors.New(errors.ErrorCode(v.Code), v.Message))
	}
	tr, err := transform.Get(op.Mode)
	if err != nil {
		return fail(logger, result, err)
	}

	unlock := e.locks.lock(lockKey(op.Target))
	defer unlock()

	// The snapshot stage begins by acquiring the pre-image; a dry run
	// reads the same way but persists nothing.
	result.Stage = types.StageSnapshot
	logger.Debug().Str("stage", string(types.StageSnapshot)).Msg("Reading target")

	info, err := e.fs.Stat(op.Target)
	if err != nil {
		return fail(logger, result, errors.MapOS(err, errors.ErrSourceNotFound, op.Target))
	}
	if info.IsDir() {
		return fail(logger, result, errors.Newf(errors.ErrInvalidInput,
			"target is a directory: %s", op.Target).
			WithDetail("path", op.Target))
	}
	data, err := e.fs.ReadFile(op.Target)
	if err != nil {
		return fail(logger, result, errors.MapOS(err, errors.ErrSourceNotFound, op.Target))
	}
	content := string(data)

	if op.CreateBackup && !op.DryRun {
		strategy := op.Strategy
		if strategy == "" {
			strategy = types.StrategyCanonical
		}
		record, err := e.store.Snapshot(op.Target, strategy)
		if err != nil {
			return fail(logger, result, err)
		}
		result.Backup = &record
		logger.Debug().Str("backup", record.BackupPath).Msg("Snapshot verified")
	}

	result.Stage = types.StageTransform
	logger.Debug().Str("stage", string(types.StageTransform)).Msg("Transforming")

	tres, err := e.runTransform(ctx, tr, content, op.Params)
	if err != nil {
		return fail(logger, result, err)
	}

	if !op.DryRun {
		result.Stage = types.StageWrite
		logger.Debug().Str("stage", string(types.StageWrite)).Msg("Writing")

		// A cancellation that lands between transform and write must
		// leave the target untouched; the snapshot stays either way.
		if err := ctx.Err(); err != nil {
			return fail(logger, result, errors.Wrap(err, errors.ErrTransformTimeout,
				"operation aborted before write"))
		}
		if err := filesystem.WriteFileAtomic(e.fs, op.Target, []byte(tres.Content), info.Mode().Perm()); err != nil {
			return fail(logger, result, errors.MapOS(err, errors.ErrWriteFailed, op.Target))
		}
	}

	result.Stage = types.StageReport
	result.Success = true
	result.LinesChanged = tres.LinesChanged
	if op.ReportDiff || op.DryRun {
		result.Diff = diff.Compute(content, tres.Content)
	}

	logger.Info().
		Bool("dry_run", op.DryRun).
		Int("lines_changed", result.LinesChanged).
		Msg("Edit applied")

	return result
}

// runTransform executes the transformer under the engine timeout. The
// transformer runs on its own goroutine so a hung implementation cannot
// hold the per-path lock forever: when the deadline passes the engine
// abandons the run and reports TRANSFORM_TIMEOUT. An abandoned
// transformer that ignores its ctx keeps its goroutine until it returns;
// the buffered channel lets it finish without blocking.
func (e *Engine) runTransform(parent context.Context, tr transform.Transformer, content string, params types.Params) (types.TransformResult, error) {
	ctx, cancel := context.WithTimeout(parent, e.timeout)
	defer cancel()

	type outcome struct {
		result types.TransformResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: errors.Newf(errors.ErrMalformedPattern,
					"transformer panicked: %v", r)}
			}
		}()
		result, err := tr.Apply(ctx, content, params)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return types.TransformResult{}, codedTransformError(ctx, out.err)
		}
		return out.result, nil
	case <-ctx.Done():
		return types.TransformResult{}, errors.Wrapf(ctx.Err(), errors.ErrTransformTimeout,
			"transform did not finish within %s", e.timeout).
			WithDetail("timeout", e.timeout.String())
	}
}

// codedTransformError passes coded errors through and maps anything else
// to MALFORMED_PATTERN. A failure caused by the deadline reports
// TRANSFORM_TIMEOUT even when the transformer wrapped it differently.
func codedTransformError(ctx context.Context, err error) error {
	if ctx.Err() != nil && !errors.IsErrorCode(err, errors.ErrTransformTimeout) {
		return errors.Wrap(err, errors.ErrTransformTimeout, "transform aborted by deadline")
	}
	if _, ok := errors.AsEditError(err); ok {
		return err
	}
	return errors.Wrap(err, errors.ErrMalformedPattern, "transform failed")
}

// fail stamps the result with the coded error and logs it. The stage is
// whatever the caller set before the failing step.
func fail(logger zerolog.Logger, result types.EditResult, err error) types.EditResult {
	result.Err = err
	result.Success = false
	logger.Error().
		Err(err).
		Str("stage", string(result.Stage)).
		Str("code", string(errors.GetErrorCode(err))).
		Msg("Edit failed")
	return result
}
