package engine

import (
	"context"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/types"
)

// ApplyGlob expands pattern against the OS filesystem and applies the
// template operation to every regular file it matches. Fan-out is
// bounded by the engine's parallelism limit; per-path locks keep
// same-path work serialized even when the glob yields duplicates.
// Individual failures do not stop the batch; each result carries its
// own outcome. An empty result with a nil error means nothing matched.
func (e *Engine) ApplyGlob(ctx context.Context, pattern string, template types.EditOperation) ([]types.EditResult, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"bad glob pattern: %s", pattern).
			WithDetail("pattern", pattern)
	}

	var targets []string
	for _, match := range matches {
		info, err := e.fs.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		targets = append(targets, match)
	}
	sort.Strings(targets)

	e.logger.Debug().
		Str("pattern", pattern).
		Int("targets", len(targets)).
		Msg("Glob expanded")

	results := make([]types.EditResult, len(targets))
	g := new(errgroup.Group)
	g.SetLimit(e.maxParallel)
	for i, target := range targets {
		g.Go(func() error {
			op := template
			op.Target = target
			results[i] = e.Apply(ctx, op)
			return nil
		})
	}
	// Goroutines never return errors; failures live in the results.
	_ = g.Wait()

	return results, nil
}
