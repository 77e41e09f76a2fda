package transform

import (
	"context"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/registry"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Transformer turns file content into new content according to
// mode-specific parameters. Implementations are pure: no file access,
// no retained state between calls. Only the script transformer
// consults ctx; the others complete synchronously.
type Transformer interface {
	// Mode returns the edit mode this transformer handles
	Mode() types.EditMode

	// Name returns the short registry name (same string as the mode)
	Name() string

	// Describe returns a one-line human description
	Describe() string

	// Validate statically checks parameters without touching content
	Validate(params types.Params) error

	// Apply produces the transformed content
	Apply(ctx context.Context, content string, params types.Params) (types.TransformResult, error)
}

// transformers is the mode-keyed registry. Transformer packages
// register themselves from init().
var transformers = registry.New[Transformer]()

// Register adds a transformer under its mode name.
func Register(t Transformer) error {
	return transformers.Register(string(t.Mode()), t)
}

// MustRegister registers a transformer and panics on failure.
// Transformer packages call this from init().
func MustRegister(t Transformer) {
	transformers.MustRegister(string(t.Mode()), t)
}

// Get returns the transformer registered for the mode.
func Get(mode types.EditMode) (Transformer, error) {
	t, err := transformers.Get(string(mode))
	if err != nil {
		return nil, errors.Newf(errors.ErrNotFound,
			"no transformer registered for mode '%s'", mode).
			WithDetail("mode", string(mode))
	}
	return t, nil
}

// Modes returns the registered mode names in sorted order.
func Modes() []string {
	return transformers.List()
}

// Validate dispatches static parameter validation to the mode's
// transformer and folds the outcome into a ValidationResult. It never
// touches the filesystem.
func Validate(mode types.EditMode, params types.Params) types.ValidationResult {
	t, err := Get(mode)
	if err != nil {
		return resultFromError(err)
	}

	if params == nil {
		return resultFromError(errors.Newf(errors.ErrInvalidInput,
			"missing parameters for mode '%s'", mode))
	}
	if params.Mode() != mode {
		return resultFromError(errors.Newf(errors.ErrInvalidInput,
			"parameters are for mode '%s', not '%s'", params.Mode(), mode))
	}

	if err := t.Validate(params); err != nil {
		return resultFromError(err)
	}
	return types.ValidationResult{Valid: true}
}

func resultFromError(err error) types.ValidationResult {
	result := types.ValidationResult{
		Valid:   false,
		Code:    string(errors.GetErrorCode(err)),
		Message: err.Error(),
	}
	if editErr, ok := errors.AsEditError(err); ok {
		result.Message = editErr.Message
	}
	return result
}
