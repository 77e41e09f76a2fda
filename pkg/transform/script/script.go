// Package script implements the lua scripting edit mode.
//
// A script must define a global function transform(content) that
// returns the new content as a string. Scripts run in a sandboxed
// interpreter with no filesystem, process, or network access.
package script

import (
	"context"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/arthur-debert/sedit/pkg/diff"
	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/transform"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Name is the registry name for the script transformer.
const Name = "script"

// entryPoint is the global function a script must define.
const entryPoint = "transform"

// Transformer runs a user-supplied Lua script against file content.
type Transformer struct{}

// New creates the script transformer.
func New() *Transformer {
	return &Transformer{}
}

func init() {
	transform.MustRegister(New())
}

// Mode returns the edit mode this transformer handles.
func (t *Transformer) Mode() types.EditMode {
	return types.ModeScript
}

// Name returns the transformer name.
func (t *Transformer) Name() string {
	return Name
}

// Describe returns a one-line description.
func (t *Transformer) Describe() string {
	return "Runs a sandboxed Lua script defining transform(content)"
}

// Validate compiles the script without executing it.
func (t *Transformer) Validate(params types.Params) error {
	p, ok := params.(types.ScriptParams)
	if !ok {
		return errors.Newf(errors.ErrInvalidInput,
			"script mode requires script parameters, got %T", params)
	}
	if strings.TrimSpace(p.Source) == "" {
		return errors.New(errors.ErrMalformedPattern,
			"script source cannot be empty")
	}

	L := newState()
	defer L.Close()

	if _, err := L.LoadString(p.Source); err != nil {
		return errors.Wrapf(err, errors.ErrMalformedPattern,
			"script does not compile")
	}
	return nil
}

// Apply executes the script's transform function against content.
// The state is bound to ctx, so a deadline or cancellation aborts a
// running script.
func (t *Transformer) Apply(ctx context.Context, content string, params types.Params) (types.TransformResult, error) {
	p, ok := params.(types.ScriptParams)
	if !ok {
		return types.TransformResult{}, errors.Newf(errors.ErrInvalidInput,
			"script mode requires script parameters, got %T", params)
	}

	out, err := runScript(ctx, p.Source, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.TransformResult{}, errors.Wrap(ctxErr,
				errors.ErrTransformTimeout, "script aborted")
		}
		return types.TransformResult{}, err
	}

	return types.TransformResult{
		Content:      out,
		LinesChanged: diff.Changed(diff.Compute(content, out)),
	}, nil
}

// runScript loads source into a fresh sandboxed state and calls its
// transform function with content. A panicking script is reported as
// an error rather than taking the process down.
func runScript(ctx context.Context, source, content string) (result string, err error) {
	L := newState()
	defer L.Close()
	L.SetContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrMalformedPattern,
				"script panicked: %v", r)
		}
	}()

	if doErr := L.DoString(source); doErr != nil {
		return "", errors.Wrap(doErr, errors.ErrMalformedPattern,
			"script failed to run")
	}

	fn, ok := L.GetGlobal(entryPoint).(*lua.LFunction)
	if !ok {
		return "", errors.Newf(errors.ErrMalformedPattern,
			"script must define a %s(content) function", entryPoint)
	}

	callErr := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(content))
	if callErr != nil {
		return "", errors.Wrapf(callErr, errors.ErrMalformedPattern,
			"%s() failed", entryPoint)
	}

	ret := L.Get(-1)
	L.Pop(1)

	str, ok := ret.(lua.LString)
	if !ok {
		return "", errors.New(errors.ErrMalformedPattern,
			fmt.Sprintf("%s() must return a string, got %s", entryPoint, ret.Type()))
	}
	return string(str), nil
}
