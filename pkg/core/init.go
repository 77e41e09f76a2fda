// Package core wires the application together at startup. Importing it
// pulls in every built-in transformer; binaries call Initialize before
// running commands.
package core

import (
	"github.com/arthur-debert/sedit/pkg/logging"
	"github.com/arthur-debert/sedit/pkg/transform"

	// Import all transformer packages to register them
	_ "github.com/arthur-debert/sedit/pkg/transform/columns"
	_ "github.com/arthur-debert/sedit/pkg/transform/lineedit"
	_ "github.com/arthur-debert/sedit/pkg/transform/literal"
	_ "github.com/arthur-debert/sedit/pkg/transform/script"
	_ "github.com/arthur-debert/sedit/pkg/transform/substitute"
)

// Initialize confirms the transformer registry is populated and logs
// the available modes. Binaries call it at startup, before any edit
// operation runs.
func Initialize() error {
	logger := logging.GetLogger("core.init")

	logger.Debug().Strs("modes", transform.Modes()).Msg("transformers registered")
	return nil
}

// MustInitialize panics when Initialize fails. Intended for main().
func MustInitialize() {
	if err := Initialize(); err != nil {
		panic("core initialization failed: " + err.Error())
	}
}
