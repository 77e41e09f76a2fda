package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sedit/pkg/core"
	"github.com/arthur-debert/sedit/pkg/transform"
)

func TestInitialize(t *testing.T) {
	require.NoError(t, core.Initialize())

	modes := transform.Modes()
	for _, mode := range []string{"substitute", "lines", "columns", "literal", "script"} {
		assert.Contains(t, modes, mode)
	}
}

func TestMustInitialize(t *testing.T) {
	assert.NotPanics(t, func() {
		core.MustInitialize()
	})
}
