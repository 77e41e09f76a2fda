package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/sedit/pkg/paths"
)

func TestConfigDirOverride(t *testing.T) {
	t.Setenv(paths.EnvSeditConfigDir, "/custom/config")

	p := paths.New()

	assert.Equal(t, "/custom/config", p.ConfigDir())
	assert.Equal(t, filepath.Join("/custom/config", "config.toml"), p.ConfigFilePath())
}

func TestStateDirOverride(t *testing.T) {
	t.Setenv(paths.EnvSeditStateDir, "/custom/state")

	p := paths.New()

	assert.Equal(t, "/custom/state", p.StateDir())
	assert.Equal(t, filepath.Join("/custom/state", "sedit.log"), p.LogFilePath())
}

func TestStateDirFallsBackToXDGStateHome(t *testing.T) {
	t.Setenv(paths.EnvSeditStateDir, "")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	p := paths.New()

	assert.Equal(t, filepath.Join("/xdg/state", "sedit"), p.StateDir())
}

func TestDefaultDirsAreAbsolute(t *testing.T) {
	t.Setenv(paths.EnvSeditConfigDir, "")
	t.Setenv(paths.EnvSeditStateDir, "")

	p := paths.New()

	assert.True(t, filepath.IsAbs(p.ConfigDir()), "config dir should be absolute: %s", p.ConfigDir())
	assert.True(t, filepath.IsAbs(p.StateDir()), "state dir should be absolute: %s", p.StateDir())
}
