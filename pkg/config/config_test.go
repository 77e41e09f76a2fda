package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sedit/pkg/config"
	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/types"
)

// isolateUserConfig points the XDG lookup at an empty directory so the
// developer's own config cannot leak into assertions.
func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("SEDIT_CONFIG_DIR", t.TempDir())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	s := config.Default()

	assert.True(t, s.Backup.Enabled)
	assert.Equal(t, "canonical", s.Backup.Strategy)
	assert.Equal(t, types.StrategyCanonical, s.Backup.BackupStrategy())
	assert.Equal(t, "10s", s.Engine.TransformTimeout)
	assert.Equal(t, 10*time.Second, s.Engine.Timeout())
	assert.Equal(t, 4, s.Engine.MaxParallel)
	assert.Equal(t, "auto", s.Output.Color)
}

func TestLoad_ExplicitTOML(t *testing.T) {
	isolateUserConfig(t)
	path := writeConfig(t, "custom.toml", `
[backup]
strategy = "timestamped"

[engine]
transform_timeout = "2s"
`)

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "timestamped", s.Backup.Strategy)
	assert.Equal(t, 2*time.Second, s.Engine.Timeout())
	// Untouched keys keep their defaults
	assert.True(t, s.Backup.Enabled)
	assert.Equal(t, 4, s.Engine.MaxParallel)
}

func TestLoad_ExplicitYAML(t *testing.T) {
	isolateUserConfig(t)
	path := writeConfig(t, "custom.yaml", `
backup:
  strategy: timestamped
output:
  color: never
`)

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamped", s.Backup.Strategy)
	assert.Equal(t, "never", s.Output.Color)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolateUserConfig(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func TestLoad_MalformedFile(t *testing.T) {
	isolateUserConfig(t)
	path := writeConfig(t, "broken.toml", "backup = {{{\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_UserConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SEDIT_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[engine]\nmax_parallel = 8\n"), 0644))

	s, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, s.Engine.MaxParallel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("SEDIT_BACKUP__STRATEGY", "timestamped")
	t.Setenv("SEDIT_ENGINE__TRANSFORM_TIMEOUT", "250ms")
	t.Setenv("SEDIT_ENGINE__MAX_PARALLEL", "2")

	s, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "timestamped", s.Backup.Strategy)
	assert.Equal(t, 250*time.Millisecond, s.Engine.Timeout())
	assert.Equal(t, 2, s.Engine.MaxParallel)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("SEDIT_OUTPUT__COLOR", "never")
	path := writeConfig(t, "custom.toml", "[output]\ncolor = \"always\"\n")

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "never", s.Output.Color)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown strategy",
			content: "[backup]\nstrategy = \"hourly\"\n",
			want:    "backup.strategy",
		},
		{
			name:    "bad timeout",
			content: "[engine]\ntransform_timeout = \"soon\"\n",
			want:    "transform_timeout",
		},
		{
			name:    "zero timeout",
			content: "[engine]\ntransform_timeout = \"0s\"\n",
			want:    "positive",
		},
		{
			name:    "zero parallelism",
			content: "[engine]\nmax_parallel = 0\n",
			want:    "max_parallel",
		},
		{
			name:    "unknown color",
			content: "[output]\ncolor = \"sometimes\"\n",
			want:    "color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateUserConfig(t)
			path := writeConfig(t, "bad.toml", tt.content)

			_, err := config.Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTimeoutFallback(t *testing.T) {
	e := config.EngineSettings{TransformTimeout: ""}
	assert.Equal(t, 10*time.Second, e.Timeout())
}

func TestGenerate(t *testing.T) {
	out, err := config.Generate(config.Default())
	require.NoError(t, err)

	assert.Contains(t, out, "# sedit configuration")
	assert.Contains(t, out, "[backup]")
	assert.Contains(t, out, "[engine]")
	assert.Contains(t, out, "[output]")
	assert.Contains(t, out, "canonical")
	assert.Contains(t, out, "10s")
}
