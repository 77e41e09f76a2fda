package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/paths"
	"github.com/arthur-debert/sedit/pkg/types"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// envPrefix namespaces sedit's environment overrides
const envPrefix = "SEDIT_"

// LocalConfigName is the repo-local override file looked up in the
// working directory
const LocalConfigName = "sedit.toml"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Settings is the effective sedit configuration.
type Settings struct {
	Backup BackupSettings `koanf:"backup" toml:"backup"`
	Engine EngineSettings `koanf:"engine" toml:"engine"`
	Output OutputSettings `koanf:"output" toml:"output"`
}

// BackupSettings control the pre-edit snapshots.
type BackupSettings struct {
	// Enabled turns backups on for every edit unless overridden per call
	Enabled bool `koanf:"enabled" toml:"enabled"`

	// Strategy is "canonical" or "timestamped"
	Strategy string `koanf:"strategy" toml:"strategy"`
}

// EngineSettings tune the edit pipeline.
type EngineSettings struct {
	// TransformTimeout is a duration string bounding each transformer run
	TransformTimeout string `koanf:"transform_timeout" toml:"transform_timeout"`

	// MaxParallel bounds concurrent edits in batch operations
	MaxParallel int `koanf:"max_parallel" toml:"max_parallel"`
}

// OutputSettings control rendering.
type OutputSettings struct {
	// Color is "auto", "always", or "never"
	Color string `koanf:"color" toml:"color"`
}

// Timeout parses the transform timeout. Validation guarantees it parses
// for loaded settings; a zero value falls back to ten seconds.
func (e EngineSettings) Timeout() time.Duration {
	d, err := time.ParseDuration(e.TransformTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// BackupStrategy returns the configured strategy as the engine type.
func (b BackupSettings) BackupStrategy() types.BackupStrategy {
	return types.BackupStrategy(b.Strategy)
}

// Default returns the built-in settings with no file or environment
// layers applied.
func Default() *Settings {
	k := koanf.New(".")
	// The embedded defaults always parse; a failure here is a build bug
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		panic("sedit: embedded defaults are invalid: " + err.Error())
	}
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		panic("sedit: embedded defaults do not unmarshal: " + err.Error())
	}
	return &s
}

// Load builds the effective settings. With an explicit path only that
// file layers over the defaults; otherwise the user config and a
// repo-local sedit.toml are tried in turn. Environment variables apply
// last either way.
func Load(explicit string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot load built-in defaults")
	}

	if explicit != "" {
		if err := loadFile(k, explicit, true); err != nil {
			return nil, err
		}
	} else {
		if err := loadFile(k, paths.New().ConfigFilePath(), false); err != nil {
			return nil, err
		}
		if err := loadFile(k, LocalConfigName, false); err != nil {
			return nil, err
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot load environment overrides")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "configuration does not unmarshal")
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadFile layers one config file onto k. A missing optional file is
// skipped silently; anything else that goes wrong is an error.
func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.MapOS(err, errors.ErrConfigLoad, path)
	}

	parser := parserFor(path)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "cannot parse config file %s", path).
			WithDetail("path", path)
	}
	return nil
}

// parserFor picks the koanf parser by file extension.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}

func (s *Settings) validate() error {
	switch types.BackupStrategy(s.Backup.Strategy) {
	case types.StrategyCanonical, types.StrategyTimestamped:
	default:
		return errors.Newf(errors.ErrConfigParse,
			"backup.strategy must be canonical or timestamped, got %q", s.Backup.Strategy)
	}

	d, err := time.ParseDuration(s.Engine.TransformTimeout)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse,
			"engine.transform_timeout is not a duration: %q", s.Engine.TransformTimeout)
	}
	if d <= 0 {
		return errors.Newf(errors.ErrConfigParse,
			"engine.transform_timeout must be positive, got %q", s.Engine.TransformTimeout)
	}

	if s.Engine.MaxParallel < 1 {
		return errors.Newf(errors.ErrConfigParse,
			"engine.max_parallel must be at least 1, got %d", s.Engine.MaxParallel)
	}

	switch s.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.Newf(errors.ErrConfigParse,
			"output.color must be auto, always, or never, got %q", s.Output.Color)
	}
	return nil
}
