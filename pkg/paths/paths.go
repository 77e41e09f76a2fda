// Package paths resolves the directories sedit reads configuration
// from and writes state to. Locations follow the XDG Base Directory
// spec, with SEDIT_* environment overrides for both.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/sedit/pkg/types"
)

// Environment overrides
const (
	// EnvSeditConfigDir replaces the XDG config directory entirely
	EnvSeditConfigDir = "SEDIT_CONFIG_DIR"

	// EnvSeditStateDir replaces the XDG state directory entirely
	EnvSeditStateDir = "SEDIT_STATE_DIR"
)

const (
	// SeditDirName is the subdirectory sedit claims under each XDG root
	SeditDirName = "sedit"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the log file under the state directory
	LogFileName = "sedit.log"
)

// paths implements types.Pather
type paths struct {
	xdgConfig string
	xdgState  string
}

// New creates a new Pather instance, respecting environment overrides.
func New() types.Pather {
	p := &paths{}

	if configDir := os.Getenv(EnvSeditConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, SeditDirName)
	}

	if stateDir := os.Getenv(EnvSeditStateDir); stateDir != "" {
		p.xdgState = expandHome(stateDir)
	} else if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.xdgState = filepath.Join(stateHome, SeditDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", SeditDirName)
	}

	return p
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
