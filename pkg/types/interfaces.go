package types

import (
	"io/fs"
)

// FS is the filesystem interface required for sedit operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Rename replaces newname atomically on POSIX filesystems; the engine
	// relies on this for its temp-and-rename writes
	Rename(oldname, newname string) error

	// Other operations
	Remove(name string) error
	Chmod(name string, mode fs.FileMode) error
}

// Pather provides the directories sedit reads configuration from and
// writes state to
type Pather interface {
	// ConfigDir returns the XDG config directory for sedit
	ConfigDir() string

	// ConfigFilePath returns the path of the user config file
	ConfigFilePath() string

	// StateDir returns the XDG state directory for sedit
	StateDir() string

	// LogFilePath returns the path of the log file
	LogFilePath() string
}
