package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/sedit/pkg/types"
)

// osFS is the real filesystem. Every method delegates straight to the
// os package, so errors carry the usual *fs.PathError shape.
type osFS struct{}

// NewOS returns the types.FS the CLI edits live files through.
func NewOS() types.FS {
	return osFS{}
}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (osFS) Rename(oldname, newname string) error {
	return os.Rename(oldname, newname)
}

func (osFS) Remove(name string) error {
	return os.Remove(name)
}

func (osFS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}
