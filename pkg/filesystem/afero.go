package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/arthur-debert/sedit/pkg/types"
)

// aferoFS adapts an afero.Fs to types.FS. Combined with afero.MemMapFs
// it gives tests and dry runs a filesystem that never touches disk.
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS wraps an afero filesystem as a types.FS.
func NewAferoFS(backing afero.Fs) types.FS {
	return aferoFS{fs: backing}
}

func (a aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

// ReadFile rejects directories explicitly because afero's MemMapFs
// returns empty content for them instead of an error.
func (a aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

// ReadDir converts afero's FileInfo slice to the fs.DirEntry form the
// rest of the code works with.
func (a aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (a aferoFS) Rename(oldname, newname string) error {
	return a.fs.Rename(oldname, newname)
}

func (a aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a aferoFS) Chmod(name string, mode fs.FileMode) error {
	return a.fs.Chmod(name, mode)
}
