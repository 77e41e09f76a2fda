package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/arthur-debert/sedit/pkg/types"
)

var tmpSeq uint64

// WriteFileAtomic writes data to a hidden sibling temp file and renames it
// over name. Readers of name observe either the old content or the new
// content in full, never a partial write. The temp file is removed when the
// rename fails.
func WriteFileAtomic(fsys types.FS, name string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(name)
	base := filepath.Base(name)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.sedit-tmp-%d-%d", base, os.Getpid(), atomic.AddUint64(&tmpSeq, 1)))

	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := fsys.Rename(tmp, name); err != nil {
		// Best effort: the temp file is useless once the rename failed
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

// CopyFile reads src in full and writes it to dst atomically, preserving
// the given mode.
func CopyFile(fsys types.FS, src, dst string, perm fs.FileMode) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	return WriteFileAtomic(fsys, dst, data, perm)
}
