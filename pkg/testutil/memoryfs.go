package testutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// opAny matches every operation in the injection table.
const opAny = "*"

// MemoryFS implements types.FS with in-memory storage. Beyond the plain
// filesystem behavior it supports error injection per path (optionally per
// operation), direct content corruption for backup verification tests, and
// read/write counters so tests can assert that no I/O happened.
//
// Paths are stored flat, keyed by their cleaned absolute form; directory
// listings are derived by scanning for direct children. That keeps the
// implementation small at the cost of large-tree performance, which tests
// never need.
type MemoryFS struct {
	mu    sync.RWMutex
	nodes map[string]*memNode

	inject  map[injectKey]error
	corrupt map[string]bool

	reads  int
	writes int
}

type memNode struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
	dir     bool
}

type injectKey struct {
	op   string
	path string
}

// NewMemoryFS creates an empty in-memory filesystem with a root directory.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*memNode{
			"/": {mode: 0o755 | fs.ModeDir, modTime: time.Now(), dir: true},
		},
		inject:  make(map[injectKey]error),
		corrupt: make(map[string]bool),
	}
}

// WithError makes every operation on path fail with err.
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	return m.WithErrorOn(opAny, path, err)
}

// WithErrorOn makes one operation on one path fail with err. Operations:
// read, write, rename, stat, remove, chmod, readdir.
func (m *MemoryFS) WithErrorOn(op, path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inject[injectKey{op: op, path: clean(path)}] = err
	return m
}

// WithCorruptWrites makes every write to path succeed but store damaged
// bytes, for exercising read-back verification.
func (m *MemoryFS) WithCorruptWrites(path string) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.corrupt[clean(path)] = true
	return m
}

// Corrupt silently replaces the stored content of a file without going
// through WriteFile. Returns false when the path is not a regular file.
func (m *MemoryFS) Corrupt(path string, content []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, ok := m.nodes[clean(path)]
	if !ok || node.dir {
		return false
	}
	node.data = append([]byte(nil), content...)
	return true
}

// Stats returns how many ReadFile and WriteFile/Rename calls the
// filesystem has served.
func (m *MemoryFS) Stats() (reads, writes int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads, m.writes
}

// ReadFile returns a copy of the file's content.
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	path := clean(name)
	if err := m.injected("read", path); err != nil {
		return nil, err
	}

	node, ok := m.nodes[path]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	if node.dir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}
	return append([]byte(nil), node.data...), nil
}

// WriteFile stores data under name, creating parent directories as
// needed, the way the write side of sedit expects a POSIX filesystem
// to behave after MkdirAll.
func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	path := clean(name)
	if err := m.injected("write", path); err != nil {
		return err
	}
	if node, ok := m.nodes[path]; ok && node.dir {
		return &fs.PathError{Op: "write", Path: name, Err: errors.New("is a directory")}
	}

	m.ensureDirs(filepath.Dir(path))

	stored := append([]byte(nil), data...)
	// A corrupting write reports success but stores damaged bytes,
	// simulating silent storage failure
	if m.corrupt[path] && len(stored) > 0 {
		stored[0] ^= 0xFF
	}

	m.nodes[path] = &memNode{data: stored, mode: perm.Perm(), modTime: time.Now()}
	return nil
}

// Stat returns file info for name.
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := clean(name)
	if err := m.injected("stat", path); err != nil {
		return nil, err
	}

	node, ok := m.nodes[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return memInfo{name: filepath.Base(path), node: node}, nil
}

// MkdirAll creates path and any missing parents.
func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleaned := clean(path)
	if node, ok := m.nodes[cleaned]; ok && !node.dir {
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("file exists")}
	}
	m.ensureDirs(cleaned)
	return nil
}

// ReadDir lists the direct children of name.
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := clean(name)
	if err := m.injected("readdir", path); err != nil {
		return nil, err
	}

	node, ok := m.nodes[path]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	if !node.dir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	prefix := path
	if prefix != "/" {
		prefix += "/"
	}

	var entries []fs.DirEntry
	for p, n := range m.nodes {
		if p == path || !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if strings.Contains(rest, "/") {
			continue
		}
		entries = append(entries, memEntry{name: rest, node: n})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Rename moves a file over newname, replacing it when it exists. Only
// files are supported; sedit never renames directories.
func (m *MemoryFS) Rename(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	oldPath, newPath := clean(oldname), clean(newname)
	if err := m.injected("rename", oldPath); err != nil {
		return err
	}
	if err := m.injected("rename", newPath); err != nil {
		return err
	}

	node, ok := m.nodes[oldPath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldname, Err: fs.ErrNotExist}
	}
	if node.dir {
		return &fs.PathError{Op: "rename", Path: oldname, Err: errors.New("directories not supported")}
	}

	delete(m.nodes, oldPath)
	node.modTime = time.Now()
	m.ensureDirs(filepath.Dir(newPath))
	m.nodes[newPath] = node
	return nil
}

// Remove deletes a file or an empty directory.
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	if err := m.injected("remove", path); err != nil {
		return err
	}

	node, ok := m.nodes[path]
	if !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	if node.dir && m.hasChildren(path) {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}
	delete(m.nodes, path)
	return nil
}

// Chmod changes a file's permission bits.
func (m *MemoryFS) Chmod(name string, mode fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	if err := m.injected("chmod", path); err != nil {
		return err
	}

	node, ok := m.nodes[path]
	if !ok {
		return &fs.PathError{Op: "chmod", Path: name, Err: fs.ErrNotExist}
	}
	node.mode = (node.mode & fs.ModeType) | mode.Perm()
	return nil
}

// injected returns the configured error for op on path, if any.
func (m *MemoryFS) injected(op, path string) error {
	if err, ok := m.inject[injectKey{op: opAny, path: path}]; ok {
		return err
	}
	if err, ok := m.inject[injectKey{op: op, path: path}]; ok {
		return err
	}
	return nil
}

// ensureDirs creates dir and its parents. Existing entries are left
// alone; callers check for file collisions where it matters.
func (m *MemoryFS) ensureDirs(dir string) {
	for p := dir; ; p = filepath.Dir(p) {
		if _, ok := m.nodes[p]; ok {
			break
		}
		m.nodes[p] = &memNode{mode: 0o755 | fs.ModeDir, modTime: time.Now(), dir: true}
		if p == "/" {
			break
		}
	}
}

func (m *MemoryFS) hasChildren(path string) bool {
	prefix := path
	if prefix != "/" {
		prefix += "/"
	}
	for p := range m.nodes {
		if p != path && strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// clean converts a path to its canonical absolute form.
func clean(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

type memInfo struct {
	name string
	node *memNode
}

func (i memInfo) Name() string { return i.name }
func (i memInfo) Size() int64  { return int64(len(i.node.data)) }
func (i memInfo) Mode() fs.FileMode {
	if i.node.dir {
		return i.node.mode | fs.ModeDir
	}
	return i.node.mode
}
func (i memInfo) ModTime() time.Time { return i.node.modTime }
func (i memInfo) IsDir() bool        { return i.node.dir }
func (i memInfo) Sys() interface{}   { return nil }

type memEntry struct {
	name string
	node *memNode
}

func (e memEntry) Name() string               { return e.name }
func (e memEntry) IsDir() bool                { return e.node.dir }
func (e memEntry) Type() fs.FileMode          { return e.node.mode.Type() }
func (e memEntry) Info() (fs.FileInfo, error) { return memInfo{name: e.name, node: e.node}, nil }
