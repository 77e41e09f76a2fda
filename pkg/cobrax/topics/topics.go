// Package topics provides a pluggable, topic-based help system for Cobra
// CLI applications. Topics are loaded from an fs.FS, so they can ship
// embedded in the binary or live on disk, and extend the default Cobra
// help to cover concepts that are not commands.
package topics

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Topic is a single help page loaded from the topic filesystem.
type Topic struct {
	Name     string // base name without extension
	FilePath string // path within the source filesystem
	Content  string
}

// Options configures topic discovery and rendering.
type Options struct {
	// Extensions lists the file extensions treated as topic files.
	// Defaults to ".txt" and ".md".
	Extensions []string

	// Renderer formats topic content for display. Defaults to
	// PlainRenderer.
	Renderer Renderer
}

// Manager indexes the help topics found in a filesystem and resolves
// lookups by topic name or flag spelling.
type Manager struct {
	fsys       fs.FS
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// New creates a Manager with default options.
func New(fsys fs.FS) *Manager {
	return NewWithOptions(fsys, Options{})
}

// NewWithOptions creates a Manager reading topics from fsys.
func NewWithOptions(fsys fs.FS, opts Options) *Manager {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}

	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	return m
}

// scanTopics indexes every file whose extension is in the configured
// list. The topic name is the base name without its extension, so
// "advanced/scripting.md" becomes the topic "scripting".
func (m *Manager) scanTopics() error {
	if m.fsys == nil {
		return nil
	}

	err := fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{
			Name:     name,
			FilePath: p,
			Content:  string(content),
		}

		return nil
	})

	// A missing root is not an error, there are just no topics
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Lookup finds a topic by name. Flag spellings are accepted: "--dry-run"
// resolves to the topic "dry-run", or to "option-dry-run" when only the
// prefixed file exists.
func (m *Manager) Lookup(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// Names returns the names of all discovered topics, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// render formats a topic, using its source file extension to pick the
// output format.
func (m *Manager) render(t *Topic) string {
	return m.renderer.Render(t.Content, path.Ext(t.FilePath))
}
