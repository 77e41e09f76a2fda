package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/sedit/pkg/errors"
)

// Registry is a thread-safe name-to-item map. Registration happens from
// init() functions, lookups happen on every operation, so reads take a
// shared lock.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register adds an item under name. Empty names and duplicate
// registrations are rejected; a duplicate means two packages claim the
// same mode, which is a programming error.
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name)
	}
	r.items[name] = item
	return nil
}

// MustRegister is Register for init() functions, where a failure is a
// build defect and panicking is the right report.
func (r *Registry[T]) MustRegister(name string, item T) {
	if err := r.Register(name, item); err != nil {
		panic(fmt.Sprintf("registry: cannot register %s: %v", name, err))
	}
}

// Get returns the item registered under name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}
	return item, nil
}

// List returns the registered names in sorted order.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered items.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
