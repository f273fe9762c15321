package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/softsync/pkg/errors"
)

// Registry maps names to values of one kind. The zero value is not usable;
// create registries with New.
type Registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty registry. kind names the values in error messages.
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, items: make(map[string]T)}
}

// Kind is the label given to New.
func (r *Registry[T]) Kind() string { return r.kind }

// Register adds item under name. Taken names fail with ErrAlreadyExists.
func (r *Registry[T]) Register(name string, item T) error {
	return r.put(name, item, false)
}

// Replace adds or overwrites item under name.
func (r *Registry[T]) Replace(name string, item T) error {
	return r.put(name, item, true)
}

func (r *Registry[T]) put(name string, item T, overwrite bool) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.items[name]; taken && !overwrite {
		return errors.Newf(errors.ErrAlreadyExists, "%s '%s' is already registered", r.kind, name)
	}
	r.items[name] = item
	return nil
}

// Lookup returns the item registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	return item, ok
}

// Get is Lookup with an ErrNotFound error for unknown names.
func (r *Registry[T]) Get(name string) (T, error) {
	item, ok := r.Lookup(name)
	if !ok {
		return item, errors.Newf(errors.ErrNotFound, "%s '%s' not found", r.kind, name)
	}
	return item, nil
}

// Remove deletes name.
func (r *Registry[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[name]; !ok {
		return errors.Newf(errors.ErrNotFound, "%s '%s' not found", r.kind, name)
	}
	delete(r.items, name)
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
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

// MustRegister is Register for built-ins, where a failure is a programming error.
func (r *Registry[T]) MustRegister(name string, item T) {
	if err := r.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
