// Package registry provides named factory tables. Spawn patterns and player
// profiles register themselves in init() functions, so commands can list and
// instantiate them without hardcoded switches.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Info contains metadata about a registered entry.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new instance of an entry.
type Factory[T any] func() T

// Registry maps IDs to factories. The zero value is not usable; use New.
type Registry[T any] struct {
	kind      string
	factories map[string]Factory[T]
	titles    map[string]string
	mu        sync.RWMutex
}

// New creates an empty registry. kind names the entries in error messages.
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:      kind,
		factories: make(map[string]Factory[T]),
		titles:    make(map[string]string),
	}
}

// Register adds a factory under id.
// Panics if an entry with the same ID is already registered.
func (r *Registry[T]) Register(id, title string, f Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", r.kind, id))
	}

	r.factories[id] = f
	r.titles[id] = title
}

// List returns information about all registered entries, sorted by ID.
func (r *Registry[T]) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, Info{
			ID:    id,
			Title: r.titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates an entry by its ID.
// Returns an error if the ID is not registered.
func (r *Registry[T]) Create(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("registry: unknown %s %q", r.kind, id)
	}

	return f(), nil
}

// Exists checks if an entry with the given ID is registered.
func (r *Registry[T]) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}
