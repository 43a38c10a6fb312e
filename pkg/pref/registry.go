package pref

import "sync"

// Registry hands out one Pref per owner id, typically a browser. A Pref
// lives as long as someone holds it.
type Registry[T any] struct {
	key      string
	defaults T

	mu      sync.Mutex
	entries map[string]*entry[T]
}

type entry[T any] struct {
	pref *Pref[T]
	refs int
}

// NewRegistry creates a Registry whose preferences use key and
// defaultValue.
func NewRegistry[T any](key string, defaultValue T) *Registry[T] {
	return &Registry[T]{
		key:      key,
		defaults: defaultValue,
		entries:  make(map[string]*entry[T]),
	}
}

// Acquire returns the preference for id, creating it on first use. Call
// release when done; the preference is dropped once every holder has
// released it. release may be called more than once.
func (r *Registry[T]) Acquire(id string) (*Pref[T], func()) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		e = &entry[T]{pref: New(r.key, r.defaults)}
		r.entries[id] = e
	}
	e.refs++
	r.mu.Unlock()

	var once sync.Once
	return e.pref, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			e.refs--
			if e.refs <= 0 && r.entries[id] == e {
				delete(r.entries, id)
			}
		})
	}
}

// Len returns the number of live preferences.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
