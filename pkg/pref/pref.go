// Package pref provides user preferences shared by every page a browser
// has open.
//
// A preference starts at its default and counts as saved once Set is
// called. Subscribers are notified of every change, which is how other
// tabs of the same browser pick up a new value.
//
// Example:
//
//	prefs := pref.NewRegistry("dark_mode", false)
//
//	dark, release := prefs.Acquire(browserID)
//	defer release()
//
//	unsubscribe := dark.Subscribe(func(v bool) { apply(v) })
//	defer unsubscribe()
//
//	dark.Set(true)
package pref

import (
	"encoding/json"
	"sync"
	"time"
)

// Pref is one preference value. It is safe for concurrent use.
type Pref[T any] struct {
	key      string
	defaults T

	mu        sync.RWMutex
	value     T
	saved     bool
	updatedAt time.Time
	nextSub   int
	subs      map[int]func(T)
}

// New creates a preference with the given key and default value.
func New[T any](key string, defaultValue T) *Pref[T] {
	return &Pref[T]{
		key:      key,
		defaults: defaultValue,
		value:    defaultValue,
		subs:     make(map[int]func(T)),
	}
}

// Key returns the preference key.
func (p *Pref[T]) Key() string {
	return p.key
}

// Get returns the current value and whether it was explicitly saved.
func (p *Pref[T]) Get() (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value, p.saved
}

// Set saves value and notifies subscribers.
func (p *Pref[T]) Set(value T) {
	p.update(value, true)
}

// Reset restores the default and marks the preference unsaved.
func (p *Pref[T]) Reset() {
	p.update(p.defaults, false)
}

func (p *Pref[T]) update(value T, saved bool) {
	p.mu.Lock()
	p.value = value
	p.saved = saved
	p.updatedAt = time.Now()
	subs := make([]func(T), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	// Called without the lock so subscribers may read the preference.
	for _, fn := range subs {
		fn(value)
	}
}

// UpdatedAt returns when the preference last changed, or the zero time.
func (p *Pref[T]) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}

// Subscribe registers fn for every later change. The returned func
// removes it and may be called more than once.
func (p *Pref[T]) Subscribe(fn func(T)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Subscribers returns the number of registered subscribers.
func (p *Pref[T]) Subscribers() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs)
}

// MarshalJSON implements json.Marshaler.
func (p *Pref[T]) MarshalJSON() ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return json.Marshal(struct {
		Key       string    `json:"key"`
		Value     T         `json:"value"`
		Saved     bool      `json:"saved"`
		UpdatedAt time.Time `json:"updated_at"`
	}{
		Key:       p.key,
		Value:     p.value,
		Saved:     p.saved,
		UpdatedAt: p.updatedAt,
	})
}
