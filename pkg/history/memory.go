package history

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps history in process memory. It is the default store and
// loses everything on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	nextID  int64
	limit   int
	closed  bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MemoryStore{
		entries: make(map[string][]Entry),
		limit:   cfg.limit,
	}
}

// Append implements Store.
func (m *MemoryStore) Append(_ context.Context, e Entry) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Entry{}, ErrClosed
	}

	m.nextID++
	e.ID = m.nextID
	list := append(m.entries[e.Owner], e)
	if over := len(list) - m.limit; over > 0 {
		list = append([]Entry(nil), list[over:]...)
	}
	m.entries[e.Owner] = list
	return e, nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context, owner string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	return append([]Entry(nil), m.entries[owner]...), nil
}

// Owners implements Store.
func (m *MemoryStore) Owners(_ context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	out := make([]Summary, 0, len(m.entries))
	for owner, list := range m.entries {
		if len(list) == 0 {
			continue
		}
		out = append(out, Summary{Owner: owner, Entries: len(list), Last: list[len(list)-1].At})
	}
	sortSummaries(out)
	return out, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.entries, owner)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.entries = nil
	return nil
}

func sortSummaries(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int {
		if c := b.Last.Compare(a.Last); c != 0 {
			return c
		}
		return cmp.Compare(a.Owner, b.Owner)
	})
}
