package history

import (
	"context"
	"errors"
	"time"
)

// DefaultLimit is the number of entries kept per owner unless configured.
const DefaultLimit = 50

// ErrClosed is returned when a closed store is used.
var ErrClosed = errors.New("history: store closed")

// Entry is one recorded request.
type Entry struct {
	ID     int64     `json:"id"`
	Owner  string    `json:"owner"`
	Method string    `json:"method"`
	Path   string    `json:"path"`
	Status int       `json:"status"`
	At     time.Time `json:"at"`
}

// Summary describes one owner's stored history.
type Summary struct {
	Owner   string    `json:"owner"`
	Entries int       `json:"entries"`
	Last    time.Time `json:"last"`
}

// Store persists history entries. Implementations must be safe for
// concurrent use.
type Store interface {
	// Append records e and returns it with its ID set. Entries beyond the
	// store's limit for e.Owner are dropped, oldest first.
	Append(ctx context.Context, e Entry) (Entry, error)

	// List returns owner's entries, oldest first.
	List(ctx context.Context, owner string) ([]Entry, error)

	// Owners summarizes every owner with entries, most recently active
	// first.
	Owners(ctx context.Context) ([]Summary, error)

	// Clear removes every entry of owner.
	Clear(ctx context.Context, owner string) error

	// Close releases the store's resources.
	Close() error
}

// Option configures a store.
type Option func(*storeConfig)

type storeConfig struct {
	limit     int
	tableName string
}

func defaultStoreConfig() storeConfig {
	return storeConfig{
		limit:     DefaultLimit,
		tableName: "pagefx_history",
	}
}

// WithLimit sets how many entries are kept per owner.
func WithLimit(n int) Option {
	return func(c *storeConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithTableName sets the SQL table name. Default: "pagefx_history".
func WithTableName(name string) Option {
	return func(c *storeConfig) {
		if name != "" {
			c.tableName = name
		}
	}
}
