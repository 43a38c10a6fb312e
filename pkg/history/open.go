package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open returns a migrated store for driver. The memory driver ignores dsn.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (Store, error) {
	var dialect SQLDialect
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(opts...), nil
	case DriverSQLite:
		dialect = DialectSQLite
	case DriverPostgres:
		dialect = DialectPostgreSQL
	default:
		return nil, fmt.Errorf("history: unknown driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", driver, err)
	}
	if dialect == DialectSQLite {
		// One connection keeps ":memory:" databases shared and serializes
		// writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping %s: %w", driver, err)
	}

	store := NewSQLStore(db, dialect, opts...)
	store.ownsDB = true
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
