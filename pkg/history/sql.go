package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"
)

// SQLDialect selects placeholder and DDL syntax.
type SQLDialect int

const (
	// DialectPostgreSQL uses $1, $2 placeholders.
	DialectPostgreSQL SQLDialect = iota
	// DialectSQLite uses ? placeholders.
	DialectSQLite
)

// SQLStore is a database/sql backed Store. Call Migrate once before use.
//
// Schema:
//
//	CREATE TABLE pagefx_history (
//	    id      INTEGER PRIMARY KEY,   -- BIGSERIAL on PostgreSQL
//	    owner   TEXT    NOT NULL,
//	    method  TEXT    NOT NULL,
//	    path    TEXT    NOT NULL,
//	    status  INTEGER NOT NULL,
//	    at_ms   BIGINT  NOT NULL
//	);
//	CREATE INDEX pagefx_history_owner ON pagefx_history(owner, id);
type SQLStore struct {
	db        *sql.DB
	dialect   SQLDialect
	tableName string
	limit     int
	ownsDB    bool
	closed    atomic.Bool
}

// NewSQLStore wraps db. The store does not close db unless it was opened
// by Open.
func NewSQLStore(db *sql.DB, dialect SQLDialect, opts ...Option) *SQLStore {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SQLStore{
		db:        db,
		dialect:   dialect,
		tableName: cfg.tableName,
		limit:     cfg.limit,
	}
}

// placeholder returns the n-th (1-based) placeholder for the dialect.
func (s *SQLStore) placeholder(n int) string {
	if s.dialect == DialectPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Migrate creates the history table and its index if missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	idType := "INTEGER PRIMARY KEY"
	if s.dialect == DialectPostgreSQL {
		idType = "BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id     %s,
			owner  TEXT    NOT NULL,
			method TEXT    NOT NULL,
			path   TEXT    NOT NULL,
			status INTEGER NOT NULL,
			at_ms  BIGINT  NOT NULL
		)`, s.tableName, idType),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_owner ON %s(owner, id)`, s.tableName, s.tableName),
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate %s: %w", s.tableName, err)
		}
	}
	return nil
}

// Append implements Store. The insert and the trim run in one transaction.
func (s *SQLStore) Append(ctx context.Context, e Entry) (Entry, error) {
	if s.closed.Load() {
		return Entry{}, ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback()

	insert := fmt.Sprintf(`
		INSERT INTO %s (owner, method, path, status, at_ms)
		VALUES (%s, %s, %s, %s, %s)
		RETURNING id
	`, s.tableName, s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4), s.placeholder(5))
	if err := tx.QueryRowContext(ctx, insert,
		e.Owner, e.Method, e.Path, e.Status, e.At.UnixMilli(),
	).Scan(&e.ID); err != nil {
		return Entry{}, err
	}

	trim := fmt.Sprintf(`
		DELETE FROM %[1]s
		WHERE owner = %[2]s AND id NOT IN (
			SELECT id FROM %[1]s WHERE owner = %[3]s ORDER BY id DESC LIMIT %[4]s
		)
	`, s.tableName, s.placeholder(1), s.placeholder(2), s.placeholder(3))
	if _, err := tx.ExecContext(ctx, trim, e.Owner, e.Owner, s.limit); err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List implements Store.
func (s *SQLStore) List(ctx context.Context, owner string) ([]Entry, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	query := fmt.Sprintf(`
		SELECT id, owner, method, path, status, at_ms FROM %s
		WHERE owner = %s
		ORDER BY id
	`, s.tableName, s.placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var atMs int64
		if err := rows.Scan(&e.ID, &e.Owner, &e.Method, &e.Path, &e.Status, &atMs); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(atMs)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Owners implements Store.
func (s *SQLStore) Owners(ctx context.Context) ([]Summary, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	query := fmt.Sprintf(`
		SELECT owner, COUNT(*), MAX(at_ms) FROM %s
		GROUP BY owner
	`, s.tableName)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var lastMs int64
		if err := rows.Scan(&sum.Owner, &sum.Entries, &lastMs); err != nil {
			return nil, err
		}
		sum.Last = time.UnixMilli(lastMs)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortSummaries(out)
	return out, nil
}

// Clear implements Store.
func (s *SQLStore) Clear(ctx context.Context, owner string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE owner = %s`, s.tableName, s.placeholder(1))
	_, err := s.db.ExecContext(ctx, query, owner)
	return err
}

// Close implements Store. The database is closed only when the store
// opened it.
func (s *SQLStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
