// Package history persists the request history shown in the page's history
// table.
//
// Entries are grouped by owner, the browser that made the request, so the
// table survives reloads and new tabs. Three backends are provided:
//
//	store := history.NewMemoryStore()                       // default
//	store, err := history.Open(ctx, "sqlite", "pagefx.db")  // modernc.org/sqlite
//	store, err := history.Open(ctx, "postgres", dsn)        // github.com/lib/pq
//
// Every store keeps at most a fixed number of entries per owner and drops
// the oldest beyond that.
package history
