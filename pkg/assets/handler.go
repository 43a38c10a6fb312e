package assets

import (
	"bytes"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/vango-dev/pagefx/pkg/routepath"
)

const (
	immutableCache   = "public, max-age=31536000, immutable"
	revalidatedCache = "public, max-age=3600, must-revalidate"
)

// Handler serves the manifest's files under prefix. Fingerprinted names
// are cached for a year; plain source names must be revalidated.
func Handler(m *Manifest, prefix string) http.Handler {
	prefix = "/" + strings.Trim(prefix, "/")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		name, ok := relPath(r.URL.Path, prefix)
		if !ok {
			http.NotFound(w, r)
			return
		}

		cache := revalidatedCache
		if source, ok := m.Source(name); ok {
			name = source
			cache = immutableCache
		} else if !m.Has(name) {
			http.NotFound(w, r)
			return
		}

		data, err := fs.ReadFile(m.fsys, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cache)
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	})
}

// relPath returns the file name below prefix. Paths that are not
// canonical, or leave prefix, are rejected.
func relPath(urlPath, prefix string) (string, bool) {
	clean, err := routepath.Canonicalize(urlPath)
	if err != nil || clean != urlPath {
		return "", false
	}
	if clean == prefix || !routepath.Within(clean, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(clean, prefix), "/")
	return rel, rel != ""
}
