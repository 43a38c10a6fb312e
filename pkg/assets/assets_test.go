package assets

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"
)

func testManifest(t *testing.T) *Manifest {
	t.Helper()
	m, err := Build(fstest.MapFS{
		"app.js":        {Data: []byte("console.log(1)")},
		"css/theme.css": {Data: []byte("body{}")},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestBuildFingerprints(t *testing.T) {
	m := testManifest(t)

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	printed := regexp.MustCompile(`^app\.[0-9a-f]{8}\.js$`)
	if got := m.Resolve("app.js"); !printed.MatchString(got) {
		t.Errorf("Resolve(app.js) = %q", got)
	}
	if got := m.Resolve("css/theme.css"); !strings.HasPrefix(got, "css/theme.") || !strings.HasSuffix(got, ".css") {
		t.Errorf("Resolve(css/theme.css) = %q", got)
	}
	if got := m.Resolve("missing.js"); got != "missing.js" {
		t.Errorf("Resolve(missing.js) = %q, want unchanged", got)
	}

	src, ok := m.Source(m.Resolve("app.js"))
	if !ok || src != "app.js" {
		t.Errorf("Source() = %q, %v", src, ok)
	}
}

func TestFingerprintFollowsContent(t *testing.T) {
	a, _ := Build(fstest.MapFS{"app.js": {Data: []byte("v1")}})
	b, _ := Build(fstest.MapFS{"app.js": {Data: []byte("v2")}})

	if a.Resolve("app.js") == b.Resolve("app.js") {
		t.Error("different content should get different names")
	}
}

func TestAllIsACopy(t *testing.T) {
	m := testManifest(t)
	all := m.All()
	delete(all, "app.js")

	if !m.Has("app.js") {
		t.Error("mutating All() changed the manifest")
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver(testManifest(t), "/static/")

	if got := r.Asset("app.js"); !regexp.MustCompile(`^/static/app\.[0-9a-f]{8}\.js$`).MatchString(got) {
		t.Errorf("Asset(app.js) = %q", got)
	}
	if got := r.Asset("missing.js"); got != "/static/missing.js" {
		t.Errorf("Asset(missing.js) = %q", got)
	}
}

func TestClientManifest(t *testing.T) {
	m := Client()
	if !m.Has("pagefx.js") {
		t.Fatalf("embedded client missing, have %v", m.All())
	}
	if Client() != m {
		t.Error("Client() should be built once")
	}
}

func TestHandler(t *testing.T) {
	m := testManifest(t)
	h := Handler(m, "/static/")
	printed := "/static/" + m.Resolve("app.js")

	tests := []struct {
		name   string
		method string
		path   string
		status int
		cache  string
	}{
		{"fingerprinted", http.MethodGet, printed, http.StatusOK, immutableCache},
		{"source name", http.MethodGet, "/static/app.js", http.StatusOK, revalidatedCache},
		{"nested", http.MethodHead, "/static/" + m.Resolve("css/theme.css"), http.StatusOK, immutableCache},
		{"unknown", http.MethodGet, "/static/other.js", http.StatusNotFound, ""},
		{"prefix only", http.MethodGet, "/static/", http.StatusNotFound, ""},
		{"dot segments", http.MethodGet, "/static/css/../app.js", http.StatusNotFound, ""},
		{"outside prefix", http.MethodGet, "/app.js", http.StatusNotFound, ""},
		{"similar prefix", http.MethodGet, "/staticfiles/app.js", http.StatusNotFound, ""},
		{"post", http.MethodPost, printed, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.URL.Path = tt.path
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := rec.Header().Get("Cache-Control"); tt.cache != "" && got != tt.cache {
				t.Errorf("Cache-Control = %q, want %q", got, tt.cache)
			}
		})
	}
}

func TestHandlerServesContent(t *testing.T) {
	m := testManifest(t)
	rec := httptest.NewRecorder()
	Handler(m, "/static").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))

	if rec.Body.String() != "console.log(1)" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/javascript") {
		t.Errorf("Content-Type = %q", ct)
	}
}
