package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/pagefx/internal/config"
	"github.com/vango-dev/pagefx/pkg/behaviors"
	"github.com/vango-dev/pagefx/pkg/history"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

// openBrowser loads the home page without cookies and returns the page
// and browser cookies.
func openBrowser(t *testing.T, s *Server) (page, browser *http.Cookie) {
	t.Helper()
	rec := send(s, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page, browser = findCookie(rec, pageCookie), findCookie(rec, browserCookie)
	require.NotNil(t, page)
	require.NotNil(t, browser)
	return page, browser
}

// historyRows returns the text of each request row in the page's table.
func historyRows(t *testing.T, s *Server, cookie *http.Cookie) []string {
	t.Helper()
	var rows []string
	onPage(t, s, cookie, func(p *Page) {
		for _, tr := range p.historyBody().FindAll(vdom.ByTag("tr")) {
			if !tr.HasClass(behaviors.NoResultsClass) {
				rows = append(rows, tr.TextContent())
			}
		}
	})
	return rows
}

func TestHistoryIsStoredPerBrowser(t *testing.T) {
	store := history.NewMemoryStore()
	cfg := config.Default()
	s := New(&cfg, WithRegistry(prometheus.NewRegistry()), WithHistoryStore(store))
	t.Cleanup(s.Pages().Shutdown)

	page, browser := openBrowser(t, s)
	rec := postForm(s, "/config", configValues("my-app", "secret", "http://localhost:8080/callback"), page)
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := store.List(context.Background(), browser.Value)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, http.MethodPost, entries[0].Method)
	assert.Equal(t, "/config", entries[0].Path)
	assert.Equal(t, http.StatusOK, entries[0].Status)

	// A new tab of the same browser starts with the stored rows.
	second := openPage(t, s, browser)
	require.NotEqual(t, page.Value, second.Value)
	rows := historyRows(t, s, second)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "/config")

	// Another browser does not.
	other, _ := openBrowser(t, s)
	assert.Empty(t, historyRows(t, s, other))
}

func TestInvalidSubmitIsNotStored(t *testing.T) {
	store := history.NewMemoryStore()
	cfg := config.Default()
	s := New(&cfg, WithRegistry(prometheus.NewRegistry()), WithHistoryStore(store))
	t.Cleanup(s.Pages().Shutdown)

	page, browser := openBrowser(t, s)
	rec := postForm(s, "/config", configValues("", "", "nope"), page)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	entries, err := store.List(context.Background(), browser.Value)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearHistory(t *testing.T) {
	s := newTestServer(t)
	page, browser := openBrowser(t, s)

	for range 2 {
		rec := postForm(s, "/config", configValues("my-app", "secret", "http://localhost:8080/callback"), page)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Len(t, historyRows(t, s, page), 2)

	rec := send(s, httptest.NewRequest(http.MethodPost, "/history/clear", nil), page)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), behaviors.NoResultsText)
	assert.Empty(t, historyRows(t, s, page))

	entries, err := s.history.List(context.Background(), browser.Value)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearHistoryWithoutSession(t *testing.T) {
	s := newTestServer(t)
	rec := send(s, httptest.NewRequest(http.MethodPost, "/history/clear", nil), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "P011", errorCode(t, rec))
}

// brokenStore fails every operation.
type brokenStore struct{}

var errBroken = stderrors.New("store offline")

func (brokenStore) Append(context.Context, history.Entry) (history.Entry, error) {
	return history.Entry{}, errBroken
}
func (brokenStore) List(context.Context, string) ([]history.Entry, error) { return nil, errBroken }
func (brokenStore) Owners(context.Context) ([]history.Summary, error)     { return nil, errBroken }
func (brokenStore) Clear(context.Context, string) error                   { return errBroken }
func (brokenStore) Close() error                                          { return nil }

func TestHistoryStoreFailureDoesNotBreakPages(t *testing.T) {
	cfg := config.Default()
	s := New(&cfg, WithRegistry(prometheus.NewRegistry()), WithHistoryStore(brokenStore{}))
	t.Cleanup(s.Pages().Shutdown)

	page, _ := openBrowser(t, s)
	rec := postForm(s, "/config", configValues("my-app", "secret", "http://localhost:8080/callback"), page)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, historyRows(t, s, page), 1, "the row is still shown on the page")

	rec = send(s, httptest.NewRequest(http.MethodPost, "/history/clear", nil), page)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
