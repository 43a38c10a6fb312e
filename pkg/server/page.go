package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/pagefx/pkg/behaviors"
	"github.com/vango-dev/pagefx/pkg/bridge"
	"github.com/vango-dev/pagefx/pkg/history"
	"github.com/vango-dev/pagefx/pkg/loop"
	"github.com/vango-dev/pagefx/pkg/pref"
	"github.com/vango-dev/pagefx/pkg/toast"
	"github.com/vango-dev/pagefx/pkg/validate"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

// Page is one browser tab's session. Every field below the loop is owned
// by the loop goroutine.
type Page struct {
	ID string

	// browser identifies the browser that owns the page. Its tabs share
	// history and preferences.
	browser string

	loop       *loop.EventLoop
	cancel     context.CancelFunc
	hub        *Hub
	lastActive atomic.Int64

	body      *vdom.VNode
	form      *vdom.VNode
	toasts    *toast.Manager
	bridge    *bridge.Bridge
	dark      *behaviors.DarkMode
	clipboard behaviors.Clipboard
	path      string

	release func()
}

// newPage builds a page session for browserID and starts its loop.
// darkPref seeds the browser's dark mode preference when no open page has
// saved one yet. Stored history for the browser is loaded into the table.
func (s *Server) newPage(ctx context.Context, browserID string, darkPref *bool, systemDark bool) *Page {
	id := uuid.NewString()
	logger := s.logger.With().Str("page", id).Logger()

	loopCtx, cancel := context.WithCancel(context.Background())
	l := loop.New(loop.Config{Logger: logger})
	go l.Run(loopCtx)

	p := &Page{
		ID:      id,
		browser: browserID,
		loop:    l,
		cancel:  cancel,
		hub:     newHub(0, logger),
		path:    "/",
	}
	p.touch()
	p.body, p.form = buildBody()

	// The loop has no work yet, so the tree can be filled directly.
	entries, err := s.history.List(ctx, browserID)
	if err != nil {
		logger.Warn().Err(err).Msg("history unavailable")
	}
	for _, e := range entries {
		p.recordHistory(e)
	}
	p.clipboard = hubClipboard{hub: p.hub}

	toastOpts := []toast.Option{
		toast.WithDuration(s.cfg.Toast.Duration),
		toast.WithCloseDelay(s.cfg.Toast.CloseDelay),
		toast.WithTitles(s.cfg.Messages.Titles),
		toast.WithDismissPath("/toasts/{id}/dismiss"),
		toast.WithLogger(logger),
		toast.WithEmitter(p.hub),
	}
	engineOpts := []validate.Option{
		validate.WithMessages(s.cfg.Messages.Fields),
		validate.WithLogger(logger),
	}
	bridgeOpts := []bridge.Option{
		bridge.WithMessages(s.cfg.Messages.Toasts),
		bridge.WithSuccessPaths(s.cfg.Bridge.SuccessPaths...),
		bridge.WithLocation(func() string { return p.path }),
		bridge.WithLogger(logger),
		bridge.WithTracer(s.tracer),
	}
	if s.metrics != nil {
		toastOpts = append(toastOpts, toast.WithObserver(s.metrics))
		engineOpts = append(engineOpts, validate.WithObserver(s.metrics))
		bridgeOpts = append(bridgeOpts, bridge.WithSignalRecorder(s.metrics))
	}

	p.toasts = toast.New(p.body, l, toastOpts...)
	p.bridge = bridge.New(p.toasts, validate.Default(engineOpts...), bridgeOpts...)

	shared, release := s.darkPrefs.Acquire(browserID)
	if _, saved := shared.Get(); !saved && darkPref != nil {
		shared.Set(*darkPref)
	}
	p.dark = behaviors.NewDarkMode(darkStore{shared})
	p.dark.Init(p.body, systemDark)

	// A toggle in any tab of this browser re-applies here.
	unsubscribe := shared.Subscribe(func(dark bool) {
		l.Dispatch(func() { p.dark.Init(p.body, systemDark) })
		p.hub.Emit(DarkModeEvent, map[string]bool{"dark": dark})
	})
	p.release = func() {
		unsubscribe()
		release()
	}

	return p
}

// darkStore adapts a shared preference to behaviors.PreferenceStore.
type darkStore struct {
	pref *pref.Pref[bool]
}

func (d darkStore) DarkMode() (bool, bool) { return d.pref.Get() }
func (d darkStore) SetDarkMode(dark bool)  { d.pref.Set(dark) }

func (p *Page) touch() {
	p.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns when the page was last used.
func (p *Page) LastActive() time.Time {
	return time.Unix(0, p.lastActive.Load())
}

// Close stops the page loop and disconnects its websocket clients.
func (p *Page) Close() {
	p.release()
	p.cancel()
	p.loop.Close()
	p.hub.closeAll()
}

// applyForm copies submitted values into the form's controls. Controls
// missing from values keep their current value.
func (p *Page) applyForm(values url.Values, fields []validate.Field) {
	for _, f := range fields {
		if !values.Has(f.ID) {
			continue
		}
		if control := p.form.Find(vdom.ByID(f.ID)); control != nil {
			control.SetFieldValue(values.Get(f.ID))
		}
	}
}

func (p *Page) historyBody() *vdom.VNode {
	return p.body.Find(vdom.Within(vdom.ByClass("history-table"), vdom.ByTag("tbody")))
}

// recordHistory appends one row to the request history table.
func (p *Page) recordHistory(e history.Entry) {
	tbody := p.historyBody()
	if tbody == nil {
		return
	}
	row := vdom.Tr(
		vdom.Td(e.At.Local().Format(time.TimeOnly)),
		vdom.Td(e.Method),
		vdom.Td(e.Path),
		vdom.Td(strconv.Itoa(e.Status)),
	)
	// Keep the no-results placeholder last.
	if placeholder := tbody.Find(vdom.ByClass(behaviors.NoResultsClass)); placeholder != nil {
		placeholder.Remove()
	}
	tbody.AppendChild(row)
}

// clearHistory empties the request history table.
func (p *Page) clearHistory() {
	tbody := p.historyBody()
	for _, row := range tbody.FindAll(vdom.ByTag("tr")) {
		row.Remove()
	}
}

// issueToken fills the token panel and the response block after a
// successful save.
func (p *Page) issueToken() {
	token := uuid.NewString()
	if field := p.body.Find(vdom.ByClass("token-field")); field != nil {
		field.SetFieldValue(token)
	}

	value := func(id string) string {
		return p.form.Find(vdom.ByID(id)).FieldValue()
	}
	resp, err := json.Marshal(map[string]any{
		"client_id":    value(validate.FieldClientID),
		"redirect_uri": value(validate.FieldRedirectURI),
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
	if err != nil {
		return
	}
	if code := p.body.Find(vdom.ByID("last-response")); code != nil {
		code.SetText(string(resp))
	}
}

// hubClipboard delivers copied text to the page's connected clients, which
// write it to the browser clipboard.
type hubClipboard struct {
	hub *Hub
}

var (
	errNothingToCopy = errors.New("nothing to copy")
	errNoClient      = errors.New("no connected client")
)

func (c hubClipboard) WriteText(text string) error {
	if text == "" {
		return errNothingToCopy
	}
	if c.hub.Count() == 0 {
		return errNoClient
	}
	c.hub.Emit(ClipboardEvent, map[string]string{"text": text})
	return nil
}
