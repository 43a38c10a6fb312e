package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/pagefx/internal/errors"
	"github.com/vango-dev/pagefx/pkg/behaviors"
	"github.com/vango-dev/pagefx/pkg/bridge"
	"github.com/vango-dev/pagefx/pkg/history"
	"github.com/vango-dev/pagefx/pkg/loop"
	"github.com/vango-dev/pagefx/pkg/render"
	"github.com/vango-dev/pagefx/pkg/toast"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

const (
	pageCookie    = "pagefx_page"
	browserCookie = "pagefx_browser"
	darkCookie    = "pagefx_dark"

	cookieMaxAge = 365 * 24 * 60 * 60

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxFormBytes caps POST bodies.
	maxFormBytes = 64 << 10
)

// ---------------------------------------------------------------------------
// Page sessions
// ---------------------------------------------------------------------------

// pageOrCreate returns the caller's page session, creating one (and its
// cookie) when the cookie is missing or stale.
func (s *Server) pageOrCreate(w http.ResponseWriter, r *http.Request) *Page {
	if c, err := r.Cookie(pageCookie); err == nil {
		if p := s.pages.Get(c.Value); p != nil {
			return p
		}
	}

	var browserID string
	if c, err := r.Cookie(browserCookie); err == nil && c.Value != "" {
		browserID = c.Value
	} else {
		browserID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     browserCookie,
			Value:    browserID,
			Path:     "/",
			MaxAge:   cookieMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	p := s.newPage(r.Context(), browserID, darkPreference(r), prefersDark(r))
	s.pages.Add(p)
	http.SetCookie(w, &http.Cookie{
		Name:     pageCookie,
		Value:    p.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return p
}

// pageFor returns the caller's existing page session.
func (s *Server) pageFor(r *http.Request) (*Page, error) {
	c, err := r.Cookie(pageCookie)
	if err != nil {
		return nil, errors.New("P011").WithDetail("No " + pageCookie + " cookie was sent.")
	}
	p := s.pages.Get(c.Value)
	if p == nil {
		return nil, errors.New("P011")
	}
	return p, nil
}

// darkPreference reads the saved dark mode choice, or nil when none.
func darkPreference(r *http.Request) *bool {
	c, err := r.Cookie(darkCookie)
	if err != nil {
		return nil
	}
	dark := c.Value == "1"
	return &dark
}

// prefersDark reports the browser's color scheme hint.
func prefersDark(r *http.Request) bool {
	return r.Header.Get("Sec-CH-Prefers-Color-Scheme") == "dark"
}

// do runs fn on the page loop and waits for it.
func (s *Server) do(ctx context.Context, p *Page, fn func()) error {
	err := p.loop.Do(ctx, fn)
	if stderrors.Is(err, loop.ErrClosed) {
		return errors.New("P012").Wrap(err)
	}
	return err
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *errors.Error
	if !stderrors.As(err, &pe) {
		pe = errors.Newf(errors.CategoryRuntime, "Request failed").Wrap(err)
	}
	status := pe.HTTPStatus()

	ev := s.logger.Warn()
	if status >= http.StatusInternalServerError {
		ev = s.logger.Error()
	}
	ev.Err(err).
		Str("code", pe.Code).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request error")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(pe.FormatJSON()))
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// renderFragments renders main followed by each oob node marked for an
// out-of-band swap. Must run on the page loop.
func (s *Server) renderFragments(buf *bytes.Buffer, main *vdom.VNode, oob ...*vdom.VNode) error {
	if err := s.renderer.RenderToWriter(buf, main); err != nil {
		return err
	}
	for _, n := range oob {
		if n == nil {
			continue
		}
		n.SetAttr("hx-swap-oob", "true")
		err := s.renderer.RenderToWriter(buf, n)
		n.RemoveAttr("hx-swap-oob")
		if err != nil {
			return err
		}
	}
	return nil
}

// renderPage renders the full document. Must run on the page loop.
func (s *Server) renderPage(buf *bytes.Buffer, p *Page) error {
	return s.renderer.RenderPage(buf, render.PageData{
		Body:    p.body,
		Title:   pageTitle,
		Scripts: []string{htmxScript, s.scripts.Asset(clientScript)},
	})
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// handlePage serves the document, or just its main content to htmx
// navigation.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p := s.pageOrCreate(w, r)
	ctx := r.Context()

	var buf bytes.Buffer
	var renderErr error
	err := s.do(ctx, p, func() {
		p.path = r.URL.Path
		p.bridge.ContentReplacedContext(ctx, p.body)
		if isHTMX(r) {
			renderErr = s.renderer.RenderToWriter(&buf, p.body.Find(vdom.ByTag("main")))
			return
		}
		renderErr = s.renderPage(&buf, p)
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// handleSubmit saves the client configuration. The submission is validated
// first; an invalid form is answered with 422 and its annotated markup,
// and no request is recorded.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, errors.New("P023").Wrap(err))
		return
	}
	ctx := r.Context()

	status := http.StatusOK
	var entry *history.Entry
	var buf bytes.Buffer
	var renderErr error
	err = s.do(ctx, p, func() {
		p.applyForm(r.PostForm, p.bridge.Engine().Fields())
		if !p.bridge.BeforeSubmitContext(ctx, p.form) {
			status = http.StatusUnprocessableEntity
		} else {
			p.issueToken()
			entry = &history.Entry{
				Owner:  p.browser,
				Method: r.Method,
				Path:   r.URL.Path,
				Status: status,
				At:     time.Now(),
			}
			p.recordHistory(*entry)
			p.bridge.AfterRequestContext(ctx, bridge.Outcome{
				Successful: true,
				Status:     status,
				Path:       r.URL.Path,
			})
		}
		p.bridge.ContentReplacedContext(ctx, p.body)

		if !isHTMX(r) {
			renderErr = s.renderPage(&buf, p)
			return
		}
		oob := []*vdom.VNode{p.toasts.Surface()}
		if status == http.StatusOK {
			oob = append(oob,
				p.body.Find(vdom.ByID("token")),
				p.body.Find(vdom.ByID("response")),
				p.body.Find(vdom.ByID("history-table")),
			)
		}
		renderErr = s.renderFragments(&buf, p.form, oob...)
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entry != nil {
		if _, err := s.history.Append(ctx, *entry); err != nil {
			s.logger.Warn().Err(err).Str("browser", p.browser).Msg("history not saved")
		}
	}
	writeHTML(w, status, buf.Bytes())
}

// handleBlur validates the form after a field loses focus. It only
// annotates the form; no toast is raised.
func (s *Server) handleBlur(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, errors.New("P023").Wrap(err))
		return
	}
	ctx := r.Context()

	var buf bytes.Buffer
	var renderErr error
	err = s.do(ctx, p, func() {
		p.applyForm(r.PostForm, p.bridge.Engine().Fields())
		p.bridge.FieldBlurredContext(ctx, p.form)
		renderErr = s.renderer.RenderToWriter(&buf, p.form)
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// handleDismiss closes one toast from its close button.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	raw := chi.URLParam(r, "id")
	id, ok := toast.ParseID(raw)
	if !ok {
		s.writeError(w, r, errors.New("P020").WithDetail("Got "+raw+"."))
		return
	}

	if err := s.do(r.Context(), p, func() { p.toasts.Dismiss(id) }); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAfterRequest accepts a completed request's outcome from the host.
func (s *Server) handleAfterRequest(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var o bridge.Outcome
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		s.writeError(w, r, errors.New("P021").Wrap(err))
		return
	}

	ctx := r.Context()
	if err := s.do(ctx, p, func() { p.bridge.AfterRequestContext(ctx, o) }); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type toastStatus struct {
	ID    uint64 `json:"id"`
	State string `json:"state"`
}

// handleToasts returns the toast surface, or the live toasts as JSON when
// the client asks for it.
func (s *Server) handleToasts(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	wantJSON := r.Header.Get("Accept") == "application/json"

	var buf bytes.Buffer
	var list []toastStatus
	var renderErr error
	err = s.do(r.Context(), p, func() {
		if wantJSON {
			list = make([]toastStatus, 0)
			for _, id := range p.toasts.Active() {
				list = append(list, toastStatus{ID: uint64(id), State: p.toasts.State(id).String()})
			}
			return
		}
		surface := p.toasts.Surface()
		if surface == nil {
			surface = vdom.Div(vdom.Class(toast.ContainerClass), vdom.AriaLive("polite"))
		}
		renderErr = s.renderer.RenderToWriter(&buf, surface)
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if wantJSON {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// handleSearch filters the history table by ?q=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	term := r.URL.Query().Get("q")

	var buf bytes.Buffer
	var renderErr error
	err = s.do(r.Context(), p, func() {
		if input := p.body.Find(vdom.ByClass("table-search")); input != nil {
			input.SetFieldValue(term)
		}
		behaviors.FilterTable(p.body, term)
		renderErr = s.renderer.RenderToWriter(&buf, p.body.Find(vdom.ByID("history-table")))
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// handleClearHistory forgets the browser's request history and returns the
// emptied table.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	if err := s.history.Clear(ctx, p.browser); err != nil {
		s.writeError(w, r, errors.Newf(errors.CategoryRuntime, "Could not clear history").Wrap(err))
		return
	}

	var buf bytes.Buffer
	var renderErr error
	err = s.do(ctx, p, func() {
		p.clearHistory()
		behaviors.FilterTable(p.body, behaviors.SearchTerm(p.body))
		renderErr = s.renderer.RenderToWriter(&buf, p.body.Find(vdom.ByID("history-table")))
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// handleCopy copies the access token to the browser clipboard through the
// page's websocket clients. Success and failure are reported as toasts.
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	var renderErr error
	err = s.do(r.Context(), p, func() {
		btn := p.body.Find(vdom.ByClass("copy-btn"))
		behaviors.CopyToken(btn, p.clipboard, p.toasts, p.loop)
		renderErr = s.renderFragments(&buf, btn, p.toasts.Surface())
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// handleDarkMode toggles dark mode and remembers the choice in a cookie.
func (s *Server) handleDarkMode(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Other tabs of the browser follow through the shared preference.
	var dark bool
	if err := s.do(r.Context(), p, func() { dark = p.dark.Toggle(p.body) }); err != nil {
		s.writeError(w, r, err)
		return
	}

	value := "0"
	if dark {
		value = "1"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     darkCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// handleWebSocket streams the page's events to the browser.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	p, err := s.pageFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.logger.Warn().Err(errors.New("P022").Wrap(err)).Str("page", p.ID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub, unsubscribe := p.hub.subscribe()
	defer unsubscribe()

	s.logger.Debug().Str("page", p.ID).Int("clients", p.hub.Count()).Msg("websocket connected")

	// The read side only handles control frames; its end ends the stream.
	go func() {
		defer unsubscribe()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			p.touch()
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "page closed"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
