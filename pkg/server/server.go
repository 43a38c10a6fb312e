package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/pagefx/internal/config"
	"github.com/vango-dev/pagefx/internal/errors"
	"github.com/vango-dev/pagefx/pkg/assets"
	"github.com/vango-dev/pagefx/pkg/history"
	"github.com/vango-dev/pagefx/pkg/middleware"
	"github.com/vango-dev/pagefx/pkg/pref"
	"github.com/vango-dev/pagefx/pkg/render"
)

const (
	shutdownTimeout = 10 * time.Second

	// staticPrefix is where the page client scripts are served.
	staticPrefix = "/static/"
)

// Server serves page sessions over HTTP.
type Server struct {
	cfg      *config.Config
	logger   zerolog.Logger
	pages    *Pages
	renderer *render.Renderer
	scripts  *assets.Resolver
	metrics  *middleware.Metrics
	registry *prometheus.Registry
	tracer   *middleware.Tracer
	upgrader websocket.Upgrader

	// darkPrefs holds each browser's dark mode choice, shared by its tabs.
	darkPrefs *pref.Registry[bool]
	history   history.Store
	handler   http.Handler

	mu         sync.Mutex
	httpServer *http.Server
}

type options struct {
	logger          zerolog.Logger
	registry        *prometheus.Registry
	tracerProvider  trace.TracerProvider
	cleanupInterval time.Duration
	history         history.Store
}

// Option configures a Server.
type Option func(*options)

// WithLogger sets the server logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry registers metrics with reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithTracerProvider traces with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithCleanupInterval sets how often idle page sessions are swept.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) { o.cleanupInterval = d }
}

// WithHistoryStore keeps request history in store. The caller owns store
// and closes it after the server stops. Without this option history lives
// in memory for the life of the server.
func WithHistoryStore(store history.Store) Option {
	return func(o *options) { o.history = store }
}

// New creates a Server from cfg. The page session sweeper starts
// immediately; call Shutdown to stop it.
func New(cfg *config.Config, opts ...Option) *Server {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		cfg:      cfg,
		logger:   o.logger,
		renderer: render.NewRenderer(render.RendererConfig{}),
		scripts:  assets.NewResolver(assets.Client(), staticPrefix),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},

		darkPrefs: pref.NewRegistry("dark_mode", false),
		history:   o.history,
	}
	if s.history == nil {
		s.history = history.NewMemoryStore(history.WithLimit(cfg.History.Limit))
	}

	tracerOpts := []middleware.OTelOption{
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return !cfg.Metrics.Enabled || r.URL.Path != cfg.Metrics.Path
		}),
	}
	if o.tracerProvider != nil {
		tracerOpts = append(tracerOpts, middleware.WithTracerProvider(o.tracerProvider))
	}
	s.tracer = middleware.NewTracer(tracerOpts...)

	if cfg.Metrics.Enabled {
		s.registry = o.registry
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
			s.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		s.metrics = middleware.NewMetrics(
			middleware.WithRegistry(s.registry),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
	}

	s.pages = newPages(cfg.Session.IdleTimeout, o.cleanupInterval, s.logger)
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}
	r.Use(s.tracer.Handler)

	r.Get("/", s.handlePage)
	r.Get("/config", s.handlePage)
	r.Get("/history", s.handlePage)

	r.Post("/config", s.handleSubmit)
	r.Post("/config/validate", s.handleBlur)

	r.Get("/toasts", s.handleToasts)
	r.Post("/toasts/{id}/dismiss", s.handleDismiss)
	r.Post("/events/after-request", s.handleAfterRequest)

	r.Get("/history/search", s.handleSearch)
	r.Post("/history/clear", s.handleClearHistory)
	r.Post("/token/copy", s.handleCopy)
	r.Post("/dark-mode", s.handleDarkMode)

	r.Get("/ws", s.handleWebSocket)
	r.Handle(staticPrefix+"*", assets.Handler(assets.Client(), staticPrefix))

	if s.metrics != nil {
		r.Method(http.MethodGet, s.cfg.Metrics.Path,
			promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Pages returns the page session registry.
func (s *Server) Pages() *Pages {
	return s.pages
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.pages.Shutdown()
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.New("P010").Wrap(err).
			WithSuggestion("Pick another address with --addr or PAGEFX_ADDR")
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every page session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.pages.Shutdown()

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("shutdown error")
			return errors.New("P013").Wrap(err)
		}
	}
	s.logger.Info().Msg("server shutdown complete")
	return nil
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}
