package bridge

import (
	"context"
	"net/http"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/pagefx/pkg/behaviors"
	"github.com/vango-dev/pagefx/pkg/middleware"
	"github.com/vango-dev/pagefx/pkg/toast"
	"github.com/vango-dev/pagefx/pkg/validate"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

// Signal names, as recorded in metrics and spans.
const (
	SignalContentReplaced = "content_replaced"
	SignalBeforeSubmit    = "before_submit"
	SignalFieldBlurred    = "field_blurred"
	SignalAfterRequest    = "after_request"
)

// Outcome describes a completed host request.
type Outcome struct {
	Successful bool   `json:"successful"`
	Status     int    `json:"status"`
	Path       string `json:"path"`
}

// Bridge reacts to host lifecycle signals.
type Bridge struct {
	toasts *toast.Manager
	engine *validate.Engine
	cfg    config
}

// New creates a Bridge. A nil engine gets validate.Default().
func New(toasts *toast.Manager, engine *validate.Engine, opts ...Option) *Bridge {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if engine == nil {
		engine = validate.Default(validate.WithLogger(cfg.logger))
	}
	return &Bridge{toasts: toasts, engine: engine, cfg: cfg}
}

// ContentReplaced re-applies the peripheral behaviors to freshly swapped
// content: active navigation, the table filter and JSON formatting.
func (b *Bridge) ContentReplaced(root *vdom.VNode) {
	b.ContentReplacedContext(context.Background(), root)
}

// ContentReplacedContext is ContentReplaced with a parent context for
// tracing.
func (b *Bridge) ContentReplacedContext(ctx context.Context, root *vdom.VNode) {
	_, span := b.start(ctx, SignalContentReplaced)
	defer span.End()

	if root == nil {
		return
	}
	behaviors.SetActiveNav(root, b.cfg.location())
	if root.Find(vdom.ByClass("table-search")) != nil {
		behaviors.FilterTable(root, behaviors.SearchTerm(root))
	}
	n := behaviors.FormatJSON(root)
	span.SetAttributes(attribute.Int("pagefx.json_blocks", n))
}

// BeforeSubmit validates form and reports whether submission may proceed.
// On failure a single error toast is raised.
func (b *Bridge) BeforeSubmit(form *vdom.VNode) bool {
	return b.BeforeSubmitContext(context.Background(), form)
}

// BeforeSubmitContext is BeforeSubmit with a parent context for tracing.
func (b *Bridge) BeforeSubmitContext(ctx context.Context, form *vdom.VNode) bool {
	_, span := b.start(ctx, SignalBeforeSubmit)
	defer span.End()

	res := b.engine.Check(form)
	middleware.RecordValidation(span, res)

	if res.Checked == 0 {
		b.cfg.logger.Warn().Msg("submit validated no fields")
	}
	if !res.Valid {
		b.toasts.Error(b.cfg.messages.FixErrors)
		return false
	}
	return true
}

// FieldBlurred re-validates form without raising a toast.
func (b *Bridge) FieldBlurred(form *vdom.VNode) {
	b.FieldBlurredContext(context.Background(), form)
}

// FieldBlurredContext is FieldBlurred with a parent context for tracing.
func (b *Bridge) FieldBlurredContext(ctx context.Context, form *vdom.VNode) {
	_, span := b.start(ctx, SignalFieldBlurred)
	defer span.End()

	middleware.RecordValidation(span, b.engine.Check(form))
}

// AfterRequest raises the outcome toast for a completed request. Failures
// always raise the generic error toast. Successes raise the saved toast
// only for status 200 on a configured success path.
func (b *Bridge) AfterRequest(o Outcome) {
	b.AfterRequestContext(context.Background(), o)
}

// AfterRequestContext is AfterRequest with a parent context for tracing.
func (b *Bridge) AfterRequestContext(ctx context.Context, o Outcome) {
	_, span := b.start(ctx, SignalAfterRequest,
		attribute.Bool("pagefx.request.successful", o.Successful),
		attribute.Int("pagefx.request.status", o.Status),
		attribute.String("pagefx.request.path", o.Path),
	)
	defer span.End()

	switch {
	case !o.Successful:
		b.cfg.logger.Debug().Int("status", o.Status).Str("path", o.Path).Msg("request failed")
		b.toasts.Error(b.cfg.messages.RequestFailed)
	case o.Status == http.StatusOK && b.isSuccessPath(o.Path):
		b.toasts.Success(b.cfg.messages.Saved)
	}
}

func (b *Bridge) isSuccessPath(path string) bool {
	return slices.ContainsFunc(b.cfg.successPaths, func(p string) bool {
		return MatchPath(p, path)
	})
}

// Engine returns the validation engine.
func (b *Bridge) Engine() *validate.Engine { return b.engine }

func (b *Bridge) start(ctx context.Context, signal string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	b.cfg.recorder.RecordSignal(signal)
	if b.cfg.tracer == nil {
		// A span from an empty context is non-recording, so End is harmless.
		return ctx, trace.SpanFromContext(context.Background())
	}
	return b.cfg.tracer.StartSignal(ctx, signal, attrs...)
}
