package render

import (
	"io"

	"github.com/vango-dev/pagefx/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the page's body element. It is rendered as-is so the toast
	// surface appended to it at runtime is included.
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Scripts contains paths to deferred scripts
	Scripts []string
}

// RenderPage writes a complete HTML document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.CustomAttr("content", "width=device-width, initial-scale=1")),
		vdom.Title(vdom.Text(page.Title)),
	)
	for _, href := range page.StyleSheets {
		head.AppendChild(vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href)))
	}
	for _, src := range page.Scripts {
		head.AppendChild(vdom.Script(vdom.Src(src), vdom.CustomAttr("defer", true)))
	}

	out := &htmlWriter{w: w, cfg: r.config}
	out.write("<!DOCTYPE html>")
	out.newline()
	out.write(`<html lang="`, escapeAttr(lang), `">`)
	out.newline()
	out.node(head, 0)
	// The body belongs to the caller's tree; render it without re-parenting.
	out.node(page.Body, 0)
	out.write("</html>")
	return out.err
}
