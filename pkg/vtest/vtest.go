package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/pagefx/pkg/render"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

// maxShown caps how much markup a failure message prints.
const maxShown = 500

// RenderToString renders node as compact HTML, or "" when rendering fails.
func RenderToString(node *vdom.VNode) string {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains fails t unless the markup of node contains want.
func ExpectContains(t testing.TB, node *vdom.VNode, want string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, want) {
		return
	}
	if len(html) > maxShown {
		html = html[:maxShown] + "..."
	}
	t.Errorf("markup does not contain %q:\n%s", want, html)
}

// CountClass returns how many descendants of root carry class.
func CountClass(root *vdom.VNode, class string) int {
	return len(root.FindAll(vdom.ByClass(class)))
}
