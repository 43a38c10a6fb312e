package render

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/vango-dev/pagefx/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty indents block elements. Used by the CLI, never for pages.
	Pretty bool

	// Indent is written once per depth in pretty mode. Defaults to two
	// spaces.
	Indent string
}

// Renderer turns node trees into HTML. It holds no state between calls
// and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders node into a string. A nil node renders as "".
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams node to w and returns the first error.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	out := &htmlWriter{w: w, cfg: r.config}
	out.node(node, 0)
	return out.err
}

// htmlWriter keeps the first write error and turns later writes into
// no-ops, so the tree walk needs no error plumbing.
type htmlWriter struct {
	w   io.Writer
	cfg RendererConfig
	err error
}

func (h *htmlWriter) write(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) newline() {
	if h.cfg.Pretty {
		h.write("\n")
	}
}

func (h *htmlWriter) indent(depth int) {
	if h.cfg.Pretty && depth > 0 {
		h.write(strings.Repeat(h.cfg.Indent, depth))
	}
}

func (h *htmlWriter) node(n *vdom.VNode, depth int) {
	if n == nil || h.err != nil {
		return
	}
	switch n.Kind {
	case vdom.KindElement:
		h.element(n, depth)
	case vdom.KindText:
		h.write(escapeHTML(n.Text))
	case vdom.KindRaw:
		h.write(n.Text)
	default:
		h.err = fmt.Errorf("cannot render %s node", n.Kind)
	}
}

func (h *htmlWriter) element(n *vdom.VNode, depth int) {
	h.indent(depth)
	h.write("<", n.Tag)
	h.attributes(n.Props)
	h.write(">")
	if vdom.IsVoidElement(n.Tag) {
		h.newline()
		return
	}

	// Inline elements keep their children on one line.
	block := len(n.Children) > 0 && !isInlineElement(n.Tag)
	childDepth := 0
	if block {
		h.newline()
		childDepth = depth + 1
	}
	for _, child := range n.Children {
		h.node(child, childDepth)
	}
	if block && h.cfg.Pretty {
		if n.Children[len(n.Children)-1].Kind != vdom.KindElement {
			h.newline()
		}
		h.indent(depth)
	}
	h.write("</", n.Tag, ">")
	h.newline()
}

// attributes writes props sorted by name so output is stable.
func (h *htmlWriter) attributes(props vdom.Props) {
	for _, key := range slices.Sorted(maps.Keys(props)) {
		value := props[key]
		if value == nil {
			continue
		}
		if on, ok := value.(bool); ok && isBooleanAttr(key) {
			if on {
				h.write(" ", key)
			}
			continue
		}
		h.write(" ", key, `="`, escapeAttr(attrString(value)), `"`)
	}
}

func attrString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
