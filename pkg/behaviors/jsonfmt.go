package behaviors

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/vango-dev/pagefx/pkg/vdom"
)

// FormatJSON re-indents every `pre code` and .code-block whose text is a
// JSON object or array, using two spaces. Blocks that do not parse are
// left untouched. It returns the number of blocks rewritten.
func FormatJSON(root *vdom.VNode) int {
	blocks := root.FindAll(vdom.Any(
		vdom.Within(vdom.ByTag("pre"), vdom.ByTag("code")),
		vdom.ByClass("code-block"),
	))

	n := 0
	for _, block := range blocks {
		text := strings.TrimSpace(block.TextContent())
		if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
			continue
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
			continue
		}
		block.SetText(buf.String())
		n++
	}
	return n
}
