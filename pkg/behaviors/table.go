package behaviors

import (
	"strings"

	"github.com/vango-dev/pagefx/pkg/vdom"
)

const (
	// NoResultsClass marks the placeholder row shown when nothing matches.
	NoResultsClass = "no-results-row"

	// NoResultsText is the placeholder row's message.
	NoResultsText = "No requests found"
)

// FilterTable hides the .history-table body rows whose text does not
// contain term, case-insensitively. When every row is hidden a single
// no-results row is appended; it is removed again once something matches.
// It returns the number of visible rows.
func FilterTable(root *vdom.VNode, term string) int {
	table := root.Find(vdom.ByClass("history-table"))
	if table == nil {
		return 0
	}
	tbody := table.Find(vdom.ByTag("tbody"))
	if tbody == nil {
		return 0
	}

	term = strings.ToLower(term)
	visible := 0
	for _, row := range tbody.FindAll(vdom.ByTag("tr")) {
		if row.HasClass(NoResultsClass) {
			continue
		}
		if strings.Contains(strings.ToLower(row.TextContent()), term) {
			row.SetStyle("display", "")
			visible++
		} else {
			row.SetStyle("display", "none")
		}
	}

	placeholder := tbody.Find(vdom.ByClass(NoResultsClass))
	switch {
	case visible == 0 && placeholder == nil:
		tbody.AppendChild(vdom.Tr(vdom.Class(NoResultsClass),
			vdom.Td(vdom.Colspan("100%"), vdom.StyleAttr("text-align: center"), NoResultsText),
		))
	case visible > 0 && placeholder != nil:
		placeholder.Remove()
	}
	return visible
}

// SearchTerm returns the current value of the page's .table-search input.
func SearchTerm(root *vdom.VNode) string {
	return root.Find(vdom.ByClass("table-search")).FieldValue()
}
