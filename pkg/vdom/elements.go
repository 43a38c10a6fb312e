package vdom

// IsVoidElement reports whether tag never has children or a closing tag.
func IsVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// createElement builds an element from a mix of attributes, children and
// strings. Strings become text children; nil values and empty attributes
// are skipped so callers can pass conditional pieces inline.
func createElement(tag string, args []any) *VNode {
	el := &VNode{Kind: KindElement, Tag: tag, Props: Props{}}
	for _, arg := range args {
		el.add(arg)
	}
	return el
}

func (v *VNode) add(arg any) {
	switch a := arg.(type) {
	case Attr:
		if !a.IsEmpty() {
			v.Props[a.Key] = a.Value
		}
	case []Attr:
		for _, attr := range a {
			v.add(attr)
		}
	case *VNode:
		if a != nil {
			v.AppendChild(a)
		}
	case []*VNode:
		for _, child := range a {
			v.add(child)
		}
	case string:
		v.AppendChild(Text(a))
	}
}

// Page structure

func Html(args ...any) *VNode    { return createElement("html", args) }
func Head(args ...any) *VNode    { return createElement("head", args) }
func Title(args ...any) *VNode   { return createElement("title", args) }
func Meta(args ...any) *VNode    { return createElement("meta", args) }
func Link(args ...any) *VNode    { return createElement("link", args) }
func Script(args ...any) *VNode  { return createElement("script", args) }
func Body(args ...any) *VNode    { return createElement("body", args) }
func Header(args ...any) *VNode  { return createElement("header", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }

// Content

func H1(args ...any) *VNode    { return createElement("h1", args) }
func H2(args ...any) *VNode    { return createElement("h2", args) }
func Div(args ...any) *VNode   { return createElement("div", args) }
func Span(args ...any) *VNode  { return createElement("span", args) }
func A(args ...any) *VNode     { return createElement("a", args) }
func Pre(args ...any) *VNode   { return createElement("pre", args) }
func Code(args ...any) *VNode  { return createElement("code", args) }
func Small(args ...any) *VNode { return createElement("small", args) }

// Forms

func Form(args ...any) *VNode     { return createElement("form", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }

// Tables

func Table(args ...any) *VNode { return createElement("table", args) }
func Thead(args ...any) *VNode { return createElement("thead", args) }
func Tbody(args ...any) *VNode { return createElement("tbody", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Th(args ...any) *VNode    { return createElement("th", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }
