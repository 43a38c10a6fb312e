package vdom

import (
	"fmt"
	"strings"
)

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}

// styleDecl is one "property: value" pair of an inline style.
type styleDecl struct {
	prop, value string
}

func parseStyle(s string) []styleDecl {
	var out []styleDecl
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out = append(out, styleDecl{prop: prop, value: strings.TrimSpace(value)})
	}
	return out
}

func formatStyle(decls []styleDecl) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

// StyleValue returns the inline style value for prop, or "".
func (v *VNode) StyleValue(prop string) string {
	for _, d := range parseStyle(v.Attr("style")) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets one inline style property. An empty value removes it.
func (v *VNode) SetStyle(prop, value string) {
	if !v.IsElement() {
		return
	}
	decls := parseStyle(v.Attr("style"))
	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if d.prop != prop {
			out = append(out, d)
			continue
		}
		if value != "" && !replaced {
			out = append(out, styleDecl{prop: prop, value: value})
			replaced = true
		}
	}
	if value != "" && !replaced {
		out = append(out, styleDecl{prop: prop, value: value})
	}
	if len(out) == 0 {
		v.RemoveAttr("style")
		return
	}
	v.SetAttr("style", formatStyle(out))
}
