package vdom

import (
	"slices"
	"strings"
)

// Matcher selects nodes during a query.
type Matcher func(*VNode) bool

// ByID matches the element whose id attribute equals id.
func ByID(id string) Matcher {
	return func(v *VNode) bool {
		return v.IsElement() && v.Attr("id") == id
	}
}

// ByClass matches elements carrying the given class.
func ByClass(class string) Matcher {
	return func(v *VNode) bool {
		return v.HasClass(class)
	}
}

// ByTag matches elements with the given tag name.
func ByTag(tag string) Matcher {
	return func(v *VNode) bool {
		return v.IsElement() && v.Tag == tag
	}
}

// All matches when every matcher matches.
func All(ms ...Matcher) Matcher {
	return func(v *VNode) bool {
		for _, m := range ms {
			if !m(v) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one matcher matches.
func Any(ms ...Matcher) Matcher {
	return func(v *VNode) bool {
		for _, m := range ms {
			if m(v) {
				return true
			}
		}
		return false
	}
}

// Within matches nodes that have an ancestor matching outer.
func Within(outer, inner Matcher) Matcher {
	return func(v *VNode) bool {
		if !inner(v) {
			return false
		}
		for p := v.Parent; p != nil; p = p.Parent {
			if outer(p) {
				return true
			}
		}
		return false
	}
}

// ---------------------------------------------------------------------------
// Structure
// ---------------------------------------------------------------------------

// AppendChild adds child as the last child of v, detaching it from any
// previous parent first.
func (v *VNode) AppendChild(child *VNode) *VNode {
	if v == nil || child == nil {
		return child
	}
	child.Remove()
	child.Parent = v
	v.Children = append(v.Children, child)
	return child
}

// After inserts node as the next sibling of v. It is a no-op when v has no
// parent.
func (v *VNode) After(node *VNode) {
	if v == nil || node == nil || v.Parent == nil {
		return
	}
	node.Remove()
	p := v.Parent
	i := p.indexOf(v)
	if i < 0 {
		return
	}
	node.Parent = p
	p.Children = slices.Insert(p.Children, i+1, node)
}

// Remove detaches v from its parent. Removing a detached node is a no-op.
func (v *VNode) Remove() {
	if v == nil || v.Parent == nil {
		return
	}
	p := v.Parent
	if i := p.indexOf(v); i >= 0 {
		p.Children = slices.Delete(p.Children, i, i+1)
	}
	v.Parent = nil
}

// Contains reports whether node is v or one of its descendants.
func (v *VNode) Contains(node *VNode) bool {
	for n := node; n != nil; n = n.Parent {
		if n == v {
			return true
		}
	}
	return false
}

// NextSibling returns the node after v in its parent, or nil.
func (v *VNode) NextSibling() *VNode {
	if v == nil || v.Parent == nil {
		return nil
	}
	p := v.Parent
	i := p.indexOf(v)
	if i < 0 || i+1 >= len(p.Children) {
		return nil
	}
	return p.Children[i+1]
}

func (v *VNode) indexOf(child *VNode) int {
	for i, c := range v.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Find returns the first descendant of v (excluding v) matching m, in
// document order.
func (v *VNode) Find(m Matcher) *VNode {
	if v == nil {
		return nil
	}
	for _, c := range v.Children {
		if m(c) {
			return c
		}
		if found := c.Find(m); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of v (excluding v) matching m, in
// document order.
func (v *VNode) FindAll(m Matcher) []*VNode {
	var out []*VNode
	v.walk(func(n *VNode) {
		if n != v && m(n) {
			out = append(out, n)
		}
	})
	return out
}

// Closest returns v or its nearest ancestor matching m.
func (v *VNode) Closest(m Matcher) *VNode {
	for n := v; n != nil; n = n.Parent {
		if m(n) {
			return n
		}
	}
	return nil
}

// Root returns the top-most ancestor of v.
func (v *VNode) Root() *VNode {
	n := v
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

func (v *VNode) walk(fn func(*VNode)) {
	if v == nil {
		return
	}
	fn(v)
	for _, c := range v.Children {
		c.walk(fn)
	}
}

// ---------------------------------------------------------------------------
// Attributes
// ---------------------------------------------------------------------------

// Attr returns the attribute value as a string. Missing attributes and
// non-element nodes yield "".
func (v *VNode) Attr(key string) string {
	if !v.IsElement() {
		return ""
	}
	switch val := v.Props[key].(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return key
		}
		return ""
	default:
		return stringify(val)
	}
}

// HasAttr reports whether the attribute is present.
func (v *VNode) HasAttr(key string) bool {
	if !v.IsElement() {
		return false
	}
	_, ok := v.Props[key]
	return ok
}

// SetAttr sets an attribute value.
func (v *VNode) SetAttr(key string, value any) {
	if !v.IsElement() {
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.Props[key] = value
}

// RemoveAttr deletes an attribute.
func (v *VNode) RemoveAttr(key string) {
	if !v.IsElement() {
		return
	}
	delete(v.Props, key)
}

// Classes returns the element's class list.
func (v *VNode) Classes() []string {
	return strings.Fields(v.Attr("class"))
}

// HasClass reports whether the element carries class.
func (v *VNode) HasClass(class string) bool {
	return slices.Contains(v.Classes(), class)
}

// AddClass adds class if not already present.
func (v *VNode) AddClass(class string) {
	if !v.IsElement() || v.HasClass(class) {
		return
	}
	v.setClasses(append(v.Classes(), class))
}

// RemoveClass removes every occurrence of class.
func (v *VNode) RemoveClass(class string) {
	if !v.IsElement() || !v.HasClass(class) {
		return
	}
	v.setClasses(slices.DeleteFunc(v.Classes(), func(c string) bool { return c == class }))
}

// ToggleClass flips class and reports whether it is now present.
func (v *VNode) ToggleClass(class string) bool {
	if v.HasClass(class) {
		v.RemoveClass(class)
		return false
	}
	v.AddClass(class)
	return v.HasClass(class)
}

func (v *VNode) setClasses(classes []string) {
	if len(classes) == 0 {
		v.RemoveAttr("class")
		return
	}
	v.SetAttr("class", strings.Join(classes, " "))
}

// ---------------------------------------------------------------------------
// Content
// ---------------------------------------------------------------------------

// TextContent returns the concatenated text of v and its descendants.
func (v *VNode) TextContent() string {
	var sb strings.Builder
	v.walk(func(n *VNode) {
		if n.Kind == KindText {
			sb.WriteString(n.Text)
		}
	})
	return sb.String()
}

// SetText replaces all children of v with a single text node.
func (v *VNode) SetText(s string) {
	if v == nil {
		return
	}
	if v.Kind == KindText {
		v.Text = s
		return
	}
	for _, c := range v.Children {
		c.Parent = nil
	}
	v.Children = v.Children[:0]
	v.AppendChild(Text(s))
}

// FieldValue returns the current value of a form control: the value
// attribute for inputs, the text content for textareas.
func (v *VNode) FieldValue() string {
	if !v.IsElement() {
		return ""
	}
	if v.Tag == "textarea" {
		return v.TextContent()
	}
	return v.Attr("value")
}

// SetFieldValue updates a form control's value.
func (v *VNode) SetFieldValue(value string) {
	if !v.IsElement() {
		return
	}
	if v.Tag == "textarea" {
		v.SetText(value)
		return
	}
	v.SetAttr("value", value)
}
