package vdom

import "strconv"

// VKind tells elements apart from the two leaf kinds.
type VKind uint8

const (
	KindElement VKind = iota
	KindText          // escaped on render
	KindRaw           // written verbatim
)

func (k VKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindRaw:
		return "raw"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// VNode is a node in the page tree. Text holds the content of text and
// raw nodes; Tag, Props and Children are only set on elements.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props
	Children []*VNode
	Text     string
	Parent   *VNode // nil for the root or a detached node
}

// Props maps attribute names to values. Nil values are not rendered.
type Props map[string]any

// Attr is one attribute passed to an element constructor.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty reports whether a has no name and should be skipped.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// IsElement reports whether v is an element node.
func (v *VNode) IsElement() bool {
	return v != nil && v.Kind == KindElement
}
