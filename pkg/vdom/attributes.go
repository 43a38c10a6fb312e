package vdom

import "strings"

// Attribute constructors. Each returns an Attr for an element
// constructor. Readonly and Required render as bare attributes.

func ID(id string) Attr               { return Attr{"id", id} }
func Name(name string) Attr           { return Attr{"name", name} }
func Type(typ string) Attr            { return Attr{"type", typ} }
func Value(value string) Attr         { return Attr{"value", value} }
func For(id string) Attr              { return Attr{"for", id} }
func Placeholder(text string) Attr    { return Attr{"placeholder", text} }
func Readonly() Attr                  { return Attr{"readonly", true} }
func Required() Attr                  { return Attr{"required", true} }
func Method(method string) Attr       { return Attr{"method", method} }
func Action(url string) Attr          { return Attr{"action", url} }
func Colspan(n string) Attr           { return Attr{"colspan", n} }
func Href(url string) Attr            { return Attr{"href", url} }
func Rel(rel string) Attr             { return Attr{"rel", rel} }
func Src(url string) Attr             { return Attr{"src", url} }
func Charset(charset string) Attr     { return Attr{"charset", charset} }
func Role(role string) Attr           { return Attr{"role", role} }
func AriaLabel(label string) Attr     { return Attr{"aria-label", label} }
func AriaLive(politeness string) Attr { return Attr{"aria-live", politeness} }

// Class joins classes into one class attribute.
func Class(classes ...string) Attr { return Attr{"class", strings.Join(classes, " ")} }

// StyleAttr sets inline style. Read and change single properties with
// VNode.StyleValue and VNode.SetStyle.
func StyleAttr(style string) Attr { return Attr{"style", style} }

// Data sets data-key, for example Data("toast-id", "3").
func Data(key, value string) Attr { return Attr{"data-" + key, value} }

// htmx request attributes.

func HxPost(url string) Attr        { return Attr{"hx-post", url} }
func HxTarget(selector string) Attr { return Attr{"hx-target", selector} }
func HxSwap(strategy string) Attr   { return Attr{"hx-swap", strategy} }

// CustomAttr sets any attribute without a dedicated constructor.
func CustomAttr(key string, value any) Attr { return Attr{key, value} }
