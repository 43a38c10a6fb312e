// Package vdom provides the mutable node tree pagefx uses in place of a
// browser DOM.
//
// The page's markup is built once by the server and then augmented in
// place by the toast manager, the validation engine and the peripheral
// behaviours. Every node keeps a pointer to its parent so the usual DOM
// navigation (Closest, NextSibling, After, Remove) is available without a
// document singleton: callers pass the root they want to operate on.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text and
// raw HTML. Props holds attributes; Attr is used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("form-group"),
//	    Label(For("client_id"), Text("Client ID")),
//	    Input(ID("client_id"), Name("client_id"), Value("")),
//	)
//
// # Queries
//
// Find and FindAll walk descendants depth-first in document order using a
// Matcher (ByID, ByClass, ByTag, or any func(*VNode) bool). Closest walks
// ancestors starting at the node itself.
package vdom
