// Package render converts pagefx node trees into HTML.
//
// The server renders whole pages on first load and fragments (the form,
// the toast surface) in response to HTMX requests. Output is deterministic:
// attributes are written in sorted order so fragments can be compared in
// tests.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// All text content is escaped. KindRaw nodes are written verbatim and must
// only carry trusted markup.
package render
