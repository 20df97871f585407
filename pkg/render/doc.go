// Package render converts final element trees into HTML.
//
// The renderer handles text and attribute escaping, void elements, boolean
// attributes, inline style bundles and resource attributes:
//
//	renderer := render.NewRenderer(render.RendererConfig{
//	    Assets: assets.NewPassthroughResolver("/static/"),
//	})
//	html, handlers, err := renderer.RenderToString(tree)
//
// # Hydration IDs
//
// Elements carrying callbacks receive data-hid attributes (h1, h2, ... in
// document order) and data-on-<event> markers. The callbacks are returned in
// a Handlers registry instead of being written to the output, so a mount
// point can invoke them when an event for that id arrives. The tree itself is
// never modified.
//
// # Full Page Rendering
//
//	handlers, err := renderer.RenderPage(w, render.PageData{
//	    Title:   "30 Days Of React",
//	    Body:    tree,
//	    LiveURL: "/live",
//	})
//
// Trees that still contain component applications or unresolved values are
// rejected with ErrNotComposed.
package render
