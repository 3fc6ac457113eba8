// Package render writes virtual trees as HTML.
//
// The output matches what a browser would build from the same tree, so a
// page rendered here can be patched in place by the stream the server
// sends afterwards. Listeners are never written as attributes. When
// RendererConfig.IndexAttr is set, every element carries its depth-first
// index so the client can report event targets by index:
//
//	r := render.NewRenderer(render.RendererConfig{IndexAttr: "data-pw"})
//	html, err := r.RenderToString(root)
//	listeners := r.Listeners() // index -> event names
//
// RenderPage wraps a tree in a complete document with the client
// bootstrap script. StreamingRenderer does the same while flushing the
// head early.
package render
