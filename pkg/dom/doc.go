// Package dom provides a live, mutable tree that Patchwork patches are
// applied to.
//
// Document mirrors a virtual tree using golang.org/x/net/html nodes, the
// same node type the HTML parser and renderer use. Event listeners and typed
// attribute values cannot live on an html.Node, so Document keeps them in
// side tables keyed by node.
//
//	doc := dom.New(oldView)
//	if err := doc.Apply(vdom.Diff(oldView, newView)); err != nil {
//	    // the live tree no longer matches oldView; rebuild it
//	}
//	msgs, _ := doc.Dispatch(3, vdom.Event{Type: "click"})
//
// A Document is not safe for concurrent use. Callers serialize diff and
// apply cycles (see package updater).
package dom
