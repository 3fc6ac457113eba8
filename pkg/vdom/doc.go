// Package vdom provides the virtual DOM tree, its diff engine and the patch
// applier contract for Patchwork.
//
// A virtual tree is an immutable value built from Element and Text nodes.
// Application state produces a fresh tree on every change; Diff compares the
// previous tree with the next one and returns an ordered list of Patch
// operations that a live, mutable tree applies to catch up.
//
// # Core Types
//
// Node is a closed sum type implemented by *ElementNode and *TextNode.
// Attribute is either a plain name/value pair or an event listener carrying
// callbacks. Attributes sharing a name on one element are merged before
// comparison (see Merge).
//
//	view := vdom.Element("ul", []vdom.Attribute{vdom.Attr("class", "todo")},
//	    vdom.Element("li", nil, vdom.Text("write code")),
//	    vdom.Element("li", nil, vdom.Text("ship it")),
//	)
//
// # Depth-First Indexing
//
// Patches address their target by the pre-order index of the node in the
// old tree. The root is 0, its first child is 1, that child's first child
// is 2 and so on:
//
//	      0
//	  ┌───┴────┐
//	  1        4
//	┌─┴─┐   ┌──┼──┐
//	2   3   5  6  7
//
// Indices are never stored on nodes; Walk, NodeAt and Size compute them.
//
// # Diffing
//
// Children are compared purely by position. There is no keyed
// reconciliation: prepending a child produces a change at every shifted
// position plus an AppendChildren for the tail.
//
// # Applying
//
// Apply resolves every target index against the live tree before mutating
// anything, then runs the patches in emission order against a Host.
// Failures are fatal for the batch; there is no partial success.
package vdom
