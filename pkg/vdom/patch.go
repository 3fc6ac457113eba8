package vdom

import (
	"fmt"
	"strings"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchAppendChildren      PatchOp = 0x01 // Append nodes after the existing children
	PatchTruncateChildren    PatchOp = 0x02 // Keep only the first Keep children
	PatchReplace             PatchOp = 0x03 // Replace the whole subtree
	PatchAddAttributes       PatchOp = 0x04 // Set plain attributes
	PatchRemoveAttributes    PatchOp = 0x05 // Remove plain attributes by name
	PatchAddEventListener    PatchOp = 0x06 // Attach listeners
	PatchRemoveEventListener PatchOp = 0x07 // Detach listeners by name
	PatchChangeText          PatchOp = 0x08 // Update text content
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchAppendChildren:
		return "AppendChildren"
	case PatchTruncateChildren:
		return "TruncateChildren"
	case PatchReplace:
		return "Replace"
	case PatchAddAttributes:
		return "AddAttributes"
	case PatchRemoveAttributes:
		return "RemoveAttributes"
	case PatchAddEventListener:
		return "AddEventListener"
	case PatchRemoveEventListener:
		return "RemoveEventListener"
	case PatchChangeText:
		return "ChangeText"
	default:
		return "Unknown"
	}
}

// ParsePatchOp returns the PatchOp with the given name.
func ParsePatchOp(name string) (PatchOp, bool) {
	for op := PatchAppendChildren; op <= PatchChangeText; op++ {
		if op.String() == name {
			return op, true
		}
	}
	return 0, false
}

// Patch is a single mutation against the live tree. Index is the pre-order
// index of the target node in the old tree. Only the payload fields of the
// given Op are set.
//
// Payload nodes and attributes are shared with the new tree, not copied.
// Trees are immutable, so the sharing is safe for as long as the caller
// keeps the patch list.
type Patch struct {
	Op    PatchOp
	Index int
	Nodes []Node      // AppendChildren
	Keep  int         // TruncateChildren
	Node  Node        // Replace
	Attrs []Attribute // AddAttributes, AddEventListener
	Names []string    // RemoveAttributes, RemoveEventListener
	Text  string      // ChangeText
}

// NodeIndex returns the depth-first index of the node the patch targets.
func (p Patch) NodeIndex() int {
	return p.Index
}

// String renders the patch for logs and CLI output.
func (p Patch) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%d", p.Op, p.Index)
	switch p.Op {
	case PatchAppendChildren:
		fmt.Fprintf(&b, ", %d nodes", len(p.Nodes))
	case PatchTruncateChildren:
		fmt.Fprintf(&b, ", keep=%d", p.Keep)
	case PatchReplace:
		fmt.Fprintf(&b, ", %s", describe(p.Node))
	case PatchAddAttributes, PatchAddEventListener:
		parts := make([]string, len(p.Attrs))
		for i, a := range p.Attrs {
			parts[i] = a.String()
		}
		fmt.Fprintf(&b, ", [%s]", strings.Join(parts, " "))
	case PatchRemoveAttributes, PatchRemoveEventListener:
		fmt.Fprintf(&b, ", [%s]", strings.Join(p.Names, " "))
	case PatchChangeText:
		fmt.Fprintf(&b, ", %q", p.Text)
	}
	b.WriteByte(')')
	return b.String()
}

func describe(n Node) string {
	switch v := n.(type) {
	case *ElementNode:
		if v == nil {
			return "<nil>"
		}
		return "<" + v.Tag + ">"
	case *TextNode:
		if v == nil {
			return "<nil>"
		}
		return fmt.Sprintf("%q", v.Text)
	}
	return "<nil>"
}

// AppendChildrenPatch creates an AppendChildren patch.
func AppendChildrenPatch(index int, nodes ...Node) Patch {
	return Patch{Op: PatchAppendChildren, Index: index, Nodes: nodes}
}

// TruncateChildrenPatch creates a TruncateChildren patch.
func TruncateChildrenPatch(index, keep int) Patch {
	return Patch{Op: PatchTruncateChildren, Index: index, Keep: keep}
}

// ReplacePatch creates a Replace patch.
func ReplacePatch(index int, node Node) Patch {
	return Patch{Op: PatchReplace, Index: index, Node: node}
}

// AddAttributesPatch creates an AddAttributes patch.
func AddAttributesPatch(index int, attrs ...Attribute) Patch {
	return Patch{Op: PatchAddAttributes, Index: index, Attrs: attrs}
}

// RemoveAttributesPatch creates a RemoveAttributes patch.
func RemoveAttributesPatch(index int, names ...string) Patch {
	return Patch{Op: PatchRemoveAttributes, Index: index, Names: names}
}

// AddEventListenerPatch creates an AddEventListener patch.
func AddEventListenerPatch(index int, attrs ...Attribute) Patch {
	return Patch{Op: PatchAddEventListener, Index: index, Attrs: attrs}
}

// RemoveEventListenerPatch creates a RemoveEventListener patch.
func RemoveEventListenerPatch(index int, names ...string) Patch {
	return Patch{Op: PatchRemoveEventListener, Index: index, Names: names}
}

// ChangeTextPatch creates a ChangeText patch.
func ChangeTextPatch(index int, text string) Patch {
	return Patch{Op: PatchChangeText, Index: index, Text: text}
}
