package vdom

import (
	"errors"
	"fmt"
)

// Apply errors. They are programming errors: the live tree drifted from the
// tree the patches were computed against, or a patch was built by hand with
// the wrong payload.
var (
	ErrIndexNotFound         = errors.New("vdom: patch index not found in live tree")
	ErrAttributeKindMismatch = errors.New("vdom: attribute kind does not match patch")
	ErrShapeMismatch         = errors.New("vdom: patch does not fit live node")
)

// ApplyError reports which patch failed and why.
type ApplyError struct {
	Index int     // Depth-first index the patch targeted
	Op    PatchOp // Operation that failed
	Err   error   // Underlying cause
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply %s at index %d: %v", e.Op, e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Host is a live, mutable tree that mirrors a virtual tree.
type Host interface {
	// Root returns the live node at depth-first index 0.
	Root() HostNode
}

// HostNode is one node of a live tree. ChildNodes must return children in
// the same order the virtual tree lists them, so both trees share one
// depth-first numbering.
type HostNode interface {
	Kind() Kind
	ChildNodes() []HostNode

	AppendChildren(nodes []Node) error
	TruncateChildren(keep int) error
	ReplaceWith(node Node) error
	SetAttributes(attrs []Attribute) error
	RemoveAttributes(names []string) error
	AddEventListeners(attrs []Attribute) error
	RemoveEventListeners(names []string) error
	SetText(text string) error
}

// Applier applies a patch list to the live tree it owns.
type Applier interface {
	Apply(patches []Patch) error
}

// Apply runs patches against host in order.
//
// Every target is resolved against the pre-patch shape of the live tree
// before the first mutation, so indices computed against the old virtual
// tree stay valid while earlier patches change the shape. Apply stops at the
// first failing patch and returns an *ApplyError.
func Apply(host Host, patches []Patch) error {
	if len(patches) == 0 {
		return nil
	}
	targets, err := resolveTargets(host.Root(), patches)
	if err != nil {
		return err
	}
	for _, p := range patches {
		if err := applyPatch(targets[p.Index], p); err != nil {
			return &ApplyError{Index: p.Index, Op: p.Op, Err: err}
		}
	}
	return nil
}

// resolveTargets finds the live node of every patch index in one pre-order
// pass, stopping once the highest wanted index has been seen.
func resolveTargets(root HostNode, patches []Patch) (map[int]HostNode, error) {
	want := make(map[int]struct{}, len(patches))
	last := -1
	for _, p := range patches {
		want[p.Index] = struct{}{}
		if p.Index > last {
			last = p.Index
		}
	}

	found := make(map[int]HostNode, len(want))
	idx := 0
	var visit func(n HostNode) bool
	visit = func(n HostNode) bool {
		if idx > last {
			return false
		}
		if _, ok := want[idx]; ok {
			found[idx] = n
		}
		idx++
		for _, child := range n.ChildNodes() {
			if !visit(child) {
				return false
			}
		}
		return true
	}
	if root != nil {
		visit(root)
	}

	for _, p := range patches {
		if _, ok := found[p.Index]; !ok {
			return nil, &ApplyError{Index: p.Index, Op: p.Op, Err: ErrIndexNotFound}
		}
	}
	return found, nil
}

func applyPatch(n HostNode, p Patch) error {
	switch p.Op {
	case PatchAppendChildren:
		if n.Kind() != KindElement {
			return ErrShapeMismatch
		}
		return n.AppendChildren(p.Nodes)

	case PatchTruncateChildren:
		if n.Kind() != KindElement {
			return ErrShapeMismatch
		}
		if p.Keep < 0 || p.Keep > len(n.ChildNodes()) {
			return fmt.Errorf("%w: keep %d of %d children", ErrShapeMismatch, p.Keep, len(n.ChildNodes()))
		}
		return n.TruncateChildren(p.Keep)

	case PatchReplace:
		if isNil(p.Node) {
			return ErrShapeMismatch
		}
		return n.ReplaceWith(p.Node)

	case PatchAddAttributes:
		if n.Kind() != KindElement {
			return ErrShapeMismatch
		}
		if err := requireKind(p.Attrs, AttrPlain); err != nil {
			return err
		}
		return n.SetAttributes(p.Attrs)

	case PatchRemoveAttributes:
		if n.Kind() != KindElement {
			return ErrShapeMismatch
		}
		return n.RemoveAttributes(p.Names)

	case PatchAddEventListener:
		if n.Kind() != KindElement {
			return ErrShapeMismatch
		}
		if err := requireKind(p.Attrs, AttrListener); err != nil {
			return err
		}
		return n.AddEventListeners(p.Attrs)

	case PatchRemoveEventListener:
		if n.Kind() != KindElement {
			return ErrShapeMismatch
		}
		return n.RemoveEventListeners(p.Names)

	case PatchChangeText:
		if n.Kind() != KindText {
			return ErrShapeMismatch
		}
		return n.SetText(p.Text)

	default:
		return fmt.Errorf("vdom: unknown patch op %d", p.Op)
	}
}

func requireKind(attrs []Attribute, kind AttrKind) error {
	for _, a := range attrs {
		if a.Kind != kind {
			return fmt.Errorf("%w: %q is %s, want %s", ErrAttributeKindMismatch, a.Name, a.Kind, kind)
		}
	}
	return nil
}
