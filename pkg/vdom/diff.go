package vdom

import "errors"

// ErrNilRoot reports a nil tree where a root node is required.
var ErrNilRoot = errors.New("vdom: nil root")

// Diff compares two trees and returns the patches that turn a live tree
// mirroring prev into one mirroring next.
//
// Patches are emitted in the pre-order visitation order of prev. Each patch
// carries the depth-first index of its target in prev. The result is
// deterministic for a given pair of trees; Diff(t, t) is always empty.
//
// Subtrees shared by pointer between prev and next are skipped without
// comparison. Listeners on distinct but equal subtrees are re-attached,
// because callbacks cannot be compared.
func Diff(prev, next Node) []Patch {
	d := differ{}
	d.diff(prev, next)
	return d.patches
}

// differ holds the shared index cursor. The cursor advances by exactly one
// per node of prev, whether or not the node produced a patch.
type differ struct {
	patches []Patch
	cursor  int
}

func (d *differ) emit(p Patch) {
	d.patches = append(d.patches, p)
}

// skip advances the cursor past a subtree of prev that is not visited.
func (d *differ) skip(n Node) {
	d.cursor += Size(n)
}

// diff recursively compares nodes and appends patches.
func (d *differ) diff(prev, next Node) {
	if isNil(prev) {
		return
	}
	idx := d.cursor

	// A shared subtree is unchanged by construction
	if prev == next {
		d.skip(prev)
		return
	}

	// Different kind or tag - replace without recursing
	if isNil(next) || !sameShape(prev, next) {
		if !isNil(next) {
			d.emit(ReplacePatch(idx, next))
		}
		d.skip(prev)
		return
	}

	switch p := prev.(type) {
	case *TextNode:
		d.cursor++
		if n := next.(*TextNode); p.Text != n.Text {
			d.emit(ChangeTextPatch(idx, n.Text))
		}
	case *ElementNode:
		d.cursor++
		d.diffElement(idx, p, next.(*ElementNode))
	}
}

// diffElement compares two elements with the same tag.
func (d *differ) diffElement(idx int, prev, next *ElementNode) {
	d.diffAttributes(idx, prev, next)

	// Children are matched by position only
	common := len(prev.Children)
	if len(next.Children) < common {
		common = len(next.Children)
	}
	for i := 0; i < common; i++ {
		d.diff(prev.Children[i], next.Children[i])
	}
	for _, gone := range prev.Children[common:] {
		d.skip(gone)
	}

	switch {
	case len(next.Children) > len(prev.Children):
		d.emit(AppendChildrenPatch(idx, next.Children[common:]...))
	case len(next.Children) < len(prev.Children):
		d.emit(TruncateChildrenPatch(idx, common))
	}
}

// diffAttributes compares merged attribute sets.
//
// Plain attributes produce AddAttributes for new or changed values and
// RemoveAttributes for names that disappeared. Listeners are never changed
// in place: a listener present on both sides is removed and added again,
// since callbacks cannot be compared. Removals of listeners are emitted
// before additions so the re-added listener survives.
func (d *differ) diffAttributes(idx int, prev, next *ElementNode) {
	if len(prev.Attrs) == 0 && len(next.Attrs) == 0 {
		return
	}
	oldAttrs := Merge(prev.Attrs)
	newAttrs := Merge(next.Attrs)

	oldByName := make(map[string]Attribute, len(oldAttrs))
	for _, a := range oldAttrs {
		oldByName[a.Name] = a
	}
	newByName := make(map[string]Attribute, len(newAttrs))
	for _, a := range newAttrs {
		newByName[a.Name] = a
	}

	var (
		addPlain     []Attribute
		removePlain  []string
		addListen    []Attribute
		removeListen []string
	)

	for _, o := range oldAttrs {
		n, ok := newByName[o.Name]
		switch {
		case o.IsListener():
			// Gone, replaced by a plain value, or re-added below
			removeListen = append(removeListen, o.Name)
		case !ok || n.IsListener():
			removePlain = append(removePlain, o.Name)
		}
	}

	for _, n := range newAttrs {
		o, ok := oldByName[n.Name]
		if n.IsListener() {
			addListen = append(addListen, n)
			continue
		}
		if !ok || o.IsListener() || !valuesEqual(o.Value, n.Value) {
			addPlain = append(addPlain, n)
		}
	}

	if len(addPlain) > 0 {
		d.emit(AddAttributesPatch(idx, addPlain...))
	}
	if len(removePlain) > 0 {
		d.emit(RemoveAttributesPatch(idx, removePlain...))
	}
	if len(removeListen) > 0 {
		d.emit(RemoveEventListenerPatch(idx, removeListen...))
	}
	if len(addListen) > 0 {
		d.emit(AddEventListenerPatch(idx, addListen...))
	}
}
