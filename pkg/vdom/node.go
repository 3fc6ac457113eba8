package vdom

import "fmt"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <div>, <button>, etc.
	KindText                // Plain text node
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a virtual DOM node. The set of implementations is closed:
// *ElementNode and *TextNode.
//
// Nodes are immutable once constructed. Updating a view means building a new
// tree; unchanged subtrees may be shared between the old and new tree.
type Node interface {
	Kind() Kind
	isNode()
}

// ElementNode is an element with a tag, attributes and ordered children.
type ElementNode struct {
	Tag       string      // Element tag name (e.g., "div")
	Namespace string      // Empty for HTML, e.g. the SVG namespace URI otherwise
	Attrs     []Attribute // Raw attributes, possibly with duplicate names
	Children  []Node      // Child nodes in document order
}

// TextNode is a text leaf.
type TextNode struct {
	Text string
}

// Kind implements Node.
func (*ElementNode) Kind() Kind { return KindElement }

// Kind implements Node.
func (*TextNode) Kind() Kind { return KindText }

func (*ElementNode) isNode() {}
func (*TextNode) isNode()    {}

// SVGNamespace is the namespace URI used for SVG elements.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Element creates an element node. The attribute and child slices are
// copied so later changes by the caller cannot leak into the tree.
// Nil children are skipped.
func Element(tag string, attrs []Attribute, children ...Node) *ElementNode {
	return ElementNS("", tag, attrs, children...)
}

// ElementNS creates an element node in the given namespace.
func ElementNS(namespace, tag string, attrs []Attribute, children ...Node) *ElementNode {
	el := &ElementNode{
		Tag:       tag,
		Namespace: namespace,
	}
	if len(attrs) > 0 {
		el.Attrs = append([]Attribute(nil), attrs...)
	}
	el.Children = appendNodes(nil, children)
	return el
}

// Text creates a text node.
func Text(content string) *TextNode {
	return &TextNode{Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *TextNode {
	return Text(fmt.Sprintf(format, args...))
}

// WithChildren returns a copy of el with extra appended after its existing
// children. el itself is left untouched.
func WithChildren(el *ElementNode, extra ...Node) *ElementNode {
	out := &ElementNode{
		Tag:       el.Tag,
		Namespace: el.Namespace,
		Attrs:     el.Attrs,
	}
	out.Children = appendNodes(append([]Node(nil), el.Children...), extra)
	return out
}

func appendNodes(dst []Node, src []Node) []Node {
	for _, n := range src {
		if isNil(n) {
			continue
		}
		dst = append(dst, n)
	}
	return dst
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *ElementNode:
		return v == nil
	case *TextNode:
		return v == nil
	}
	return false
}

// sameShape reports whether two nodes can be diffed in place: both text, or
// both elements with the same tag and namespace.
func sameShape(a, b Node) bool {
	switch av := a.(type) {
	case *TextNode:
		_, ok := b.(*TextNode)
		return ok
	case *ElementNode:
		bv, ok := b.(*ElementNode)
		return ok && av.Tag == bv.Tag && av.Namespace == bv.Namespace
	}
	return false
}

// Equal reports whether two trees are structurally equal. Attributes are
// compared after merging. Listener attributes are equal when present under
// the same name; callbacks themselves are not comparable.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if !sameShape(a, b) {
		return false
	}
	switch av := a.(type) {
	case *TextNode:
		return av.Text == b.(*TextNode).Text
	case *ElementNode:
		bv := b.(*ElementNode)
		if !attrsEqual(Merge(av.Attrs), Merge(bv.Attrs)) {
			return false
		}
		if len(av.Children) != len(bv.Children) {
			return false
		}
		for i := range av.Children {
			if !Equal(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func attrsEqual(a, b []Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	byName := make(map[string]Attribute, len(b))
	for _, attr := range b {
		byName[attr.Name] = attr
	}
	for _, x := range a {
		y, ok := byName[x.Name]
		if !ok || x.Kind != y.Kind {
			return false
		}
		if x.Kind == AttrPlain && !valuesEqual(x.Value, y.Value) {
			return false
		}
	}
	return true
}
