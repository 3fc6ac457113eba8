package el

import (
	"fmt"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// New creates an element with the given tag from mixed arguments.
// Accepted argument types are vdom.Attribute, []vdom.Attribute, vdom.Node,
// []vdom.Node, string (a text child) and nil. Any other type panics.
func New(tag string, args ...any) *vdom.ElementNode {
	return build("", tag, args)
}

// NewNS is New for an element in namespace ns.
func NewNS(ns, tag string, args ...any) *vdom.ElementNode {
	return build(ns, tag, args)
}

func build(ns, tag string, args []any) *vdom.ElementNode {
	var attrs []vdom.Attribute
	var children []vdom.Node

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case vdom.Attribute:
			if v.Name != "" {
				attrs = append(attrs, v)
			}
		case []vdom.Attribute:
			for _, a := range v {
				if a.Name != "" {
					attrs = append(attrs, a)
				}
			}
		case *vdom.ElementNode:
			if v != nil {
				children = append(children, v)
			}
		case *vdom.TextNode:
			if v != nil {
				children = append(children, v)
			}
		case []vdom.Node:
			for _, c := range v {
				if c != nil {
					children = append(children, c)
				}
			}
		case []*vdom.ElementNode:
			for _, c := range v {
				if c != nil {
					children = append(children, c)
				}
			}
		case string:
			children = append(children, vdom.Text(v))
		default:
			panic(fmt.Sprintf("el: unsupported argument %T for <%s>", arg, tag))
		}
	}
	return vdom.ElementNS(ns, tag, attrs, children...)
}
