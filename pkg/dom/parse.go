package dom

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// ErrNoRoot is returned when parsed HTML contains no element or text node.
var ErrNoRoot = errors.New("dom: document has no root node")

// ParseOptions controls how parsed HTML maps onto a virtual tree.
type ParseOptions struct {
	// KeepWhitespace keeps text nodes that contain only whitespace.
	// Formatting whitespace between tags is dropped by default.
	KeepWhitespace bool
}

// ParseHTML parses an HTML fragment and returns its first root node as a
// virtual tree. All attribute values are strings.
func ParseHTML(r io.Reader, opts ParseOptions) (vdom.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if !counted(n) || (n.Type == html.TextNode && !opts.KeepWhitespace && isBlank(n.Data)) {
			continue
		}
		return FromHTML(n, opts), nil
	}
	return nil, ErrNoRoot
}

// FromHTML converts an html.Node subtree into a virtual tree.
func FromHTML(n *html.Node, opts ParseOptions) vdom.Node {
	if n.Type == html.TextNode {
		return vdom.Text(n.Data)
	}
	attrs := make([]vdom.Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		attrs = append(attrs, vdom.Attr(a.Key, a.Val))
	}
	var children []vdom.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !counted(c) {
			continue
		}
		if c.Type == html.TextNode && !opts.KeepWhitespace && isBlank(c.Data) {
			continue
		}
		children = append(children, FromHTML(c, opts))
	}
	return vdom.ElementNS(longNamespace(n.Namespace), n.Data, attrs, children...)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
