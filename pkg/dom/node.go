package dom

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// node adapts an html.Node to vdom.HostNode.
type node struct {
	doc *Document
	n   *html.Node
}

func (h *node) Kind() vdom.Kind {
	if h.n.Type == html.TextNode {
		return vdom.KindText
	}
	return vdom.KindElement
}

func (h *node) ChildNodes() []vdom.HostNode {
	var out []vdom.HostNode
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		if counted(c) {
			out = append(out, &node{doc: h.doc, n: c})
		}
	}
	return out
}

func (h *node) AppendChildren(nodes []vdom.Node) error {
	for _, v := range nodes {
		if c := h.doc.build(v); c != nil {
			h.n.AppendChild(c)
		}
	}
	return nil
}

func (h *node) TruncateChildren(keep int) error {
	kept := 0
	for c := h.n.FirstChild; c != nil; {
		next := c.NextSibling
		if counted(c) {
			if kept >= keep {
				h.n.RemoveChild(c)
				h.doc.forget(c)
			} else {
				kept++
			}
		}
		c = next
	}
	return nil
}

func (h *node) ReplaceWith(v vdom.Node) error {
	parent := h.n.Parent
	if parent == nil {
		return vdom.ErrShapeMismatch
	}
	repl := h.doc.build(v)
	if repl == nil {
		return vdom.ErrShapeMismatch
	}
	parent.InsertBefore(repl, h.n)
	parent.RemoveChild(h.n)
	h.doc.forget(h.n)
	h.n = repl
	return nil
}

func (h *node) SetAttributes(attrs []vdom.Attribute) error {
	for _, a := range attrs {
		h.doc.setAttr(h.n, a)
	}
	return nil
}

func (h *node) RemoveAttributes(names []string) error {
	for _, name := range names {
		h.doc.removeAttr(h.n, name)
	}
	return nil
}

func (h *node) AddEventListeners(attrs []vdom.Attribute) error {
	for _, a := range attrs {
		h.doc.addListener(h.n, a)
	}
	return nil
}

func (h *node) RemoveEventListeners(names []string) error {
	for _, name := range names {
		delete(h.doc.listeners[h.n], name)
	}
	return nil
}

func (h *node) SetText(text string) error {
	h.n.Data = text
	return nil
}
