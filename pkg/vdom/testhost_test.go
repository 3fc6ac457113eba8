package vdom

import "sort"

// memHost is a minimal live tree used to exercise Apply without a real
// rendering surface.
type memHost struct {
	root *memNode
}

type memNode struct {
	host      *memHost
	parent    *memNode
	kind      Kind
	tag       string
	namespace string
	text      string
	attrs     map[string]any
	listeners map[string][]Callback
	children  []*memNode
}

func newMemHost(n Node) *memHost {
	h := &memHost{}
	h.root = h.build(n, nil)
	return h
}

func (h *memHost) Root() HostNode { return h.root }

func (h *memHost) build(n Node, parent *memNode) *memNode {
	switch v := n.(type) {
	case *TextNode:
		return &memNode{host: h, parent: parent, kind: KindText, text: v.Text}
	case *ElementNode:
		m := &memNode{
			host:      h,
			parent:    parent,
			kind:      KindElement,
			tag:       v.Tag,
			namespace: v.Namespace,
			attrs:     map[string]any{},
			listeners: map[string][]Callback{},
		}
		for _, a := range Merge(v.Attrs) {
			if a.IsListener() {
				m.listeners[a.Name] = a.Callbacks
			} else {
				m.attrs[a.Name] = a.Value
			}
		}
		for _, c := range v.Children {
			m.children = append(m.children, h.build(c, m))
		}
		return m
	}
	return nil
}

// snapshot converts the live tree back into a virtual tree.
func (m *memNode) snapshot() Node {
	if m.kind == KindText {
		return Text(m.text)
	}
	var attrs []Attribute
	names := make([]string, 0, len(m.attrs))
	for name := range m.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		attrs = append(attrs, Attr(name, m.attrs[name]))
	}
	for name, cbs := range m.listeners {
		attrs = append(attrs, On(name, cbs...))
	}
	children := make([]Node, len(m.children))
	for i, c := range m.children {
		children[i] = c.snapshot()
	}
	return ElementNS(m.namespace, m.tag, attrs, children...)
}

func (m *memNode) Kind() Kind { return m.kind }

func (m *memNode) ChildNodes() []HostNode {
	out := make([]HostNode, len(m.children))
	for i, c := range m.children {
		out[i] = c
	}
	return out
}

func (m *memNode) AppendChildren(nodes []Node) error {
	for _, n := range nodes {
		m.children = append(m.children, m.host.build(n, m))
	}
	return nil
}

func (m *memNode) TruncateChildren(keep int) error {
	m.children = m.children[:keep]
	return nil
}

func (m *memNode) ReplaceWith(n Node) error {
	repl := m.host.build(n, m.parent)
	if m.parent == nil {
		m.host.root = repl
		return nil
	}
	for i, c := range m.parent.children {
		if c == m {
			m.parent.children[i] = repl
			return nil
		}
	}
	return ErrShapeMismatch
}

func (m *memNode) SetAttributes(attrs []Attribute) error {
	for _, a := range attrs {
		m.attrs[a.Name] = a.Value
	}
	return nil
}

func (m *memNode) RemoveAttributes(names []string) error {
	for _, name := range names {
		delete(m.attrs, name)
	}
	return nil
}

func (m *memNode) AddEventListeners(attrs []Attribute) error {
	for _, a := range attrs {
		m.listeners[a.Name] = append(m.listeners[a.Name], a.Callbacks...)
	}
	return nil
}

func (m *memNode) RemoveEventListeners(names []string) error {
	for _, name := range names {
		delete(m.listeners, name)
	}
	return nil
}

func (m *memNode) SetText(text string) error {
	m.text = text
	return nil
}
