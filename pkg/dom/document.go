package dom

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huandu/go-clone"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// Document is a live tree backed by html.Node values.
type Document struct {
	container *html.Node
	listeners map[*html.Node]map[string][]vdom.Callback
	props     map[*html.Node]map[string]any
}

// New materializes a live document that mirrors root.
func New(root vdom.Node) *Document {
	d := &Document{
		container: &html.Node{Type: html.DocumentNode},
		listeners: make(map[*html.Node]map[string][]vdom.Callback),
		props:     make(map[*html.Node]map[string]any),
	}
	if n := d.build(root); n != nil {
		d.container.AppendChild(n)
	}
	return d
}

// Root implements vdom.Host.
func (d *Document) Root() vdom.HostNode {
	n := d.rootNode()
	if n == nil {
		return nil
	}
	return &node{doc: d, n: n}
}

// HTMLNode returns the html.Node at depth-first index 0.
func (d *Document) HTMLNode() *html.Node {
	return d.rootNode()
}

func (d *Document) rootNode() *html.Node {
	for c := d.container.FirstChild; c != nil; c = c.NextSibling {
		if counted(c) {
			return c
		}
	}
	return nil
}

// Apply implements vdom.Applier.
func (d *Document) Apply(patches []vdom.Patch) error {
	return vdom.Apply(d, patches)
}

// Len returns the number of nodes in the live tree.
func (d *Document) Len() int {
	count := 0
	d.walk(func(int, *html.Node) bool {
		count++
		return true
	})
	return count
}

// Lookup returns the html.Node with the given depth-first index.
func (d *Document) Lookup(index int) (*html.Node, bool) {
	var found *html.Node
	d.walk(func(i int, n *html.Node) bool {
		if i == index {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Dispatch delivers an event to the listeners registered under ev.Type on
// the node at index and returns the messages they produced.
func (d *Document) Dispatch(index int, ev vdom.Event) ([]any, error) {
	cbs, err := d.Callbacks(index, ev.Type)
	if err != nil {
		return nil, err
	}
	ev.Target = index
	return vdom.Dispatch(cbs, ev), nil
}

// Callbacks returns a copy of the callbacks registered for event on the
// node at index.
func (d *Document) Callbacks(index int, event string) ([]vdom.Callback, error) {
	n, ok := d.Lookup(index)
	if !ok {
		return nil, fmt.Errorf("dispatch %q at index %d: %w", event, index, vdom.ErrIndexNotFound)
	}
	return slices.Clone(d.listeners[n][event]), nil
}

// Listeners returns the sorted event names with listeners on the node at
// index.
func (d *Document) Listeners(index int) []string {
	n, ok := d.Lookup(index)
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(d.listeners[n]))
}

// Snapshot converts the live tree back into a virtual tree. Typed attribute
// values and listeners recorded by the document are restored.
func (d *Document) Snapshot() vdom.Node {
	root := d.rootNode()
	if root == nil {
		return nil
	}
	return d.virtual(root)
}

// Render writes the live tree as HTML.
func (d *Document) Render(w io.Writer) error {
	root := d.rootNode()
	if root == nil {
		return nil
	}
	return html.Render(w, root)
}

// RenderPretty writes the live tree as indented HTML.
func (d *Document) RenderPretty(w io.Writer) error {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return err
	}
	_, err := io.WriteString(w, gohtml.Format(buf.String()))
	return err
}

// String returns the live tree as HTML.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// walk visits counted nodes in pre-order.
func (d *Document) walk(fn func(int, *html.Node) bool) {
	root := d.rootNode()
	if root == nil {
		return
	}
	idx := 0
	var visit func(n *html.Node) bool
	visit = func(n *html.Node) bool {
		if !fn(idx, n) {
			return false
		}
		idx++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if counted(c) && !visit(c) {
				return false
			}
		}
		return true
	}
	visit(root)
}

// build creates the html.Node subtree for a virtual node and records its
// listeners and typed values.
func (d *Document) build(v vdom.Node) *html.Node {
	switch v := v.(type) {
	case *vdom.TextNode:
		if v == nil {
			return nil
		}
		return &html.Node{Type: html.TextNode, Data: v.Text}
	case *vdom.ElementNode:
		if v == nil {
			return nil
		}
		n := &html.Node{
			Type:      html.ElementNode,
			Data:      v.Tag,
			Namespace: shortNamespace(v.Namespace),
		}
		if v.Namespace == "" {
			n.DataAtom = atom.Lookup([]byte(v.Tag))
		}
		for _, a := range vdom.Merge(v.Attrs) {
			if a.IsListener() {
				d.addListener(n, a)
			} else {
				d.setAttr(n, a)
			}
		}
		for _, child := range v.Children {
			if c := d.build(child); c != nil {
				n.AppendChild(c)
			}
		}
		return n
	}
	return nil
}

func (d *Document) setAttr(n *html.Node, a vdom.Attribute) {
	if d.props[n] == nil {
		d.props[n] = make(map[string]any)
	}
	d.props[n][a.Name] = clone.Clone(a.Value)

	val, present := vdom.FormatValue(a.Name, a.Value)
	for i := range n.Attr {
		if n.Attr[i].Key == a.Name {
			if present {
				n.Attr[i].Val = val
			} else {
				n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			}
			return
		}
	}
	if present {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Name, Val: val})
	}
}

func (d *Document) removeAttr(n *html.Node, name string) {
	delete(d.props[n], name)
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func (d *Document) addListener(n *html.Node, a vdom.Attribute) {
	if d.listeners[n] == nil {
		d.listeners[n] = make(map[string][]vdom.Callback)
	}
	d.listeners[n][a.Name] = append(d.listeners[n][a.Name], a.Callbacks...)
}

// forget drops side-table entries for a detached subtree.
func (d *Document) forget(n *html.Node) {
	delete(d.listeners, n)
	delete(d.props, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

// virtual converts a live subtree into a virtual one.
func (d *Document) virtual(n *html.Node) vdom.Node {
	if n.Type == html.TextNode {
		return vdom.Text(n.Data)
	}
	props := d.props[n]
	attrs := make([]vdom.Attribute, 0, len(n.Attr)+len(props))
	seen := make(map[string]bool, len(n.Attr))
	for _, a := range n.Attr {
		seen[a.Key] = true
		if v, ok := props[a.Key]; ok {
			attrs = append(attrs, vdom.Attr(a.Key, v))
			continue
		}
		attrs = append(attrs, vdom.Attr(a.Key, a.Val))
	}
	// Typed values that render as absent, such as disabled=false
	for _, name := range slices.Sorted(maps.Keys(props)) {
		if !seen[name] {
			attrs = append(attrs, vdom.Attr(name, props[name]))
		}
	}
	listeners := d.listeners[n]
	for _, name := range slices.Sorted(maps.Keys(listeners)) {
		attrs = append(attrs, vdom.On(name, listeners[name]...))
	}

	var children []vdom.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if counted(c) {
			children = append(children, d.virtual(c))
		}
	}
	return vdom.ElementNS(longNamespace(n.Namespace), n.Data, attrs, children...)
}

// counted reports whether n takes part in depth-first indexing. Comments
// and doctypes are skipped so parsed documents index like virtual trees.
func counted(n *html.Node) bool {
	return n.Type == html.ElementNode || n.Type == html.TextNode
}

// MathMLNamespace is the namespace URI used for MathML elements.
const MathMLNamespace = "http://www.w3.org/1998/Math/MathML"

// shortNamespace maps a namespace URI to the short form html.Node uses.
func shortNamespace(ns string) string {
	switch ns {
	case vdom.SVGNamespace:
		return "svg"
	case MathMLNamespace:
		return "math"
	}
	return ns
}

func longNamespace(ns string) string {
	switch ns {
	case "svg":
		return vdom.SVGNamespace
	case "math":
		return MathMLNamespace
	}
	return ns
}
