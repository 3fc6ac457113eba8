package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// ErrVoidChildren is returned for a void element such as <input> that has
// children. HTML cannot represent them, and dropping them would shift the
// depth-first index of every later node.
var ErrVoidChildren = errors.New("render: void element has children")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Whitespace text is added between
	// block children, so pretty output must not be patched by index.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// IndexAttr, when set, names an attribute that receives each element's
	// depth-first index.
	IndexAttr string

	// ListenerMarkers adds a data-on-<event> attribute for every listener.
	ListenerMarkers bool
}

// Renderer renders virtual trees to HTML. A Renderer is not safe for
// concurrent use.
type Renderer struct {
	config    RendererConfig
	index     int
	listeners map[int][]string
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:    config,
		listeners: make(map[int][]string),
	}
}

// RenderToString renders a tree to an HTML string.
func (r *Renderer) RenderToString(node vdom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a tree to w. Indices restart at zero on every call.
func (r *Renderer) RenderToWriter(w io.Writer, node vdom.Node) error {
	r.Reset()
	return r.renderNode(w, node, "", 0)
}

// Listeners returns the event names bound on each element of the last
// rendered tree, keyed by depth-first index.
func (r *Renderer) Listeners() map[int][]string {
	return r.listeners
}

// Reset clears the index counter and listener table.
func (r *Renderer) Reset() {
	r.index = 0
	r.listeners = make(map[int][]string)
}

func (r *Renderer) renderNode(w io.Writer, node vdom.Node, parentNS string, depth int) error {
	switch n := node.(type) {
	case nil:
		return nil
	case *vdom.TextNode:
		if n == nil {
			return nil
		}
		r.index++
		_, err := io.WriteString(w, escapeHTML(n.Text))
		return err
	case *vdom.ElementNode:
		if n == nil {
			return nil
		}
		return r.renderElement(w, n, parentNS, depth)
	default:
		return fmt.Errorf("render: unknown node type %T", node)
	}
}

func (r *Renderer) renderElement(w io.Writer, el *vdom.ElementNode, parentNS string, depth int) error {
	void := isVoidElement(el.Tag, el.Namespace)
	if void && len(el.Children) > 0 {
		return fmt.Errorf("%w: <%s> at index %d", ErrVoidChildren, el.Tag, r.index)
	}

	idx := r.index
	r.index++

	if _, err := fmt.Fprintf(w, "<%s", el.Tag); err != nil {
		return err
	}
	if el.Namespace != "" && el.Namespace != parentNS {
		if _, err := fmt.Fprintf(w, ` xmlns="%s"`, escapeAttr(el.Namespace)); err != nil {
			return err
		}
	}
	if r.config.IndexAttr != "" {
		if _, err := fmt.Fprintf(w, ` %s="%d"`, r.config.IndexAttr, idx); err != nil {
			return err
		}
	}
	if err := r.renderAttributes(w, el, idx); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if void {
		return nil
	}

	block := r.config.Pretty && hasBlockChildren(el)
	for _, child := range el.Children {
		if block {
			r.writeIndent(w, depth+1)
		}
		if err := r.renderNode(w, child, el.Namespace, depth+1); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	_, err := fmt.Fprintf(w, "</%s>", el.Tag)
	return err
}

// renderAttributes writes plain attributes in first-appearance order and
// records listeners.
func (r *Renderer) renderAttributes(w io.Writer, el *vdom.ElementNode, idx int) error {
	var events []string
	for _, a := range vdom.Merge(el.Attrs) {
		if a.IsListener() {
			events = append(events, a.Name)
			continue
		}
		val, present := vdom.FormatValue(a.Name, a.Value)
		if !present {
			continue
		}
		if val == "" && vdom.IsBooleanAttr(a.Name) {
			if _, err := fmt.Fprintf(w, " %s", a.Name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, a.Name, escapeAttr(val)); err != nil {
			return err
		}
	}
	if len(events) == 0 {
		return nil
	}

	r.listeners[idx] = events
	if r.config.ListenerMarkers {
		sorted := append([]string(nil), events...)
		sort.Strings(sorted)
		for _, name := range sorted {
			if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, "\n")
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
