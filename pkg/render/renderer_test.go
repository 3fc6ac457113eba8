package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

func noop(vdom.Event) any { return nil }

func TestRenderToString(t *testing.T) {
	tests := []struct {
		name string
		node vdom.Node
		want string
	}{
		{
			name: "text",
			node: vdom.Text("Hello, World!"),
			want: "Hello, World!",
		},
		{
			name: "text escaping",
			node: vdom.Text("<script>alert('xss')</script>"),
			want: "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;",
		},
		{
			name: "nested elements",
			node: vdom.Element("div", []vdom.Attribute{vdom.Attr("class", "container")},
				vdom.Element("h1", nil, vdom.Text("Title")),
				vdom.Element("p", nil, vdom.Text("Content")),
			),
			want: `<div class="container"><h1>Title</h1><p>Content</p></div>`,
		},
		{
			name: "attribute order and merge",
			node: vdom.Element("a", []vdom.Attribute{
				vdom.Attr("href", "/a"),
				vdom.Attr("title", "x"),
				vdom.Attr("href", "/b"),
			}),
			want: `<a href="/b" title="x"></a>`,
		},
		{
			name: "attribute escaping",
			node: vdom.Element("div", []vdom.Attribute{vdom.Attr("title", "a \"b\"\nc")}),
			want: `<div title="a &quot;b&quot;&#10;c"></div>`,
		},
		{
			name: "typed values",
			node: vdom.Element("input", []vdom.Attribute{
				vdom.Attr("maxlength", 10),
				vdom.Attr("step", 0.5),
				vdom.Attr("value", nil),
			}),
			want: `<input maxlength="10" step="0.5">`,
		},
		{
			name: "boolean attributes",
			node: vdom.Element("input", []vdom.Attribute{
				vdom.Attr("type", "checkbox"),
				vdom.Attr("checked", true),
				vdom.Attr("disabled", false),
			}),
			want: `<input type="checkbox" checked>`,
		},
		{
			name: "void elements",
			node: vdom.Element("p", nil, vdom.Text("a"), vdom.Element("br", nil), vdom.Text("b")),
			want: `<p>a<br>b</p>`,
		},
		{
			name: "listeners are not attributes",
			node: vdom.Element("button", []vdom.Attribute{vdom.On("click", noop)}, vdom.Text("Go")),
			want: `<button>Go</button>`,
		},
		{
			name: "svg namespace declared once",
			node: vdom.ElementNS(vdom.SVGNamespace, "svg", []vdom.Attribute{vdom.Attr("width", 10)},
				vdom.ElementNS(vdom.SVGNamespace, "circle", []vdom.Attribute{vdom.Attr("r", 4)}),
			),
			want: `<svg xmlns="http://www.w3.org/2000/svg" width="10"><circle r="4"></circle></svg>`,
		},
		{
			name: "nil",
			node: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRenderer(RendererConfig{}).RenderToString(tt.node)
			if err != nil {
				t.Fatalf("RenderToString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderIndexAttr(t *testing.T) {
	node := vdom.Element("div", nil,
		vdom.Element("p", nil, vdom.Text("a")),
		vdom.Text("b"),
		vdom.Element("button", []vdom.Attribute{vdom.On("click", noop), vdom.On("focus", noop)}),
	)

	r := NewRenderer(RendererConfig{IndexAttr: "data-pw", ListenerMarkers: true})
	got, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}

	want := `<div data-pw="0"><p data-pw="1">a</p>b<button data-pw="4" data-on-click="true" data-on-focus="true"></button></div>`
	if got != want {
		t.Errorf("RenderToString() =\n%s\nwant\n%s", got, want)
	}

	listeners := r.Listeners()
	if len(listeners) != 1 || strings.Join(listeners[4], ",") != "click,focus" {
		t.Errorf("Listeners() = %v, want map[4:[click focus]]", listeners)
	}
}

func TestRenderIndicesMatchNodeAt(t *testing.T) {
	node := vdom.Element("ul", nil,
		vdom.Element("li", nil, vdom.Text("one")),
		vdom.Element("li", []vdom.Attribute{vdom.On("click", noop)}, vdom.Text("two")),
	)

	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(node); err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	for idx := range r.Listeners() {
		n, ok := vdom.NodeAt(node, idx)
		if !ok {
			t.Fatalf("NodeAt(%d) not found", idx)
		}
		if _, ok := vdom.Lookup(n.(*vdom.ElementNode).Attrs, "click"); !ok {
			t.Errorf("node %d has no click listener", idx)
		}
	}
}

func TestRenderVoidElements(t *testing.T) {
	node := vdom.Element("div", nil,
		vdom.Element("input", []vdom.Attribute{vdom.Attr("type", "text")}),
		vdom.Element("p", nil, vdom.Text("after")),
	)
	got, err := NewRenderer(RendererConfig{IndexAttr: "data-i"}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	want := `<div data-i="0"><input data-i="1" type="text"><p data-i="2">after</p></div>`
	if got != want {
		t.Errorf("RenderToString() =\n%s\nwant\n%s", got, want)
	}
	if p, _ := vdom.NodeAt(node, 2); p.(*vdom.ElementNode).Tag != "p" {
		t.Errorf("NodeAt(2) = %v, want <p>", p)
	}
}

func TestRenderVoidElementWithChildren(t *testing.T) {
	node := vdom.Element("div", nil,
		vdom.Element("input", nil, vdom.Text("stray")),
		vdom.Element("p", nil),
	)
	_, err := NewRenderer(RendererConfig{IndexAttr: "data-i"}).RenderToString(node)
	if !errors.Is(err, ErrVoidChildren) {
		t.Fatalf("RenderToString() error = %v, want ErrVoidChildren", err)
	}
	if !strings.Contains(err.Error(), "<input> at index 1") {
		t.Errorf("error = %q, want it to name <input> at index 1", err)
	}
}

func TestRendererResetsBetweenRenders(t *testing.T) {
	r := NewRenderer(RendererConfig{IndexAttr: "data-pw"})
	first := vdom.Element("div", []vdom.Attribute{vdom.On("click", noop)})
	second := vdom.Element("span", nil)

	if _, err := r.RenderToString(first); err != nil {
		t.Fatal(err)
	}
	got, err := r.RenderToString(second)
	if err != nil {
		t.Fatal(err)
	}
	if got != `<span data-pw="0"></span>` {
		t.Errorf("second render = %q", got)
	}
	if len(r.Listeners()) != 0 {
		t.Errorf("Listeners() = %v, want empty after reset", r.Listeners())
	}
}

func TestRenderPretty(t *testing.T) {
	node := vdom.Element("div", nil,
		vdom.Element("p", nil, vdom.Text("a")),
		vdom.Element("span", nil, vdom.Element("b", nil, vdom.Text("x"))),
	)

	got, err := NewRenderer(RendererConfig{Pretty: true}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	want := "<div>\n  <p>a</p>\n  <span><b>x</b></span>\n</div>"
	if got != want {
		t.Errorf("RenderToString() =\n%s\nwant\n%s", got, want)
	}
}
