package protocol

import (
	"errors"
	"testing"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

func roundTripNode(t *testing.T, n vdom.Node, resolve CallbackResolver) vdom.Node {
	t.Helper()
	e := NewEncoder()
	EncodeNode(e, n)
	d := NewDecoder(e.Bytes())
	got, err := DecodeNode(d, resolve)
	if err != nil {
		t.Fatalf("DecodeNode() error = %v", err)
	}
	if err := d.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	return got
}

func TestNodeRoundTrip(t *testing.T) {
	noop := func(vdom.Event) any { return nil }
	tests := []struct {
		name string
		node vdom.Node
	}{
		{"text", vdom.Text("hello")},
		{"empty element", vdom.Element("div", nil)},
		{"nested", vdom.Element("ul", []vdom.Attribute{vdom.Attr("class", "list")},
			vdom.Element("li", nil, vdom.Text("a")),
			vdom.Element("li", nil, vdom.Text("b")),
		)},
		{"typed values", vdom.Element("input", []vdom.Attribute{
			vdom.Attr("checked", false),
			vdom.Attr("maxlength", 12),
			vdom.Attr("data-big", int64(1)<<40),
			vdom.Attr("step", 0.25),
			vdom.Attr("data-raw", []byte("xyz")),
			vdom.Attr("data-none", nil),
		})},
		{"listeners", vdom.Element("button", []vdom.Attribute{vdom.On("click", noop), vdom.Attr("type", "submit")})},
		{"namespace", vdom.ElementNS(vdom.SVGNamespace, "svg", nil, vdom.ElementNS(vdom.SVGNamespace, "path", nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roundTripNode(t, tt.node, nil); !vdom.Equal(got, tt.node) {
				t.Errorf("round trip = %#v, want %#v", got, tt.node)
			}
		})
	}
}

func TestNodeNil(t *testing.T) {
	if got := roundTripNode(t, nil, nil); got != nil {
		t.Errorf("round trip of nil = %#v, want nil", got)
	}
}

type point struct{ x, y int }

func (p point) String() string { return "pt" }

func TestNodeUnknownValueTypesTravelAsStrings(t *testing.T) {
	got := roundTripNode(t, vdom.Element("div", []vdom.Attribute{vdom.Attr("data-p", point{1, 2})}), nil)
	a, ok := vdom.Lookup(got.(*vdom.ElementNode).Attrs, "data-p")
	if !ok || a.Value != "pt" {
		t.Errorf("data-p = %#v, want \"pt\"", a.Value)
	}
}

func TestNodeListenersResolved(t *testing.T) {
	var fired []string
	resolve := func(event string) vdom.Callback {
		return func(ev vdom.Event) any {
			fired = append(fired, event)
			return event
		}
	}

	n := vdom.Element("input", []vdom.Attribute{
		vdom.On("input", func(vdom.Event) any { return "server side" }),
		vdom.On("blur", nil),
	})
	got := roundTripNode(t, n, resolve).(*vdom.ElementNode)

	for _, a := range got.Attrs {
		if !a.IsListener() || len(a.Callbacks) != 1 {
			t.Fatalf("attribute %v, want one resolved callback", a)
		}
		a.Callbacks[0](vdom.Event{Type: a.Name})
	}
	if len(fired) != 2 || fired[0] != "input" || fired[1] != "blur" {
		t.Errorf("fired = %v, want [input blur]", fired)
	}
}

func TestNodeNilResolverAttachesNoop(t *testing.T) {
	n := vdom.Element("a", []vdom.Attribute{vdom.On("click", func(vdom.Event) any { return 1 })})
	got := roundTripNode(t, n, nil).(*vdom.ElementNode)
	if msgs := vdom.Dispatch(got.Attrs[0].Callbacks, vdom.Event{Type: "click"}); len(msgs) != 0 {
		t.Errorf("Dispatch() = %v, want no messages", msgs)
	}
}

func TestNodeDepthLimit(t *testing.T) {
	var n vdom.Node = vdom.Text("leaf")
	for i := 0; i <= MaxNodeDepth; i++ {
		n = vdom.Element("div", nil, n)
	}
	e := NewEncoder()
	EncodeNode(e, n)
	if _, err := DecodeNode(NewDecoder(e.Bytes()), nil); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("DecodeNode() error = %v, want ErrMaxDepthExceeded", err)
	}
}

func TestNodeInvalidTags(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"node tag", []byte{0x07}},
		{"attribute kind", []byte{tagElement, 0x01, 'p', 0x00, 0x01, 0x09, 0x01, 'x'}},
		{"value tag", []byte{tagElement, 0x01, 'p', 0x00, 0x01, 0x00, 0x01, 'x', 0x42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeNode(NewDecoder(tt.data), nil); !errors.Is(err, ErrInvalidTag) {
				t.Errorf("DecodeNode() error = %v, want ErrInvalidTag", err)
			}
		})
	}
}
