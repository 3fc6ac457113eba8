package vdom

import (
	"errors"
	"fmt"
	"testing"
)

func convergencePairs() map[string][2]Node {
	return map[string][2]Node{
		"text change": {Text("a"), Text("b")},
		"root replace": {
			Element("div", nil, Text("a")),
			Element("section", []Attribute{Attr("id", "s")}, Text("b")),
		},
		"prepend": {
			Element("ul", nil, texts("a", "b", "c")...),
			Element("ul", nil, texts("x", "a", "b", "c")...),
		},
		"truncate": {
			Element("ul", nil, texts("a", "b", "c")...),
			Element("ul", nil, texts("a")...),
		},
		"empty to full": {
			Element("ul", nil),
			Element("ul", nil, Element("li", nil, Text("one")), Element("li", nil, Text("two"))),
		},
		"replace then later sibling": {
			Element("div", nil,
				Element("section", nil, Element("p", nil, Text("1")), Element("p", nil, Text("2"))),
				Element("p", []Attribute{Attr("class", "a")}, Text("t")),
			),
			Element("div", nil,
				Text("flat"),
				Element("p", []Attribute{Attr("class", "b")}, Text("u")),
			),
		},
		"nested truncate and append": {
			Element("div", nil,
				Element("ul", nil, Element("li", nil), Element("li", nil, Text("deep"))),
				Element("ol", nil, Element("li", nil)),
				Text("tail"),
			),
			Element("div", nil,
				Element("ul", nil, Element("li", []Attribute{Attr("x", "1")})),
				Element("ol", nil, Element("li", nil), Element("li", nil, Text("new"))),
				Text("tail2"),
				Text("extra"),
			),
		},
		"attributes and listeners": {
			Element("form", []Attribute{Attr("action", "/a"), Attr("method", "get"), On("submit", noop)},
				Element("input", []Attribute{Attr("value", "x"), On("input", noop)}),
			),
			Element("form", []Attribute{Attr("action", "/b"), On("reset", noop)},
				Element("input", []Attribute{Attr("value", "y"), Attr("input", "plain")}),
			),
		},
		"svg": {
			ElementNS(SVGNamespace, "svg", nil, ElementNS(SVGNamespace, "circle", []Attribute{Attr("r", 1)})),
			ElementNS(SVGNamespace, "svg", nil,
				ElementNS(SVGNamespace, "circle", []Attribute{Attr("r", 2)}),
				ElementNS(SVGNamespace, "line", nil),
			),
		},
	}
}

func TestApplyConverges(t *testing.T) {
	for name, pair := range convergencePairs() {
		t.Run(name, func(t *testing.T) {
			prev, next := pair[0], pair[1]
			host := newMemHost(prev)

			if err := Apply(host, Diff(prev, next)); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got := host.root.snapshot(); !Equal(got, next) {
				t.Errorf("live tree did not converge on the new view")
			}
		})
	}
}

func TestApplyConvergesOverSequence(t *testing.T) {
	views := make([]Node, 0, 12)
	for n := 0; n < 12; n++ {
		items := make([]Node, 0, n%5)
		for i := 0; i < n%5; i++ {
			items = append(items, Element("li", []Attribute{Attr("data-i", i)}, Textf("item %d/%d", i, n)))
		}
		views = append(views, Element("ul", []Attribute{Attr("data-n", n)}, items...))
	}

	host := newMemHost(views[0])
	for i := 1; i < len(views); i++ {
		if err := Apply(host, Diff(views[i-1], views[i])); err != nil {
			t.Fatalf("step %d: Apply() error = %v", i, err)
		}
		if !Equal(host.root.snapshot(), views[i]) {
			t.Fatalf("step %d: live tree diverged", i)
		}
	}
}

func TestApplyListenersStayAttached(t *testing.T) {
	clicked := 0
	cb := func(Event) any { clicked++; return nil }

	prev := Element("button", []Attribute{On("click", cb)})
	next := Element("button", []Attribute{On("click", cb)})
	host := newMemHost(prev)

	if err := Apply(host, Diff(prev, next)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	Dispatch(host.root.listeners["click"], Event{Type: "click"})
	if clicked != 1 {
		t.Errorf("clicked = %d, want 1 (listener attached exactly once)", clicked)
	}
}

func TestApplyEmpty(t *testing.T) {
	if err := Apply(newMemHost(Text("a")), nil); err != nil {
		t.Errorf("Apply(nil) error = %v", err)
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name    string
		tree    Node
		patches []Patch
		wantErr error
		wantIdx int
	}{
		{
			name:    "index beyond tree",
			tree:    Element("div", nil, Text("a")),
			patches: []Patch{ChangeTextPatch(1, "ok"), ChangeTextPatch(5, "x")},
			wantErr: ErrIndexNotFound,
			wantIdx: 5,
		},
		{
			name:    "negative index",
			tree:    Text("a"),
			patches: []Patch{ChangeTextPatch(-1, "x")},
			wantErr: ErrIndexNotFound,
			wantIdx: -1,
		},
		{
			name:    "listener in add attributes",
			tree:    Element("div", nil),
			patches: []Patch{AddAttributesPatch(0, On("click", noop))},
			wantErr: ErrAttributeKindMismatch,
		},
		{
			name:    "plain in add event listener",
			tree:    Element("div", nil),
			patches: []Patch{AddEventListenerPatch(0, Attr("class", "a"))},
			wantErr: ErrAttributeKindMismatch,
		},
		{
			name:    "text change on element",
			tree:    Element("div", nil),
			patches: []Patch{ChangeTextPatch(0, "x")},
			wantErr: ErrShapeMismatch,
		},
		{
			name:    "append on text",
			tree:    Text("a"),
			patches: []Patch{AppendChildrenPatch(0, Text("b"))},
			wantErr: ErrShapeMismatch,
		},
		{
			name:    "truncate beyond children",
			tree:    Element("ul", nil, Text("a")),
			patches: []Patch{TruncateChildrenPatch(0, 3)},
			wantErr: ErrShapeMismatch,
		},
		{
			name:    "replace with nil",
			tree:    Text("a"),
			patches: []Patch{ReplacePatch(0, nil)},
			wantErr: ErrShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Apply(newMemHost(tt.tree), tt.patches)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
			}
			var applyErr *ApplyError
			if !errors.As(err, &applyErr) {
				t.Fatalf("Apply() error %T is not *ApplyError", err)
			}
			if applyErr.Index != tt.wantIdx {
				t.Errorf("ApplyError.Index = %d, want %d", applyErr.Index, tt.wantIdx)
			}
		})
	}
}

func TestApplyIndexNotFoundMutatesNothing(t *testing.T) {
	host := newMemHost(Element("div", nil, Text("a")))

	err := Apply(host, []Patch{ChangeTextPatch(1, "changed"), ChangeTextPatch(9, "x")})
	if !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("Apply() error = %v, want ErrIndexNotFound", err)
	}
	if got := host.root.children[0].text; got != "a" {
		t.Errorf("text = %q, want a (no patch applied)", got)
	}
}

func TestApplyErrorMessage(t *testing.T) {
	err := &ApplyError{Index: 3, Op: PatchChangeText, Err: ErrShapeMismatch}
	want := fmt.Sprintf("apply ChangeText at index 3: %v", ErrShapeMismatch)
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
