package protocol

import (
	"errors"
	"testing"

	"github.com/vango-dev/patchwork/pkg/dom"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

func patchStrings(ps []vdom.Patch) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func TestPatchesRoundTrip(t *testing.T) {
	noop := func(vdom.Event) any { return nil }
	patches := []vdom.Patch{
		vdom.AppendChildrenPatch(0, vdom.Text("a"), vdom.Element("b", nil)),
		vdom.TruncateChildrenPatch(1, 2),
		vdom.ReplacePatch(3, vdom.Element("article", nil)),
		vdom.AddAttributesPatch(4, vdom.Attr("class", "x"), vdom.Attr("hidden", true)),
		vdom.RemoveAttributesPatch(5, "id", "title"),
		vdom.AddEventListenerPatch(6, vdom.On("click", noop)),
		vdom.RemoveEventListenerPatch(7, "click"),
		vdom.ChangeTextPatch(300, "text"),
	}

	data := EncodePatches(&PatchesFrame{Seq: 42, Patches: patches})
	got, err := DecodePatches(data, nil)
	if err != nil {
		t.Fatalf("DecodePatches() error = %v", err)
	}
	if got.Seq != 42 {
		t.Errorf("Seq = %d, want 42", got.Seq)
	}
	want := patchStrings(patches)
	have := patchStrings(got.Patches)
	if len(have) != len(want) {
		t.Fatalf("got %d patches, want %d", len(have), len(want))
	}
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("patch %d = %s, want %s", i, have[i], want[i])
		}
	}
}

func TestDecodedPatchesConverge(t *testing.T) {
	prev := vdom.Element("div", nil,
		vdom.Element("ul", nil, vdom.Element("li", nil, vdom.Text("1")), vdom.Element("li", nil, vdom.Text("2"))),
		vdom.Element("p", []vdom.Attribute{vdom.Attr("class", "a")}, vdom.Text("old")),
	)
	next := vdom.Element("div", []vdom.Attribute{vdom.Attr("id", "root")},
		vdom.Element("ol", nil, vdom.Element("li", nil, vdom.Text("1"))),
		vdom.Element("p", nil, vdom.Text("new")),
		vdom.Element("footer", nil),
	)

	data := EncodePatches(&PatchesFrame{Seq: 1, Patches: vdom.Diff(prev, next)})
	pf, err := DecodePatches(data, nil)
	if err != nil {
		t.Fatalf("DecodePatches() error = %v", err)
	}

	doc := dom.New(prev)
	if err := doc.Apply(pf.Patches); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !vdom.Equal(doc.Snapshot(), next) {
		t.Errorf("mirror = %s, want the new view", doc.String())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	root := vdom.Element("main", nil, vdom.Text("hi"))
	sf, err := DecodeSnapshot(EncodeSnapshot(&SnapshotFrame{Seq: 9, Root: root}), nil)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if sf.Seq != 9 || !vdom.Equal(sf.Root, root) {
		t.Errorf("DecodeSnapshot() = %d %#v", sf.Seq, sf.Root)
	}
}

func TestDecodePatchesErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"unknown op", []byte{0x01, 0x01, 0x09, 0x00}, ErrUnknownPatchOp},
		{"zero op", []byte{0x01, 0x01, 0x00, 0x00}, ErrUnknownPatchOp},
		{"trailing bytes", append(EncodePatches(&PatchesFrame{Seq: 1}), 0x00), ErrTrailingBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePatches(tt.data, nil); !errors.Is(err, tt.want) {
				t.Errorf("DecodePatches() error = %v, want %v", err, tt.want)
			}
		})
	}
}
