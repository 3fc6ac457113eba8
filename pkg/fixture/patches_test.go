package fixture

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

func TestMarshalPatches(t *testing.T) {
	patches := []vdom.Patch{
		vdom.ChangeTextPatch(3, "x"),
		vdom.TruncateChildrenPatch(0, 0),
	}
	data, err := MarshalPatches(patches)
	if err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "op": "ChangeText",
    "index": 3,
    "text": "x"
  },
  {
    "op": "TruncateChildren",
    "index": 0,
    "keep": 0
  }
]`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("MarshalPatches() mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchRecordsRoundTrip(t *testing.T) {
	prev := vdom.Element("div", []vdom.Attribute{vdom.Attr("id", "a"), vdom.On("click", nil)},
		vdom.Element("p", nil, vdom.Text("old")),
		vdom.Element("span", nil),
	)
	next := vdom.Element("div", []vdom.Attribute{vdom.Attr("title", "t"), vdom.On("input", nil)},
		vdom.Element("p", nil, vdom.Text("new")),
		vdom.Element("em", nil),
		vdom.Text("tail"),
	)
	patches := vdom.Diff(prev, next)

	data, err := MarshalPatches(patches)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalPatches(data, nil)
	if err != nil {
		t.Fatalf("UnmarshalPatches() error = %v", err)
	}

	str := func(ps []vdom.Patch) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.String()
		}
		return out
	}
	if diff := cmp.Diff(str(patches), str(got)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalPatchesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown op", `[{"op":"Move","index":1}]`, `record 0: fixture: unknown patch op "Move"`},
		{"replace without node", `[{"op":"Replace","index":1}]`, "record 0: fixture: Replace record without node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalPatches([]byte(tt.data), nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
