package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// PatchRecord is the JSON form of a patch:
//
//	{"op":"ChangeText","index":3,"text":"x"}
//
// Only the fields of the record's op are set.
type PatchRecord struct {
	Op     string      `json:"op"`
	Index  int         `json:"index"`
	Nodes  []Tree      `json:"nodes,omitempty"`
	Keep   *int        `json:"keep,omitempty"`
	Node   *Tree       `json:"node,omitempty"`
	Attrs  []AttrEntry `json:"attrs,omitempty"`
	Events []string    `json:"events,omitempty"`
	Names  []string    `json:"names,omitempty"`
	Text   *string     `json:"text,omitempty"`
}

// Record converts a patch into its record.
func Record(p vdom.Patch) PatchRecord {
	r := PatchRecord{Op: p.Op.String(), Index: p.Index}
	switch p.Op {
	case vdom.PatchAppendChildren:
		for _, n := range p.Nodes {
			r.Nodes = append(r.Nodes, FromNode(n))
		}
	case vdom.PatchTruncateChildren:
		keep := p.Keep
		r.Keep = &keep
	case vdom.PatchReplace:
		tree := FromNode(p.Node)
		r.Node = &tree
	case vdom.PatchAddAttributes:
		for _, a := range p.Attrs {
			r.Attrs = append(r.Attrs, AttrEntry{Name: a.Name, Value: a.Value})
		}
	case vdom.PatchAddEventListener:
		for _, a := range p.Attrs {
			r.Events = append(r.Events, a.Name)
		}
	case vdom.PatchRemoveAttributes, vdom.PatchRemoveEventListener:
		r.Names = append([]string(nil), p.Names...)
	case vdom.PatchChangeText:
		text := p.Text
		r.Text = &text
	}
	return r
}

// Patch converts a record back into a patch. Listeners get callbacks from
// listen, or the default when listen is nil.
func (r PatchRecord) Patch(listen Listener) (vdom.Patch, error) {
	op, ok := vdom.ParsePatchOp(r.Op)
	if !ok {
		return vdom.Patch{}, fmt.Errorf("fixture: unknown patch op %q", r.Op)
	}
	if listen == nil {
		listen = defaultListener
	}
	p := vdom.Patch{Op: op, Index: r.Index}
	switch op {
	case vdom.PatchAppendChildren:
		for _, s := range r.Nodes {
			n, err := s.Node(listen)
			if err != nil {
				return vdom.Patch{}, err
			}
			p.Nodes = append(p.Nodes, n)
		}
	case vdom.PatchTruncateChildren:
		if r.Keep != nil {
			p.Keep = *r.Keep
		}
	case vdom.PatchReplace:
		if r.Node == nil {
			return vdom.Patch{}, fmt.Errorf("fixture: %s record without node", r.Op)
		}
		n, err := r.Node.Node(listen)
		if err != nil {
			return vdom.Patch{}, err
		}
		p.Node = n
	case vdom.PatchAddAttributes:
		for _, a := range r.Attrs {
			p.Attrs = append(p.Attrs, vdom.Attr(a.Name, a.Value))
		}
	case vdom.PatchAddEventListener:
		for _, event := range r.Events {
			p.Attrs = append(p.Attrs, vdom.On(event, listen(event)))
		}
	case vdom.PatchRemoveAttributes, vdom.PatchRemoveEventListener:
		p.Names = r.Names
	case vdom.PatchChangeText:
		if r.Text != nil {
			p.Text = *r.Text
		}
	}
	return p, nil
}

// MarshalPatches encodes a patch list as an indented JSON array of records.
func MarshalPatches(patches []vdom.Patch) ([]byte, error) {
	records := make([]PatchRecord, 0, len(patches))
	for _, p := range patches {
		records = append(records, Record(p))
	}
	return json.MarshalIndent(records, "", "  ")
}

// UnmarshalPatches decodes a JSON array of records.
func UnmarshalPatches(data []byte, listen Listener) ([]vdom.Patch, error) {
	var records []PatchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	patches := make([]vdom.Patch, 0, len(records))
	for i, r := range records {
		p, err := r.Patch(listen)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		patches = append(patches, p)
	}
	return patches, nil
}
