package protocol

import (
	"errors"
	"fmt"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// ErrUnknownPatchOp is returned when a patch carries an unknown op byte.
var ErrUnknownPatchOp = errors.New("protocol: unknown patch op")

// PatchesFrame is one diff cycle's patch list and its sequence number.
type PatchesFrame struct {
	Seq     uint64
	Patches []vdom.Patch
}

// EncodePatches encodes a patches frame payload.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame payload into e.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteInt(len(pf.Patches))
	for _, p := range pf.Patches {
		EncodePatch(e, p)
	}
}

// DecodePatches decodes a patches frame payload.
func DecodePatches(data []byte, resolve CallbackResolver) (*PatchesFrame, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	pf := &PatchesFrame{Seq: seq, Patches: make([]vdom.Patch, 0, count)}
	for i := 0; i < count; i++ {
		p, err := DecodePatch(d, resolve)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		pf.Patches = append(pf.Patches, p)
	}
	return pf, d.Finish()
}

// EncodePatch appends one patch to e: op byte, target index, then the
// op's payload.
func EncodePatch(e *Encoder, p vdom.Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteInt(p.Index)
	switch p.Op {
	case vdom.PatchAppendChildren:
		encodeNodes(e, p.Nodes)
	case vdom.PatchTruncateChildren:
		e.WriteInt(p.Keep)
	case vdom.PatchReplace:
		EncodeNode(e, p.Node)
	case vdom.PatchAddAttributes, vdom.PatchAddEventListener:
		encodeAttributes(e, p.Attrs)
	case vdom.PatchRemoveAttributes, vdom.PatchRemoveEventListener:
		e.WriteStrings(p.Names)
	case vdom.PatchChangeText:
		e.WriteString(p.Text)
	}
}

// DecodePatch reads one patch written by EncodePatch.
func DecodePatch(d *Decoder, resolve CallbackResolver) (vdom.Patch, error) {
	b, err := d.ReadByte()
	if err != nil {
		return vdom.Patch{}, err
	}
	p := vdom.Patch{Op: vdom.PatchOp(b)}
	if p.Index, err = d.ReadInt(); err != nil {
		return vdom.Patch{}, err
	}

	switch p.Op {
	case vdom.PatchAppendChildren:
		p.Nodes, err = decodeNodes(d, resolve)
	case vdom.PatchTruncateChildren:
		p.Keep, err = d.ReadInt()
	case vdom.PatchReplace:
		p.Node, err = DecodeNode(d, resolve)
	case vdom.PatchAddAttributes, vdom.PatchAddEventListener:
		p.Attrs, err = decodeAttributes(d, resolve)
	case vdom.PatchRemoveAttributes, vdom.PatchRemoveEventListener:
		p.Names, err = d.ReadStrings()
	case vdom.PatchChangeText:
		p.Text, err = d.ReadString()
	default:
		return vdom.Patch{}, fmt.Errorf("%w: 0x%02x", ErrUnknownPatchOp, b)
	}
	if err != nil {
		return vdom.Patch{}, err
	}
	return p, nil
}
