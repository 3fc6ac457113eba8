package protocol

import "github.com/vango-dev/patchwork/pkg/vdom"

// SnapshotFrame carries the full tree at a sequence number. Clients
// rebuild their mirror from it on connect and after a failed resync.
type SnapshotFrame struct {
	Seq  uint64
	Root vdom.Node
}

// EncodeSnapshot encodes a snapshot frame payload.
func EncodeSnapshot(sf *SnapshotFrame) []byte {
	e := NewEncoder()
	e.WriteUvarint(sf.Seq)
	EncodeNode(e, sf.Root)
	return e.Bytes()
}

// DecodeSnapshot decodes a snapshot frame payload.
func DecodeSnapshot(data []byte, resolve CallbackResolver) (*SnapshotFrame, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	root, err := DecodeNode(d, resolve)
	if err != nil {
		return nil, err
	}
	return &SnapshotFrame{Seq: seq, Root: root}, d.Finish()
}

// ResyncRequest asks the server to replay every patch frame after LastSeq.
type ResyncRequest struct {
	LastSeq uint64
}

// EncodeResync encodes a resync frame payload.
func EncodeResync(r *ResyncRequest) []byte {
	e := NewEncoder()
	e.WriteUvarint(r.LastSeq)
	return e.Bytes()
}

// DecodeResync decodes a resync frame payload.
func DecodeResync(data []byte) (*ResyncRequest, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return &ResyncRequest{LastSeq: seq}, d.Finish()
}
