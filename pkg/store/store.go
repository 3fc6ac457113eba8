// Package store persists encoded view snapshots under names.
//
// Three backends implement Store: BoltStore keeps snapshots in a local
// bbolt file, S3Store in an S3 bucket and MemoryStore in process memory.
// SaveTree and LoadTree move trees in and out of any backend using the
// wire codec's snapshot encoding.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/patchwork/internal/config"
	"github.com/vango-dev/patchwork/pkg/protocol"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

// Store errors.
var (
	ErrNotFound    = errors.New("store: snapshot not found")
	ErrInvalidName = errors.New("store: invalid snapshot name")
)

// Store is a flat namespace of snapshot payloads. Delete of a missing
// name succeeds. List returns names in ascending order.
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Open creates the backend selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendS3:
		client := NewS3Client(S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
		return NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix), nil
	case config.BackendBolt, "":
		path := cfg.Path
		if path == "" {
			path = config.DefaultStorePath
		}
		bs, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return bs, nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

// validName rejects empty names and names with path separators or
// control characters.
func validName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return ErrInvalidName
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return ErrInvalidName
		}
	}
	return nil
}

// SaveTree encodes root with its sequence number and stores it under name.
func SaveTree(ctx context.Context, st Store, name string, seq uint64, root vdom.Node) error {
	return st.Put(ctx, name, protocol.EncodeSnapshot(&protocol.SnapshotFrame{Seq: seq, Root: root}))
}

// LoadTree reads and decodes the snapshot stored under name.
func LoadTree(ctx context.Context, st Store, name string, resolve protocol.CallbackResolver) (*protocol.SnapshotFrame, error) {
	data, err := st.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	sf, err := protocol.DecodeSnapshot(data, resolve)
	if err != nil {
		return nil, err
	}
	return sf, nil
}
