package protocol

import "errors"

// Decoding limits. A peer cannot make the decoder allocate or recurse past
// these.
const (
	// DefaultMaxAllocation caps a single string or byte payload (4MB).
	DefaultMaxAllocation = 4 * 1024 * 1024

	// MaxCollectionCount caps the length of any counted list.
	MaxCollectionCount = 100_000

	// MaxNodeDepth caps the nesting depth of encoded trees.
	MaxNodeDepth = 256
)

// Decoding errors.
var (
	ErrVarintOverflow     = errors.New("protocol: varint overflow")
	ErrAllocationTooLarge = errors.New("protocol: allocation size exceeds limit")
	ErrCollectionTooLarge = errors.New("protocol: collection count exceeds limit")
	ErrMaxDepthExceeded   = errors.New("protocol: maximum nesting depth exceeded")
	ErrTrailingBytes      = errors.New("protocol: trailing bytes after payload")
)

// checkDepth fails once depth passes max.
func checkDepth(depth, max int) error {
	if depth > max {
		return ErrMaxDepthExceeded
	}
	return nil
}
