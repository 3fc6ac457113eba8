// Package protocol implements the binary wire format used to stream a live
// view to remote mirrors.
//
// # Wire Format
//
// Every message is a frame with a 4-byte header:
//
//	┌─────────────┬───────────────────────────────────────────────┐
//	│ Frame Type  │ Payload Length                                │
//	│ (1 byte)    │ (3 bytes, big-endian)                         │
//	└─────────────┴───────────────────────────────────────────────┘
//
// Frame payloads use unsigned varints for integers and indices,
// varint-length-prefixed UTF-8 for strings, and a single tag byte for
// node kinds, patch operations and attribute value types.
//
// # Frames
//
//   - FrameSnapshot: sequence number and the full tree
//   - FramePatches: sequence number and an ordered patch list
//   - FrameResync: the last sequence number a client applied
//   - FrameError: error code and message
//
// # Listeners
//
// Callbacks cannot cross the wire. Listener attributes carry their event
// name only; the decoder asks a CallbackResolver for the callback to
// attach on the receiving side.
//
// # Limits
//
// Decoding rejects trees nested deeper than MaxNodeDepth, collections
// longer than MaxCollectionCount and strings larger than
// DefaultMaxAllocation, so a hostile peer cannot exhaust memory or stack.
package protocol
