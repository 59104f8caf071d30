// Package protocol implements the binary wire protocol between a live
// session and the browser client.
//
// The server mirrors every presentation-tree mutation as a Patch and ships
// batches of patches to the client, which replays them against the real DOM.
// The client sends back the events it observes on nodes that have listeners.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Encoding
//
//   - Varint: node ids, counts and sequence numbers (protobuf-style)
//   - Length-prefixed: strings are prefixed with a varint byte length
//   - Big-endian: fixed-width integers such as error codes
//
// Each patch is an op byte followed by its node ids and strings in a fixed
// per-op order (see the PatchOp constants).
//
// Node id 0 is reserved: it names the client's mount container in patches
// and means "no reference node" in insert patches.
package protocol
