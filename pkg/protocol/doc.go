// Package protocol implements the binary wire protocol between the host and
// the Kestrel native engine core.
//
// The protocol carries three kinds of traffic across the foreign-function
// boundary: command batches (host → core), response batches (core → host),
// and event batches (core → host). All three share one compact
// self-describing binary encoding.
//
// # Encoding
//
//   - Varint: Compact encoding for small integers (protobuf-style)
//   - ZigZag: Signed integers encoded as unsigned varints
//   - Length-prefixed: Strings and byte arrays prefixed with varint length
//   - Big-endian: Fixed-width integers and IEEE 754 floats
//
// # Batches
//
// A batch is a varint entry count followed by the entries, each prefixed
// with its own byte length:
//
//	[count: varint] ([len: varint][entry bytes])*
//
// The per-entry length prefix is what makes the format forward-compatible:
// a decoder that does not recognize an entry's tag skips exactly len bytes,
// reports the skip, and keeps decoding the rest of the batch. Host and core
// may therefore be built from slightly different protocol revisions without
// corrupting each other's traffic.
//
// # Entries
//
//	Command:  [id: varint][tag: byte][payload]
//	Response: [id: varint][tag: byte][code: uint32][payload]
//	Event:    [id: varint][category: byte][kind: byte][payload]
//
// Command identifiers are assigned by the host and must be unique within a
// batch. Responses echo the identifier of the command that produced them;
// correlation is by identifier only, never by position. Events carry
// identifier zero (they are spontaneous) and preserve native emission order
// within a batch.
//
// # Stability
//
// Every enumerated discriminant in this package (tags, categories, kinds,
// key codes, buttons, axes, result codes) is fixed API surface. Values are
// append-only: once assigned, a discriminant is never reassigned.
//
// # Safety
//
// Decoding never trusts an embedded length: every length field is checked
// against the remaining buffer and against allocation limits before any
// allocation happens. Malformed input produces an error, not a panic.
package protocol
