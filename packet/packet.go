// Package packet implements the trace packet (spec §3.4) and its two
// codecs: a bit-exact binary wire form (spec §4.E binary form) and a
// loss-less JSON-shape document form (spec §4.E document form) used by
// the `dump` and `parse` CLI subcommands.
package packet

import (
	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/handle"
)

// Type distinguishes the packet kinds a trace file may carry.
type Type uint8

const (
	// Call records one entrypoint invocation.
	Call Type = iota + 1

	// EOF is the distinguished packet marking clean termination
	// (spec §3.5 "End-of-file record").
	EOF

	// InternalTraceCommand carries out-of-band engine commands, such
	// as the synthetic state-snapshot packet trim emits (spec §5 step
	// 3: "internal_trace_command(kind=state_snapshot, blob_id=…)").
	InternalTraceCommand
)

// InternalCommandKind enumerates the payloads an InternalTraceCommand
// packet may carry, keyed in its KV map under InternalCommandKindKey.
type InternalCommandKind uint8

const (
	CommandStateSnapshot InternalCommandKind = iota + 1
)

// KV map keys used by InternalTraceCommand packets.
const (
	InternalCommandKindKey = "internal_command_kind"
	InternalCommandBlobKey = "internal_command_blob_id"
)

// Param is one entrypoint parameter's recorded value (spec §3.4): the
// inline scalar/pointer bit pattern, zero-extended to u64, plus an
// optional client-memory array descriptor.
type Param struct {
	// ValueBits is the parameter's bit pattern, zero-extended to u64.
	ValueBits uint64

	// ClientMem is non-nil when the parameter carries a client-memory
	// array reference (spec §3.4 "base offset into the packet's
	// client-memory blob, element count, element type-id, element
	// namespace").
	ClientMem *ClientMemRef
}

// ClientMemRef locates and types a client-memory array embedded in a
// packet's client-memory region.
type ClientMemRef struct {
	Offset    uint32
	Count     uint32
	TypeID    ctypes.ID
	Namespace handle.Namespace
}

// KVKind tags the dynamic type of a KeyValue's payload (spec §3.4
// "string | i64 | f64 | blob | u64-id").
type KVKind uint8

const (
	KVString KVKind = iota
	KVInt64
	KVFloat64
	KVBlob
	KVUint64
)

// KVValue is one value in a packet's key_value_map.
type KVValue struct {
	Kind KVKind

	Str     string
	Int64   int64
	Float64 float64
	Uint64  uint64

	// BlobID and BlobSize are set when Kind == KVBlob: the value is a
	// reference into the trace file's blob archive.
	BlobID   uint64
	BlobSize uint64
}

func StringValue(s string) KVValue   { return KVValue{Kind: KVString, Str: s} }
func Int64Value(v int64) KVValue     { return KVValue{Kind: KVInt64, Int64: v} }
func Float64Value(v float64) KVValue { return KVValue{Kind: KVFloat64, Float64: v} }
func Uint64Value(v uint64) KVValue   { return KVValue{Kind: KVUint64, Uint64: v} }
func BlobValue(id, size uint64) KVValue {
	return KVValue{Kind: KVBlob, BlobID: id, BlobSize: size}
}

// Packet is the recorder's in-memory representation of one trace
// packet (spec §3.4). Once constructed and handed to a codec it is
// treated as frozen: the replayer deserializes read-only and never
// mutates a decoded Packet in place.
type Packet struct {
	Type Type

	EntrypointID  entry.ID
	CallCounter   uint64
	ThreadID      uint64
	ContextHandle uint64
	BeginRDTSC    uint64
	EndRDTSC      uint64

	Params []Param

	// Return is nil iff the entrypoint has a void return.
	Return *Param

	KV map[string]KVValue

	// ClientMem is the packet's client-memory region; Param.ClientMem
	// offsets index into it.
	ClientMem []byte
}

// clientMemInBounds reports whether ref's byte range fits within p's
// client-memory region, per spec §4.E decoder rule (e) "any
// client-memory offset+extent outside the client-memory region".
func (p *Packet) clientMemInBounds(ref *ClientMemRef, elemSize uint32) bool {
	if ref == nil {
		return true
	}
	need := uint64(ref.Offset) + uint64(ref.Count)*uint64(elemSize)
	return need <= uint64(len(p.ClientMem))
}
