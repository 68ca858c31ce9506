package packet

import (
	"github.com/OneOfOne/xxhash"
	"github.com/pkg/errors"

	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/handle"
	"github.com/tracegl/gltrace/internal/wire"
)

// Magic identifies a packet prelude (spec §4.E "magic(u32)").
const Magic uint32 = 0x47545050 // "GTPP"

// DefaultSizeCeiling is the default maximum encoded packet size the
// decoder accepts before reporting FormatError (spec §4.E decoder
// rule (c)). Callers of Decode may pass a different ceiling.
const DefaultSizeCeiling = 64 << 20

const (
	kvTagString uint8 = iota
	kvTagInt64
	kvTagFloat64
	kvTagBlob
	kvTagUint64
)

// Encode serializes p to its binary wire form (spec §4.E binary
// form), including the trailing CRC.
func Encode(p *Packet) ([]byte, error) {
	body := wire.NewEncoder(256 + len(p.ClientMem))

	// The size field covers the prelude plus params, return, client
	// memory and kv, so encode the sections after the prelude into a
	// scratch buffer first and assemble the prelude once the total is
	// known.
	encodeParams(body, p.Params)
	encodeReturn(body, p.Return)
	encodeClientMem(body, p.ClientMem)
	if err := encodeKV(body, p.KV); err != nil {
		return nil, errors.Wrap(err, "packet: encode kv")
	}

	prelude := wire.NewEncoder(33)
	prelude.U32(Magic)
	prelude.U8(uint8(p.Type))
	sizeOffset := prelude.Len()
	prelude.U32(0) // patched below
	prelude.U64(p.CallCounter)
	prelude.U16(uint16(p.EntrypointID))
	prelude.U64(p.ThreadID)
	prelude.U64(p.ContextHandle)
	prelude.U64(p.BeginRDTSC)
	prelude.U64(p.EndRDTSC)

	out := append(prelude.Bytes(), body.Bytes()...)
	// size covers everything from the prelude's start up to (not
	// including) the trailing crc field.
	size := uint32(len(out))
	patchU32(out, sizeOffset, size)

	crc := xxhash.Checksum64(out)
	crcEnc := wire.NewEncoder(8)
	crcEnc.U64(crc)
	out = append(out, crcEnc.Bytes()...)
	return out, nil
}

func patchU32(buf []byte, off int, v uint32) {
	e := wire.NewEncoder(0)
	e.U32(v)
	copy(buf[off:off+4], e.Bytes())
}

func encodeParam(e *wire.Encoder, p *Param) {
	e.U64(p.ValueBits)
	if p.ClientMem == nil {
		e.U8(0)
		return
	}
	e.U8(1)
	e.U32(p.ClientMem.Offset)
	e.U32(p.ClientMem.Count)
	e.U16(uint16(p.ClientMem.TypeID))
	e.U16(uint16(p.ClientMem.Namespace))
}

func encodeParams(e *wire.Encoder, params []Param) {
	e.U16(uint16(len(params)))
	for i := range params {
		encodeParam(e, &params[i])
	}
}

func encodeReturn(e *wire.Encoder, ret *Param) {
	if ret == nil {
		e.U8(0)
		return
	}
	e.U8(1)
	encodeParam(e, ret)
}

func encodeClientMem(e *wire.Encoder, mem []byte) {
	e.U32(uint32(len(mem)))
	e.RawBytes(mem)
}

func encodeKV(e *wire.Encoder, kv map[string]KVValue) error {
	e.U32(uint32(len(kv)))
	keys := sortedKVKeys(kv)
	for _, k := range keys {
		v := kv[k]
		e.LenString(k)
		switch v.Kind {
		case KVString:
			e.U8(kvTagString)
			e.LenString(v.Str)
		case KVInt64:
			e.U8(kvTagInt64)
			e.I64(v.Int64)
		case KVFloat64:
			e.U8(kvTagFloat64)
			e.F64(v.Float64)
		case KVBlob:
			e.U8(kvTagBlob)
			e.U64(v.BlobID)
			e.U64(v.BlobSize)
		case KVUint64:
			e.U8(kvTagUint64)
			e.U64(v.Uint64)
		default:
			return errors.Errorf("packet: unknown kv kind %d for key %q", v.Kind, k)
		}
	}
	return nil
}

func sortedKVKeys(kv map[string]KVValue) []string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	// Deterministic wire output: callers (e.g. the CRC verify path)
	// must get byte-identical encodings across runs.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// DecodeOptions configures Decode's bounds checking.
type DecodeOptions struct {
	// SizeCeiling rejects packets whose declared size exceeds it
	// (spec §4.E decoder rule (c)). Zero means DefaultSizeCeiling.
	SizeCeiling uint32

	// Types and Entrypoints resolve type/entrypoint ids referenced by
	// params, so the decoder can reject unknown ones (spec §4.E
	// decoder rule (f)). Nil disables that check. Types also supplies
	// element sizes for the client-memory bounds check (rule (e));
	// with Types nil that check counts one byte per element.
	Types       *ctypes.Registry
	Entrypoints *entry.Registry
}

// Decode parses one binary packet from buf, which must contain
// exactly one encoded packet (prelude through crc). It returns the
// decoded Packet and the number of bytes consumed.
func Decode(buf []byte, opts DecodeOptions) (*Packet, int, error) {
	ceiling := opts.SizeCeiling
	if ceiling == 0 {
		ceiling = DefaultSizeCeiling
	}

	d := wire.NewDecoder(buf)
	magic := d.U32()
	if d.Err() != nil {
		return nil, 0, gltraceerr.Wrap(gltraceerr.FormatError, d.Err(), "packet: truncated prelude")
	}
	if magic != Magic {
		return nil, 0, gltraceerr.Newf(gltraceerr.FormatError, "packet: bad magic %#x", magic)
	}

	p := &Packet{}
	p.Type = Type(d.U8())
	size := d.U32()
	if size > ceiling {
		return nil, 0, gltraceerr.Newf(gltraceerr.FormatError, "packet: size %d exceeds ceiling %d", size, ceiling)
	}
	const minSize = 4 + 1 + 4 + 8 + 2 + 8 + 8 + 8 + 8 // prelude fields alone
	if size < minSize {
		return nil, 0, gltraceerr.Newf(gltraceerr.FormatError, "packet: size %d below minimum %d", size, minSize)
	}

	p.CallCounter = d.U64()
	p.EntrypointID = entry.ID(d.U16())
	p.ThreadID = d.U64()
	p.ContextHandle = d.U64()
	p.BeginRDTSC = d.U64()
	p.EndRDTSC = d.U64()

	if opts.Entrypoints != nil && opts.Entrypoints.EntrypointByID(p.EntrypointID) == nil && p.Type == Call {
		return nil, 0, gltraceerr.Newf(gltraceerr.FormatError, "packet: unknown entrypoint id %d", p.EntrypointID)
	}

	paramCount := d.U16()
	p.Params = make([]Param, paramCount)
	for i := range p.Params {
		if err := decodeParam(d, &p.Params[i], opts); err != nil {
			return nil, 0, err
		}
	}

	if d.U8() != 0 {
		p.Return = &Param{}
		if err := decodeParam(d, p.Return, opts); err != nil {
			return nil, 0, err
		}
	}

	clientMemLen := d.U32()
	p.ClientMem = d.Bytes(int(clientMemLen))

	kvCount := d.U32()
	if d.Err() != nil {
		return nil, 0, gltraceerr.Wrap(gltraceerr.FormatError, d.Err(), "packet: truncated kv count")
	}
	p.KV = make(map[string]KVValue, kvCount)
	for i := uint32(0); i < kvCount; i++ {
		key := d.LenString()
		tag := d.U8()
		var v KVValue
		switch tag {
		case kvTagString:
			v = KVValue{Kind: KVString, Str: d.LenString()}
		case kvTagInt64:
			v = KVValue{Kind: KVInt64, Int64: d.I64()}
		case kvTagFloat64:
			v = KVValue{Kind: KVFloat64, Float64: d.F64()}
		case kvTagBlob:
			id := d.U64()
			sz := d.U64()
			v = KVValue{Kind: KVBlob, BlobID: id, BlobSize: sz}
		case kvTagUint64:
			v = KVValue{Kind: KVUint64, Uint64: d.U64()}
		default:
			return nil, 0, gltraceerr.Newf(gltraceerr.FormatError, "packet: unknown kv tag %d", tag)
		}
		if d.Err() != nil {
			return nil, 0, gltraceerr.Wrap(gltraceerr.FormatError, d.Err(), "packet: truncated kv entry")
		}
		p.KV[key] = v
	}

	if d.Err() != nil {
		return nil, 0, gltraceerr.Wrap(gltraceerr.FormatError, d.Err(), "packet: truncated body")
	}
	for i := 0; i <= len(p.Params); i++ {
		ref := p.Return
		if i < len(p.Params) {
			ref = &p.Params[i]
		}
		if ref == nil || ref.ClientMem == nil {
			continue
		}
		elemSize := uint32(1)
		if opts.Types != nil && opts.Types.TypeByID(ref.ClientMem.TypeID).Size > 0 {
			elemSize = uint32(opts.Types.TypeByID(ref.ClientMem.TypeID).Size)
		}
		if !p.clientMemInBounds(ref.ClientMem, elemSize) {
			return nil, 0, gltraceerr.Newf(gltraceerr.FormatError, "packet: client-mem array at offset %d (%d elements) lies outside the %d-byte client-memory region", ref.ClientMem.Offset, ref.ClientMem.Count, len(p.ClientMem))
		}
	}

	consumedBeforeCRC := len(buf) - d.Remaining()
	if uint32(consumedBeforeCRC) != size {
		return nil, 0, gltraceerr.Newf(gltraceerr.FormatError, "packet: declared size %d does not match decoded length %d", size, consumedBeforeCRC)
	}
	crc := d.U64()
	if d.Err() != nil {
		return nil, 0, gltraceerr.Wrap(gltraceerr.FormatError, d.Err(), "packet: truncated crc")
	}
	want := xxhash.Checksum64(buf[:consumedBeforeCRC])
	if crc != want {
		return nil, 0, gltraceerr.Newf(gltraceerr.FormatError, "packet: crc mismatch: got %#x want %#x", crc, want)
	}

	consumed := len(buf) - d.Remaining()
	return p, consumed, nil
}

func decodeParam(d *wire.Decoder, p *Param, opts DecodeOptions) error {
	p.ValueBits = d.U64()
	hasClientMem := d.U8()
	if d.Err() != nil {
		return gltraceerr.Wrap(gltraceerr.FormatError, d.Err(), "packet: truncated param")
	}
	if hasClientMem == 0 {
		return nil
	}
	ref := &ClientMemRef{}
	ref.Offset = d.U32()
	ref.Count = d.U32()
	ref.TypeID = ctypes.ID(d.U16())
	ref.Namespace = handle.Namespace(d.U16())
	if d.Err() != nil {
		return gltraceerr.Wrap(gltraceerr.FormatError, d.Err(), "packet: truncated client-mem descriptor")
	}
	if opts.Types != nil && opts.Types.TypeByID(ref.TypeID) == nil {
		return gltraceerr.Newf(gltraceerr.FormatError, "packet: unknown type id %d in client-mem descriptor", ref.TypeID)
	}
	p.ClientMem = ref
	return nil
}
