package wire

import (
	"encoding/binary"
	"math"
)

// Encoder appends little-endian scalars to an in-memory buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with the given initial capacity hint.
func NewEncoder(sizeHint int) *Encoder {
	return &Encoder{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated buffer.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

func (e *Encoder) U8(v uint8) { e.buf = append(e.buf, v) }

func (e *Encoder) U16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
}

func (e *Encoder) U32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
}

func (e *Encoder) U64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
}

func (e *Encoder) I64(v int64) { e.U64(uint64(v)) }

func (e *Encoder) F64(v float64) { e.U64(math.Float64bits(v)) }

// RawBytes appends b verbatim.
func (e *Encoder) RawBytes(b []byte) { e.buf = append(e.buf, b...) }

// LenString appends a u32 length prefix followed by s's UTF-8 bytes.
func (e *Encoder) LenString(s string) {
	e.U32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

// PatchU32 overwrites the u32 at byte offset off, used to backpatch a
// size field once the rest of the record has been written.
func (e *Encoder) PatchU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(e.buf[off:off+4], v)
}
