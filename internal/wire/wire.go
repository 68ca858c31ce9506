// Package wire provides the little-endian scalar encode/decode
// helpers shared by the packet and tracefile codecs. It generalizes
// the bufDecoder helper pattern to a bounds-checked counterpart: trace
// bytes are untrusted input, so a short buffer is a reported error
// (gltraceerr.IOError) rather than a panic.
package wire

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Decoder reads little-endian scalars from an in-memory buffer,
// advancing as it goes. Every method reports an error instead of
// panicking on a short buffer.
type Decoder struct {
	buf []byte
	err error
}

// NewDecoder wraps buf for sequential little-endian reads.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Err returns the first error encountered, if any.
func (d *Decoder) Err() error { return d.err }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) }

func (d *Decoder) need(n int) bool {
	if d.err != nil {
		return false
	}
	if len(d.buf) < n {
		d.err = errors.Errorf("wire: short read: need %d bytes, have %d", n, len(d.buf))
		return false
	}
	return true
}

func (d *Decoder) U8() uint8 {
	if !d.need(1) {
		return 0
	}
	x := d.buf[0]
	d.buf = d.buf[1:]
	return x
}

func (d *Decoder) U16() uint16 {
	if !d.need(2) {
		return 0
	}
	x := binary.LittleEndian.Uint16(d.buf)
	d.buf = d.buf[2:]
	return x
}

func (d *Decoder) U32() uint32 {
	if !d.need(4) {
		return 0
	}
	x := binary.LittleEndian.Uint32(d.buf)
	d.buf = d.buf[4:]
	return x
}

func (d *Decoder) U64() uint64 {
	if !d.need(8) {
		return 0
	}
	x := binary.LittleEndian.Uint64(d.buf)
	d.buf = d.buf[8:]
	return x
}

func (d *Decoder) I64() int64 { return int64(d.U64()) }

func (d *Decoder) F64() float64 {
	bits := d.U64()
	return math.Float64frombits(bits)
}

// Bytes returns the next n bytes as a fresh copy.
func (d *Decoder) Bytes(n int) []byte {
	if !d.need(n) {
		return nil
	}
	x := make([]byte, n)
	copy(x, d.buf[:n])
	d.buf = d.buf[n:]
	return x
}

// RawBytes returns the next n bytes without copying; callers must not
// retain a reference past the life of the decoded buffer if the
// caller intends to mutate it elsewhere.
func (d *Decoder) RawBytes(n int) []byte {
	if !d.need(n) {
		return nil
	}
	x := d.buf[:n]
	d.buf = d.buf[n:]
	return x
}

// LenString reads a u32 length prefix followed by that many UTF-8
// bytes.
func (d *Decoder) LenString() string {
	n := d.U32()
	if d.err != nil {
		return ""
	}
	b := d.Bytes(int(n))
	return string(b)
}
