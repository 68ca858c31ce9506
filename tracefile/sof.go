// Package tracefile implements the trace file container (spec §3.5/
// §4.F/§6.1): a start-of-file header, a length-prefixed packet
// stream, an end-of-file marker, and an embedded or sidecar
// content-addressed blob archive carrying the frame-offset index.
package tracefile

import (
	"github.com/google/uuid"

	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/internal/wire"
)

// Magic identifies a start-of-file record.
const Magic uint32 = 0x474C5453 // "GLTS"

// FormatVersion is the only version this package writes; readers
// reject unknown majors (spec §6.1).
const FormatVersion uint16 = 1

// sofSize is the fixed on-disk size of the SOF record: magic(4) +
// uuid(16) + version(2) + pointer_size(1) + first_packet_offset(8) +
// archive_offset(8) + archive_size(8).
const sofSize = 4 + 16 + 2 + 1 + 8 + 8 + 8

// SOF is the start-of-file record (spec §3.5).
type SOF struct {
	UUID uuid.UUID

	// Version is the format major version. Decode rejects any value
	// other than FormatVersion.
	Version uint16

	// PointerSize is the recorder's pointer width in bytes: 1, 2, 4,
	// or 8.
	PointerSize uint8

	FirstPacketOffset uint64
	ArchiveOffset     uint64
	ArchiveSize       uint64
}

func encodeSOF(s *SOF) []byte {
	e := wire.NewEncoder(sofSize)
	e.U32(Magic)
	uuidBytes, _ := s.UUID.MarshalBinary()
	e.RawBytes(uuidBytes)
	e.U16(s.Version)
	e.U8(s.PointerSize)
	e.U64(s.FirstPacketOffset)
	e.U64(s.ArchiveOffset)
	e.U64(s.ArchiveSize)
	return e.Bytes()
}

func decodeSOF(buf []byte) (*SOF, error) {
	if len(buf) < sofSize {
		return nil, gltraceerr.Newf(gltraceerr.FormatError, "tracefile: short SOF record: %d bytes", len(buf))
	}
	d := wire.NewDecoder(buf)
	magic := d.U32()
	if magic != Magic {
		return nil, gltraceerr.Newf(gltraceerr.FormatError, "tracefile: bad SOF magic %#x", magic)
	}
	s := &SOF{}
	idBytes := d.RawBytes(16)
	if err := s.UUID.UnmarshalBinary(idBytes); err != nil {
		return nil, gltraceerr.Wrap(gltraceerr.FormatError, err, "tracefile: invalid SOF uuid")
	}
	s.Version = d.U16()
	if s.Version != FormatVersion {
		return nil, gltraceerr.Newf(gltraceerr.FormatError, "tracefile: unsupported format version %d", s.Version)
	}
	s.PointerSize = d.U8()
	switch s.PointerSize {
	case 1, 2, 4, 8:
	default:
		return nil, gltraceerr.Newf(gltraceerr.FormatError, "tracefile: invalid pointer size %d", s.PointerSize)
	}
	s.FirstPacketOffset = d.U64()
	s.ArchiveOffset = d.U64()
	s.ArchiveSize = d.U64()
	if d.Err() != nil {
		return nil, gltraceerr.Wrap(gltraceerr.FormatError, d.Err(), "tracefile: truncated SOF record")
	}
	return s, nil
}
