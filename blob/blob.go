// Package blob implements the content-addressed blob archive (spec
// §4.D/§6.2): a named bag of binary payloads, addressable both by
// caller-chosen name and by content id, serializable as a single
// ZIP-shape container embedded in a trace file or written to a
// sidecar directory.
package blob

import (
	"io"

	"github.com/OneOfOne/xxhash"
)

// ID is a blob's content id: the 64-bit digest of its bytes. Two
// blobs with the same id encode identical bytes; anything else is
// data corruption (spec §4.D "collisions treated as data corruption").
type ID uint64

// ContentID computes the content id for a byte slice.
func ContentID(data []byte) ID {
	return ID(xxhash.Checksum64(data))
}

// FrameOffsetsName is the reserved entry carrying the frame-offset
// index (spec §4.F/§6.2): a flat array of u64 byte offsets, one per
// swap, serialized as the archive's own payload codec dictates.
const FrameOffsetsName = "frame_file_offsets"

// Archive is the collaborator interface every backend implements
// (spec §4.D). Implementations need not be safe for concurrent use
// unless individually documented.
type Archive interface {
	// Put stores data under name, or under its content id if name is
	// empty. Put is idempotent: storing identical bytes under the
	// same name twice is a no-op observable only through Get.
	Put(name string, data []byte) (ID, error)

	// Get returns the bytes for a blob previously Put, looked up by
	// either its name or the string form of its ID.
	Get(idOrName string) ([]byte, error)

	// Contains reports whether id names a blob in this archive.
	Contains(id ID) bool

	// Enumerate returns every blob name currently stored, in no
	// particular order.
	Enumerate() []string

	// Serialize writes the archive's ZIP-shape container (spec §6.2)
	// to w.
	Serialize(w io.Writer) error

	// Deserialize replaces the archive's contents by reading a
	// ZIP-shape container (spec §6.2) from r, which must support
	// random access (the central directory lives at the tail).
	Deserialize(r io.ReaderAt, size int64) error
}
