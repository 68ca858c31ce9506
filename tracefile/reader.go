package tracefile

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/internal/wire"
	"github.com/tracegl/gltrace/packet"
)

// ReaderState is one of {Opened, HeaderRead, Streaming, AtEOFPacket,
// Closed} (spec §4.F).
type ReaderState uint8

const (
	ReaderOpened ReaderState = iota
	ReaderHeaderRead
	ReaderStreaming
	ReaderAtEOFPacket
	ReaderClosed
)

// ErrEOF is returned by ReadNextPacket when the distinguished
// end-of-file packet has been reached; it is not itself an error
// condition (spec §3.5 "a distinguished packet type marking clean
// termination").
var ErrEOF = gltraceerr.New(gltraceerr.IOError, "tracefile: end of file")

// Reader streams packets out of a trace file (spec §4.F). Once it
// enters a terminal error state, every subsequent call returns the
// same error (spec §4.F failure model).
type Reader struct {
	log   *logrus.Entry
	state ReaderState
	err   error

	f    *os.File
	size int64
	sof  *SOF

	archive      blob.Archive
	frameOffsets []uint64 // lazily loaded from the archive
	offsetsKnown bool

	pos uint64

	DecodeOptions packet.DecodeOptions
}

// Open reads and validates a trace file's SOF header, loads its blob
// archive (embedded, unless sidecarDir is non-empty, in which case
// the archive is a loose directory at that path), and returns a
// Reader positioned at the first packet.
func Open(path, sidecarDir string, log *logrus.Entry) (*Reader, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: open")
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: stat")
	}

	r := &Reader{
		log:   log.WithField("component", "tracefile.reader"),
		state: ReaderOpened,
		f:     f,
		size:  fi.Size(),
	}

	header := make([]byte, sofSize)
	if _, err := io.ReadFull(f, header); err != nil {
		r.fail(gltraceerr.Wrap(gltraceerr.FormatError, err, "tracefile: read SOF"))
		return nil, r.err
	}
	sof, err := decodeSOF(header)
	if err != nil {
		r.fail(err)
		return nil, r.err
	}
	r.sof = sof
	r.pos = sof.FirstPacketOffset

	if sidecarDir != "" {
		dirArch, err := blob.OpenDirArchive(sidecarDir)
		if err != nil {
			r.fail(gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: open sidecar archive"))
			return nil, r.err
		}
		r.archive = dirArch
	} else if sof.ArchiveSize > 0 {
		archiveBytes := make([]byte, sof.ArchiveSize)
		if _, err := f.ReadAt(archiveBytes, int64(sof.ArchiveOffset)); err != nil {
			r.fail(gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: read embedded archive"))
			return nil, r.err
		}
		mem := blob.NewMemArchive()
		if err := mem.Deserialize(sliceReaderAt(archiveBytes), int64(len(archiveBytes))); err != nil {
			r.fail(gltraceerr.Wrap(gltraceerr.FormatError, err, "tracefile: parse embedded archive"))
			return nil, r.err
		}
		r.archive = mem
	} else {
		r.archive = blob.NewMemArchive()
	}

	r.state = ReaderHeaderRead
	r.log.WithField("pointer_size", sof.PointerSize).Debug("opened trace file")
	return r, nil
}

// SOF returns the file's parsed start-of-file record.
func (r *Reader) SOF() *SOF { return r.sof }

// Archive returns the file's blob archive, shared read-only (spec §5
// "the blob archive behind a loaded trace is shared read-only across
// the engine and any inspector").
func (r *Reader) Archive() blob.Archive { return r.archive }

func (r *Reader) fail(err error) {
	r.state = ReaderClosed
	r.err = err
}

// ReadNextPacket reads one packet, or ErrEOF once the distinguished
// EOF packet is reached.
func (r *Reader) ReadNextPacket() (*packet.Packet, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.state == ReaderAtEOFPacket {
		return nil, ErrEOF
	}

	lenBuf := make([]byte, 4)
	if _, err := r.f.ReadAt(lenBuf, int64(r.pos)); err != nil {
		r.fail(gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: read packet length"))
		return nil, r.err
	}
	n := wire.NewDecoder(lenBuf).U32()

	raw := make([]byte, n)
	if _, err := r.f.ReadAt(raw, int64(r.pos)+4); err != nil {
		r.fail(gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: read packet body"))
		return nil, r.err
	}

	p, consumed, err := packet.Decode(raw, r.DecodeOptions)
	if err != nil {
		r.fail(err)
		return nil, r.err
	}
	if consumed != len(raw) {
		r.fail(gltraceerr.Newf(gltraceerr.FormatError, "tracefile: packet consumed %d of %d framed bytes", consumed, len(raw)))
		return nil, r.err
	}

	r.pos += 4 + uint64(n)
	r.state = ReaderStreaming

	if p.Type == packet.EOF {
		r.state = ReaderAtEOFPacket
		return nil, ErrEOF
	}
	return p, nil
}

func (r *Reader) loadFrameOffsets() {
	if r.offsetsKnown {
		return
	}
	r.offsetsKnown = true
	data, err := r.archive.Get(blob.FrameOffsetsName)
	if err != nil {
		return // no index: seek falls back to scanning
	}
	d := wire.NewDecoder(data)
	n := len(data) / 8
	offsets := make([]uint64, n)
	for i := range offsets {
		offsets[i] = d.U64()
	}
	r.frameOffsets = offsets
}

// MaxFrameIndex returns the number of complete frames the file's
// index knows about, or 0 if no index is present.
func (r *Reader) MaxFrameIndex() int {
	r.loadFrameOffsets()
	return len(r.frameOffsets)
}

// CanQuicklySeekForward reports whether a frame-offset index is
// present, enabling O(1) seeks.
func (r *Reader) CanQuicklySeekForward() bool {
	r.loadFrameOffsets()
	return len(r.frameOffsets) > 0
}

// SeekToFrame repositions the reader so the next ReadNextPacket
// returns the first packet of frame n (spec §4.F). With an index,
// this is O(1); without one, it rewinds and scans counting swap
// fences.
func (r *Reader) SeekToFrame(n int) error {
	if r.err != nil {
		return r.err
	}
	r.loadFrameOffsets()

	if n == 0 {
		r.pos = r.sof.FirstPacketOffset
		r.state = ReaderStreaming
		return nil
	}
	if n-1 < len(r.frameOffsets) {
		r.pos = r.frameOffsets[n-1]
		r.state = ReaderStreaming
		return nil
	}

	// Fallback: rewind and scan, counting swap fences via the
	// internal_trace_command / EOF-insensitive walk over Call
	// packets' is_swap flag, which lives in the entrypoint's Flags —
	// callers needing this scan pass DecodeOptions.Entrypoints so
	// Flags are resolvable.
	r.pos = r.sof.FirstPacketOffset
	r.state = ReaderStreaming
	frame := 0
	for frame < n {
		p, err := r.ReadNextPacket()
		if err != nil {
			return err
		}
		if r.DecodeOptions.Entrypoints != nil {
			if ep := r.DecodeOptions.Entrypoints.EntrypointByID(p.EntrypointID); ep != nil && ep.Flags.Swap() {
				frame++
			}
		}
	}
	return nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	r.state = ReaderClosed
	err := r.f.Close()
	r.f = nil
	return err
}

type sliceReaderAt []byte

func (s sliceReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(s)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, s[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
