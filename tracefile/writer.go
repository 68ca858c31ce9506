package tracefile

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/internal/wire"
	"github.com/tracegl/gltrace/packet"
)

// WriterState is one of {Open, Writing, Closed} (spec §4.F).
type WriterState uint8

const (
	WriterOpen WriterState = iota
	WriterWriting
	WriterClosed
)

// Writer frames a packet stream into a new trace file (spec §4.F).
// It flushes atomically: Close either completes the file or, on
// error, the partial file is removed (see Create).
type Writer struct {
	log   *logrus.Entry
	state WriterState

	f         *os.File
	tmpPath   string
	finalPath string

	archive      blob.Archive
	frameOffsets []uint64
	pos          uint64
}

// Create opens a new trace file for writing at path, via a sibling
// temp file that is renamed into place on a successful Close (spec
// §4.F "either close succeeds and the file is complete, or the
// partial file is deleted"). archive backs the embedded blob archive;
// pass blob.NewMemArchive() for the common embedded case.
func Create(path string, archive blob.Archive, log *logrus.Entry) (*Writer, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".gltrace-*.tmp")
	if err != nil {
		return nil, gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: create temp file")
	}

	w := &Writer{
		log:       log.WithField("component", "tracefile.writer"),
		state:     WriterOpen,
		f:         tmp,
		tmpPath:   tmp.Name(),
		finalPath: path,
		archive:   archive,
		pos:       sofSize,
	}
	if _, err := tmp.Write(make([]byte, sofSize)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: write SOF placeholder")
	}
	w.log.Debug("opened trace file for writing")
	return w, nil
}

// WritePacket appends raw (an already-encoded packet, spec §4.E), as
// one more entry in the length-prefixed packet stream (spec §3.5).
// isSwap records the post-write file offset into the frame-offset
// index.
func (w *Writer) WritePacket(raw []byte, isSwap bool) error {
	if w.state == WriterClosed {
		return gltraceerr.New(gltraceerr.ConfigError, "tracefile: write_packet on a closed writer")
	}
	w.state = WriterWriting

	if err := w.writeRaw(raw); err != nil {
		return err
	}

	if isSwap {
		w.frameOffsets = append(w.frameOffsets, w.pos)
	}
	return nil
}

// Abort discards the in-progress file: the temp file is removed and
// the writer becomes unusable. Use when a write fails midstream and
// the caller has decided not to attempt Close.
func (w *Writer) Abort() {
	if w.state == WriterClosed {
		return
	}
	w.state = WriterClosed
	w.f.Close()
	os.Remove(w.tmpPath)
}

// Close writes the EOF packet, serializes the blob archive (including
// the updated frame_file_offsets entry), patches the SOF header, and
// renames the temp file into place. On any error the temp file is
// removed instead (spec §4.F atomic-close guarantee).
func (w *Writer) Close() (err error) {
	if w.state == WriterClosed {
		return gltraceerr.New(gltraceerr.ConfigError, "tracefile: double close")
	}
	defer func() {
		if err != nil {
			w.f.Close()
			os.Remove(w.tmpPath)
		}
		w.state = WriterClosed
	}()

	eofRaw, encErr := packet.Encode(&packet.Packet{Type: packet.EOF})
	if encErr != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, encErr, "tracefile: encode EOF packet")
	}
	if werr := w.writeRaw(eofRaw); werr != nil {
		return werr
	}

	offsetsBuf := wire.NewEncoder(8 * len(w.frameOffsets))
	for _, off := range w.frameOffsets {
		offsetsBuf.U64(off)
	}
	if _, perr := w.archive.Put(blob.FrameOffsetsName, offsetsBuf.Bytes()); perr != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, perr, "tracefile: store frame offsets")
	}

	archiveOffset := w.pos
	if serr := w.archive.Serialize(w.f); serr != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, serr, "tracefile: serialize archive")
	}
	endPos, serr := w.f.Seek(0, io.SeekCurrent)
	if serr != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, serr, "tracefile: seek to measure archive size")
	}
	archiveSize := uint64(endPos) - archiveOffset

	sof := &SOF{
		UUID:              uuid.New(),
		Version:           FormatVersion,
		PointerSize:       8,
		FirstPacketOffset: sofSize,
		ArchiveOffset:     archiveOffset,
		ArchiveSize:       archiveSize,
	}
	if _, serr := w.f.Seek(0, io.SeekStart); serr != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, serr, "tracefile: seek to SOF")
	}
	if _, werr := w.f.Write(encodeSOF(sof)); werr != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, werr, "tracefile: write SOF")
	}
	if cerr := w.f.Close(); cerr != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, cerr, "tracefile: close temp file")
	}
	if rerr := os.Rename(w.tmpPath, w.finalPath); rerr != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, rerr, "tracefile: rename into place")
	}
	w.log.WithField("frames", len(w.frameOffsets)).Info("closed trace file")
	return nil
}

func (w *Writer) writeRaw(raw []byte) error {
	e := wire.NewEncoder(4 + len(raw))
	e.U32(uint32(len(raw)))
	e.RawBytes(raw)
	if _, err := w.f.Write(e.Bytes()); err != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, err, "tracefile: write framed record")
	}
	w.pos += uint64(len(e.Bytes()))
	return nil
}
