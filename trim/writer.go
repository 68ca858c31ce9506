// Package trim implements the trim writer (spec §4.I): given a live
// replay position and a frame length, it produces a new, shorter trace
// file that opens with a synthetic state-snapshot packet in place of
// everything before the cut, followed by the original packets for the
// kept frame range.
package trim

import (
	"github.com/sirupsen/logrus"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/handle"
	"github.com/tracegl/gltrace/packet"
	"github.com/tracegl/gltrace/snapshot"
	"github.com/tracegl/gltrace/tracefile"
)

// Options configures one trim run.
type Options struct {
	// OptimizeSnapshot prunes the captured snapshot to the closure of
	// handles actually referenced by the copied packet suffix (spec
	// §4.I step 5), instead of carrying every live object forward.
	OptimizeSnapshot bool
}

// Writer produces trimmed trace files (spec §4.I).
type Writer struct {
	log     *logrus.Entry
	entries *entry.Registry
	types   *ctypes.Registry
}

// New constructs a Writer. entries/types default to the process-global
// registries if nil.
func New(entries *entry.Registry, types *ctypes.Registry, log *logrus.Entry) *Writer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if entries == nil {
		entries = entry.Default()
	}
	if types == nil {
		types = ctypes.Default()
	}
	return &Writer{
		log:     log.WithField("component", "trim.writer"),
		entries: entries,
		types:   types,
	}
}

// Write implements spec §4.I: reposition src to startFrame, capture a
// snapshot from drv, then copy src's packets for [startFrame,
// startFrame+length) into a fresh trace file at dstPath, prefixed by a
// synthetic internal_trace_command(state_snapshot) packet. With
// opts.OptimizeSnapshot, the snapshot is pruned to the closure of
// handles the copied suffix references before it is written (step 5).
// Failure at any step removes the partial output file (step 6).
func (w *Writer) Write(src *tracefile.Reader, drv snapshot.Driver, dstPath string, startFrame, length int, opts Options) (err error) {
	if err := src.SeekToFrame(startFrame); err != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, err, "trim: seek to start frame")
	}

	kept, err := w.collectFrameRange(src, length)
	if err != nil {
		return err
	}

	dstArchive := blob.NewMemArchive()

	doc, err := snapshot.Capture(drv, dstArchive)
	if err != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, err, "trim: capture snapshot")
	}
	if opts.OptimizeSnapshot {
		pruneToReferenced(doc, w.referencedHandles(kept))
	}

	tw, err := tracefile.Create(dstPath, dstArchive, w.log)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tw.Abort()
		}
	}()

	if err = w.writeSnapshotCommand(tw, dstArchive, doc); err != nil {
		return err
	}

	for _, kp := range kept {
		raw, encErr := packet.Encode(kp.p)
		if encErr != nil {
			err = gltraceerr.Wrap(gltraceerr.FormatError, encErr, "trim: re-encode copied packet")
			return err
		}
		if err = tw.WritePacket(raw, kp.isSwap); err != nil {
			return err
		}
	}

	if err = tw.Close(); err != nil {
		return err
	}
	w.log.WithFields(map[string]interface{}{"frames": length, "optimized": opts.OptimizeSnapshot}).Info("wrote trimmed trace")
	return nil
}

type keptPacket struct {
	p      *packet.Packet
	isSwap bool
}

// collectFrameRange reads exactly length frames' worth of packets from
// src, starting at its current position (spec §4.I step 4 "copies the
// original packets from frame f through frame f+L-1").
func (w *Writer) collectFrameRange(src *tracefile.Reader, length int) ([]keptPacket, error) {
	var kept []keptPacket
	frame := 0
	for frame < length {
		p, err := src.ReadNextPacket()
		if err != nil {
			return nil, gltraceerr.Wrap(gltraceerr.IOError, err, "trim: read packet to copy")
		}
		isSwap := false
		if p.Type == packet.Call {
			if ep := w.entries.EntrypointByID(p.EntrypointID); ep != nil && ep.Flags.Swap() {
				isSwap = true
				frame++
			}
		}
		kept = append(kept, keptPacket{p: p, isSwap: isSwap})
	}
	return kept, nil
}

// writeSnapshotCommand stores doc in archive and emits the synthetic
// internal_trace_command(kind=state_snapshot, blob_id=…) packet (spec
// §4.I step 3) that the replayer consumes via its own
// handleInternalCommand.
func (w *Writer) writeSnapshotCommand(tw *tracefile.Writer, archive blob.Archive, doc *snapshot.Document) error {
	data, err := snapshot.Marshal(doc)
	if err != nil {
		return gltraceerr.Wrap(gltraceerr.FormatError, err, "trim: marshal snapshot")
	}
	id, err := archive.Put("", data)
	if err != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, err, "trim: store snapshot blob")
	}

	cmd := &packet.Packet{
		Type: packet.InternalTraceCommand,
		KV: map[string]packet.KVValue{
			packet.InternalCommandKindKey: packet.Uint64Value(uint64(packet.CommandStateSnapshot)),
			packet.InternalCommandBlobKey: packet.BlobValue(uint64(id), uint64(len(data))),
		},
	}
	raw, err := packet.Encode(cmd)
	if err != nil {
		return gltraceerr.Wrap(gltraceerr.FormatError, err, "trim: encode snapshot command")
	}
	return tw.WritePacket(raw, false)
}

// referencedHandles walks kept's params (spec §4.I step 5 "walks the
// suffix packets first to collect the set of handles actually
// referenced"), returning the per-namespace set of trace handles the
// kept packets touch.
func (w *Writer) referencedHandles(kept []keptPacket) map[handle.Namespace]map[handle.Value]bool {
	out := make(map[handle.Namespace]map[handle.Value]bool)
	add := func(ns handle.Namespace, v handle.Value) {
		if ns == handle.None || v == 0 {
			return
		}
		if out[ns] == nil {
			out[ns] = make(map[handle.Value]bool)
		}
		out[ns][v] = true
	}

	for _, kp := range kept {
		if kp.p.Type != packet.Call {
			continue
		}
		ep := w.entries.EntrypointByID(kp.p.EntrypointID)
		if ep == nil {
			continue
		}
		if ep.ReturnNamespace != handle.None && kp.p.Return != nil {
			add(ep.ReturnNamespace, handle.Value(kp.p.Return.ValueBits))
		}
		for i, pd := range ep.Params {
			if pd.Namespace == handle.None || i >= len(kp.p.Params) {
				continue
			}
			rp := kp.p.Params[i]
			if rp.ClientMem == nil {
				add(pd.Namespace, handle.Value(rp.ValueBits))
				continue
			}
			elemSize := elemSizeOf(w.types, rp.ClientMem.TypeID)
			if elemSize != 4 && elemSize != 8 {
				continue
			}
			end := uint64(rp.ClientMem.Offset) + uint64(rp.ClientMem.Count)*uint64(elemSize)
			if end > uint64(len(kp.p.ClientMem)) {
				continue
			}
			buf := kp.p.ClientMem[rp.ClientMem.Offset:end]
			for off := uint32(0); off+elemSize <= uint32(len(buf)); off += elemSize {
				add(pd.Namespace, decodeHandle(buf[off:off+elemSize]))
			}
		}
	}
	return out
}

func elemSizeOf(types *ctypes.Registry, id ctypes.ID) uint32 {
	if types == nil {
		return 4
	}
	if t := types.TypeByID(id); t != nil && t.Size > 0 {
		return uint32(t.Size)
	}
	return 4
}

func decodeHandle(b []byte) handle.Value {
	var v uint64
	for i, bb := range b {
		v |= uint64(bb) << (8 * uint(i))
	}
	return handle.Value(v)
}

// pruneToReferenced drops every object whose id is not in referenced
// for its namespace, leaving contexts and the default framebuffer
// untouched (spec §4.I step 5).
func pruneToReferenced(doc *snapshot.Document, referenced map[handle.Namespace]map[handle.Value]bool) {
	keep := func(ns handle.Namespace, objs []snapshot.Object) []snapshot.Object {
		set := referenced[ns]
		if len(set) == 0 {
			return nil
		}
		out := objs[:0:0]
		for _, o := range objs {
			if set[o.ID] {
				out = append(out, o)
			}
		}
		return out
	}

	doc.Shaders = keep(handle.Shader, doc.Shaders)
	doc.Programs = keep(handle.Program, doc.Programs)
	doc.Buffers = keep(handle.Buffer, doc.Buffers)
	doc.Textures = keep(handle.Texture, doc.Textures)
	doc.Samplers = keep(handle.Sampler, doc.Samplers)
	doc.Renderbuffers = keep(handle.Renderbuffer, doc.Renderbuffers)
	doc.Framebuffers = keep(handle.Framebuffer, doc.Framebuffers)
	doc.VertexArrays = keep(handle.VertexArray, doc.VertexArrays)
	doc.Queries = keep(handle.Query, doc.Queries)
	doc.Syncs = keep(handle.Sync, doc.Syncs)
	doc.Pipelines = keep(handle.Pipeline, doc.Pipelines)
	doc.DisplayLists = keep(handle.DisplayList, doc.DisplayLists)
	doc.TransformFeedbacks = keep(handle.TransformFeedback, doc.TransformFeedbacks)
}
