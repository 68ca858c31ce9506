package replay

import (
	"github.com/pkg/errors"

	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/handle"
	"github.com/tracegl/gltrace/internal/wire"
	"github.com/tracegl/gltrace/packet"
)

// dispatch runs the five-step per-entrypoint handler (spec §4.H.2) for
// one Call packet.
func (e *Engine) dispatch(p *packet.Packet) error {
	ep := e.entries.EntrypointByID(p.EntrypointID)
	if ep == nil {
		return gltraceerr.Newf(gltraceerr.FormatError, "replay: unknown entrypoint id %d", p.EntrypointID)
	}
	if len(p.Params) != len(ep.Params) {
		return gltraceerr.Newf(gltraceerr.FormatError, "replay: %s recorded %d params, registry declares %d", ep.Name, len(p.Params), len(ep.Params))
	}

	args, err := e.remapAndMaterialize(ep, p)
	if err != nil {
		return err
	}

	result, err := e.drv.Invoke(ep, args)
	if err != nil {
		if e.drv.ContextLost() {
			return gltraceerr.Wrap(gltraceerr.ContextLost, err, "replay: context lost during "+ep.Name)
		}
		return errors.Wrapf(err, "replay: invoke %s", ep.Name)
	}

	e.captureOutputs(ep, p, result)

	if err := e.checkDivergence(ep, p, result); err != nil {
		return err
	}

	if !e.opts.Benchmark {
		if _, err := e.drv.GetError(); err != nil {
			return errors.Wrapf(err, "replay: glGetError epilog after %s", ep.Name)
		}
	}

	return nil
}

// remapAndMaterialize performs spec §4.H.2 steps 1 and 2: translate
// every handle-namespaced parameter through the handle map, and
// prepare client-memory bytes (passed through for "in" data, zeroed
// scratch for pure "out" data).
func (e *Engine) remapAndMaterialize(ep *entry.Entrypoint, p *packet.Packet) (CallArgs, error) {
	args := CallArgs{Params: make([]CallParam, len(p.Params))}

	for i, rp := range p.Params {
		pd := ep.Params[i]
		cp := CallParam{ValueBits: rp.ValueBits}

		if pd.Namespace != handle.None && rp.ClientMem == nil {
			trace := handle.Value(rp.ValueBits)
			if pd.Direction == entry.In || pd.Direction == entry.InOut {
				live, ok := e.hm.Lookup(pd.Namespace, trace)
				if !ok {
					if ep.Flags.Whitelisted() {
						e.diagnostics = append(e.diagnostics, Diagnostic{
							Kind: OutParamMismatch, EntrypointName: ep.Name,
							CallCounter: p.CallCounter, Frame: e.frame,
							Detail: "tolerated: no live mapping for param " + pd.Name,
						})
					} else {
						return args, gltraceerr.Newf(gltraceerr.HandleUnknown, "replay: %s param %q: no live mapping for trace handle %d in namespace %s", ep.Name, pd.Name, trace, pd.Namespace)
					}
				} else {
					cp.ValueBits = uint64(live)
				}
			}
		}

		if rp.ClientMem != nil {
			elemSize := e.elemSize(rp.ClientMem.TypeID)
			n := uint64(rp.ClientMem.Count) * uint64(elemSize)
			switch pd.Direction {
			case entry.Out:
				cp.ClientMem = make([]byte, n)
			default: // In, InOut: pass the recorded bytes through, remapped if handles
				raw := clientMemSlice(p, rp.ClientMem.Offset, uint32(n))
				buf := append([]byte(nil), raw...)
				if pd.Namespace != handle.None && elemSize > 0 {
					if unknown, ok := remapHandleArray(buf, elemSize, pd.Namespace, e.hm); !ok {
						if ep.Flags.Whitelisted() {
							e.diagnostics = append(e.diagnostics, Diagnostic{
								Kind: OutParamMismatch, EntrypointName: ep.Name,
								CallCounter: p.CallCounter, Frame: e.frame,
								Detail: "tolerated: no live mapping for element of param " + pd.Name,
							})
						} else {
							return args, gltraceerr.Newf(gltraceerr.HandleUnknown, "replay: %s param %q: no live mapping for trace handle %d in namespace %s", ep.Name, pd.Name, unknown, pd.Namespace)
						}
					}
				}
				cp.ClientMem = buf
			}
		}

		args.Params[i] = cp
	}

	return args, nil
}

// elemSize looks up a client-memory element's byte size from the type
// registry, defaulting to 4 (the common GLuint/GLenum/GLfloat width)
// when the registry has no entry or none was configured.
func (e *Engine) elemSize(id ctypes.ID) uint32 {
	if e.types == nil {
		return 4
	}
	if t := e.types.TypeByID(id); t != nil && t.Size > 0 {
		return uint32(t.Size)
	}
	return 4
}

// captureOutputs performs spec §4.H.2 step 4: bind newly generated
// handles and erase deleted ones. It stores no out-parameter bytes;
// checkDivergence reads them from result directly.
func (e *Engine) captureOutputs(ep *entry.Entrypoint, p *packet.Packet, result CallResult) {
	if ep.ReturnNamespace != handle.None && p.Return != nil {
		e.hm.Bind(ep.ReturnNamespace, handle.Value(p.Return.ValueBits), handle.Value(result.GeneratedHandle))
	}

	for i, pd := range ep.Params {
		if pd.Namespace == handle.None || i >= len(p.Params) || p.Params[i].ClientMem == nil {
			continue
		}
		ref := p.Params[i].ClientMem

		switch pd.Direction {
		case entry.Out:
			// A handle-generating array (e.g. glGenTextures): bind
			// each element using the recorded trace value at the same
			// offset and the live value the driver just produced.
			if i >= len(result.OutMem) || result.OutMem[i] == nil {
				continue
			}
			traceBytes := clientMemSlice(p, ref.Offset, uint32(len(result.OutMem[i])))
			bindHandleArray(traceBytes, result.OutMem[i], pd.Namespace, e.hm)
		case entry.In, entry.InOut:
			// A handle-deleting array (e.g. glDeleteTextures): the
			// driver has now processed the live handles remapped in
			// at step 1-2; erase the trace-side mappings.
			elemSize := e.elemSize(ref.TypeID)
			traceBytes := clientMemSlice(p, ref.Offset, ref.Count*elemSize)
			unbindHandleArray(traceBytes, elemSize, pd.Namespace, e.hm)
		}
	}
}

// remapHandleArray rewrites each element of buf in place from its
// trace handle to its live counterpart. ok is false if any element has
// no live mapping, in which case unknown is the first such trace
// handle and buf is left with every element it could remap already
// rewritten (the caller treats this as a hard failure or a tolerated
// diagnostic depending on ep.Flags.Whitelisted).
func remapHandleArray(buf []byte, elemSize uint32, ns handle.Namespace, hm *handle.Map) (unknown handle.Value, ok bool) {
	if elemSize != 4 && elemSize != 8 {
		return 0, true
	}
	ok = true
	for off := uint32(0); off+elemSize <= uint32(len(buf)); off += elemSize {
		d := wire.NewDecoder(buf[off : off+elemSize])
		var trace handle.Value
		if elemSize == 4 {
			trace = handle.Value(d.U32())
		} else {
			trace = handle.Value(d.U64())
		}
		live, found := hm.Lookup(ns, trace)
		if !found {
			if ok {
				unknown, ok = trace, false
			}
			continue
		}
		enc := wire.NewEncoder(int(elemSize))
		if elemSize == 4 {
			enc.U32(uint32(live))
		} else {
			enc.U64(uint64(live))
		}
		copy(buf[off:off+elemSize], enc.Bytes())
	}
	return unknown, ok
}

func bindHandleArray(traceBytes, liveBytes []byte, ns handle.Namespace, hm *handle.Map) {
	if traceBytes == nil {
		return
	}
	elemSize := uint32(4)
	n := len(traceBytes)
	if n > len(liveBytes) {
		n = len(liveBytes)
	}
	for off := uint32(0); off+elemSize <= uint32(n); off += elemSize {
		trace := handle.Value(wire.NewDecoder(traceBytes[off : off+elemSize]).U32())
		live := handle.Value(wire.NewDecoder(liveBytes[off : off+elemSize]).U32())
		hm.Bind(ns, trace, live)
	}
}

func unbindHandleArray(traceBytes []byte, elemSize uint32, ns handle.Namespace, hm *handle.Map) {
	if traceBytes == nil || elemSize == 0 {
		return
	}
	for off := uint32(0); off+elemSize <= uint32(len(traceBytes)); off += elemSize {
		var trace handle.Value
		if elemSize == 8 {
			trace = handle.Value(wire.NewDecoder(traceBytes[off : off+elemSize]).U64())
		} else {
			trace = handle.Value(wire.NewDecoder(traceBytes[off : off+4]).U32())
		}
		hm.Unbind(ns, trace)
	}
}
