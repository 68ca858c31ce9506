package replay

import (
	"bytes"
	"fmt"

	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/handle"
	"github.com/tracegl/gltrace/packet"
)

// DiagnosticKind classifies one divergence diagnostic (spec §4.H.3).
type DiagnosticKind uint8

const (
	ReturnMismatch DiagnosticKind = iota
	OutParamMismatch
	FrameDigestMismatch
)

func (k DiagnosticKind) String() string {
	switch k {
	case ReturnMismatch:
		return "return-value-mismatch"
	case OutParamMismatch:
		return "out-param-mismatch"
	case FrameDigestMismatch:
		return "frame-digest-mismatch"
	default:
		return "unknown-mismatch"
	}
}

// Diagnostic is one recorded divergence occurrence (spec §4.H.3
// "the first failing check in a packet records a diagnostic").
type Diagnostic struct {
	Kind           DiagnosticKind
	EntrypointName string
	CallCounter    uint64
	Frame          int
	Detail         string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (call=%d frame=%d): %s", d.Kind, d.EntrypointName, d.CallCounter, d.Frame, d.Detail)
}

// checkDivergence runs the three independently toggleable layers
// (spec §4.H.3) and records the first failing one as a Diagnostic. It
// returns a non-nil error only in Strict mode, which the caller
// escalates to HardFailure.
func (e *Engine) checkDivergence(ep *entry.Entrypoint, p *packet.Packet, result CallResult) error {
	if e.opts.CheckReturnValue && p.Return != nil && result.HasReturn {
		if diff := returnDiff(ep, p, result, e.hm); diff != "" {
			return e.recordDiagnostic(Diagnostic{
				Kind: ReturnMismatch, EntrypointName: ep.Name,
				CallCounter: p.CallCounter, Frame: e.frame, Detail: diff,
			})
		}
	}

	if e.opts.CheckOutParams {
		for i, rp := range p.Params {
			if rp.ClientMem == nil || i >= len(ep.Params) {
				continue
			}
			if ep.Params[i].Direction != entry.Out && ep.Params[i].Direction != entry.InOut {
				continue
			}
			if i >= len(result.OutMem) || result.OutMem[i] == nil {
				continue
			}
			recorded := clientMemSlice(p, rp.ClientMem.Offset, uint32(len(result.OutMem[i])))
			if !bytes.Equal(recorded, result.OutMem[i]) {
				return e.recordDiagnostic(Diagnostic{
					Kind: OutParamMismatch, EntrypointName: ep.Name,
					CallCounter: p.CallCounter, Frame: e.frame,
					Detail: fmt.Sprintf("param %q: %d bytes differ", ep.Params[i].Name, len(result.OutMem[i])),
				})
			}
		}
	}

	return nil
}

// checkFrameDigest runs the per-swap frame-digest check (spec
// §4.H.3), independent of checkDivergence since it fires once per
// frame boundary rather than per packet.
func (e *Engine) checkFrameDigest(recorded uint64) error {
	if !e.opts.CheckFrameDigest || e.opts.Benchmark {
		return nil
	}
	digest, err := e.drv.ReadFrameDigest()
	if err != nil {
		return err
	}
	if recorded != 0 && digest != recorded {
		return e.recordDiagnostic(Diagnostic{
			Kind: FrameDigestMismatch, EntrypointName: "(swap)",
			CallCounter: 0, Frame: e.frame,
			Detail: fmt.Sprintf("recorded digest %#x, live digest %#x", recorded, digest),
		})
	}
	return nil
}

// returnDiff compares a call's recorded return to what the live driver
// produced (spec §4.H.3 "enum/int equality; handles compared through
// the map"). For a handle-creating return, captureOutputs has already
// bound trace_handle -> live_handle by the time this runs, so the
// check is "does the map agree with what the driver just returned"
// rather than a raw bit-pattern comparison.
func returnDiff(ep *entry.Entrypoint, p *packet.Packet, result CallResult, hm *handle.Map) string {
	if ep.ReturnNamespace != handle.None {
		live, ok := hm.Lookup(ep.ReturnNamespace, handle.Value(p.Return.ValueBits))
		if !ok || uint64(live) != result.ReturnBits {
			return fmt.Sprintf("recorded trace handle %d did not bind to live %#x", p.Return.ValueBits, result.ReturnBits)
		}
		return ""
	}
	if p.Return.ValueBits != result.ReturnBits {
		return fmt.Sprintf("recorded %#x, live %#x", p.Return.ValueBits, result.ReturnBits)
	}
	return ""
}

func clientMemSlice(p *packet.Packet, offset, n uint32) []byte {
	end := uint64(offset) + uint64(n)
	if end > uint64(len(p.ClientMem)) {
		return nil
	}
	return p.ClientMem[offset:end]
}

// recordDiagnostic appends d to the engine's diagnostic log and, in
// Strict mode, turns it into an error the caller escalates to
// HardFailure (spec §4.H.3 "continues (default) or transitions to
// HardFailure (strict mode)").
func (e *Engine) recordDiagnostic(d Diagnostic) error {
	e.diagnostics = append(e.diagnostics, d)
	if e.log != nil {
		logEntry := e.log.WithFields(map[string]interface{}{
			"kind":  d.Kind.String(),
			"call":  d.CallCounter,
			"frame": d.Frame,
		})
		if e.opts.Strict {
			logEntry.Error(d.Detail)
		} else {
			logEntry.Warn(d.Detail)
		}
	}
	if e.opts.Strict {
		err := gltraceerr.New(gltraceerr.ReplayDivergence, d.String())
		gltraceerr.AddLocation(err, gltraceerr.Location{CallCounter: d.CallCounter, Frame: d.Frame})
		return err
	}
	return nil
}

// Diagnostics returns every divergence diagnostic recorded so far.
func (e *Engine) Diagnostics() []Diagnostic {
	return e.diagnostics
}
