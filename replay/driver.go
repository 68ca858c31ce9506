// Package replay implements the replay engine (spec §4.H/§5): a
// single-threaded cooperative state machine that drives a trace
// packet stream against a live GL driver, maintaining the trace→live
// handle map and detecting divergence.
package replay

import (
	"github.com/tracegl/gltrace/entry"
)

// CallParam is one argument ready to pass to the live driver: its
// scalar bit pattern, already remapped through the handle map where
// applicable, plus any client-memory bytes (materialized scratch for
// out params, or remapped/verbatim bytes for in params).
type CallParam struct {
	ValueBits uint64
	ClientMem []byte
}

// CallArgs is a fully remapped, materialized argument list, ready for
// Driver.Invoke (spec §4.H.2 steps 1-2).
type CallArgs struct {
	Params []CallParam
}

// CallResult is what the live driver produced for one call (spec
// §4.H.2 step 3-4).
type CallResult struct {
	HasReturn  bool
	ReturnBits uint64

	// OutMem holds, for each parameter with out/inout client memory,
	// the bytes the driver wrote back; nil for parameters without one.
	OutMem [][]byte

	// GeneratedHandle is the live handle produced by a handle-creating
	// scalar-return call (e.g. glCreateProgram); 0 if this call's
	// handle output lives in a ClientMem out-array instead (e.g.
	// glGenTextures) or the call creates nothing.
	GeneratedHandle uint64
}

// Driver is the live-GL collaborator the engine drives. Its
// implementation is out of this module's scope (spec §6.6 "the engine
// is given an entrypoint-resolver function at init; it calls only
// functions it has resolved"); only the shape of the calls the engine
// makes is specified here.
type Driver interface {
	// Invoke calls the live GL function for ep with args and reports
	// what it produced.
	Invoke(ep *entry.Entrypoint, args CallArgs) (CallResult, error)

	// GetError performs the epilog glGetError probe (spec §4.H.2 step
	// 5), skipped in benchmark mode.
	GetError() (code uint32, err error)

	// ReadFrameDigest reads back the default framebuffer and digests
	// it, for the per-swap frame-digest divergence check (spec
	// §4.H.3). Skipped in benchmark mode.
	ReadFrameDigest() (digest uint64, err error)

	// ContextLost reports whether the most recent call indicated a
	// non-recoverable context loss (spec §7 ContextLost).
	ContextLost() bool
}

// NullDriver is a Driver that performs no live GL calls, returning
// zero values throughout. Useful for exercising the engine's state
// machine, handle-map bookkeeping, and divergence-reporting control
// flow without a live GL context.
type NullDriver struct{}

func (NullDriver) Invoke(ep *entry.Entrypoint, args CallArgs) (CallResult, error) {
	return CallResult{OutMem: make([][]byte, len(args.Params))}, nil
}
func (NullDriver) GetError() (uint32, error)        { return 0, nil }
func (NullDriver) ReadFrameDigest() (uint64, error) { return 0, nil }
func (NullDriver) ContextLost() bool                { return false }

// WindowEventKind classifies one WindowSystem event (spec §6.5).
type WindowEventKind uint8

const (
	WindowMapped WindowEventKind = iota
	WindowUnmapped
	WindowResized
	WindowKey
	WindowClose
)

// WindowEvent is one pumped window-system event.
type WindowEvent struct {
	Kind          WindowEventKind
	Width, Height int
}

// WindowSystem is the window-system collaborator (spec §6.5): create
// window, get native handle, set title, pump events, request resize,
// destroy. Its implementation is out of this module's scope.
type WindowSystem interface {
	CreateWindow(width, height, msaaSamples int) error
	NativeHandle() uintptr
	SetTitle(title string) error
	PumpEvents() ([]WindowEvent, error)
	RequestResize(width, height int) error
	Destroy() error
}

// NullWindowSystem is a WindowSystem that never reports a resize
// confirmation, used when the engine is driven headless.
type NullWindowSystem struct{}

func (NullWindowSystem) CreateWindow(int, int, int) error   { return nil }
func (NullWindowSystem) NativeHandle() uintptr              { return 0 }
func (NullWindowSystem) SetTitle(string) error              { return nil }
func (NullWindowSystem) PumpEvents() ([]WindowEvent, error) { return nil, nil }
func (NullWindowSystem) RequestResize(int, int) error       { return nil }
func (NullWindowSystem) Destroy() error                     { return nil }
