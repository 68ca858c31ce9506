package replay

import (
	"errors"
	"testing"

	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/handle"
	"github.com/tracegl/gltrace/internal/wire"
	"github.com/tracegl/gltrace/packet"
)

// scriptedDriver is a fake Driver whose Invoke return value is queued
// by the test and whose calls are recorded for assertion.
type scriptedDriver struct {
	NullDriver
	results []CallResult
	calls   []string
}

func (d *scriptedDriver) Invoke(ep *entry.Entrypoint, args CallArgs) (CallResult, error) {
	d.calls = append(d.calls, ep.Name)
	if len(d.results) == 0 {
		return CallResult{}, nil
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r, nil
}

func u32le(v uint32) []byte {
	e := wire.NewEncoder(4)
	e.U32(v)
	return e.Bytes()
}

func newTestEngine(drv Driver, opts Options) *Engine {
	return New(nil, drv, nil, nil, opts)
}

func TestDispatchGenTexturesBindsGeneratedHandle(t *testing.T) {
	drv := &scriptedDriver{results: []CallResult{
		{OutMem: [][]byte{nil, u32le(42)}},
	}}
	e := newTestEngine(drv, Options{})

	p := &packet.Packet{
		EntrypointID: entry.GlGenTextures,
		CallCounter:  1,
		Params: []packet.Param{
			{ValueBits: 1},
			{ClientMem: &packet.ClientMemRef{Offset: 0, Count: 1, TypeID: ctypes.UInt, Namespace: handle.Texture}},
		},
		ClientMem: u32le(7),
	}

	if err := e.dispatch(p); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	live, ok := e.hm.Lookup(handle.Texture, 7)
	if !ok || live != 42 {
		t.Fatalf("handle map after gen: live=%d ok=%v, want 42 true", live, ok)
	}
}

func TestDispatchDeleteTexturesUnbindsHandle(t *testing.T) {
	drv := &scriptedDriver{}
	e := newTestEngine(drv, Options{})
	e.hm.Bind(handle.Texture, 7, 42)

	p := &packet.Packet{
		EntrypointID: entry.GlDeleteTextures,
		CallCounter:  2,
		Params: []packet.Param{
			{ValueBits: 1},
			{ClientMem: &packet.ClientMemRef{Offset: 0, Count: 1, TypeID: ctypes.UInt, Namespace: handle.Texture}},
		},
		ClientMem: u32le(7),
	}

	if err := e.dispatch(p); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, ok := e.hm.Lookup(handle.Texture, 7); ok {
		t.Fatal("expected trace handle 7 to be unbound after glDeleteTextures")
	}
	// The driver must have been invoked with the live handle, not the
	// trace handle, in the remapped client-memory bytes.
	// (Checked indirectly: dispatch would have returned HandleUnknown
	// above if the lookup required for remapping had failed.)
}

func TestDispatchDeleteTexturesUnknownHandleFails(t *testing.T) {
	drv := &scriptedDriver{}
	e := newTestEngine(drv, Options{})

	p := &packet.Packet{
		EntrypointID: entry.GlDeleteTextures,
		CallCounter:  3,
		Params: []packet.Param{
			{ValueBits: 1},
			{ClientMem: &packet.ClientMemRef{Offset: 0, Count: 1, TypeID: ctypes.UInt, Namespace: handle.Texture}},
		},
		ClientMem: u32le(99),
	}

	err := e.dispatch(p)
	if err == nil {
		t.Fatal("expected HandleUnknown error for unmapped trace handle")
	}
	if !errors.Is(err, gltraceerr.HandleUnknown) {
		t.Fatalf("dispatch err = %v, want HandleUnknown", err)
	}
}

func TestDispatchCreateProgramBindsScalarReturn(t *testing.T) {
	drv := &scriptedDriver{results: []CallResult{
		{HasReturn: true, ReturnBits: 99, GeneratedHandle: 99},
	}}
	e := newTestEngine(drv, Options{})

	p := &packet.Packet{
		EntrypointID: entry.GlCreateProgram,
		CallCounter:  4,
		Return:       &packet.Param{ValueBits: 5},
	}

	if err := e.dispatch(p); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	live, ok := e.hm.Lookup(handle.Program, 5)
	if !ok || live != 99 {
		t.Fatalf("handle map after glCreateProgram: live=%d ok=%v, want 99 true", live, ok)
	}
}

func TestCheckDivergenceReturnMismatchContinuesByDefault(t *testing.T) {
	drv := &scriptedDriver{results: []CallResult{
		{HasReturn: true, ReturnBits: 0x500},
	}}
	e := newTestEngine(drv, Options{CheckReturnValue: true})

	p := &packet.Packet{
		EntrypointID: entry.GlGetError,
		CallCounter:  5,
		Return:       &packet.Param{ValueBits: 0},
	}

	if err := e.dispatch(p); err != nil {
		t.Fatalf("dispatch should continue past a diagnostic in non-strict mode: %v", err)
	}
	diags := e.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != ReturnMismatch {
		t.Fatalf("diagnostics = %+v, want one ReturnMismatch", diags)
	}
}

func TestCheckDivergenceReturnMismatchEscalatesInStrictMode(t *testing.T) {
	drv := &scriptedDriver{results: []CallResult{
		{HasReturn: true, ReturnBits: 0x500},
	}}
	e := newTestEngine(drv, Options{CheckReturnValue: true, Strict: true})

	p := &packet.Packet{
		EntrypointID: entry.GlGetError,
		CallCounter:  6,
		Return:       &packet.Param{ValueBits: 0},
	}

	err := e.dispatch(p)
	if err == nil {
		t.Fatal("expected strict-mode escalation to a hard error")
	}
	if !errors.Is(err, gltraceerr.ReplayDivergence) {
		t.Fatalf("dispatch err = %v, want ReplayDivergence", err)
	}
}

func TestCheckDivergenceDisabledRecordsNothing(t *testing.T) {
	drv := &scriptedDriver{results: []CallResult{
		{HasReturn: true, ReturnBits: 0x500},
	}}
	e := newTestEngine(drv, Options{}) // CheckReturnValue off

	p := &packet.Packet{
		EntrypointID: entry.GlGetError,
		CallCounter:  7,
		Return:       &packet.Param{ValueBits: 0},
	}
	if err := e.dispatch(p); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(e.Diagnostics()) != 0 {
		t.Fatalf("diagnostics = %+v, want none with checks disabled", e.Diagnostics())
	}
}

func TestUnknownEntrypointIsFormatError(t *testing.T) {
	e := newTestEngine(&scriptedDriver{}, Options{})
	p := &packet.Packet{EntrypointID: entry.ID(0xfff0), CallCounter: 8}
	err := e.dispatch(p)
	if !errors.Is(err, gltraceerr.FormatError) {
		t.Fatalf("dispatch err = %v, want FormatError", err)
	}
}

func TestStateStringCoversAllStates(t *testing.T) {
	for s := Idle; s <= Closed; s++ {
		if got := s.String(); got == "Unknown" {
			t.Fatalf("state %d has no String() case", s)
		}
	}
}
