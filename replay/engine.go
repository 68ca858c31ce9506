package replay

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/handle"
	"github.com/tracegl/gltrace/packet"
	"github.com/tracegl/gltrace/snapshot"
	"github.com/tracegl/gltrace/tracefile"
)

// State is one of the formal replay-engine states (spec §4.H.1):
// Idle → ProcessingFrame ⇄ PendingWindowResize → AtFrameBoundary →
// {ProcessingFrame | AtEOF | HardFailure}. Closed is reached only via
// cooperative cancellation (spec §5).
type State uint8

const (
	Idle State = iota
	ProcessingFrame
	PendingWindowResize
	AtFrameBoundary
	AtEOF
	HardFailure
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case ProcessingFrame:
		return "ProcessingFrame"
	case PendingWindowResize:
		return "PendingWindowResize"
	case AtFrameBoundary:
		return "AtFrameBoundary"
	case AtEOF:
		return "AtEOF"
	case HardFailure:
		return "HardFailure"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// DivergenceMode names an "off"/"on" setting for a divergence check.
// Nothing in this module uses it: the three checks are independently
// toggleable booleans in Options (spec §4.H.3), and cmd/gltrace sets
// those booleans directly.
type DivergenceMode uint8

const (
	DivergenceOff DivergenceMode = iota
	DivergenceOn
)

// Options configures one Engine run (spec §4.H, plus the
// benchmark/loop-frame extensions named in SPEC_FULL §J).
type Options struct {
	CheckReturnValue bool
	CheckOutParams   bool
	CheckFrameDigest bool

	// Strict transitions the engine to HardFailure on the first
	// divergence diagnostic instead of continuing (spec §4.H.3
	// policy).
	Strict bool

	// Benchmark suppresses the glGetError epilog probe and per-frame
	// digesting to measure raw replay throughput (SPEC_FULL §J,
	// named but not otherwise specified in spec §6.4's CLI table).
	Benchmark bool

	// LoopFrame/LoopLen/LoopCount repeat a frame range a bounded
	// number of times (SPEC_FULL §J); LoopCount == 0 means "run once,
	// no looping". Endless overrides LoopCount.
	LoopFrame int
	LoopLen   int
	LoopCount int
	Endless   bool

	DisableFrontbufferRestore bool
}

// Engine drives one trace file's packet stream against a Driver (spec
// §4.H). It is not safe for concurrent use (spec §5 "single-threaded
// cooperative").
type Engine struct {
	log     *logrus.Entry
	reader  *tracefile.Reader
	entries *entry.Registry
	types   *ctypes.Registry
	drv     Driver
	win     WindowSystem
	snapDrv snapshot.Driver
	opts    Options

	hm          *handle.Map
	state       State
	frame       int
	diagnostics []Diagnostic
	hardErr     error

	traceWindowW, traceWindowH int
	liveWindowW, liveWindowH   int
}

// New constructs an Engine. The entrypoint and type registries come
// from reader.DecodeOptions, falling back to the process-global
// registries where those are nil; win defaults to NullWindowSystem.
func New(reader *tracefile.Reader, drv Driver, win WindowSystem, log *logrus.Entry, opts Options) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if win == nil {
		win = NullWindowSystem{}
	}
	entries := entry.Default()
	types := ctypes.Default()
	if reader != nil {
		if reader.DecodeOptions.Entrypoints != nil {
			entries = reader.DecodeOptions.Entrypoints
		}
		if reader.DecodeOptions.Types != nil {
			types = reader.DecodeOptions.Types
		}
	}
	return &Engine{
		log:     log.WithField("component", "replay.engine"),
		reader:  reader,
		entries: entries,
		types:   types,
		drv:     drv,
		win:     win,
		snapDrv: snapshot.NullDriver{},
		opts:    opts,
		hm:      handle.NewMap(),
		state:   Idle,
	}
}

// SetSnapshotDriver installs the collaborator used to apply
// state-snapshot packets (spec §5 step 3's
// internal_trace_command(kind=state_snapshot) and §4.H.5 seek).
// Defaults to snapshot.NullDriver.
func (e *Engine) SetSnapshotDriver(drv snapshot.Driver) {
	e.snapDrv = drv
}

// State returns the engine's current formal state.
func (e *Engine) State() State { return e.state }

// Frame returns the number of swap fences processed so far.
func (e *Engine) Frame() int { return e.frame }

// HandleMap returns the engine's trace→live handle map (spec §3.7).
func (e *Engine) HandleMap() *handle.Map { return e.hm }

// Err returns the error that drove the engine to HardFailure, if any.
func (e *Engine) Err() error { return e.hardErr }

// Run drives the engine from its current state to AtEOF, HardFailure,
// or Closed (on ctx cancellation), processing one packet per
// iteration (spec §4.H.1). Cancellation is checked between packets
// and at every frame boundary (spec §5 "Cancellation & timeouts").
func (e *Engine) Run(ctx context.Context) error {
	e.state = ProcessingFrame
	for {
		select {
		case <-ctx.Done():
			e.state = Closed
			return gltraceerr.Wrap(gltraceerr.CancelRequested, ctx.Err(), "replay: cancelled")
		default:
		}

		p, err := e.reader.ReadNextPacket()
		if err == tracefile.ErrEOF {
			e.state = AtEOF
			return nil
		}
		if err != nil {
			e.state = HardFailure
			e.hardErr = err
			return err
		}

		if p.Type == packet.InternalTraceCommand {
			if err := e.handleInternalCommand(p); err != nil {
				e.state = HardFailure
				e.hardErr = err
				return err
			}
			continue
		}

		if err := e.dispatch(p); err != nil {
			e.state = HardFailure
			e.hardErr = gltraceerr.AddLocation(err, gltraceerr.Location{CallCounter: p.CallCounter, Frame: e.frame})
			return e.hardErr
		}

		ep := e.entries.EntrypointByID(p.EntrypointID)
		if ep != nil && ep.Flags.Swap() {
			if err := e.onFrameBoundary(ctx, p); err != nil {
				e.state = HardFailure
				e.hardErr = err
				return err
			}
		}
	}
}

// onFrameBoundary fires right after a swap packet (spec §4.H.1
// "AtFrameBoundary ... fires right after a swap packet and is the
// only point at which snapshots may be taken/applied").
func (e *Engine) onFrameBoundary(ctx context.Context, swap *packet.Packet) error {
	e.frame++
	e.state = AtFrameBoundary

	select {
	case <-ctx.Done():
		e.state = Closed
		return gltraceerr.Wrap(gltraceerr.CancelRequested, ctx.Err(), "replay: cancelled at frame boundary")
	default:
	}

	var recordedDigest uint64
	if kv, ok := swap.KV["frame_digest"]; ok && kv.Kind == packet.KVUint64 {
		recordedDigest = kv.Uint64
	}
	if err := e.checkFrameDigest(recordedDigest); err != nil {
		return err
	}

	if err := e.maybeHandleWindowResize(ctx); err != nil {
		return err
	}

	e.state = ProcessingFrame
	return nil
}

// maybeHandleWindowResize implements spec §4.H.4: when the trace's
// implied window size diverges from the live window, pause, request a
// resize, and wait for the confirming event before resuming.
func (e *Engine) maybeHandleWindowResize(ctx context.Context) error {
	if e.traceWindowW == 0 || (e.traceWindowW == e.liveWindowW && e.traceWindowH == e.liveWindowH) {
		return nil
	}

	e.state = PendingWindowResize
	if err := e.win.RequestResize(e.traceWindowW, e.traceWindowH); err != nil {
		return gltraceerr.Wrap(gltraceerr.IOError, err, "replay: request window resize")
	}
	for {
		select {
		case <-ctx.Done():
			return gltraceerr.Wrap(gltraceerr.CancelRequested, ctx.Err(), "replay: cancelled during resize")
		default:
		}
		events, err := e.win.PumpEvents()
		if err != nil {
			return gltraceerr.Wrap(gltraceerr.IOError, err, "replay: pump window events")
		}
		for _, ev := range events {
			if ev.Kind == WindowResized {
				e.liveWindowW, e.liveWindowH = ev.Width, ev.Height
				return nil
			}
			if ev.Kind == WindowClose {
				return gltraceerr.New(gltraceerr.CancelRequested, "replay: window closed during resize")
			}
		}
		if e.liveWindowW == e.traceWindowW && e.liveWindowH == e.traceWindowH {
			return nil
		}
	}
}

// NotifyTraceWindowSize records the window size the trace implies, as
// surfaced by the recorder via a packet's KV side channel; the CLI or
// embedding host calls this when it observes one (spec §4.H.4).
func (e *Engine) NotifyTraceWindowSize(w, h int) {
	e.traceWindowW, e.traceWindowH = w, h
}

// NotifyLiveWindowSize records the window size the host's window
// system currently reports.
func (e *Engine) NotifyLiveWindowSize(w, h int) {
	e.liveWindowW, e.liveWindowH = w, h
}
