package replay

import (
	"context"

	"github.com/tracegl/gltrace/packet"
)

// RunLoopFrames drives the engine once through the whole stream if
// opts.LoopCount == 0 and !opts.Endless (the ordinary case); otherwise
// it implements SPEC_FULL §J's loop-frame/loop-len/loop-count replay
// mode: repeat the [LoopFrame, LoopFrame+LoopLen) range, re-running
// the snapshot-driven seek (spec §4.H.5) at the start of every
// iteration, either Endless or LoopCount times.
//
// keyframes is forwarded to SeekToFrame on every iteration after the
// first; the first pass always plays from the beginning via Run.
func (e *Engine) RunLoopFrames(ctx context.Context, keyframes map[int]uint64) error {
	if err := e.Run(ctx); err != nil {
		return err
	}
	if e.opts.LoopLen <= 0 || (!e.opts.Endless && e.opts.LoopCount <= 0) {
		return nil
	}

	for iter := 0; e.opts.Endless || iter < e.opts.LoopCount; iter++ {
		select {
		case <-ctx.Done():
			e.state = Closed
			return ctx.Err()
		default:
		}

		if err := e.SeekToFrame(e.opts.LoopFrame, keyframes); err != nil {
			return err
		}
		e.state = ProcessingFrame

		target := e.opts.LoopFrame + e.opts.LoopLen
		for e.frame < target {
			if err := e.stepOneFrame(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// stepOneFrame drives the engine through exactly one frame boundary,
// used by RunLoopFrames to bound a loop iteration to LoopLen frames
// without relying on Run's own AtEOF/HardFailure exit conditions.
func (e *Engine) stepOneFrame(ctx context.Context) error {
	startFrame := e.frame
	for e.frame == startFrame {
		select {
		case <-ctx.Done():
			e.state = Closed
			return ctx.Err()
		default:
		}

		p, err := e.reader.ReadNextPacket()
		if err != nil {
			return err
		}
		if p.Type == packet.InternalTraceCommand {
			if err := e.handleInternalCommand(p); err != nil {
				return err
			}
			continue
		}
		if err := e.dispatch(p); err != nil {
			return err
		}
		ep := e.entries.EntrypointByID(p.EntrypointID)
		if ep != nil && ep.Flags.Swap() {
			if err := e.onFrameBoundary(ctx, p); err != nil {
				return err
			}
		}
	}
	return nil
}
