package snapshot

import (
	"github.com/pkg/errors"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/handle"
)

// RestoreOptions configures Restore (spec §4.G restore step 4).
type RestoreOptions struct {
	// DisableFrontbufferRestore skips uploading the default
	// framebuffer's pixel contents.
	DisableFrontbufferRestore bool
}

// Restore applies doc to a fresh Driver, populating hm with the
// resulting trace_handle -> live_handle bindings for every namespace
// (spec §4.G restore algorithm). hm must be empty; Restore is not
// incremental.
func Restore(doc *Document, drv Driver, archive blob.Archive, hm *handle.Map, opts RestoreOptions) error {
	ctxLive := make(map[handle.Value]handle.Value, len(doc.Contexts))
	for _, c := range doc.Contexts {
		live, err := drv.CreateContext(c)
		if err != nil {
			return errors.Wrapf(err, "snapshot: create context %d", c.ID)
		}
		hm.Bind(handle.Context, c.ID, live)
		ctxLive[c.ID] = live
	}

	for _, sec := range doc.sectionsInRestoreOrder() {
		for _, obj := range *sec.objects {
			live, err := drv.CreateObject(sec.namespace, obj, archive)
			if err != nil {
				return errors.Wrapf(err, "snapshot: create %s %d", sec.name, obj.ID)
			}
			hm.Bind(sec.namespace, obj.ID, live)
		}
	}

	for _, c := range doc.Contexts {
		live := ctxLive[c.ID]
		if err := drv.RestoreContextState(live, c, hm); err != nil {
			return errors.Wrapf(err, "snapshot: restore context %d state", c.ID)
		}
	}

	if !opts.DisableFrontbufferRestore {
		if err := drv.RestoreDefaultFramebuffer(doc.Default, archive); err != nil {
			return errors.Wrap(err, "snapshot: restore default framebuffer")
		}
	}

	return nil
}
