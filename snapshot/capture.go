package snapshot

import (
	"github.com/pkg/errors"

	"github.com/tracegl/gltrace/blob"
)

// captureSections lists the object namespaces in the order spec §4.G
// capture step 1 walks them. Unlike restore, capture order has no
// dependency requirement, but a fixed order still keeps archive
// layout and logs deterministic across runs.
func captureSections(d *Document) []section {
	return d.sectionsInRestoreOrder()
}

// Capture builds a Document from a live Driver (spec §4.G capture
// algorithm). Payloads are written into archive as they're
// discovered; the default framebuffer is read back last so it
// reflects the snapshot moment.
func Capture(drv Driver, archive blob.Archive) (*Document, error) {
	doc := &Document{SchemaVersion: SchemaVersion}

	ctxIDs, err := drv.EnumerateContexts()
	if err != nil {
		return nil, errors.Wrap(err, "snapshot: enumerate contexts")
	}
	for _, id := range ctxIDs {
		c, err := drv.CaptureContext(id)
		if err != nil {
			return nil, errors.Wrapf(err, "snapshot: capture context %d", id)
		}
		doc.Contexts = append(doc.Contexts, c)
	}

	for _, sec := range captureSections(doc) {
		ids, err := drv.EnumerateHandles(sec.namespace)
		if err != nil {
			return nil, errors.Wrapf(err, "snapshot: enumerate %s", sec.name)
		}
		for _, id := range ids {
			obj, err := drv.CaptureObject(sec.namespace, id, archive)
			if err != nil {
				return nil, errors.Wrapf(err, "snapshot: capture %s %d", sec.name, id)
			}
			*sec.objects = append(*sec.objects, obj)
		}
	}

	fb, err := drv.CaptureDefaultFramebuffer(archive)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot: capture default framebuffer")
	}
	doc.Default = fb

	return doc, nil
}
