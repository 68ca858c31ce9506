package snapshot

import (
	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/handle"
)

// Driver is the opaque live-GL collaborator that Capture and Restore
// drive. Its implementation (talking to a real GL context) is out of
// this module's scope, the same way recording-side GL interception is
// (spec §1); only the shape of the calls the algorithms make is
// specified here.
type Driver interface {
	// EnumerateContexts lists every live context (spec §4.G capture
	// step 1, applied to the context namespace).
	EnumerateContexts() ([]handle.Value, error)

	// CaptureContext reads one context's full state (spec §3.6
	// "contexts").
	CaptureContext(ctx handle.Value) (Context, error)

	// EnumerateHandles lists every live handle in ns (spec §4.G
	// capture step 1 "enumerate live handles via the driver's
	// introspection calls").
	EnumerateHandles(ns handle.Namespace) ([]handle.Value, error)

	// CaptureObject reads one object's queryable state and, for
	// namespaces carrying a byte payload (textures, buffers, programs,
	// shaders), stores that payload into archive and returns a
	// reference.
	CaptureObject(ns handle.Namespace, id handle.Value, archive blob.Archive) (Object, error)

	// CaptureDefaultFramebuffer reads back the window-system
	// framebuffer's pixels into archive (spec §4.G capture step 3,
	// run last).
	CaptureDefaultFramebuffer(archive blob.Archive) (DefaultFramebuffer, error)

	// CreateContext creates a live context from a recorded one (spec
	// §4.G restore step 1) and returns its live handle.
	CreateContext(c Context) (handle.Value, error)

	// CreateObject creates one live object in ns from a recorded
	// Object, uploading any payload from archive, and returns its
	// live handle (spec §4.G restore step 2).
	CreateObject(ns handle.Namespace, obj Object, archive blob.Archive) (handle.Value, error)

	// RestoreContextState rebinds a live context's bindings, enables,
	// current program/VAO, viewport and scissor (spec §4.G restore
	// step 3). hm is already populated for every namespace by the
	// time this is called.
	RestoreContextState(live handle.Value, c Context, hm *handle.Map) error

	// RestoreDefaultFramebuffer uploads default-framebuffer pixels
	// from archive (spec §4.G restore step 4, skippable via
	// Options.DisableFrontbufferRestore).
	RestoreDefaultFramebuffer(fb DefaultFramebuffer, archive blob.Archive) error
}

// NullDriver is a Driver that has nothing live to report and performs
// no restore side effects. It is useful for exercising Capture/Restore
// control flow (ordering, handle-map bookkeeping) without a real GL
// context.
type NullDriver struct{}

func (NullDriver) EnumerateContexts() ([]handle.Value, error)                { return nil, nil }
func (NullDriver) CaptureContext(handle.Value) (Context, error)              { return Context{}, nil }
func (NullDriver) EnumerateHandles(handle.Namespace) ([]handle.Value, error) { return nil, nil }
func (NullDriver) CaptureObject(_ handle.Namespace, id handle.Value, _ blob.Archive) (Object, error) {
	return Object{ID: id}, nil
}
func (NullDriver) CaptureDefaultFramebuffer(blob.Archive) (DefaultFramebuffer, error) {
	return DefaultFramebuffer{}, nil
}
func (NullDriver) CreateContext(Context) (handle.Value, error) { return 0, nil }
func (NullDriver) CreateObject(_ handle.Namespace, obj Object, _ blob.Archive) (handle.Value, error) {
	return obj.ID, nil
}
func (NullDriver) RestoreContextState(handle.Value, Context, *handle.Map) error     { return nil }
func (NullDriver) RestoreDefaultFramebuffer(DefaultFramebuffer, blob.Archive) error { return nil }
