// Package handle implements the handle-namespace model (spec §3.3) and
// the replay-time trace->live handle map (spec §3.7). Two independent
// recordings of the same handle value in the same namespace refer to
// the same logical object; cross-namespace handle equality is
// undefined, which is why Map keys its tables by Namespace first.
package handle

//go:generate stringer -type=Namespace

// Namespace is a closed enumeration of GL object classes. A handle
// value is only meaningful together with its namespace.
type Namespace uint8

const (
	// None is used for non-handle params; namespace 0 / value 0
	// always maps to 0 (spec §3.7).
	None Namespace = iota
	Texture
	Buffer
	Program
	Shader
	Framebuffer
	Renderbuffer
	Sampler
	Query
	VertexArray
	Pipeline
	Sync
	DisplayList
	Location
	Fence
	TransformFeedback
	Context

	numNamespaces
)

// Value is a handle value within some Namespace. 0 is always the null
// handle.
type Value uint64
