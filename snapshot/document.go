// Package snapshot implements the state snapshot (spec §3.6/§4.G): a
// schema-versioned document tree capturing the full GL state of all
// contexts at one instant, and the capture/restore algorithms that
// walk it against a Driver collaborator.
package snapshot

import (
	"github.com/tracegl/gltrace/handle"
)

// SchemaVersion is bumped whenever the Document shape changes in a
// way that is not backward compatible.
const SchemaVersion = 1

// BlobRef is a reference to a payload in the trace's blob archive
// (spec §3.6 "the snapshot document carries only references (hash
// and size)", §6.3 "{blob:<name>, size:<N>, crc:<c>}").
type BlobRef struct {
	Blob string `json:"blob"`
	Size uint64 `json:"size"`
	CRC  uint64 `json:"crc"`
}

// Object is one per-object record in a namespace section. Fields is a
// driver-defined bag of queryable state (spec §3.6 lists the fields
// per namespace; the concrete field set is produced by the Driver
// collaborator, which is opaque to this package the same way GL
// itself is, per spec §1's treatment of the recording side).
type Object struct {
	ID     handle.Value           `json:"id"`
	Fields map[string]interface{} `json:"fields,omitempty"`

	// Payload is set when the object carries a large byte payload
	// (pixel data, buffer contents, program binary, …).
	Payload *BlobRef `json:"payload,omitempty"`
}

// Context is one context record (spec §3.6 "contexts").
type Context struct {
	ID             handle.Value            `json:"id"`
	ShareGroup     handle.Value            `json:"share_group"`
	Attribs        map[string]interface{}  `json:"attribs,omitempty"`
	Bindings       map[string]handle.Value `json:"bindings,omitempty"`
	Enables        []string                `json:"enables,omitempty"`
	CurrentProgram handle.Value            `json:"current_program"`
	CurrentVAO     handle.Value            `json:"current_vao"`
	Viewport       [4]int32                `json:"viewport"`
	Scissor        [4]int32                `json:"scissor"`
	ClearValues    map[string]interface{}  `json:"clear_values,omitempty"`
	PixelStore     map[string]int32        `json:"pixel_store,omitempty"`
}

// DefaultFramebuffer captures the window-system framebuffer's pixel
// contents (spec §3.6 "default framebuffer front/back color + depth +
// stencil pixel blobs"), read back last so it reflects the snapshot
// moment (spec §4.G capture step 3).
type DefaultFramebuffer struct {
	FrontColor *BlobRef `json:"front_color,omitempty"`
	BackColor  *BlobRef `json:"back_color,omitempty"`
	Depth      *BlobRef `json:"depth,omitempty"`
	Stencil    *BlobRef `json:"stencil,omitempty"`
}

// Document is the full snapshot tree (spec §3.6). Section order here
// is the fixed restore topological order (spec §4.G restore step 2):
// shaders, programs, buffers, textures, samplers, renderbuffers,
// framebuffers, VAOs, queries, sync, pipelines, lists, feedbacks.
type Document struct {
	SchemaVersion int `json:"schema_version"`

	Contexts []Context `json:"contexts"`

	Shaders            []Object `json:"shaders"`
	Programs           []Object `json:"programs"`
	Buffers            []Object `json:"buffers"`
	Textures           []Object `json:"textures"`
	Samplers           []Object `json:"samplers"`
	Renderbuffers      []Object `json:"renderbuffers"`
	Framebuffers       []Object `json:"framebuffers"`
	VertexArrays       []Object `json:"vertex_arrays"`
	Queries            []Object `json:"queries"`
	Syncs              []Object `json:"syncs"`
	Pipelines          []Object `json:"pipelines"`
	DisplayLists       []Object `json:"display_lists"`
	TransformFeedbacks []Object `json:"transform_feedbacks"`

	Default DefaultFramebuffer `json:"default_framebuffer"`
}

// section pairs one object section with the namespace it belongs to,
// so Restore can populate the handle map as it goes;
// sectionsInRestoreOrder lists the sections in the fixed topological
// order spec §4.G mandates.
type section struct {
	name      string
	namespace handle.Namespace
	objects   *[]Object
}

func (d *Document) sectionsInRestoreOrder() []section {
	return []section{
		{"shaders", handle.Shader, &d.Shaders},
		{"programs", handle.Program, &d.Programs},
		{"buffers", handle.Buffer, &d.Buffers},
		{"textures", handle.Texture, &d.Textures},
		{"samplers", handle.Sampler, &d.Samplers},
		{"renderbuffers", handle.Renderbuffer, &d.Renderbuffers},
		{"framebuffers", handle.Framebuffer, &d.Framebuffers},
		{"vertex_arrays", handle.VertexArray, &d.VertexArrays},
		{"queries", handle.Query, &d.Queries},
		{"syncs", handle.Sync, &d.Syncs},
		{"pipelines", handle.Pipeline, &d.Pipelines},
		{"display_lists", handle.DisplayList, &d.DisplayLists},
		{"transform_feedbacks", handle.TransformFeedback, &d.TransformFeedbacks},
	}
}
