// Package entry is the entrypoint registry: a static, process-global
// table describing every GL/GLX/WGL/EGL entrypoint a trace packet may
// invoke. Like ctypes, it is generated (see cmd/genregistry) from
// registry/entrypoints.txt so the recorder and replayer never drift.
package entry

import (
	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/handle"
)

// ID identifies an entrypoint in the registry. Stable across recorder
// and replayer versions sharing the same registry generation.
type ID uint16

// Invalid is the zero value; no descriptor has this id.
const Invalid ID = 0

// Direction classifies a parameter's data flow, per spec §3.2.
type Direction uint8

const (
	In Direction = iota
	Out
	InOut
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "inout"
	default:
		return "invalid"
	}
}

// Param describes one entrypoint parameter.
type Param struct {
	Name      string
	Type      ctypes.ID
	Namespace handle.Namespace
	Direction Direction
}

// Flags are the per-entrypoint category attributes of spec §3.2
// ("attribute flags (swap, draw, make-current, whitelisted,
// has-side-effect, is-listable)").
type Flags uint8

const (
	FlagSwap Flags = 1 << iota
	FlagDraw
	FlagMakeCurrent
	FlagWhitelisted
	FlagHasSideEffect
	FlagIsListable
)

func (f Flags) Swap() bool          { return f&FlagSwap != 0 }
func (f Flags) Draw() bool          { return f&FlagDraw != 0 }
func (f Flags) MakeCurrent() bool   { return f&FlagMakeCurrent != 0 }
func (f Flags) Whitelisted() bool   { return f&FlagWhitelisted != 0 }
func (f Flags) HasSideEffect() bool { return f&FlagHasSideEffect != 0 }
func (f Flags) IsListable() bool    { return f&FlagIsListable != 0 }

// Entrypoint is one registry record (spec §3.2).
type Entrypoint struct {
	ID     ID
	Name   string
	Return ctypes.ID
	Params []Param
	Flags  Flags

	// ReturnNamespace is non-None for entrypoints that generate a
	// handle via their scalar return value (e.g. glCreateProgram,
	// glFenceSync) rather than via an out-direction client-memory
	// array (e.g. glGenTextures). The replay engine uses this to know
	// which namespace to bind the live return value into.
	ReturnNamespace handle.Namespace
}

// Registry is an immutable, process-global view of the known
// entrypoints. The zero Registry is not usable; use Default().
type Registry struct {
	byID   map[ID]*Entrypoint
	byName map[string]*Entrypoint
}

func newRegistry(entrypoints []Entrypoint) *Registry {
	r := &Registry{
		byID:   make(map[ID]*Entrypoint, len(entrypoints)),
		byName: make(map[string]*Entrypoint, len(entrypoints)),
	}
	for i := range entrypoints {
		e := &entrypoints[i]
		r.byID[e.ID] = e
		r.byName[e.Name] = e
	}
	return r
}

// EntrypointByID returns the descriptor for id, or nil if unknown.
// Per spec §4.E, a decoder encountering an unknown entrypoint_id must
// report FormatError.
func (r *Registry) EntrypointByID(id ID) *Entrypoint {
	return r.byID[id]
}

// EntrypointByName returns the descriptor for a GL function name such
// as "glBindTexture", or nil if unknown.
func (r *Registry) EntrypointByName(name string) *Entrypoint {
	return r.byName[name]
}

// Len returns the number of registered entrypoints.
func (r *Registry) Len() int {
	return len(r.byID)
}

// All returns every registered entrypoint, ordered by ID. The caller
// must not mutate the returned slice's elements.
func (r *Registry) All() []*Entrypoint {
	out := make([]*Entrypoint, 0, len(r.byID))
	for id := ID(1); int(id) <= len(generatedEntrypoints)+1; id++ {
		if e, ok := r.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

var defaultRegistry = newRegistry(generatedEntrypoints)

// Default returns the process-global entrypoint registry, generated
// from registry/entrypoints.txt at build time (see entry/zentry_gen.go).
func Default() *Registry {
	return defaultRegistry
}
