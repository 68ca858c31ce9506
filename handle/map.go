package handle

import "fmt"

// Map is the replay-time trace_handle -> live_handle table (spec
// §3.7). It is owned exclusively by one replay engine; nothing about
// it is safe for concurrent use.
//
// Namespace 0 / value 0 always maps to 0 and is never stored in
// either direction table — see Lookup and Bind.
type Map struct {
	fwd [numNamespaces]map[Value]Value // trace -> live
	rev [numNamespaces]map[Value]Value // live -> trace
}

// NewMap returns an empty handle map.
func NewMap() *Map {
	m := &Map{}
	for ns := Namespace(0); ns < numNamespaces; ns++ {
		m.fwd[ns] = make(map[Value]Value)
		m.rev[ns] = make(map[Value]Value)
	}
	return m
}

func (m *Map) checkNamespace(ns Namespace) {
	if ns >= numNamespaces {
		panic(fmt.Sprintf("handle: invalid namespace %d", ns))
	}
}

// Bind records the mapping trace -> live within ns, created by the
// packet that generates the handle (spec §3.7). Binding trace 0 is a
// no-op, and a live value of 0 is not entered in the reverse table:
// namespace 0 / value 0 always maps to 0.
func (m *Map) Bind(ns Namespace, trace, live Value) {
	m.checkNamespace(ns)
	if trace == 0 {
		return
	}
	m.fwd[ns][trace] = live
	if live != 0 {
		m.rev[ns][live] = trace
	}
}

// Unbind erases the mapping for trace in ns, as happens on the packet
// that deletes the handle. Unbinding an unknown handle is a no-op.
func (m *Map) Unbind(ns Namespace, trace Value) {
	m.checkNamespace(ns)
	if trace == 0 {
		return
	}
	if live, ok := m.fwd[ns][trace]; ok {
		delete(m.fwd[ns], trace)
		delete(m.rev[ns], live)
	}
}

// Lookup translates a recorded trace handle to its live counterpart.
// Namespace 0 / value 0 always maps to 0. ok is false when trace has
// no live mapping in ns — the caller (replay.Engine) decides whether
// that is HandleUnknown or an "accept zero" case (spec §5 step 1).
func (m *Map) Lookup(ns Namespace, trace Value) (live Value, ok bool) {
	m.checkNamespace(ns)
	if trace == 0 {
		return 0, true
	}
	live, ok = m.fwd[ns][trace]
	return live, ok
}

// ReverseLookup translates a live driver handle back to the trace
// handle that produced it, used when divergence diagnostics need to
// report the original recorded identity of a live object.
func (m *Map) ReverseLookup(ns Namespace, live Value) (trace Value, ok bool) {
	m.checkNamespace(ns)
	if live == 0 {
		return 0, true
	}
	trace, ok = m.rev[ns][live]
	return trace, ok
}

// Stats reports, per namespace, the number of live handle bindings.
// Used by property 8's test (spec §8): at every frame boundary, the live set in each namespace must
// equal the set of handles generated before the boundary and not yet
// deleted.
func (m *Map) Stats() map[Namespace]int {
	out := make(map[Namespace]int, numNamespaces)
	for ns := Namespace(0); ns < numNamespaces; ns++ {
		if ns == None {
			continue
		}
		out[ns] = len(m.fwd[ns])
	}
	return out
}

// Live reports the set of trace handles currently bound in ns, used by
// property 8's test to compare against the expected generated-minus-
// deleted set.
func (m *Map) Live(ns Namespace) []Value {
	m.checkNamespace(ns)
	out := make([]Value, 0, len(m.fwd[ns]))
	for trace := range m.fwd[ns] {
		out = append(out, trace)
	}
	return out
}
