package handle

import "testing"

func TestZeroAlwaysMapsToZero(t *testing.T) {
	m := NewMap()
	live, ok := m.Lookup(Texture, 0)
	if !ok || live != 0 {
		t.Fatalf("Lookup(Texture, 0) = %v, %v", live, ok)
	}
	trace, ok := m.ReverseLookup(Texture, 0)
	if !ok || trace != 0 {
		t.Fatalf("ReverseLookup(Texture, 0) = %v, %v", trace, ok)
	}
}

func TestBindLookupUnbind(t *testing.T) {
	m := NewMap()
	m.Bind(Texture, 7, 13)

	live, ok := m.Lookup(Texture, 7)
	if !ok || live != 13 {
		t.Fatalf("Lookup(Texture, 7) = %v, %v, want 13, true", live, ok)
	}

	trace, ok := m.ReverseLookup(Texture, 13)
	if !ok || trace != 7 {
		t.Fatalf("ReverseLookup(Texture, 13) = %v, %v, want 7, true", trace, ok)
	}

	// A different namespace must not see this binding.
	if _, ok := m.Lookup(Buffer, 7); ok {
		t.Fatal("Lookup(Buffer, 7) unexpectedly found a mapping")
	}

	m.Unbind(Texture, 7)
	if _, ok := m.Lookup(Texture, 7); ok {
		t.Fatal("Lookup(Texture, 7) still mapped after Unbind")
	}
	if _, ok := m.ReverseLookup(Texture, 13); ok {
		t.Fatal("ReverseLookup(Texture, 13) still mapped after Unbind")
	}
}

func TestUnbindUnknownIsNoop(t *testing.T) {
	m := NewMap()
	m.Unbind(Program, 42) // must not panic
}

func TestStatsTracksLiveSetAcrossFrameBoundary(t *testing.T) {
	m := NewMap()
	m.Bind(Buffer, 1, 101)
	m.Bind(Buffer, 2, 102)
	m.Bind(Texture, 5, 205)

	stats := m.Stats()
	if stats[Buffer] != 2 {
		t.Errorf("Stats()[Buffer] = %d, want 2", stats[Buffer])
	}
	if stats[Texture] != 1 {
		t.Errorf("Stats()[Texture] = %d, want 1", stats[Texture])
	}
	if stats[Program] != 0 {
		t.Errorf("Stats()[Program] = %d, want 0", stats[Program])
	}

	m.Unbind(Buffer, 1)
	stats = m.Stats()
	if stats[Buffer] != 1 {
		t.Errorf("after delete, Stats()[Buffer] = %d, want 1", stats[Buffer])
	}

	live := m.Live(Buffer)
	if len(live) != 1 || live[0] != 2 {
		t.Errorf("Live(Buffer) = %v, want [2]", live)
	}
}

func TestInvalidNamespacePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid namespace")
		}
	}()
	m := NewMap()
	m.Bind(numNamespaces, 1, 1)
}
