package blob

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// MemArchive is an in-memory Archive, used for the archive embedded
// directly in a trace file (spec §4.D "backed by ... a memory map").
type MemArchive struct {
	// Compress, when true, stores entries zstd-compressed on
	// Serialize; the default (false) stores them uncompressed so a
	// reader relying only on stdlib archive/zip's built-in methods
	// can still open the container.
	Compress bool

	mu      sync.RWMutex
	byName  map[string]ID
	payload map[ID][]byte
}

// NewMemArchive returns an empty in-memory archive.
func NewMemArchive() *MemArchive {
	return &MemArchive{
		byName:  make(map[string]ID),
		payload: make(map[ID][]byte),
	}
}

func idString(id ID) string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Put implements Archive.
func (a *MemArchive) Put(name string, data []byte) (ID, error) {
	id := ContentID(data)

	a.mu.Lock()
	defer a.mu.Unlock()

	if existing, ok := a.payload[id]; ok && !bytesEqual(existing, data) {
		return 0, errors.Errorf("blob: content id %s collision: existing payload differs", idString(id))
	}
	a.payload[id] = data

	if name == "" {
		name = idString(id)
	}
	if existingID, ok := a.byName[name]; ok && existingID != id {
		return 0, errors.Errorf("blob: name %q already bound to a different content id", name)
	}
	a.byName[name] = id
	return id, nil
}

// Get implements Archive.
func (a *MemArchive) Get(idOrName string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if id, ok := a.byName[idOrName]; ok {
		return a.payload[id], nil
	}
	if id, ok := parseIDString(idOrName); ok {
		if data, ok := a.payload[id]; ok {
			return data, nil
		}
	}
	return nil, errors.Errorf("blob: not found: %q", idOrName)
}

// Contains implements Archive.
func (a *MemArchive) Contains(id ID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.payload[id]
	return ok
}

// Enumerate implements Archive.
func (a *MemArchive) Enumerate() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, 0, len(a.byName))
	for name := range a.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func parseIDString(s string) (ID, bool) {
	if len(s) != 16 {
		return 0, false
	}
	var v uint64
	_, err := fmt.Sscanf(s, "%016x", &v)
	if err != nil {
		return 0, false
	}
	return ID(v), true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
