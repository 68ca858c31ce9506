package blob

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// DirArchive is an Archive backed by a loose directory of files (spec
// §4.D "backed by ... a loose directory of files", §4.F "opens
// sidecar loose directory"). Blob payloads are stored as individual
// files named by content id; a small index file maps caller-chosen
// names to those ids.
type DirArchive struct {
	Dir string

	mu     sync.RWMutex
	byName map[string]ID
}

const dirIndexFile = ".gltrace-blob-index.json"

// OpenDirArchive opens (creating if necessary) a loose-directory
// archive rooted at dir, loading its name index if present.
func OpenDirArchive(dir string) (*DirArchive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "blob: create archive directory")
	}
	a := &DirArchive{Dir: dir, byName: make(map[string]ID)}

	indexPath := filepath.Join(dir, dirIndexFile)
	data, err := ioutil.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return a, nil
		}
		return nil, errors.Wrap(err, "blob: read name index")
	}

	var raw map[string]string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "blob: parse name index")
	}
	for name, idStr := range raw {
		id, ok := parseIDString(idStr)
		if !ok {
			return nil, errors.Errorf("blob: corrupt name index entry %q", name)
		}
		a.byName[name] = id
	}
	return a, nil
}

func (a *DirArchive) payloadPath(id ID) string {
	return filepath.Join(a.Dir, idString(id)+".blob")
}

func (a *DirArchive) writeIndexLocked() error {
	raw := make(map[string]string, len(a.byName))
	for name, id := range a.byName {
		raw[name] = idString(id)
	}
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(raw)
	if err != nil {
		return errors.Wrap(err, "blob: marshal name index")
	}
	return ioutil.WriteFile(filepath.Join(a.Dir, dirIndexFile), data, 0o644)
}

// Put implements Archive.
func (a *DirArchive) Put(name string, data []byte) (ID, error) {
	id := ContentID(data)

	a.mu.Lock()
	defer a.mu.Unlock()

	path := a.payloadPath(id)
	if existing, err := ioutil.ReadFile(path); err == nil {
		if !bytesEqual(existing, data) {
			return 0, errors.Errorf("blob: content id %s collision on disk", idString(id))
		}
	} else if !os.IsNotExist(err) {
		return 0, errors.Wrap(err, "blob: stat payload")
	} else if err := ioutil.WriteFile(path, data, 0o644); err != nil {
		return 0, errors.Wrap(err, "blob: write payload")
	}

	if name == "" {
		name = idString(id)
	}
	if existingID, ok := a.byName[name]; ok && existingID != id {
		return 0, errors.Errorf("blob: name %q already bound to a different content id", name)
	}
	a.byName[name] = id
	if err := a.writeIndexLocked(); err != nil {
		return 0, err
	}
	return id, nil
}

// Get implements Archive.
func (a *DirArchive) Get(idOrName string) ([]byte, error) {
	a.mu.RLock()
	id, ok := a.byName[idOrName]
	a.mu.RUnlock()

	if !ok {
		var parsed bool
		id, parsed = parseIDString(idOrName)
		if !parsed {
			return nil, errors.Errorf("blob: not found: %q", idOrName)
		}
	}

	data, err := ioutil.ReadFile(a.payloadPath(id))
	if err != nil {
		return nil, errors.Wrapf(err, "blob: read %q", idOrName)
	}
	return data, nil
}

// Contains implements Archive.
func (a *DirArchive) Contains(id ID) bool {
	_, err := os.Stat(a.payloadPath(id))
	return err == nil
}

// Enumerate implements Archive.
func (a *DirArchive) Enumerate() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, 0, len(a.byName))
	for name := range a.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Serialize implements Archive by loading every named entry and
// writing a ZIP-shape container, the same on-disk shape an embedded
// archive uses (spec §6.2).
func (a *DirArchive) Serialize(w io.Writer) error {
	mem := NewMemArchive()
	for _, name := range a.Enumerate() {
		data, err := a.Get(name)
		if err != nil {
			return err
		}
		if _, err := mem.Put(name, data); err != nil {
			return err
		}
	}
	return mem.Serialize(w)
}

// Deserialize implements Archive by unpacking a ZIP-shape container
// into this directory, replacing the current name index.
func (a *DirArchive) Deserialize(r io.ReaderAt, size int64) error {
	mem := NewMemArchive()
	if err := mem.Deserialize(r, size); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.byName = make(map[string]ID, len(mem.byName))
	for name, id := range mem.byName {
		data := mem.payload[id]
		if err := ioutil.WriteFile(a.payloadPath(id), data, 0o644); err != nil {
			return errors.Wrapf(err, "blob: write %q to directory", name)
		}
		a.byName[name] = id
	}
	return a.writeIndexLocked()
}
