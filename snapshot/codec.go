package snapshot

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/tracegl/gltrace/gltraceerr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal renders doc as the schema-versioned JSON-shape tree (spec
// §6.3).
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot: marshal document")
	}
	return data, nil
}

// Unmarshal parses a snapshot document, rejecting any schema version
// this package doesn't understand.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, gltraceerr.Wrap(gltraceerr.FormatError, err, "snapshot: parse document")
	}
	if doc.SchemaVersion != SchemaVersion {
		return nil, gltraceerr.Newf(gltraceerr.FormatError, "snapshot: unsupported schema version %d", doc.SchemaVersion)
	}
	return &doc, nil
}

// Cache keys parsed Documents by their blob-archive id (spec §4.G
// "a snapshot whose document has been parsed once may be kept in
// memory keyed by its blob-archive id"). The zero Cache is ready to
// use; callers that intend to edit a snapshot on disk between uses
// should use a fresh Cache (or skip it) rather than Invalidate just
// that key, since edits are keyed by content, not by a mutable slot.
type Cache struct {
	mu   sync.Mutex
	docs map[string]*Document
}

// Get returns the cached Document for blobID, parsing and caching it
// via load if absent.
func (c *Cache) Get(blobID string, load func() ([]byte, error)) (*Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.docs == nil {
		c.docs = make(map[string]*Document)
	}
	if doc, ok := c.docs[blobID]; ok {
		return doc, nil
	}
	data, err := load()
	if err != nil {
		return nil, err
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	c.docs[blobID] = doc
	return doc, nil
}

// Invalidate drops a cached document, e.g. after the caller overwrites
// its on-disk bytes out from under this cache.
func (c *Cache) Invalidate(blobID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, blobID)
}
