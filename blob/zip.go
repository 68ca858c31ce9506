package blob

import (
	"archive/zip"
	"io"
	"io/ioutil"
	"sort"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// zstdMethod is the ZIP APPNOTE-reserved compression method id for
// Zstandard. archive/zip only ships Store and Deflate; registering
// this method lets the container opt into zstd per spec §4.D's "LZMA"
// collaborator slot without forking the container codec itself.
const zstdMethod = 93

func init() {
	zip.RegisterCompressor(zstdMethod, func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w)
	})
	zip.RegisterDecompressor(zstdMethod, func(r io.Reader) io.ReadCloser {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return ioutil.NopCloser(errReader{err})
		}
		return zr.IOReadCloser()
	})
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

// Serialize implements Archive: writes the ZIP-shape container (spec
// §6.2) — central directory at the tail, one entry per name, UTF-8
// names.
func (a *MemArchive) Serialize(w io.Writer) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	zw := zip.NewWriter(w)
	names := make([]string, 0, len(a.byName))
	for name := range a.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		id := a.byName[name]
		data := a.payload[id]

		method := uint16(zip.Store)
		if a.Compress {
			method = zstdMethod
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   name,
			Method: method,
		})
		if err != nil {
			return errors.Wrapf(err, "blob: create entry %q", name)
		}
		if _, err := fw.Write(data); err != nil {
			return errors.Wrapf(err, "blob: write entry %q", name)
		}
	}
	return zw.Close()
}

// Deserialize implements Archive: reads a ZIP-shape container,
// replacing the archive's current contents.
func (a *MemArchive) Deserialize(r io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return errors.Wrap(err, "blob: invalid container")
	}

	byName := make(map[string]ID, len(zr.File))
	payload := make(map[ID][]byte, len(zr.File))

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return errors.Wrapf(err, "blob: open entry %q", f.Name)
		}
		data, err := ioutil.ReadAll(rc)
		rc.Close()
		if err != nil {
			return errors.Wrapf(err, "blob: read entry %q", f.Name)
		}
		id := ContentID(data)
		if existing, ok := payload[id]; ok && !bytesEqual(existing, data) {
			return errors.Errorf("blob: content id %s collision in container", idString(id))
		}
		payload[id] = data
		byName[f.Name] = id
	}

	a.mu.Lock()
	a.byName = byName
	a.payload = payload
	a.mu.Unlock()
	return nil
}
