package trim

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/packet"
	"github.com/tracegl/gltrace/snapshot"
	"github.com/tracegl/gltrace/tracefile"
)

func discardLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// writeTwoFrameTrace writes a trace with two frames: frame 0 has a
// glClear then a swap, frame 1 has a glFinish then a swap.
func writeTwoFrameTrace(t *testing.T, path string) {
	t.Helper()
	w, err := tracefile.Create(path, blob.NewMemArchive(), discardLog())
	if err != nil {
		t.Fatal(err)
	}

	write := func(p *packet.Packet, isSwap bool) {
		raw, err := packet.Encode(p)
		if err != nil {
			t.Fatal(err)
		}
		if err := w.WritePacket(raw, isSwap); err != nil {
			t.Fatal(err)
		}
	}

	write(&packet.Packet{Type: packet.Call, EntrypointID: entry.GlClear, CallCounter: 0, Params: []packet.Param{{}}}, false)
	write(&packet.Packet{Type: packet.Call, EntrypointID: entry.GlXSwapBuffers, CallCounter: 1, Params: []packet.Param{{}, {}}}, true)
	write(&packet.Packet{Type: packet.Call, EntrypointID: entry.GlFinish, CallCounter: 2}, false)
	write(&packet.Packet{Type: packet.Call, EntrypointID: entry.GlXSwapBuffers, CallCounter: 3, Params: []packet.Param{{}, {}}}, true)

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWriteProducesSnapshotThenKeptFrame(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.gltrace")
	writeTwoFrameTrace(t, srcPath)

	src, err := tracefile.Open(srcPath, "", discardLog())
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	src.DecodeOptions.Entrypoints = entry.Default()

	w := New(entry.Default(), nil, discardLog())
	dstPath := filepath.Join(dir, "trimmed.gltrace")
	if err := w.Write(src, snapshot.NullDriver{}, dstPath, 1, 1, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dst, err := tracefile.Open(dstPath, "", discardLog())
	if err != nil {
		t.Fatal(err)
	}
	defer dst.Close()
	dst.DecodeOptions.Entrypoints = entry.Default()

	first, err := dst.ReadNextPacket()
	if err != nil {
		t.Fatalf("read snapshot command: %v", err)
	}
	if first.Type != packet.InternalTraceCommand {
		t.Fatalf("first packet type = %v, want InternalTraceCommand", first.Type)
	}
	kindVal, ok := first.KV[packet.InternalCommandKindKey]
	if !ok || packet.InternalCommandKind(kindVal.Uint64) != packet.CommandStateSnapshot {
		t.Fatalf("snapshot command kv = %+v, want state_snapshot kind", first.KV)
	}
	blobVal, ok := first.KV[packet.InternalCommandBlobKey]
	if !ok || blobVal.Kind != packet.KVBlob {
		t.Fatalf("snapshot command missing blob ref: %+v", first.KV)
	}
	data, err := dst.Archive().Get(formatTestBlobName(blobVal.BlobID))
	if err != nil {
		t.Fatalf("fetch snapshot blob: %v", err)
	}
	if _, err := snapshot.Unmarshal(data); err != nil {
		t.Fatalf("unmarshal stored snapshot: %v", err)
	}

	second, err := dst.ReadNextPacket()
	if err != nil {
		t.Fatalf("read kept packet: %v", err)
	}
	if second.EntrypointID != entry.GlFinish {
		t.Fatalf("second packet entrypoint = %v, want GlFinish (frame 1's pre-swap call)", second.EntrypointID)
	}

	third, err := dst.ReadNextPacket()
	if err != nil {
		t.Fatalf("read swap packet: %v", err)
	}
	if third.EntrypointID != entry.GlXSwapBuffers {
		t.Fatalf("third packet entrypoint = %v, want GlXSwapBuffers", third.EntrypointID)
	}

	if _, err := dst.ReadNextPacket(); err != tracefile.ErrEOF {
		t.Fatalf("expected EOF after the one kept frame, got %v", err)
	}
}

func formatTestBlobName(id uint64) string {
	const hextable = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hextable[id&0xf]
		id >>= 4
	}
	return string(buf)
}
