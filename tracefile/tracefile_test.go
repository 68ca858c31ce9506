package tracefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/packet"
)

func corruptFirstBytes(t *testing.T, path string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteAt([]byte{0, 0, 0, 0}, 0); err != nil {
		t.Fatal(err)
	}
}

func writeSampleTrace(t *testing.T, path string) {
	t.Helper()
	w, err := Create(path, blob.NewMemArchive(), logrus.NewEntry(logrus.New()))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		p := &packet.Packet{
			Type:          packet.Call,
			EntrypointID:  entry.GlClear,
			CallCounter:   uint64(i),
			ThreadID:      1,
			ContextHandle: 1,
		}
		raw, err := packet.Encode(p)
		if err != nil {
			t.Fatal(err)
		}
		if err := w.WritePacket(raw, false); err != nil {
			t.Fatal(err)
		}
	}
	// One swap packet ends frame 0.
	swap := &packet.Packet{
		Type:          packet.Call,
		EntrypointID:  entry.GlXSwapBuffers,
		CallCounter:   3,
		ThreadID:      1,
		ContextHandle: 1,
	}
	raw, err := packet.Encode(swap)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WritePacket(raw, true); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.gltrace")
	writeSampleTrace(t, path)

	r, err := Open(path, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.SOF().Version != FormatVersion {
		t.Fatalf("SOF version = %d, want %d", r.SOF().Version, FormatVersion)
	}

	var calls []uint64
	for {
		p, err := r.ReadNextPacket()
		if err == ErrEOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		calls = append(calls, p.CallCounter)
	}
	if len(calls) != 4 {
		t.Fatalf("read %d packets, want 4", len(calls))
	}
	for i, c := range calls {
		if c != uint64(i) {
			t.Errorf("packet %d call_counter = %d, want %d", i, c, i)
		}
	}
}

func TestFrameIndexAndSeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.gltrace")
	writeSampleTrace(t, path)

	r, err := Open(path, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.MaxFrameIndex() != 1 {
		t.Fatalf("MaxFrameIndex() = %d, want 1", r.MaxFrameIndex())
	}
	if !r.CanQuicklySeekForward() {
		t.Fatal("expected quick seek to be available")
	}

	if err := r.SeekToFrame(1); err != nil {
		t.Fatal(err)
	}
	// Frame 1 has no packets in this sample (swap is the last packet
	// of frame 0); the very next read must be the EOF marker.
	_, err = r.ReadNextPacket()
	if err != ErrEOF {
		t.Fatalf("ReadNextPacket after seeking past last frame = %v, want ErrEOF", err)
	}
}

func TestOpenRejectsCorruptedMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gltrace")
	writeSampleTrace(t, path)

	// Corrupt the SOF magic.
	corruptFirstBytes(t, path)

	_, err := Open(path, "", nil)
	if err == nil {
		t.Fatal("expected an error opening a corrupted file")
	}
}
