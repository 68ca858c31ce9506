package blob

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestMemArchivePutGetIdempotent(t *testing.T) {
	a := NewMemArchive()

	id1, err := a.Put("texture0", []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := a.Put("texture0", []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Fatalf("Put not idempotent: %x != %x", id1, id2)
	}

	data, err := a.Get("texture0")
	if err != nil || string(data) != "hello" {
		t.Fatalf("Get(texture0) = %q, %v", data, err)
	}

	data, err = a.Get(idString(id1))
	if err != nil || string(data) != "hello" {
		t.Fatalf("Get(id) = %q, %v", data, err)
	}

	if !a.Contains(id1) {
		t.Fatal("Contains(id1) = false")
	}
}

func TestMemArchiveUnnamedPutUsesContentHash(t *testing.T) {
	a := NewMemArchive()
	id, err := a.Put("", []byte("payload"))
	if err != nil {
		t.Fatal(err)
	}
	names := a.Enumerate()
	if len(names) != 1 || names[0] != idString(id) {
		t.Fatalf("Enumerate() = %v, want [%s]", names, idString(id))
	}
}

func TestMemArchiveCollisionDetected(t *testing.T) {
	a := NewMemArchive()
	if _, err := a.Put("dup", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Put("dup", []byte("different")); err == nil {
		t.Fatal("expected error rebinding name to different content")
	}
}

func TestMemArchiveSerializeRoundTrip(t *testing.T) {
	a := NewMemArchive()
	if _, err := a.Put("a", []byte("AAAA")); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Put("b", []byte("BBBBBB")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := a.Serialize(&buf); err != nil {
		t.Fatal(err)
	}

	back := NewMemArchive()
	if err := back.Deserialize(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		t.Fatal(err)
	}

	gotA, err := back.Get("a")
	if err != nil || string(gotA) != "AAAA" {
		t.Fatalf("round-tripped a = %q, %v", gotA, err)
	}
	gotB, err := back.Get("b")
	if err != nil || string(gotB) != "BBBBBB" {
		t.Fatalf("round-tripped b = %q, %v", gotB, err)
	}
}

func TestMemArchiveSerializeCompressedRoundTrip(t *testing.T) {
	a := NewMemArchive()
	a.Compress = true
	payload := bytes.Repeat([]byte("x"), 4096)
	if _, err := a.Put("big", payload); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := a.Serialize(&buf); err != nil {
		t.Fatal(err)
	}

	back := NewMemArchive()
	if err := back.Deserialize(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		t.Fatal(err)
	}
	got, err := back.Get("big")
	if err != nil || !bytes.Equal(got, payload) {
		t.Fatalf("round-tripped compressed payload mismatch, err=%v", err)
	}
}

func TestDirArchivePutGetPersistsIndex(t *testing.T) {
	dir := t.TempDir()

	a, err := OpenDirArchive(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Put("shader.vert", []byte("void main(){}")); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenDirArchive(dir)
	if err != nil {
		t.Fatal(err)
	}
	data, err := reopened.Get("shader.vert")
	if err != nil || string(data) != "void main(){}" {
		t.Fatalf("Get after reopen = %q, %v", data, err)
	}
}

func TestDirArchiveSerializeDeserializeRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	src, err := OpenDirArchive(srcDir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Put("frame_file_offsets", []byte{0, 0, 0, 0, 0, 0, 0, 1}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := src.Serialize(&buf); err != nil {
		t.Fatal(err)
	}

	dstDir := filepath.Join(t.TempDir(), "sidecar")
	dst, err := OpenDirArchive(dstDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := dst.Deserialize(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		t.Fatal(err)
	}
	got, err := dst.Get(FrameOffsetsName)
	if err != nil || len(got) != 8 {
		t.Fatalf("Get(FrameOffsetsName) = %v, %v", got, err)
	}
}
