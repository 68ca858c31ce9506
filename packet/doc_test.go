package packet

import (
	"bytes"
	"testing"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
)

func TestDocumentRoundTripInline(t *testing.T) {
	orig := sampleBindTexturePacket()
	data, err := EncodeDocument(orig, entry.Default(), ctypes.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeDocument(data, entry.Default(), ctypes.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.EntrypointID != orig.EntrypointID || decoded.CallCounter != orig.CallCounter {
		t.Fatalf("doc round trip mismatch: %+v vs %+v", decoded, orig)
	}
	if decoded.KV["note"].Str != "hello" {
		t.Errorf("kv note = %q", decoded.KV["note"].Str)
	}
}

func TestDocumentKeepsSmallArraysInline(t *testing.T) {
	orig := sampleTexImagePacket() // 64-byte client-mem array, below InlineBlobThreshold (256)
	arch := blob.NewMemArchive()

	data, err := EncodeDocument(orig, entry.Default(), ctypes.Default(), arch)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(`"blob"`)) {
		t.Fatal("expected a below-threshold array to stay inline, got a blob reference")
	}
	if !bytes.Contains(data, []byte(`"bytes"`)) {
		t.Fatal("expected inline bytes for a below-threshold array")
	}

	decoded, err := DecodeDocument(data, entry.Default(), ctypes.Default(), arch)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded.ClientMem, orig.ClientMem) {
		t.Fatalf("client mem mismatch after doc round trip")
	}
}

func TestDocumentSpillsAboveThreshold(t *testing.T) {
	big := bytes.Repeat([]byte{0x42}, InlineBlobThreshold+16)
	orig := &Packet{
		Type:          Call,
		EntrypointID:  entry.GlBufferData,
		CallCounter:   1,
		ThreadID:      1,
		ContextHandle: 1,
		Params: []Param{
			{ValueBits: 0x8892},
			{ValueBits: uint64(len(big))},
			{ValueBits: 0, ClientMem: &ClientMemRef{Count: uint32(len(big)), TypeID: ctypes.UByte}},
			{ValueBits: 0x88E4},
		},
		ClientMem: big,
	}
	arch := blob.NewMemArchive()

	data, err := EncodeDocument(orig, entry.Default(), ctypes.Default(), arch)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"blob"`)) {
		t.Fatal("expected a blob reference for an over-threshold array")
	}

	decoded, err := DecodeDocument(data, entry.Default(), ctypes.Default(), arch)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded.ClientMem, big) {
		t.Fatal("client mem mismatch after spilling through blob archive")
	}
}
