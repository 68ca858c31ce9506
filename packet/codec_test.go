package packet

import (
	"bytes"
	"testing"

	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/handle"
)

func sampleBindTexturePacket() *Packet {
	return &Packet{
		Type:          Call,
		EntrypointID:  entry.GlBindTexture,
		CallCounter:   42,
		ThreadID:      7,
		ContextHandle: 1,
		BeginRDTSC:    1000,
		EndRDTSC:      1010,
		Params: []Param{
			{ValueBits: 0x0DE1}, // target
			{ValueBits: 7},      // texture handle, namespace Texture
		},
		KV: map[string]KVValue{
			"note": StringValue("hello"),
		},
	}
}

func sampleTexImagePacket() *Packet {
	pixels := bytes.Repeat([]byte{0xAB}, 64)
	return &Packet{
		Type:          Call,
		EntrypointID:  entry.GlTexImage2D,
		CallCounter:   43,
		ThreadID:      7,
		ContextHandle: 1,
		BeginRDTSC:    1020,
		EndRDTSC:      1030,
		Params: []Param{
			{ValueBits: 0x0DE1},
			{ValueBits: 0},
			{ValueBits: 0x1908},
			{ValueBits: 8},
			{ValueBits: 8},
			{ValueBits: 0},
			{ValueBits: 0x1908},
			{ValueBits: 0x1401},
			{ValueBits: 0, ClientMem: &ClientMemRef{Offset: 0, Count: 64, TypeID: ctypes.UByte, Namespace: handle.None}},
		},
		ClientMem: pixels,
	}
}

func TestBinaryRoundTripIdentity(t *testing.T) {
	orig := sampleBindTexturePacket()
	encoded, err := Encode(orig)
	if err != nil {
		t.Fatal(err)
	}

	decoded, consumed, err := Decode(encoded, DecodeOptions{
		Types:       ctypes.Default(),
		Entrypoints: entry.Default(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if consumed != len(encoded) {
		t.Fatalf("consumed %d, want %d", consumed, len(encoded))
	}

	if decoded.EntrypointID != orig.EntrypointID ||
		decoded.CallCounter != orig.CallCounter ||
		decoded.ThreadID != orig.ThreadID ||
		decoded.ContextHandle != orig.ContextHandle ||
		decoded.BeginRDTSC != orig.BeginRDTSC ||
		decoded.EndRDTSC != orig.EndRDTSC {
		t.Fatalf("prelude mismatch: got %+v, want %+v", decoded, orig)
	}
	if len(decoded.Params) != len(orig.Params) {
		t.Fatalf("param count = %d, want %d", len(decoded.Params), len(orig.Params))
	}
	for i := range orig.Params {
		if decoded.Params[i].ValueBits != orig.Params[i].ValueBits {
			t.Errorf("param %d value = %d, want %d", i, decoded.Params[i].ValueBits, orig.Params[i].ValueBits)
		}
	}
	if decoded.KV["note"].Str != "hello" {
		t.Errorf("kv note = %q, want hello", decoded.KV["note"].Str)
	}
}

func TestBinaryRoundTripWithClientMem(t *testing.T) {
	orig := sampleTexImagePacket()
	encoded, err := Encode(orig)
	if err != nil {
		t.Fatal(err)
	}
	decoded, _, err := Decode(encoded, DecodeOptions{Types: ctypes.Default(), Entrypoints: entry.Default()})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded.ClientMem, orig.ClientMem) {
		t.Fatalf("client mem mismatch: got %d bytes, want %d", len(decoded.ClientMem), len(orig.ClientMem))
	}
	last := decoded.Params[len(decoded.Params)-1]
	if last.ClientMem == nil || last.ClientMem.Count != 64 || last.ClientMem.TypeID != ctypes.UByte {
		t.Fatalf("client-mem descriptor mismatch: %+v", last.ClientMem)
	}
}

func TestCRCMismatchRejected(t *testing.T) {
	encoded, err := Encode(sampleBindTexturePacket())
	if err != nil {
		t.Fatal(err)
	}
	// Flip a byte of the prelude's call_counter field; crc trailer no
	// longer matches.
	encoded[10] ^= 0xFF

	_, _, err = Decode(encoded, DecodeOptions{Types: ctypes.Default(), Entrypoints: entry.Default()})
	if err == nil {
		t.Fatal("expected crc mismatch error")
	}
}

func TestBadMagicRejected(t *testing.T) {
	encoded, err := Encode(sampleBindTexturePacket())
	if err != nil {
		t.Fatal(err)
	}
	encoded[0] ^= 0xFF
	_, _, err = Decode(encoded, DecodeOptions{})
	if err == nil {
		t.Fatal("expected bad magic error")
	}
}

func TestSizeCeilingRejected(t *testing.T) {
	encoded, err := Encode(sampleTexImagePacket())
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = Decode(encoded, DecodeOptions{SizeCeiling: 8})
	if err == nil {
		t.Fatal("expected size-ceiling rejection")
	}
}

func TestZeroParamPacket(t *testing.T) {
	p := &Packet{
		Type:          Call,
		EntrypointID:  entry.GlFinish,
		CallCounter:   1,
		ThreadID:      1,
		ContextHandle: 1,
	}
	encoded, err := Encode(p)
	if err != nil {
		t.Fatal(err)
	}
	decoded, _, err := Decode(encoded, DecodeOptions{Entrypoints: entry.Default()})
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Params) != 0 || decoded.Return != nil {
		t.Fatalf("expected no params/return, got %+v", decoded)
	}
}

func TestUnknownEntrypointRejected(t *testing.T) {
	p := sampleBindTexturePacket()
	p.EntrypointID = entry.ID(0xfff0)
	encoded, err := Encode(p)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = Decode(encoded, DecodeOptions{Entrypoints: entry.Default()})
	if err == nil {
		t.Fatal("expected unknown-entrypoint rejection")
	}
}
