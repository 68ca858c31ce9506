package packet

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/handle"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// InlineBlobThreshold is the default client-memory array size above
// which the document encoder spills bytes into the blob archive and
// carries only a reference (spec §4.E "Large byte arrays become blob
// references").
const InlineBlobThreshold = 256

type docParam struct {
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	Namespace string       `json:"namespace,omitempty"`
	Value     uint64       `json:"value"`
	Array     *docArrayVal `json:"array,omitempty"`
}

type docArrayVal struct {
	// Bytes carries the inline payload when it's at or below
	// InlineBlobThreshold.
	Bytes []byte `json:"bytes,omitempty"`

	// Blob carries a reference when the payload was spilled to the
	// archive.
	Blob *docBlobRef `json:"blob,omitempty"`

	Count     uint32 `json:"count"`
	Type      string `json:"type"`
	Namespace string `json:"namespace,omitempty"`
}

type docBlobRef struct {
	ID   string `json:"blob"`
	Size uint64 `json:"size"`
}

type docKV struct {
	Kind  string      `json:"kind"`
	Str   string      `json:"str,omitempty"`
	Int64 int64       `json:"i64,omitempty"`
	F64   float64     `json:"f64,omitempty"`
	Blob  *docBlobRef `json:"blob,omitempty"`
	U64   uint64      `json:"u64,omitempty"`
}

type docPacket struct {
	Func        string           `json:"func"`
	CallCounter uint64           `json:"call_counter"`
	Thread      uint64           `json:"thread"`
	Context     uint64           `json:"context"`
	BeginRDTSC  uint64           `json:"begin_rdtsc"`
	EndRDTSC    uint64           `json:"end_rdtsc"`
	Params      []docParam       `json:"params"`
	Return      *docParam        `json:"return,omitempty"`
	Meta        map[string]docKV `json:"meta,omitempty"`
}

// EncodeDocument renders p as the loss-less JSON-shape document form
// (spec §4.E). archive may be nil, in which case oversized client-mem
// arrays are carried inline regardless of threshold.
func EncodeDocument(p *Packet, entries *entry.Registry, types *ctypes.Registry, archive blob.Archive) ([]byte, error) {
	ep := entries.EntrypointByID(p.EntrypointID)
	if ep == nil {
		return nil, gltraceerr.Newf(gltraceerr.FormatError, "packet: unknown entrypoint id %d", p.EntrypointID)
	}

	doc := docPacket{
		Func:        ep.Name,
		CallCounter: p.CallCounter,
		Thread:      p.ThreadID,
		Context:     p.ContextHandle,
		BeginRDTSC:  p.BeginRDTSC,
		EndRDTSC:    p.EndRDTSC,
	}

	for i, param := range p.Params {
		name := ""
		if i < len(ep.Params) {
			name = ep.Params[i].Name
		}
		dp, err := encodeDocParam(&param, name, types, p.ClientMem, archive)
		if err != nil {
			return nil, err
		}
		doc.Params = append(doc.Params, dp)
	}

	if p.Return != nil {
		dp, err := encodeDocParam(p.Return, "", types, p.ClientMem, archive)
		if err != nil {
			return nil, err
		}
		doc.Return = &dp
	}

	if len(p.KV) > 0 {
		doc.Meta = make(map[string]docKV, len(p.KV))
		for k, v := range p.KV {
			doc.Meta[k] = encodeDocKV(v)
		}
	}

	return json.Marshal(doc)
}

func encodeDocParam(p *Param, name string, types *ctypes.Registry, clientMem []byte, archive blob.Archive) (docParam, error) {
	dp := docParam{Name: name, Value: p.ValueBits}
	if p.ClientMem == nil {
		return dp, nil
	}
	ref := p.ClientMem
	ty := types.TypeByID(ref.TypeID)
	typeName := ""
	if ty != nil {
		typeName = ty.Name
	}
	dp.Array = &docArrayVal{Count: ref.Count, Type: typeName, Namespace: ref.Namespace.String()}

	elemSize := uint32(1)
	if ty != nil {
		elemSize = uint32(ty.Size)
		if elemSize == 0 {
			elemSize = 1
		}
	}
	end := ref.Offset + ref.Count*elemSize
	if end > uint32(len(clientMem)) {
		return dp, gltraceerr.Newf(gltraceerr.FormatError, "packet: client-mem ref out of bounds")
	}
	payload := clientMem[ref.Offset:end]

	if archive != nil && len(payload) > InlineBlobThreshold {
		id, err := archive.Put("", payload)
		if err != nil {
			return dp, errors.Wrap(err, "packet: spill client-mem to blob")
		}
		dp.Array.Blob = &docBlobRef{ID: formatBlobID(id), Size: uint64(len(payload))}
	} else {
		dp.Array.Bytes = append([]byte(nil), payload...)
	}
	return dp, nil
}

func encodeDocKV(v KVValue) docKV {
	switch v.Kind {
	case KVString:
		return docKV{Kind: "string", Str: v.Str}
	case KVInt64:
		return docKV{Kind: "i64", Int64: v.Int64}
	case KVFloat64:
		return docKV{Kind: "f64", F64: v.Float64}
	case KVBlob:
		return docKV{Kind: "blob", Blob: &docBlobRef{ID: formatBlobID(blob.ID(v.BlobID)), Size: v.BlobSize}}
	case KVUint64:
		return docKV{Kind: "u64", U64: v.Uint64}
	default:
		return docKV{Kind: "unknown"}
	}
}

func formatBlobID(id blob.ID) string {
	return fmt.Sprintf("%016x", uint64(id))
}

func parseBlobID(s string) (blob.ID, error) {
	var v uint64
	if _, err := fmt.Sscanf(s, "%016x", &v); err != nil {
		return 0, errors.Wrapf(err, "packet: invalid blob id %q", s)
	}
	return blob.ID(v), nil
}
