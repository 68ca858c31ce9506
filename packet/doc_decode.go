package packet

import (
	"github.com/pkg/errors"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/gltraceerr"
	"github.com/tracegl/gltrace/handle"
)

// DecodeDocument parses the JSON-shape document form (spec §4.E) back
// into a Packet. archive resolves any blob-referenced client-memory
// arrays and is required iff the document contains one; it may be nil
// for documents with only inline arrays.
func DecodeDocument(data []byte, entries *entry.Registry, types *ctypes.Registry, archive blob.Archive) (*Packet, error) {
	var doc docPacket
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, gltraceerr.Wrap(gltraceerr.FormatError, err, "packet: invalid document")
	}

	ep := entries.EntrypointByName(doc.Func)
	if ep == nil {
		return nil, gltraceerr.Newf(gltraceerr.FormatError, "packet: unknown entrypoint %q", doc.Func)
	}

	p := &Packet{
		Type:          Call,
		EntrypointID:  ep.ID,
		CallCounter:   doc.CallCounter,
		ThreadID:      doc.Thread,
		ContextHandle: doc.Context,
		BeginRDTSC:    doc.BeginRDTSC,
		EndRDTSC:      doc.EndRDTSC,
	}

	var clientMem []byte
	for _, dp := range doc.Params {
		param, bytesUsed, err := decodeDocParam(&dp, types, archive)
		if err != nil {
			return nil, err
		}
		if bytesUsed != nil {
			param.ClientMem.Offset = uint32(len(clientMem))
			clientMem = append(clientMem, bytesUsed...)
		}
		p.Params = append(p.Params, param)
	}

	if doc.Return != nil {
		param, bytesUsed, err := decodeDocParam(doc.Return, types, archive)
		if err != nil {
			return nil, err
		}
		if bytesUsed != nil {
			param.ClientMem.Offset = uint32(len(clientMem))
			clientMem = append(clientMem, bytesUsed...)
		}
		p.Return = &param
	}
	p.ClientMem = clientMem

	if len(doc.Meta) > 0 {
		p.KV = make(map[string]KVValue, len(doc.Meta))
		for k, v := range doc.Meta {
			kv, err := decodeDocKV(v)
			if err != nil {
				return nil, err
			}
			p.KV[k] = kv
		}
	}

	return p, nil
}

func decodeDocParam(dp *docParam, types *ctypes.Registry, archive blob.Archive) (Param, []byte, error) {
	param := Param{ValueBits: dp.Value}
	if dp.Array == nil {
		return param, nil, nil
	}

	ty := types.TypeByName(dp.Array.Type)
	if ty == nil {
		return param, nil, gltraceerr.Newf(gltraceerr.FormatError, "packet: unknown array type %q", dp.Array.Type)
	}

	var payload []byte
	switch {
	case dp.Array.Blob != nil:
		if archive == nil {
			return param, nil, gltraceerr.New(gltraceerr.FormatError, "packet: document references a blob with no archive available")
		}
		id, err := parseBlobID(dp.Array.Blob.ID)
		if err != nil {
			return param, nil, gltraceerr.Wrap(gltraceerr.FormatError, err, "packet: parse blob ref")
		}
		data, err := archive.Get(formatBlobID(id))
		if err != nil {
			return param, nil, gltraceerr.Wrap(gltraceerr.IOError, err, "packet: resolve blob ref")
		}
		if uint64(len(data)) != dp.Array.Blob.Size {
			return param, nil, gltraceerr.Newf(gltraceerr.FormatError, "packet: blob size mismatch: got %d want %d", len(data), dp.Array.Blob.Size)
		}
		payload = data
	case dp.Array.Bytes != nil:
		payload = dp.Array.Bytes
	default:
		return param, nil, errors.New("packet: array descriptor carries neither bytes nor blob")
	}

	param.ClientMem = &ClientMemRef{
		Count:     dp.Array.Count,
		TypeID:    ty.ID,
		Namespace: parseNamespace(dp.Array.Namespace),
	}
	return param, payload, nil
}

func decodeDocKV(v docKV) (KVValue, error) {
	switch v.Kind {
	case "string":
		return StringValue(v.Str), nil
	case "i64":
		return Int64Value(v.Int64), nil
	case "f64":
		return Float64Value(v.F64), nil
	case "blob":
		if v.Blob == nil {
			return KVValue{}, gltraceerr.New(gltraceerr.FormatError, "packet: kv blob entry missing blob ref")
		}
		id, err := parseBlobID(v.Blob.ID)
		if err != nil {
			return KVValue{}, err
		}
		return BlobValue(uint64(id), v.Blob.Size), nil
	case "u64":
		return Uint64Value(v.U64), nil
	default:
		return KVValue{}, gltraceerr.Newf(gltraceerr.FormatError, "packet: unknown kv kind %q", v.Kind)
	}
}

var namespaceByName = map[string]handle.Namespace{
	handle.None.String():              handle.None,
	handle.Texture.String():           handle.Texture,
	handle.Buffer.String():            handle.Buffer,
	handle.Program.String():           handle.Program,
	handle.Shader.String():            handle.Shader,
	handle.Framebuffer.String():       handle.Framebuffer,
	handle.Renderbuffer.String():      handle.Renderbuffer,
	handle.Sampler.String():           handle.Sampler,
	handle.Query.String():             handle.Query,
	handle.VertexArray.String():       handle.VertexArray,
	handle.Pipeline.String():          handle.Pipeline,
	handle.Sync.String():              handle.Sync,
	handle.DisplayList.String():       handle.DisplayList,
	handle.Location.String():          handle.Location,
	handle.Fence.String():             handle.Fence,
	handle.TransformFeedback.String(): handle.TransformFeedback,
	handle.Context.String():           handle.Context,
}

func parseNamespace(name string) handle.Namespace {
	if ns, ok := namespaceByName[name]; ok {
		return ns
	}
	return handle.None
}
