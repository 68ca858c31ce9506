package regdesc

import "testing"

func TestNamespacesParsesInOrder(t *testing.T) {
	src := []byte("# comment\nTexture\nBuffer\n\nProgram\n")
	got, err := Namespaces(src)
	if err != nil {
		t.Fatalf("Namespaces: %v", err)
	}
	want := []string{"Texture", "Buffer", "Program"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNamespacesRejectsNoneAndDuplicates(t *testing.T) {
	if _, err := Namespaces([]byte("None\n")); err == nil {
		t.Error("expected an error for explicit None")
	}
	if _, err := Namespaces([]byte("Texture\nTexture\n")); err == nil {
		t.Error("expected an error for a duplicate namespace")
	}
}

func TestCTypesScalarAndPointer(t *testing.T) {
	src := []byte(`
scalar Void "GLvoid" 0
scalar Byte "GLbyte" 1 signed
scalar Enum "GLenum" 4 enum
pointer VoidPtr "GLvoid *" 1 Void 0
pointer SyncPtr "GLsync *" 1 Sync 8 opaque
`)
	got, err := CTypes(src)
	if err != nil {
		t.Fatalf("CTypes: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d types, want 5", len(got))
	}
	if got[1].ID != "Byte" || !got[1].Signed {
		t.Errorf("Byte: %+v", got[1])
	}
	if got[3].PointerDepth != 1 || got[3].Elem != "Void" {
		t.Errorf("VoidPtr: %+v", got[3])
	}
	if !got[4].IsOpaquePointer {
		t.Errorf("SyncPtr should be opaque: %+v", got[4])
	}
}

func TestCTypesRejectsUnknownFlag(t *testing.T) {
	_, err := CTypes([]byte(`scalar Void "GLvoid" 0 bogus`))
	if err == nil {
		t.Error("expected an error for an unknown type flag")
	}
}

func TestEntrypointsParsesBlockWithParams(t *testing.T) {
	src := []byte(`
entrypoint GlBindTexture glBindTexture
  return Void
  flags HasSideEffect
  param target Enum in
  param texture UInt Texture in
end

entrypoint GlCreateShader glCreateShader
  return UInt
  returnns Shader
  flags HasSideEffect
  param type Enum in
end
`)
	got, err := Entrypoints(src)
	if err != nil {
		t.Fatalf("Entrypoints: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entrypoints, want 2", len(got))
	}
	bind := got[0]
	if bind.ID != "GlBindTexture" || bind.Name != "glBindTexture" {
		t.Errorf("bind: %+v", bind)
	}
	if len(bind.Params) != 2 || bind.Params[1].Namespace != "Texture" || bind.Params[1].Direction != "in" {
		t.Errorf("bind params: %+v", bind.Params)
	}
	create := got[1]
	if create.ReturnNamespace != "Shader" {
		t.Errorf("create: %+v", create)
	}
}

func TestEntrypointsRejectsMissingReturn(t *testing.T) {
	src := []byte(`
entrypoint GlFoo glFoo
  flags HasSideEffect
end
`)
	if _, err := Entrypoints(src); err == nil {
		t.Error("expected an error for a missing return directive")
	}
}

func TestEntrypointsRejectsBadDirection(t *testing.T) {
	src := []byte(`
entrypoint GlFoo glFoo
  return Void
  param x Int sideways
end
`)
	if _, err := Entrypoints(src); err == nil {
		t.Error("expected an error for an invalid param direction")
	}
}

func TestEntrypointsRejectsDuplicateID(t *testing.T) {
	src := []byte(`
entrypoint GlFoo glFoo
  return Void
end

entrypoint GlFoo glFoo2
  return Void
end
`)
	if _, err := Entrypoints(src); err == nil {
		t.Error("expected an error for a duplicate entrypoint id")
	}
}
