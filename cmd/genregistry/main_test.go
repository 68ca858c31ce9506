package main

import (
	"strings"
	"testing"

	"github.com/tracegl/gltrace/internal/regdesc"
)

func TestGenCTypesProducesValidSource(t *testing.T) {
	ctypes, err := regdesc.CTypes([]byte(`
scalar Void "GLvoid" 0
scalar Enum "GLenum" 4 enum
pointer VoidPtr "GLvoid *" 1 Void 0
`))
	if err != nil {
		t.Fatalf("CTypes: %v", err)
	}
	src := genCTypes(ctypes)
	if !strings.Contains(string(src), "package ctypes") {
		t.Errorf("missing package clause:\n%s", src)
	}
	if !strings.Contains(string(src), "Void ID = iota + 1") {
		t.Errorf("missing leading iota const:\n%s", src)
	}
	if !strings.Contains(string(src), `Name: "GLvoid *"`) {
		t.Errorf("missing pointer type name:\n%s", src)
	}
}

func TestGenEntryProducesValidSource(t *testing.T) {
	eps, err := regdesc.Entrypoints([]byte(`
entrypoint GlBindTexture glBindTexture
  return Void
  flags HasSideEffect
  param target Enum in
  param texture UInt Texture in
end
`))
	if err != nil {
		t.Fatalf("Entrypoints: %v", err)
	}
	src := genEntry(eps)
	text := string(src)
	if !strings.Contains(text, "package entry") {
		t.Errorf("missing package clause:\n%s", text)
	}
	if !strings.Contains(text, "GlBindTexture ID = iota + 1") {
		t.Errorf("missing leading iota const:\n%s", text)
	}
	if !strings.Contains(text, "Namespace: handle.Texture") {
		t.Errorf("missing namespaced param:\n%s", text)
	}
	if !strings.Contains(text, "Flags: FlagHasSideEffect") {
		t.Errorf("missing flags:\n%s", text)
	}
}

func TestValidateCatchesUnknownNamespace(t *testing.T) {
	ctypeSet := map[string]bool{"Void": true, "Enum": true}
	nsSet := map[string]bool{"Texture": true}
	eps := []regdesc.Entrypoint{{
		ID: "GlFoo", Name: "glFoo", Return: "Void",
		Params: []regdesc.Param{{Name: "x", Type: "Enum", Namespace: "Bogus", Direction: "in"}},
	}}
	if err := validate(nil, eps, nsSet, ctypeSet); err == nil {
		t.Error("expected an error for an unknown namespace")
	}
}

func TestValidateCatchesUnknownType(t *testing.T) {
	ctypeSet := map[string]bool{"Void": true}
	nsSet := map[string]bool{}
	eps := []regdesc.Entrypoint{{ID: "GlFoo", Name: "glFoo", Return: "Bogus"}}
	if err := validate(nil, eps, nsSet, ctypeSet); err == nil {
		t.Error("expected an error for an unknown return type")
	}
}
