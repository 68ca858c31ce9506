package ctypes

import "testing"

func TestDefaultRegistryLookup(t *testing.T) {
	r := Default()
	if r.Len() == 0 {
		t.Fatal("empty registry")
	}

	ty := r.TypeByID(Float)
	if ty == nil || ty.Name != "GLfloat" {
		t.Fatalf("TypeByID(Float) = %+v", ty)
	}

	ptr := r.TypeByID(UIntPtr_)
	if ptr == nil || ptr.PointerDepth != 1 || ptr.Elem != UInt {
		t.Fatalf("TypeByID(UIntPtr_) = %+v", ptr)
	}

	if r.TypeByID(ID(0xffff)) != nil {
		t.Fatal("expected nil for unknown type id")
	}

	if r.TypeByName("GLenum") == nil {
		t.Fatal("TypeByName(GLenum) unexpectedly nil")
	}
}

func TestOpaquePointersNeverChased(t *testing.T) {
	r := Default()
	for _, id := range []ID{Sync, SyncPtr, DisplayPtr, ContextPtr, SurfacePtr, ConfigPtr, UserDataPtr} {
		ty := r.TypeByID(id)
		if ty == nil {
			t.Fatalf("missing type %d", id)
		}
		if !ty.IsOpaquePointer {
			t.Errorf("%s: expected IsOpaquePointer", ty.Name)
		}
	}
}
