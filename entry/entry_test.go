package entry

import (
	"testing"

	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/handle"
)

func TestDefaultRegistryLookup(t *testing.T) {
	r := Default()
	if r.Len() == 0 {
		t.Fatal("empty registry")
	}

	e := r.EntrypointByID(GlBindTexture)
	if e == nil || e.Name != "glBindTexture" {
		t.Fatalf("EntrypointByID(GlBindTexture) = %+v", e)
	}

	byName := r.EntrypointByName("glDrawElements")
	if byName == nil || byName.ID != GlDrawElements {
		t.Fatalf("EntrypointByName(glDrawElements) = %+v", byName)
	}

	if r.EntrypointByID(ID(0xffff)) != nil {
		t.Fatal("expected nil for unknown entrypoint id")
	}
}

func TestCategoryFlags(t *testing.T) {
	r := Default()

	swap := r.EntrypointByID(GlXSwapBuffers)
	if !swap.Flags.Swap() {
		t.Error("glXSwapBuffers should carry FlagSwap")
	}

	mc := r.EntrypointByID(GlXMakeCurrent)
	if !mc.Flags.MakeCurrent() {
		t.Error("glXMakeCurrent should carry FlagMakeCurrent")
	}

	draw := r.EntrypointByID(GlDrawArrays)
	if !draw.Flags.Draw() || !draw.Flags.HasSideEffect() {
		t.Errorf("glDrawArrays flags = %v, want Draw|HasSideEffect", draw.Flags)
	}

	getErr := r.EntrypointByID(GlGetError)
	if !getErr.Flags.Whitelisted() {
		t.Error("glGetError should be whitelisted")
	}
	if getErr.Flags.HasSideEffect() {
		t.Error("glGetError should not be marked has-side-effect")
	}

	list := r.EntrypointByID(GlCallList)
	if !list.Flags.IsListable() {
		t.Error("glCallList should be listable")
	}
}

func TestParamNamespacesAndDirections(t *testing.T) {
	r := Default()

	gen := r.EntrypointByID(GlGenTextures)
	out := gen.Params[1]
	if out.Namespace != handle.Texture || out.Direction != Out {
		t.Errorf("glGenTextures textures param = %+v, want namespace Texture, direction Out", out)
	}

	bind := r.EntrypointByID(GlBindTexture)
	in := bind.Params[1]
	if in.Namespace != handle.Texture || in.Direction != In || in.Type != ctypes.UInt {
		t.Errorf("glBindTexture texture param = %+v", in)
	}
}

func TestAllOrderedByID(t *testing.T) {
	r := Default()
	all := r.All()
	if len(all) != r.Len() {
		t.Fatalf("All() returned %d entries, registry has %d", len(all), r.Len())
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("All() not sorted by ID at index %d: %d >= %d", i, all[i-1].ID, all[i].ID)
		}
	}
}
