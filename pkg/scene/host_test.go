package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testObject(name string) *Object {
	return &Object{Name: name, Kind: KindMesh, World: mgl64.Ident4(), Mesh: &MeshData{}}
}

func TestMemHostSelection(t *testing.T) {
	a := testObject("A")
	b := testObject("B")
	host := NewMemHost([]*Object{a, b})

	if len(host.Selected()) != 0 {
		t.Error("expected empty initial selection")
	}

	host.SetSelected([]*Object{a})
	host.SetActive(a)

	selected := host.Selected()
	if len(selected) != 1 || selected[0] != a {
		t.Errorf("unexpected selection %v", selected)
	}
	if host.Active() != a {
		t.Error("unexpected active object")
	}

	// The returned slice is a copy; mutating it must not change the host.
	selected[0] = b
	if host.Selected()[0] != a {
		t.Error("selection leaked internal state")
	}

	// And the host copies its input, too.
	input := []*Object{b}
	host.SetSelected(input)
	input[0] = a
	if host.Selected()[0] != b {
		t.Error("host selection aliases the caller's slice")
	}
}

func TestMemHostAddRemove(t *testing.T) {
	a := testObject("A")
	b := testObject("B")
	host := NewMemHost([]*Object{a})

	host.AddObject(b)
	if len(host.Objects()) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(host.Objects()))
	}

	host.RemoveObject(a)
	objs := host.Objects()
	if len(objs) != 1 || objs[0] != b {
		t.Errorf("unexpected objects after removal: %v", objs)
	}

	// Removing a foreign object is a no-op.
	host.RemoveObject(testObject("C"))
	if len(host.Objects()) != 1 {
		t.Error("removing an unknown object changed the scene")
	}
}

func TestMemHostExportWithoutFunc(t *testing.T) {
	host := NewMemHost(nil)
	if err := host.ExportSelectedOBJ("out.obj", OBJExportOptions{}); err == nil {
		t.Error("expected an error without a geometry exporter")
	}
}

func TestMemHostExportPassesSelection(t *testing.T) {
	a := testObject("A")
	b := testObject("B")
	host := NewMemHost([]*Object{a, b})

	var got []*Object
	host.ExportOBJ = func(objs []*Object, path string, opts OBJExportOptions) error {
		got = objs
		return nil
	}

	host.SetSelected([]*Object{b})
	if err := host.ExportSelectedOBJ("out.obj", OBJExportOptions{}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(got) != 1 || got[0] != b {
		t.Errorf("expected the selection passed through, got %v", got)
	}
}
