package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/forgefield/sceneport/pkg/scene"
)

func meshObject(name string) *scene.Object {
	return &scene.Object{
		Name:  name,
		Kind:  scene.KindMesh,
		World: mgl64.Ident4(),
		Mesh:  &scene.MeshData{},
	}
}

// stubGeometryExport writes a placeholder file for the single selected object.
func stubGeometryExport(objs []*scene.Object, path string, opts scene.OBJExportOptions) error {
	if len(objs) != 1 {
		return fmt.Errorf("expected exactly one selected object, got %d", len(objs))
	}
	return os.WriteFile(path, []byte("o "+objs[0].Name+"\n"), 0644)
}

func TestExportAllMeshes(t *testing.T) {
	dir := t.TempDir()

	cube := meshObject("Cube")
	wall := meshObject("Wall.001")
	host := scene.NewMemHost([]*scene.Object{cube, wall})
	host.ExportOBJ = stubGeometryExport

	out, skipped := ExportAllMeshes(host, []*scene.Object{cube, wall}, dir)
	if skipped != nil {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(out))
	}
	if filepath.Base(out["Cube"]) != "Cube.obj" {
		t.Errorf("unexpected path %s", out["Cube"])
	}
	if filepath.Base(out["Wall.001"]) != "Wall.001.obj" {
		t.Errorf("unexpected path %s", out["Wall.001"])
	}
	for _, path := range out {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file on disk: %v", err)
		}
	}
}

func TestExportAllMeshesRestoresSelection(t *testing.T) {
	dir := t.TempDir()

	cube := meshObject("Cube")
	wall := meshObject("Wall")
	host := scene.NewMemHost([]*scene.Object{cube, wall})
	host.ExportOBJ = stubGeometryExport

	host.SetSelected([]*scene.Object{wall})
	host.SetActive(wall)

	if _, err := ExportAllMeshes(host, []*scene.Object{cube}, dir); err != nil {
		t.Fatalf("unexpected skips: %v", err)
	}

	selected := host.Selected()
	if len(selected) != 1 || selected[0] != wall {
		t.Errorf("selection not restored: %v", selected)
	}
	if host.Active() != wall {
		t.Error("active object not restored")
	}
}

func TestExportAllMeshesRestoresAfterFailure(t *testing.T) {
	dir := t.TempDir()

	cube := meshObject("Cube")
	host := scene.NewMemHost([]*scene.Object{cube})
	host.ExportOBJ = func([]*scene.Object, string, scene.OBJExportOptions) error {
		return fmt.Errorf("export blew up")
	}

	host.SetSelected([]*scene.Object{cube})
	host.SetActive(cube)

	out, skipped := ExportAllMeshes(host, []*scene.Object{cube}, dir)
	if len(out) != 0 {
		t.Errorf("expected no meshes, got %d", len(out))
	}
	if skipped == nil {
		t.Error("expected the failure in the aggregate error")
	}

	selected := host.Selected()
	if len(selected) != 1 || selected[0] != cube {
		t.Errorf("selection not restored after failure: %v", selected)
	}
	if host.Active() != cube {
		t.Error("active object not restored after failure")
	}
}

func TestExportAllMeshesDropsStaleSelection(t *testing.T) {
	dir := t.TempDir()

	cube := meshObject("Cube")
	doomed := meshObject("Doomed")
	host := scene.NewMemHost([]*scene.Object{cube, doomed})

	// The export call deletes an object that was part of the saved
	// selection; the restore must not resurrect it.
	host.ExportOBJ = func(objs []*scene.Object, path string, opts scene.OBJExportOptions) error {
		host.RemoveObject(doomed)
		return stubGeometryExport(objs, path, opts)
	}

	host.SetSelected([]*scene.Object{cube, doomed})
	host.SetActive(doomed)

	if _, err := ExportAllMeshes(host, []*scene.Object{cube}, dir); err != nil {
		t.Fatalf("unexpected skips: %v", err)
	}

	selected := host.Selected()
	if len(selected) != 1 || selected[0] != cube {
		t.Errorf("expected stale object dropped from selection, got %v", selected)
	}
	if host.Active() != nil {
		t.Error("expected stale active object cleared")
	}
}

func TestExportAllMeshesSkipsEmptyOutput(t *testing.T) {
	dir := t.TempDir()

	cube := meshObject("Cube")
	host := scene.NewMemHost([]*scene.Object{cube})
	// Succeeds without writing anything; the exporter must notice.
	host.ExportOBJ = func([]*scene.Object, string, scene.OBJExportOptions) error {
		return nil
	}

	out, skipped := ExportAllMeshes(host, []*scene.Object{cube}, dir)
	if len(out) != 0 {
		t.Errorf("expected no meshes, got %d", len(out))
	}
	if skipped == nil {
		t.Error("expected an aggregate error for the missing file")
	}
}
