package scene

import "errors"

// OBJExportOptions configures the host's geometry export call.
type OBJExportOptions struct {
	Triangulate bool
	Normals     bool
	UVs         bool
	Materials   bool
	// ConvertAxes remaps geometry from the host convention (forward +Y,
	// up +Z) to the target convention (forward -Z, up +Y). Must match the
	// transform extraction so geometry and instance transforms agree.
	ConvertAxes bool
}

// Host is the boundary to the 3D application owning the scene graph. The
// geometry exporter operates on the host's current selection, a single
// mutable cursor; callers that need per-object exports must save and restore
// it around each call.
type Host interface {
	Objects() []*Object

	Selected() []*Object
	SetSelected(objs []*Object)
	Active() *Object
	SetActive(obj *Object)

	// ExportSelectedOBJ writes the currently selected objects as a
	// wavefront geometry file at path.
	ExportSelectedOBJ(path string, opts OBJExportOptions) error
}

// GeometryExportFunc writes the given objects as a geometry file. The default
// implementation lives in internal/objexport; tests substitute their own.
type GeometryExportFunc func(objs []*Object, path string, opts OBJExportOptions) error

// MemHost is an in-memory Host. It backs the CLI (populated from a scene
// description file) and the exporter tests.
type MemHost struct {
	// ExportOBJ implements ExportSelectedOBJ over the current selection.
	ExportOBJ GeometryExportFunc

	objects  []*Object
	selected []*Object
	active   *Object
}

// NewMemHost returns a host over the given objects with an empty selection.
func NewMemHost(objects []*Object) *MemHost {
	return &MemHost{objects: objects}
}

// AddObject appends an object to the scene.
func (h *MemHost) AddObject(obj *Object) {
	h.objects = append(h.objects, obj)
}

// RemoveObject deletes an object from the scene. The selection is left
// untouched; stale references are the caller's problem, as they are in a real
// host when an object disappears mid-operation.
func (h *MemHost) RemoveObject(obj *Object) {
	for i, o := range h.objects {
		if o == obj {
			h.objects = append(h.objects[:i], h.objects[i+1:]...)
			return
		}
	}
}

func (h *MemHost) Objects() []*Object { return h.objects }

func (h *MemHost) Selected() []*Object {
	out := make([]*Object, len(h.selected))
	copy(out, h.selected)
	return out
}

func (h *MemHost) SetSelected(objs []*Object) {
	h.selected = make([]*Object, len(objs))
	copy(h.selected, objs)
}

func (h *MemHost) Active() *Object { return h.active }

func (h *MemHost) SetActive(obj *Object) { h.active = obj }

func (h *MemHost) ExportSelectedOBJ(path string, opts OBJExportOptions) error {
	if h.ExportOBJ == nil {
		return errors.New("host has no geometry exporter")
	}
	return h.ExportOBJ(h.selected, path, opts)
}
