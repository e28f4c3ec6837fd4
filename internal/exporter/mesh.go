package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/forgefield/sceneport/internal/logger"
	"github.com/forgefield/sceneport/pkg/scene"
)

// objExportOptions is the fixed configuration every mesh is exported with.
// The axis options must agree with ExtractTransform's conversion.
var objExportOptions = scene.OBJExportOptions{
	Triangulate: true,
	Normals:     true,
	UVs:         true,
	Materials:   true,
	ConvertAxes: true,
}

// ExportAllMeshes exports each mesh object to its own geometry file in dir
// via the host's selection-based export call. The host's selection cursor is
// a single global; this function saves it, drives it one object at a time,
// and restores it on every exit path. A failed object is logged and skipped.
// Returns sanitized object name -> written path plus the aggregated skips.
func ExportAllMeshes(host scene.Host, objects []*scene.Object, dir string) (map[string]string, error) {
	out := make(map[string]string)
	var skipped error

	prevSelected := host.Selected()
	prevActive := host.Active()
	defer restoreSelection(host, prevSelected, prevActive)

	for _, obj := range objects {
		if obj == nil || obj.Kind != scene.KindMesh {
			continue
		}

		path, err := exportMesh(host, obj, dir)
		if err != nil {
			logger.Warn("skipping mesh", zap.String("object", obj.Name), zap.Error(err))
			skipped = multierr.Append(skipped, err)
			continue
		}
		out[Sanitize(obj.Name)] = path
	}

	return out, skipped
}

func exportMesh(host scene.Host, obj *scene.Object, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	host.SetSelected([]*scene.Object{obj})
	host.SetActive(obj)

	path := filepath.Join(dir, Sanitize(obj.Name)+".obj")
	if err := host.ExportSelectedOBJ(path, objExportOptions); err != nil {
		return "", fmt.Errorf("geometry export: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("geometry export wrote nothing: %w", err)
	}
	return path, nil
}

// restoreSelection puts the host cursor back exactly as found, dropping
// references to objects that were deleted while exporting.
func restoreSelection(host scene.Host, selected []*scene.Object, active *scene.Object) {
	alive := make(map[*scene.Object]bool)
	for _, obj := range host.Objects() {
		alive[obj] = true
	}

	kept := selected[:0]
	for _, obj := range selected {
		if alive[obj] {
			kept = append(kept, obj)
		}
	}
	host.SetSelected(kept)

	if active != nil && !alive[active] {
		active = nil
	}
	host.SetActive(active)
}
