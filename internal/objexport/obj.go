// Package objexport is the default wavefront geometry writer behind the
// host's ExportSelectedOBJ boundary. Real host integrations substitute their
// own; the in-memory host and the CLI use this one.
package objexport

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forgefield/sceneport/internal/exporter"
	"github.com/forgefield/sceneport/pkg/scene"
)

// Export writes the given objects' mesh geometry as a single OBJ file at
// path. Vertex data is baked into world space (optionally rebased to the
// target Y-up convention); material references are emitted as mtllib/usemtl
// lines against co-located .mtl files.
func Export(objs []*scene.Object, path string, opts scene.OBJExportOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	writeErr := write(w, objs, opts)
	if flushErr := w.Flush(); writeErr == nil {
		writeErr = flushErr
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(path)
	}
	return writeErr
}

func write(w *bufio.Writer, objs []*scene.Object, opts scene.OBJExportOptions) error {
	fmt.Fprintln(w, "# Exported by sceneport")

	if opts.Materials {
		seen := make(map[string]bool)
		for _, obj := range objs {
			if obj == nil || obj.Mesh == nil {
				continue
			}
			for _, mat := range obj.Mesh.Materials {
				if mat == nil {
					continue
				}
				name := exporter.Sanitize(mat.Name)
				if !seen[name] {
					seen[name] = true
					fmt.Fprintf(w, "mtllib %s.mtl\n", name)
				}
			}
		}
	}

	// OBJ indices are global and 1-based across the whole file.
	vOffset, vtOffset, vnOffset := 1, 1, 1

	for _, obj := range objs {
		if obj == nil || obj.Kind != scene.KindMesh || obj.Mesh == nil {
			continue
		}
		mesh := obj.Mesh

		model := obj.World
		if opts.ConvertAxes {
			model = exporter.AxisConversion().Mul4(obj.World)
		}
		normalMat := model.Mat3()

		fmt.Fprintf(w, "o %s\n", exporter.Sanitize(obj.Name))

		for _, p := range mesh.Positions {
			v := model.Mul4x1(p.Vec4(1))
			fmt.Fprintf(w, "v %.6f %.6f %.6f\n", v.X(), v.Y(), v.Z())
		}
		if opts.UVs {
			for _, uv := range mesh.UVs {
				fmt.Fprintf(w, "vt %.6f %.6f\n", uv[0], uv[1])
			}
		}
		if opts.Normals {
			for _, n := range mesh.Normals {
				vn := normalMat.Mul3x1(n)
				if vn.Len() > 0 {
					vn = vn.Normalize()
				}
				fmt.Fprintf(w, "vn %.6f %.6f %.6f\n", vn.X(), vn.Y(), vn.Z())
			}
		}

		currentMat := -1
		for _, face := range mesh.Faces {
			if opts.Materials && face.Material != currentMat {
				currentMat = face.Material
				if mat := slotMaterial(mesh, face.Material); mat != nil {
					fmt.Fprintf(w, "usemtl %s\n", exporter.Sanitize(mat.Name))
				}
			}
			for _, tri := range triangulate(face, opts.Triangulate) {
				if err := writeFace(w, tri, opts, vOffset, vtOffset, vnOffset); err != nil {
					return err
				}
			}
		}

		vOffset += len(mesh.Positions)
		if opts.UVs {
			vtOffset += len(mesh.UVs)
		}
		if opts.Normals {
			vnOffset += len(mesh.Normals)
		}
	}

	return nil
}

func slotMaterial(mesh *scene.MeshData, slot int) *scene.Material {
	if slot < 0 || slot >= len(mesh.Materials) {
		return nil
	}
	return mesh.Materials[slot]
}

// triangulate fan-splits a polygon when requested; otherwise the face passes
// through unchanged.
func triangulate(face scene.Face, enabled bool) []scene.Face {
	if !enabled || len(face.Verts) <= 3 {
		return []scene.Face{face}
	}
	tris := make([]scene.Face, 0, len(face.Verts)-2)
	for i := 1; i < len(face.Verts)-1; i++ {
		tris = append(tris, scene.Face{
			Verts:    []scene.FaceVert{face.Verts[0], face.Verts[i], face.Verts[i+1]},
			Material: face.Material,
		})
	}
	return tris
}

func writeFace(w *bufio.Writer, face scene.Face, opts scene.OBJExportOptions, vOff, vtOff, vnOff int) error {
	if _, err := fmt.Fprint(w, "f"); err != nil {
		return err
	}
	for _, vert := range face.Verts {
		p := vert.Position + vOff
		hasUV := opts.UVs && vert.UV >= 0
		hasN := opts.Normals && vert.Normal >= 0
		switch {
		case hasUV && hasN:
			fmt.Fprintf(w, " %d/%d/%d", p, vert.UV+vtOff, vert.Normal+vnOff)
		case hasUV:
			fmt.Fprintf(w, " %d/%d", p, vert.UV+vtOff)
		case hasN:
			fmt.Fprintf(w, " %d//%d", p, vert.Normal+vnOff)
		default:
			fmt.Fprintf(w, " %d", p)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

var _ scene.GeometryExportFunc = Export
