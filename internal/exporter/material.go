package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/forgefield/sceneport/internal/logger"
	"github.com/forgefield/sceneport/pkg/scene"
)

// MaterialParams is the canonical surface description extracted from a
// material's node graph.
type MaterialParams struct {
	BaseColor [3]float64
	Specular  [3]float64
	Roughness float64
	Alpha     float64

	// Sanitized image ids per map role; empty when absent.
	DiffuseMap   string
	MetallicMap  string
	NormalMap    string
	HeightMap    string
	AOMap        string
	RoughnessMap string
}

// RoughnessToShininess maps roughness 0-1 to an MTL Ns value: 0 roughness is
// 1000, 1 roughness is 0, linear in between.
func RoughnessToShininess(roughness float64) float64 {
	return (1.0 - roughness) * 1000.0
}

// ExtractMaterialParams reads the fixed node-graph pattern: a principled
// surface node when present, a diffuse node as fallback, and the material's
// flat color as last resort. Only static input defaults are read; upstream
// procedural values are ignored.
func ExtractMaterialParams(mat *scene.Material) MaterialParams {
	p := MaterialParams{
		BaseColor: baseColor(mat),
		Specular:  specularColor(mat),
		Roughness: roughnessValue(mat),
		Alpha:     alphaValue(mat),
	}
	if mat.UseNodes {
		p.DiffuseMap = diffuseTexture(mat)
		p.MetallicMap = inputTexture(mat, "Metallic")
		p.NormalMap = normalTexture(mat)
		p.HeightMap = heightTexture(mat)
		p.AOMap = aoTexture(mat)
		p.RoughnessMap = inputTexture(mat, "Roughness")
	}
	return p
}

func baseColor(mat *scene.Material) [3]float64 {
	if !mat.UseNodes {
		return [3]float64{mat.Color[0], mat.Color[1], mat.Color[2]}
	}
	for _, node := range mat.Nodes {
		switch node.Kind {
		case scene.NodePrincipled:
			if in := node.Input("Base Color"); in != nil && len(in.Default) >= 3 {
				return [3]float64{in.Default[0], in.Default[1], in.Default[2]}
			}
		case scene.NodeDiffuse:
			if in := node.Input("Color"); in != nil && len(in.Default) >= 3 {
				return [3]float64{in.Default[0], in.Default[1], in.Default[2]}
			}
		}
	}
	return [3]float64{mat.Color[0], mat.Color[1], mat.Color[2]}
}

func specularColor(mat *scene.Material) [3]float64 {
	if mat.UseNodes {
		if node := mat.FindNode(scene.NodePrincipled); node != nil {
			if in := node.Input("Specular"); in != nil && len(in.Default) >= 1 {
				s := in.Default[0]
				return [3]float64{s, s, s}
			}
		}
	}
	return [3]float64{0.5, 0.5, 0.5}
}

func roughnessValue(mat *scene.Material) float64 {
	if mat.UseNodes {
		if node := mat.FindNode(scene.NodePrincipled); node != nil {
			if in := node.Input("Roughness"); in != nil && len(in.Default) >= 1 {
				return in.Default[0]
			}
		}
	}
	return 0.5
}

func alphaValue(mat *scene.Material) float64 {
	if !mat.UseNodes {
		// Flat materials derive alpha from the color's 4th channel.
		return 1.0 - mat.Color[3]
	}
	if node := mat.FindNode(scene.NodePrincipled); node != nil {
		if in := node.Input("Alpha"); in != nil && len(in.Default) >= 1 {
			return in.Default[0]
		}
	}
	return 1.0
}

// linkedImage returns the sanitized image name of the node feeding the input,
// if that node is an image texture.
func linkedImage(in *scene.Input) string {
	if in == nil || in.Link == nil || in.Link.FromNode == nil {
		return ""
	}
	from := in.Link.FromNode
	if from.Kind == scene.NodeImageTexture && from.Image != nil {
		return Sanitize(from.Image.Name)
	}
	return ""
}

// diffuseTexture resolves the diffuse map: principled base color input,
// diffuse node color input, or any direct image-texture node, first match in
// node order.
func diffuseTexture(mat *scene.Material) string {
	for _, node := range mat.Nodes {
		switch node.Kind {
		case scene.NodePrincipled:
			if name := linkedImage(node.Input("Base Color")); name != "" {
				return name
			}
		case scene.NodeDiffuse:
			if name := linkedImage(node.Input("Color")); name != "" {
				return name
			}
		case scene.NodeImageTexture:
			if node.Image != nil {
				return Sanitize(node.Image.Name)
			}
		}
	}
	return ""
}

// inputTexture resolves a map wired directly into a named principled input.
func inputTexture(mat *scene.Material, inputName string) string {
	if node := mat.FindNode(scene.NodePrincipled); node != nil {
		return linkedImage(node.Input(inputName))
	}
	return ""
}

// normalTexture resolves the normal map: either a direct image on the
// principled normal input, or one hop through a normal-map decode node.
func normalTexture(mat *scene.Material) string {
	node := mat.FindNode(scene.NodePrincipled)
	if node == nil {
		return ""
	}
	in := node.Input("Normal")
	if in == nil || in.Link == nil || in.Link.FromNode == nil {
		return ""
	}
	from := in.Link.FromNode
	if from.Kind == scene.NodeNormalMap {
		return linkedImage(from.Input("Color"))
	}
	if from.Kind == scene.NodeImageTexture && from.Image != nil {
		return Sanitize(from.Image.Name)
	}
	return ""
}

// heightTexture resolves the height map from a displacement node's Height
// input.
func heightTexture(mat *scene.Material) string {
	if node := mat.FindNode(scene.NodeDisplacement); node != nil {
		return linkedImage(node.Input("Height"))
	}
	return ""
}

// aoTexture finds an ambient-occlusion map by name: the first image-texture
// node, in insertion order, whose image name contains "ao" or "occlusion"
// (case-insensitive).
func aoTexture(mat *scene.Material) string {
	for _, node := range mat.Nodes {
		if node.Kind != scene.NodeImageTexture || node.Image == nil {
			continue
		}
		lower := strings.ToLower(node.Image.Name)
		if strings.Contains(lower, "ao") || strings.Contains(lower, "occlusion") {
			return Sanitize(node.Image.Name)
		}
	}
	return ""
}

// ExportMaterialMTL writes one material-description file into dir and returns
// its path. Texture references are resolved through textures (sanitized image
// id -> written path) and emitted as bare filenames only; the downstream
// consumer rejects references with path segments. Unresolved maps are
// omitted.
func ExportMaterialMTL(mat *scene.Material, dir string, textures map[string]string, pbrMaps bool) (string, error) {
	if mat == nil {
		return "", fmt.Errorf("nil material")
	}

	name := Sanitize(mat.Name)
	path := filepath.Join(dir, name+".mtl")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	params := ExtractMaterialParams(mat)
	shininess := RoughnessToShininess(params.Roughness)

	var b strings.Builder
	fmt.Fprintf(&b, "# sceneport MTL File: '%s'\n\n", mat.Name)
	fmt.Fprintf(&b, "newmtl %s\n", name)
	fmt.Fprintf(&b, "Ka %.6f %.6f %.6f\n", params.BaseColor[0], params.BaseColor[1], params.BaseColor[2])
	fmt.Fprintf(&b, "Kd %.6f %.6f %.6f\n", params.BaseColor[0], params.BaseColor[1], params.BaseColor[2])
	fmt.Fprintf(&b, "Ks %.6f %.6f %.6f\n", params.Specular[0], params.Specular[1], params.Specular[2])
	fmt.Fprintf(&b, "Ns %.6f\n", shininess)
	// Both transparency lines carry the alpha value as-is; the consumer
	// reads them that way.
	fmt.Fprintf(&b, "Tr %.6f\n", params.Alpha)
	fmt.Fprintf(&b, "d %.6f\n", params.Alpha)
	fmt.Fprintf(&b, "illum 2\n")

	writeMap := func(key, imageID string) {
		if imageID == "" {
			return
		}
		texPath, ok := textures[imageID]
		if !ok {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", key, filepath.Base(texPath))
	}

	writeMap("map_Kd", params.DiffuseMap)
	if pbrMaps {
		writeMap("map_Pm", params.MetallicMap)
		writeMap("norm", params.NormalMap)
		writeMap("map_Ka", params.AOMap)
		writeMap("map_disp", params.HeightMap)
		writeMap("map_Pr", params.RoughnessMap)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// ExportAllMaterials writes MTL files for every material. A failed material
// is logged and absent from the returned map (sanitized name -> path); the
// run continues. The aggregate error collects the skips.
func ExportAllMaterials(materials []*scene.Material, dir string, textures map[string]string, pbrMaps bool) (map[string]string, error) {
	out := make(map[string]string)
	var skipped error

	for _, mat := range materials {
		if mat == nil {
			continue
		}
		path, err := ExportMaterialMTL(mat, dir, textures, pbrMaps)
		if err != nil {
			logger.Warn("skipping material", zap.String("material", mat.Name), zap.Error(err))
			skipped = multierr.Append(skipped, err)
			continue
		}
		out[Sanitize(mat.Name)] = path
	}

	return out, skipped
}
