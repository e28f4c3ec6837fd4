package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Meta is scene-level metadata carried by a scene description file. Fields
// left empty defer to the exporter configuration.
type Meta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Rating      string `yaml:"rating"`
	Thumbnail   string `yaml:"thumbnail"`
}

// sceneFile is the on-disk YAML shape consumed by LoadFile.
type sceneFile struct {
	Meta      Meta           `yaml:",inline"`
	Images    []imageEntry   `yaml:"images"`
	Materials []materialFile `yaml:"materials"`
	Objects   []objectFile   `yaml:"objects"`
}

type imageEntry struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type materialFile struct {
	Name      string            `yaml:"name"`
	BaseColor []float64         `yaml:"base_color"`
	Specular  float64           `yaml:"specular"`
	Roughness *float64          `yaml:"roughness"`
	Alpha     *float64          `yaml:"alpha"`
	Textures  map[string]string `yaml:"textures"`
}

type objectFile struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Hidden   bool       `yaml:"hidden"`
	Position []float64  `yaml:"position"`
	Rotation []float64  `yaml:"rotation"` // Euler XYZ, degrees, host space
	Scale    []float64  `yaml:"scale"`
	Mesh     *meshFile  `yaml:"mesh"`
	Light    *lightFile `yaml:"light"`
}

type meshFile struct {
	Positions [][]float64 `yaml:"positions"`
	Normals   [][]float64 `yaml:"normals"`
	UVs       [][]float64 `yaml:"uvs"`
	Faces     []faceFile  `yaml:"faces"`
	Materials []string    `yaml:"materials"`
}

type faceFile struct {
	Verts    []faceVertFile `yaml:"verts"`
	Material *int           `yaml:"material"`
}

type faceVertFile struct {
	P  int  `yaml:"p"`
	N  *int `yaml:"n"`
	UV *int `yaml:"uv"`
}

type lightFile struct {
	Kind    string    `yaml:"kind"` // point, sun, spot, area
	Color   []float64 `yaml:"color"`
	Energy  float64   `yaml:"energy"`
	Range   *float64  `yaml:"range"`
	Falloff string    `yaml:"falloff"` // inverse_linear, inverse_square
	Spot    *struct {
		SizeDeg float64 `yaml:"size_deg"`
		Blend   float64 `yaml:"blend"`
	} `yaml:"spot"`
	Shadow *struct {
		Enabled   bool     `yaml:"enabled"`
		Bias      *float64 `yaml:"bias"`
		ClipStart *float64 `yaml:"clip_start"`
		ClipEnd   *float64 `yaml:"clip_end"`
	} `yaml:"shadow"`
}

// LoadFile reads a YAML scene description and materializes it as a MemHost.
// Image files are resolved relative to the description file's directory and
// loaded as packed payloads; decoding happens at texture-export time.
func LoadFile(path string) (*MemHost, Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Meta{}, err
	}

	var sf sceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, Meta{}, fmt.Errorf("parsing scene file %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)

	images := make(map[string]*Image, len(sf.Images))
	for _, entry := range sf.Images {
		payload, err := os.ReadFile(filepath.Join(baseDir, entry.File))
		if err != nil {
			return nil, Meta{}, fmt.Errorf("loading image %q: %w", entry.Name, err)
		}
		name := entry.Name
		if name == "" {
			name = filepath.Base(entry.File)
		}
		images[name] = &Image{Name: name, Packed: payload}
	}

	materials := make(map[string]*Material, len(sf.Materials))
	for _, mf := range sf.Materials {
		mat, err := buildMaterial(mf, images)
		if err != nil {
			return nil, Meta{}, err
		}
		materials[mf.Name] = mat
	}

	host := NewMemHost(nil)
	for _, of := range sf.Objects {
		obj, err := buildObject(of, materials)
		if err != nil {
			return nil, Meta{}, err
		}
		host.AddObject(obj)
	}

	return host, sf.Meta, nil
}

// buildMaterial expands the flat file description into a principled node
// graph, so the exporter sees the same shape a real host presents.
func buildMaterial(mf materialFile, images map[string]*Image) (*Material, error) {
	principled := &Node{Kind: NodePrincipled, Name: "Principled BSDF"}
	mat := &Material{
		Name:     mf.Name,
		UseNodes: true,
		Nodes:    []*Node{principled},
		Color:    [4]float64{0.8, 0.8, 0.8, 1},
	}

	baseColor := []float64{0.8, 0.8, 0.8, 1}
	if len(mf.BaseColor) >= 3 {
		baseColor = append([]float64{}, mf.BaseColor...)
		if len(baseColor) == 3 {
			baseColor = append(baseColor, 1)
		}
		copy(mat.Color[:], baseColor)
	}
	specular := mf.Specular
	if specular == 0 {
		specular = 0.5
	}
	roughness := 0.5
	if mf.Roughness != nil {
		roughness = *mf.Roughness
	}
	alpha := 1.0
	if mf.Alpha != nil {
		alpha = *mf.Alpha
	}

	baseInput := &Input{Name: "Base Color", Default: baseColor}
	roughInput := &Input{Name: "Roughness", Default: []float64{roughness}}
	metalInput := &Input{Name: "Metallic", Default: []float64{0}}
	normalInput := &Input{Name: "Normal"}
	principled.Inputs = []*Input{
		baseInput,
		&Input{Name: "Specular", Default: []float64{specular}},
		roughInput,
		metalInput,
		&Input{Name: "Alpha", Default: []float64{alpha}},
		normalInput,
	}

	texNode := func(imageName string) (*Node, error) {
		img, ok := images[imageName]
		if !ok {
			return nil, fmt.Errorf("material %q references unknown image %q", mf.Name, imageName)
		}
		node := &Node{Kind: NodeImageTexture, Name: imageName, Image: img}
		mat.Nodes = append(mat.Nodes, node)
		return node, nil
	}

	for _, role := range []string{"diffuse", "metallic", "roughness", "normal", "height", "ao"} {
		imageName, ok := mf.Textures[role]
		if !ok {
			continue
		}
		node, err := texNode(imageName)
		if err != nil {
			return nil, err
		}
		switch role {
		case "diffuse":
			baseInput.Link = &Link{FromNode: node}
		case "metallic":
			metalInput.Link = &Link{FromNode: node}
		case "roughness":
			roughInput.Link = &Link{FromNode: node}
		case "normal":
			decode := &Node{
				Kind:   NodeNormalMap,
				Name:   "Normal Map",
				Inputs: []*Input{{Name: "Color", Link: &Link{FromNode: node}}},
			}
			mat.Nodes = append(mat.Nodes, decode)
			normalInput.Link = &Link{FromNode: decode}
		case "height":
			disp := &Node{
				Kind:   NodeDisplacement,
				Name:   "Displacement",
				Inputs: []*Input{{Name: "Height", Link: &Link{FromNode: node}}},
			}
			mat.Nodes = append(mat.Nodes, disp)
		case "ao":
			// Free-floating node; picked up by the name heuristic.
		}
	}

	return mat, nil
}

func buildObject(of objectFile, materials map[string]*Material) (*Object, error) {
	obj := &Object{
		Name:             of.Name,
		Kind:             KindOther,
		World:            worldMatrix(of),
		HiddenInViewport: of.Hidden,
	}

	switch of.Type {
	case "mesh":
		if of.Mesh == nil {
			return nil, fmt.Errorf("object %q: type mesh without mesh data", of.Name)
		}
		mesh, err := buildMesh(of.Name, of.Mesh, materials)
		if err != nil {
			return nil, err
		}
		obj.Kind = KindMesh
		obj.Mesh = mesh
	case "light":
		if of.Light == nil {
			return nil, fmt.Errorf("object %q: type light without light data", of.Name)
		}
		light, err := buildLight(of.Name, of.Light)
		if err != nil {
			return nil, err
		}
		obj.Kind = KindLight
		obj.Light = light
	}

	return obj, nil
}

func worldMatrix(of objectFile) mgl64.Mat4 {
	m := mgl64.Ident4()
	if len(of.Position) >= 3 {
		m = mgl64.Translate3D(of.Position[0], of.Position[1], of.Position[2])
	}
	if len(of.Rotation) >= 3 {
		// Host convention: Euler XYZ applied X first about fixed axes.
		rx := mgl64.HomogRotate3DX(mgl64.DegToRad(of.Rotation[0]))
		ry := mgl64.HomogRotate3DY(mgl64.DegToRad(of.Rotation[1]))
		rz := mgl64.HomogRotate3DZ(mgl64.DegToRad(of.Rotation[2]))
		m = m.Mul4(rz).Mul4(ry).Mul4(rx)
	}
	if len(of.Scale) >= 3 {
		m = m.Mul4(mgl64.Scale3D(of.Scale[0], of.Scale[1], of.Scale[2]))
	}
	return m
}

func buildMesh(objName string, mf *meshFile, materials map[string]*Material) (*MeshData, error) {
	mesh := &MeshData{}

	for _, p := range mf.Positions {
		if len(p) < 3 {
			return nil, fmt.Errorf("object %q: position needs 3 components", objName)
		}
		mesh.Positions = append(mesh.Positions, mgl64.Vec3{p[0], p[1], p[2]})
	}
	for _, n := range mf.Normals {
		if len(n) < 3 {
			return nil, fmt.Errorf("object %q: normal needs 3 components", objName)
		}
		mesh.Normals = append(mesh.Normals, mgl64.Vec3{n[0], n[1], n[2]})
	}
	for _, uv := range mf.UVs {
		if len(uv) < 2 {
			return nil, fmt.Errorf("object %q: uv needs 2 components", objName)
		}
		mesh.UVs = append(mesh.UVs, [2]float64{uv[0], uv[1]})
	}

	for _, ff := range mf.Faces {
		face := Face{Material: -1}
		if ff.Material != nil {
			face.Material = *ff.Material
		}
		for _, fv := range ff.Verts {
			vert := FaceVert{Position: fv.P, Normal: -1, UV: -1}
			if fv.N != nil {
				vert.Normal = *fv.N
			}
			if fv.UV != nil {
				vert.UV = *fv.UV
			}
			face.Verts = append(face.Verts, vert)
		}
		mesh.Faces = append(mesh.Faces, face)
	}

	for _, name := range mf.Materials {
		mat, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("object %q references unknown material %q", objName, name)
		}
		mesh.Materials = append(mesh.Materials, mat)
	}

	return mesh, nil
}

func buildLight(objName string, lf *lightFile) (*LightData, error) {
	light := &LightData{
		Color:  [3]float64{1, 1, 1},
		Energy: lf.Energy,
		Range:  lf.Range,
	}
	if len(lf.Color) >= 3 {
		light.Color = [3]float64{lf.Color[0], lf.Color[1], lf.Color[2]}
	}

	switch lf.Kind {
	case "point", "":
		light.Kind = LightPoint
	case "sun", "directional":
		light.Kind = LightSun
	case "spot":
		light.Kind = LightSpot
	case "area":
		light.Kind = LightArea
	default:
		return nil, fmt.Errorf("object %q: unknown light kind %q", objName, lf.Kind)
	}

	switch lf.Falloff {
	case "":
	case "inverse_linear":
		light.Falloff = &Falloff{Kind: FalloffInverseLinear}
	case "inverse_square":
		light.Falloff = &Falloff{Kind: FalloffInverseSquare}
	default:
		light.Falloff = &Falloff{Kind: FalloffCustom}
	}

	if lf.Spot != nil {
		light.Spot = &SpotShape{
			SizeRad: mgl64.DegToRad(lf.Spot.SizeDeg),
			Blend:   lf.Spot.Blend,
		}
	}
	if lf.Shadow != nil {
		light.Shadow = &ShadowConfig{
			Enabled:    lf.Shadow.Enabled,
			BufferBias: lf.Shadow.Bias,
			ClipStart:  lf.Shadow.ClipStart,
			ClipEnd:    lf.Shadow.ClipEnd,
		}
	}

	return light, nil
}
