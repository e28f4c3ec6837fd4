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

// Settings configures one export run.
type Settings struct {
	// Directory is the export root; the scene JSON and the meshes/
	// subdirectory live under it.
	Directory string
	// BaseURL, when set, prefixes every asset URI; otherwise URIs are
	// paths relative to Directory.
	BaseURL string

	SceneName     string
	SceneVersion  string
	SchemaVersion string
	SceneID       string
	Description   string
	Author        string
	Rating        string
	Thumbnail     string

	ExportMeshes    bool
	ExportMaterials bool
	ExportTextures  bool
	ExportPBRMaps   bool
	GenerateHTML    bool
	TextureFormat   string
}

// DefaultSettings returns settings with every asset class enabled, PNG
// textures, and "1.0" scene/schema versions.
func DefaultSettings(dir string) Settings {
	return Settings{
		Directory:       dir,
		SceneName:       "Exported Scene",
		SceneVersion:    "1.0",
		SchemaVersion:   "1.0",
		ExportMeshes:    true,
		ExportMaterials: true,
		ExportTextures:  true,
		ExportPBRMaps:   true,
		TextureFormat:   "PNG",
	}
}

// Report summarizes what one run produced. Skipped aggregates the per-asset
// failures the pipeline recovered from; it is informational, not fatal.
type Report struct {
	Meshes    int
	Materials int
	Textures  int
	Lights    int
	JSONPath  string
	HTMLPath  string
	Skipped   error
}

// mediaTypeForTexture derives the asset media type from the written file's
// extension.
func mediaTypeForTexture(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tga":
		return "image/tga"
	default:
		return "image/png"
	}
}

// BuildAssetURI resolves a written file to its document URI. With a base URL
// the URI is baseURL + "/" + the slash-normalized path relative to the export
// root; without one it is the relative path itself. If the relative path
// cannot be computed the bare file name is used.
func BuildAssetURI(path, baseURL, exportDir string) string {
	rel, err := filepath.Rel(exportDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/" + rel
	}
	return rel
}

// collectMaterials gathers the unique materials referenced by the mesh
// objects' slots, identity-deduplicated, first-seen order.
func collectMaterials(meshObjects []*scene.Object) []*scene.Material {
	var materials []*scene.Material
	seen := make(map[*scene.Material]bool)
	for _, obj := range meshObjects {
		if obj.Mesh == nil {
			continue
		}
		for _, mat := range obj.Mesh.Materials {
			if mat != nil && !seen[mat] {
				seen[mat] = true
				materials = append(materials, mat)
			}
		}
	}
	return materials
}

// Build runs the full pipeline against the host's objects and assembles the
// scene document. Asset files are written as a side effect; the document is
// not (see Export). The only fatal error is failure to set up the export
// directory — per-asset failures are logged and the affected items omitted.
func Build(host scene.Host, settings Settings) (*Document, *Report, error) {
	if settings.Directory == "" {
		return nil, nil, fmt.Errorf("export directory not set")
	}

	// MTL files must sit next to the OBJ files for mtllib references, and
	// textures next to the MTL files for the bare-filename map lines.
	meshesDir := filepath.Join(settings.Directory, "meshes")
	if err := ensureWritable(settings.Directory); err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(meshesDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating meshes directory: %w", err)
	}

	var meshObjects, lightObjects []*scene.Object
	for _, obj := range host.Objects() {
		switch obj.Kind {
		case scene.KindMesh:
			meshObjects = append(meshObjects, obj)
		case scene.KindLight:
			lightObjects = append(lightObjects, obj)
		}
	}

	materials := collectMaterials(meshObjects)

	var skipped error

	textureMap := map[string]string{}
	if settings.ExportTextures && len(materials) > 0 {
		var err error
		textureMap, err = ExportAllTextures(materials, meshesDir, settings.TextureFormat)
		skipped = multierr.Append(skipped, err)
	}

	materialMap := map[string]string{}
	if settings.ExportMaterials && len(materials) > 0 {
		var err error
		materialMap, err = ExportAllMaterials(materials, meshesDir, textureMap, settings.ExportPBRMaps)
		skipped = multierr.Append(skipped, err)
	}

	meshMap := map[string]string{}
	if settings.ExportMeshes && len(meshObjects) > 0 {
		var err error
		meshMap, err = ExportAllMeshes(host, meshObjects, meshesDir)
		skipped = multierr.Append(skipped, err)
	}

	assets := []Asset{}
	for _, obj := range meshObjects {
		id := Sanitize(obj.Name)
		path, ok := meshMap[id]
		if !ok {
			continue
		}
		assets = append(assets, Asset{
			ID:        id,
			Type:      "model",
			URI:       BuildAssetURI(path, settings.BaseURL, settings.Directory),
			MediaType: "model/obj",
		})
	}
	for _, mat := range materials {
		id := Sanitize(mat.Name)
		path, ok := materialMap[id]
		if !ok {
			continue
		}
		assets = append(assets, Asset{
			ID:        id,
			Type:      "material",
			URI:       BuildAssetURI(path, settings.BaseURL, settings.Directory),
			MediaType: "model/mtl",
		})
	}
	for _, img := range CollectTextures(materials) {
		id := Sanitize(img.Name)
		path, ok := textureMap[id]
		if !ok {
			continue
		}
		assets = append(assets, Asset{
			ID:        id,
			Type:      "texture",
			URI:       BuildAssetURI(path, settings.BaseURL, settings.Directory),
			MediaType: mediaTypeForTexture(path),
		})
	}

	var instances []*Instance
	for _, obj := range meshObjects {
		id := Sanitize(obj.Name)
		if _, ok := meshMap[id]; !ok {
			// Not exported; an instance would dangle.
			continue
		}
		transform := ExtractTransform(obj.World, true)
		instances = append(instances, &Instance{
			ID:       id,
			Type:     "model",
			Asset:    id,
			Position: transform.Position,
			Rotation: transform.Rotation,
			Scale:    transform.Scale,
		})
	}
	lights := ExportAllLights(lightObjects)
	instances = append(instances, lights...)

	doc := &Document{
		Name:          settings.SceneName,
		Version:       settings.SceneVersion,
		SchemaVersion: settings.SchemaVersion,
		Description:   settings.Description,
		Author:        settings.Author,
		Rating:        settings.Rating,
		Thumbnail:     settings.Thumbnail,
		Assets:        assets,
	}
	if settings.SceneID != "" {
		doc.ID = settings.SceneID
	} else {
		doc.ID = strings.ToLower(Sanitize(settings.SceneName))
	}
	if len(instances) > 0 {
		doc.Instances = instances
	}

	report := &Report{
		Meshes:    len(meshMap),
		Materials: len(materialMap),
		Textures:  len(textureMap),
		Lights:    len(lights),
		Skipped:   skipped,
	}
	return doc, report, nil
}

// Export runs Build, writes the scene JSON (and the HTML wrapper when
// requested), and logs validation findings as warnings.
func Export(host scene.Host, settings Settings) (*Document, *Report, error) {
	doc, report, err := Build(host, settings)
	if err != nil {
		return nil, nil, err
	}

	jsonPath := filepath.Join(settings.Directory, Sanitize(settings.SceneName)+".json")
	if err := WriteDocument(doc, jsonPath); err != nil {
		return nil, nil, fmt.Errorf("writing scene document: %w", err)
	}
	report.JSONPath = jsonPath

	for _, verr := range Validate(doc) {
		logger.Warn("document validation", zap.Error(verr))
	}

	if settings.GenerateHTML {
		htmlPath := filepath.Join(settings.Directory, "index.html")
		if err := WriteHTMLWrapper(doc, htmlPath); err != nil {
			logger.Warn("html wrapper not written", zap.Error(err))
		} else {
			report.HTMLPath = htmlPath
		}
	}

	logger.Info("export finished",
		zap.String("directory", settings.Directory),
		zap.Int("meshes", report.Meshes),
		zap.Int("materials", report.Materials),
		zap.Int("textures", report.Textures),
		zap.Int("lights", report.Lights),
	)
	return doc, report, nil
}

// ensureWritable creates the export root and probes it with a throwaway
// file, so permission problems surface before any asset work starts.
func ensureWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return fmt.Errorf("export directory not writable: %w", err)
	}
	os.Remove(probe)
	return nil
}
