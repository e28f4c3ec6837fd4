// sceneport is a CLI for exporting scene descriptions to the portable scene
// JSON format with companion OBJ/MTL/texture assets.
package main

import (
	"fmt"
	"os"

	"github.com/forgefield/sceneport/internal/config"
	"github.com/forgefield/sceneport/internal/exporter"
	"github.com/forgefield/sceneport/internal/logger"
	"github.com/forgefield/sceneport/internal/objexport"
	"github.com/forgefield/sceneport/pkg/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export":
		cmdExport(args)
	case "inspect":
		cmdInspect(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sceneport - scene description exporter

Usage:
  sceneport <command> [options]

Commands:
  export <scene.yaml> [options]   Export a scene to JSON + OBJ/MTL/textures
  inspect <scene.yaml>            Show scene statistics without exporting

Export options:
  -o <dir>          Export directory (default ./export)
  -base-url <url>   Base URL for asset URIs
  -format <fmt>     Texture format: PNG, JPG, JPEG, TGA (default PNG)
  -html             Generate an HTML wrapper (index.html)
  -name <name>      Scene name
  -author <name>    Scene author
  -no-meshes        Skip mesh export
  -no-materials     Skip material export
  -no-textures      Skip texture export
  -no-pbr           Skip PBR map references in MTL files
  -config <path>    Config file path
  -debug            Debug logging

Examples:
  sceneport export room.yaml -o ./out
  sceneport export room.yaml -o ./out -base-url https://cdn.example.com/room -html
  sceneport inspect room.yaml`)
}

func cmdExport(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sceneport export <scene.yaml> [options]")
		os.Exit(1)
	}
	sceneFile := args[0]

	if err := config.ParseFlags(args[1:]); err != nil {
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	host, meta, err := scene.LoadFile(sceneFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	host.ExportOBJ = objexport.Export

	_, report, err := exporter.Export(host, buildSettings(cfg, meta))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported to %s\n", cfg.Export.Directory)
	fmt.Printf("  scene json: %s\n", report.JSONPath)
	if report.HTMLPath != "" {
		fmt.Printf("  html:       %s\n", report.HTMLPath)
	}
	fmt.Printf("  meshes: %d  materials: %d  textures: %d  lights: %d\n",
		report.Meshes, report.Materials, report.Textures, report.Lights)
	if report.Skipped != nil {
		fmt.Println("  some assets were skipped; see log for details")
	}
}

// buildSettings merges config and scene-file metadata. Config values that
// were changed from their defaults win; otherwise the scene file fills in.
func buildSettings(cfg *config.Config, meta scene.Meta) exporter.Settings {
	defaults := config.Default()

	pick := func(configured, defaultVal, fromScene string) string {
		if configured != defaultVal && configured != "" {
			return configured
		}
		if fromScene != "" {
			return fromScene
		}
		return configured
	}

	return exporter.Settings{
		Directory:       cfg.Export.Directory,
		BaseURL:         cfg.Export.BaseURL,
		SceneName:       pick(cfg.Scene.Name, defaults.Scene.Name, meta.Name),
		SceneVersion:    cfg.Scene.Version,
		SchemaVersion:   cfg.Scene.SchemaVersion,
		SceneID:         cfg.Scene.ID,
		Description:     pick(cfg.Scene.Description, "", meta.Description),
		Author:          pick(cfg.Scene.Author, "", meta.Author),
		Rating:          pick(cfg.Scene.Rating, "", meta.Rating),
		Thumbnail:       pick(cfg.Scene.Thumbnail, "", meta.Thumbnail),
		ExportMeshes:    cfg.Export.Meshes,
		ExportMaterials: cfg.Export.Materials,
		ExportTextures:  cfg.Export.Textures,
		ExportPBRMaps:   cfg.Export.PBRMaps,
		GenerateHTML:    cfg.Export.HTML,
		TextureFormat:   cfg.Export.TextureFormat,
	}
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sceneport inspect <scene.yaml>")
		os.Exit(1)
	}

	host, meta, err := scene.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var meshes, lights, others int
	materials := make(map[*scene.Material]bool)
	var materialList []*scene.Material
	for _, obj := range host.Objects() {
		switch obj.Kind {
		case scene.KindMesh:
			meshes++
			if obj.Mesh != nil {
				for _, mat := range obj.Mesh.Materials {
					if mat != nil && !materials[mat] {
						materials[mat] = true
						materialList = append(materialList, mat)
					}
				}
			}
		case scene.KindLight:
			lights++
		default:
			others++
		}
	}
	textures := exporter.CollectTextures(materialList)

	if meta.Name != "" {
		fmt.Printf("Scene: %s\n", meta.Name)
	}
	fmt.Printf("Objects:   %d (%d meshes, %d lights, %d other)\n",
		len(host.Objects()), meshes, lights, others)
	fmt.Printf("Materials: %d\n", len(materialList))
	fmt.Printf("Textures:  %d\n", len(textures))
	for _, img := range textures {
		fmt.Printf("  %s\n", img.Name)
	}
}
