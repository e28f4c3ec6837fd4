package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagOutput      = flag.String("o", "", "Export directory")
	flagBaseURL     = flag.String("base-url", "", "Base URL for asset URIs")
	flagFormat      = flag.String("format", "", "Texture format (PNG, JPG, JPEG, TGA)")
	flagHTML        = flag.Bool("html", false, "Generate HTML wrapper")
	flagNoMeshes    = flag.Bool("no-meshes", false, "Skip mesh export")
	flagNoMaterials = flag.Bool("no-materials", false, "Skip material export")
	flagNoTextures  = flag.Bool("no-textures", false, "Skip texture export")
	flagNoPBR       = flag.Bool("no-pbr", false, "Skip PBR map references in MTL files")
	flagName        = flag.String("name", "", "Scene name")
	flagAuthor      = flag.String("author", "", "Scene author")
)

// ParseFlags parses the given command-line arguments. Call this before Load.
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOutput != "" {
		cfg.Export.Directory = *flagOutput
	}
	if *flagBaseURL != "" {
		cfg.Export.BaseURL = *flagBaseURL
	}
	if *flagFormat != "" {
		cfg.Export.TextureFormat = *flagFormat
	}
	if *flagHTML {
		cfg.Export.HTML = true
	}
	if *flagNoMeshes {
		cfg.Export.Meshes = false
	}
	if *flagNoMaterials {
		cfg.Export.Materials = false
	}
	if *flagNoTextures {
		cfg.Export.Textures = false
	}
	if *flagNoPBR {
		cfg.Export.PBRMaps = false
	}
	if *flagName != "" {
		cfg.Scene.Name = *flagName
	}
	if *flagAuthor != "" {
		cfg.Scene.Author = *flagAuthor
	}
}
