// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds output and asset-class settings.
type ExportConfig struct {
	Directory     string `yaml:"directory"`
	BaseURL       string `yaml:"base_url"`
	Meshes        bool   `yaml:"meshes"`
	Materials     bool   `yaml:"materials"`
	Textures      bool   `yaml:"textures"`
	PBRMaps       bool   `yaml:"pbr_maps"`
	HTML          bool   `yaml:"html"`
	TextureFormat string `yaml:"texture_format"` // PNG, JPG, JPEG, TGA
}

// SceneConfig holds scene metadata written into the exported document. A
// scene description file may supply Name/Description/Author/Rating/Thumbnail
// too; explicit values here win.
type SceneConfig struct {
	Name          string `yaml:"name"`
	Version       string `yaml:"version"`
	SchemaVersion string `yaml:"schema_version"`
	ID            string `yaml:"id"`
	Description   string `yaml:"description"`
	Author        string `yaml:"author"`
	Rating        string `yaml:"rating"` // GENERAL, MODERATE, ADULT
	Thumbnail     string `yaml:"thumbnail"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Directory:     "./export",
			Meshes:        true,
			Materials:     true,
			Textures:      true,
			PBRMaps:       true,
			HTML:          false,
			TextureFormat: "PNG",
		},
		Scene: SceneConfig{
			Name:          "Exported Scene",
			Version:       "1.0",
			SchemaVersion: "1.0",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
