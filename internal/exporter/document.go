package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Asset is one entry of the document's assets array.
type Asset struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // model, material, texture
	URI       string `json:"uri"`
	MediaType string `json:"mediaType"`
}

// Instance is one entry of the document's instances array: a model placement
// (Asset set) or a light (Light set).
type Instance struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Asset    string           `json:"asset,omitempty"`
	Position Vec3             `json:"position"`
	Rotation Vec3             `json:"rotation"`
	Scale    Vec3             `json:"scale"`
	Light    *LightProperties `json:"light,omitempty"`
}

// Document is the root scene JSON object. Assets is always present (possibly
// empty); Instances is omitted entirely when no instance was exported.
type Document struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	SchemaVersion string `json:"schemaVersion"`

	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`

	Assets    []Asset     `json:"assets"`
	Instances []*Instance `json:"instances,omitempty"`
}

// WriteDocument serializes the document as indented JSON at path, creating
// parent directories as needed.
func WriteDocument(doc *Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
