// Package exporter implements the scene serialization pipeline: asset
// deduplication and export (textures, materials, meshes), coordinate-space
// conversion, and assembly of the portable scene JSON document.
package exporter

import "strings"

var invalidFilenameChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// Sanitize maps an arbitrary name to a filesystem-safe string: each of
// < > : " / \ | ? * becomes an underscore, then leading/trailing spaces and
// dots are stripped. Idempotent but not injective; colliding names resolve
// last-write-wins downstream.
func Sanitize(name string) string {
	return strings.Trim(invalidFilenameChars.Replace(name), ". ")
}

var lightIDChars = strings.NewReplacer(" ", "_", ".", "_")

// LightID derives a light instance id from an object name. Stricter than
// Sanitize: spaces and dots also become underscores.
func LightID(name string) string {
	return lightIDChars.Replace(Sanitize(name))
}
