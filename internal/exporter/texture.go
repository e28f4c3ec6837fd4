package exporter

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/forgefield/sceneport/internal/logger"
	"github.com/forgefield/sceneport/pkg/scene"
)

// textureExtensions whitelists target raster formats. Anything else falls
// back to PNG.
var textureExtensions = map[string]string{
	"PNG":  ".png",
	"JPG":  ".jpg",
	"JPEG": ".jpg",
	"TGA":  ".tga",
}

// CollectTextures gathers every image referenced by the materials' node
// graphs: direct image-texture nodes, plus images feeding a principled base
// color input. Identity-deduplicated, first-seen order preserved.
func CollectTextures(materials []*scene.Material) []*scene.Image {
	var images []*scene.Image
	seen := make(map[*scene.Image]bool)

	add := func(img *scene.Image) {
		if img != nil && !seen[img] {
			seen[img] = true
			images = append(images, img)
		}
	}

	for _, mat := range materials {
		if mat == nil || !mat.UseNodes {
			continue
		}
		for _, node := range mat.Nodes {
			switch node.Kind {
			case scene.NodeImageTexture:
				add(node.Image)
			case scene.NodePrincipled:
				in := node.Input("Base Color")
				if in != nil && in.Link != nil && in.Link.FromNode != nil {
					from := in.Link.FromNode
					if from.Kind == scene.NodeImageTexture {
						add(from.Image)
					}
				}
			}
		}
	}

	return images
}

// ExportTexture re-encodes one image into dir in the requested format and
// returns the written path. Packed payloads are unpacked first. The image's
// own extension is stripped before sanitizing the output name.
func ExportTexture(img *scene.Image, dir, format string) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	ext, ok := textureExtensions[strings.ToUpper(format)]
	if !ok {
		ext = ".png"
	}

	name := img.Name
	if name == "" {
		name = "texture"
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	filename := Sanitize(base) + ext
	path := filepath.Join(dir, filename)

	if err := img.Unpack(); err != nil {
		return "", fmt.Errorf("unpacking image %q: %w", img.Name, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	switch ext {
	case ".jpg":
		err = jpeg.Encode(f, img.Pixels, &jpeg.Options{Quality: 90})
	case ".tga":
		err = tga.Encode(f, img.Pixels)
	default:
		err = png.Encode(f, img.Pixels)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encoding image %q: %w", img.Name, err)
	}

	return path, nil
}

// ExportAllTextures exports the deduplicated image set referenced by the
// materials. Images whose save fails are skipped with a warning, not an
// error; the returned map holds sanitized image id -> written path, and the
// aggregate error collects the skips for reporting.
func ExportAllTextures(materials []*scene.Material, dir, format string) (map[string]string, error) {
	out := make(map[string]string)
	var skipped error

	for _, img := range CollectTextures(materials) {
		path, err := ExportTexture(img, dir, format)
		if err != nil {
			logger.Warn("skipping texture", zap.String("image", img.Name), zap.Error(err))
			skipped = multierr.Append(skipped, err)
			continue
		}
		out[Sanitize(img.Name)] = path
	}

	return out, skipped
}
