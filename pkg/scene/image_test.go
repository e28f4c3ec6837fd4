package scene

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func TestImageUnpackPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	img := &Image{Name: "packed.png", Packed: buf.Bytes()}
	if !img.IsPacked() {
		t.Fatal("expected a packed image")
	}

	if err := img.Unpack(); err != nil {
		t.Fatalf("failed to unpack: %v", err)
	}
	if img.Pixels == nil {
		t.Fatal("expected decoded pixels")
	}
	if img.Pixels.Bounds().Dx() != 4 || img.Pixels.Bounds().Dy() != 2 {
		t.Errorf("unexpected bounds %v", img.Pixels.Bounds())
	}
	if img.IsPacked() {
		t.Error("unpacked image should not report packed")
	}
}

func TestImageUnpackJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2)), nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	img := &Image{Name: "packed.jpg", Packed: buf.Bytes()}
	if err := img.Unpack(); err != nil {
		t.Fatalf("failed to unpack jpeg: %v", err)
	}
	if img.Pixels == nil {
		t.Fatal("expected decoded pixels")
	}
}

func TestImageUnpackBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	img := &Image{Name: "packed.bmp", Packed: buf.Bytes()}
	if err := img.Unpack(); err != nil {
		t.Fatalf("failed to unpack bmp: %v", err)
	}
	if img.Pixels == nil {
		t.Fatal("expected decoded pixels")
	}
}

func TestImageUnpackTGAFallback(t *testing.T) {
	// TGA has no magic bytes to sniff; Unpack must fall back to decoding it
	// explicitly.
	var buf bytes.Buffer
	if err := tga.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("failed to encode tga: %v", err)
	}

	img := &Image{Name: "packed.tga", Packed: buf.Bytes()}
	if err := img.Unpack(); err != nil {
		t.Fatalf("failed to unpack tga: %v", err)
	}
	if img.Pixels == nil {
		t.Fatal("expected decoded pixels")
	}
}

func TestImageUnpackAlreadyDecoded(t *testing.T) {
	pixels := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img := &Image{Name: "live", Pixels: pixels}

	if err := img.Unpack(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Pixels != pixels {
		t.Error("unpack must not replace existing pixels")
	}
}

func TestImageUnpackErrors(t *testing.T) {
	empty := &Image{Name: "empty"}
	if err := empty.Unpack(); err == nil {
		t.Error("expected an error for an image without data")
	}

	garbage := &Image{Name: "garbage", Packed: []byte("not an image at all")}
	if err := garbage.Unpack(); err == nil {
		t.Error("expected an error for undecodable data")
	}
}

func TestImageUnpackTruncatedPNGError(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()/2]

	// A payload with a PNG signature must surface the PNG decoder's error,
	// not a fallback decoder's.
	img := &Image{Name: "truncated.png", Packed: truncated}
	err := img.Unpack()
	if err == nil {
		t.Fatal("expected an error for a truncated payload")
	}
	if strings.Contains(err.Error(), "tga") {
		t.Errorf("expected the png decoder's error, got %v", err)
	}
}
