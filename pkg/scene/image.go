package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// Image is a host image resource. Exactly one of Pixels or Packed is normally
// set: Pixels for images the host has already decoded, Packed for embedded
// byte payloads that must be unpacked before re-encoding.
type Image struct {
	Name   string
	Pixels image.Image
	Packed []byte
}

// IsPacked reports whether the image still carries an undecoded payload.
func (im *Image) IsPacked() bool {
	return im.Pixels == nil && len(im.Packed) > 0
}

// Unpack decodes a packed payload into Pixels. It is a no-op for images that
// are already decoded.
func (im *Image) Unpack() error {
	if im.Pixels != nil {
		return nil
	}
	if len(im.Packed) == 0 {
		return errors.New("image has no pixel data")
	}
	decoded, err := decodePayload(im.Packed)
	if err != nil {
		return err
	}
	im.Pixels = decoded
	return nil
}

// decodePayload sniffs the payload's leading bytes and dispatches to the
// matching decoder directly. The registry-based image.Decode is unusable
// here: the tga package registers itself under an empty magic string, which
// matches every payload and shadows the real decoders. TGA itself carries no
// magic bytes, so it is the fallback for unrecognized payloads.
func decodePayload(data []byte) (image.Image, error) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return png.Decode(bytes.NewReader(data))
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		return jpeg.Decode(bytes.NewReader(data))
	case bytes.HasPrefix(data, []byte("BM")):
		return bmp.Decode(bytes.NewReader(data))
	}
	decoded, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unrecognized image format: %w", err)
	}
	return decoded, nil
}
