package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/field-service-api/internal/httperr"
)

const (
	WebPContentType = "image/webp"
	webpQuality     = 80
)

var ErrUnsupportedImage = httperr.ErrBusiness("unsupported_image")

// Image is a normalised photo ready for upload.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Normalize decodes a jpeg, png or webp upload, shrinks it to maxWidth
// keeping the aspect ratio and re-encodes it as lossy WebP.
func Normalize(r io.Reader, maxWidth int) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	img := src
	b := src.Bounds()
	if maxWidth > 0 && b.Dx() > maxWidth {
		h := b.Dy() * maxWidth / b.Dx()
		if h < 1 {
			h = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}

	out := img.Bounds()
	return &Image{Data: buf.Bytes(), Width: out.Dx(), Height: out.Dy()}, nil
}
