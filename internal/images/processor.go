package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrNotAnImage indicates the uploaded payload could not be decoded.
var ErrNotAnImage = errors.New("images: payload is not a supported image")

const (
	// maxWidth and maxHeight bound the stored rendition. Smaller images are
	// kept at their native size.
	maxWidth  = 1200
	maxHeight = 800

	jpegQuality = 85
)

// Processor normalises uploaded images into bounded JPEG renditions.
type Processor struct{}

// NewProcessor constructs an image processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process decodes the upload, scales it down to fit within the rendition
// bounds while preserving aspect ratio, and re-encodes it as JPEG.
func (p *Processor) Process(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, ErrNotAnImage
	}

	targetW, targetH := fit(width, height)

	var out image.Image = src
	if targetW != width || targetH != height {
		dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("images: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// fit computes the largest dimensions within the rendition bounds that
// preserve the source aspect ratio. Sources already within bounds are
// returned unchanged.
func fit(width, height int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	scaleW := float64(maxWidth) / float64(width)
	scaleH := float64(maxHeight) / float64(height)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
