package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestProcessKeepsSmallImages(t *testing.T) {
	p := NewProcessor()

	out, err := p.Process(encodePNG(t, 640, 480))
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	require.Equal(t, 640, w)
	require.Equal(t, 480, h)
}

func TestProcessScalesDownLargeImages(t *testing.T) {
	p := NewProcessor()

	out, err := p.Process(encodePNG(t, 2400, 1600))
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	require.Equal(t, 1200, w)
	require.Equal(t, 800, h)
}

func TestProcessPreservesAspectRatio(t *testing.T) {
	p := NewProcessor()

	out, err := p.Process(encodePNG(t, 3000, 1000))
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	require.Equal(t, 1200, w)
	require.Equal(t, 400, h)
}

func TestProcessRejectsNonImages(t *testing.T) {
	p := NewProcessor()

	_, err := p.Process(strings.NewReader("definitely not pixels"))
	require.ErrorIs(t, err, ErrNotAnImage)
}
