package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestProcessProducesAllVariants(t *testing.T) {
	data := testJPEG(t, 800, 600)

	res, err := Process(data, "photo.jpg")
	require.NoError(t, err)

	assert.Equal(t, 800, res.Width)
	assert.Equal(t, 600, res.Height)
	assert.NotEmpty(t, res.Original)
	assert.NotEmpty(t, res.Thumbnail)
	assert.NotEmpty(t, res.PreviewWebP)

	// Thumbnail fits the card box.
	thumb, _, err := image.Decode(bytes.NewReader(res.Thumbnail))
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), thumbWidth)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), thumbHeight)
}

func TestProcessRejectsOversizedUpload(t *testing.T) {
	data := make([]byte, MaxUploadBytes+1)

	_, err := Process(data, "big.jpg")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestProcessRejectsUnknownExtension(t *testing.T) {
	data := testJPEG(t, 10, 10)

	_, err := Process(data, "payload.exe")
	assert.Error(t, err)
}

func TestProcessRejectsNonImageContent(t *testing.T) {
	_, err := Process([]byte("<html><script>alert(1)</script></html>"), "page.jpg")
	assert.Error(t, err)
}

func TestProcessAcceptsPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	res, err := Process(buf.Bytes(), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, 64, res.Width)
	assert.Equal(t, 48, res.Height)
}
