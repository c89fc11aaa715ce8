// Package imageprocessor turns an uploaded listing or banner photo into
// the stored variants: the orientation-corrected original, a JPEG
// thumbnail for cards and a WebP preview for the detail page.
package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"github.com/franhub/franhub/internal/pkg/upload"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// MaxUploadBytes caps accepted image uploads at 5 MiB.
const MaxUploadBytes = 5 * 1024 * 1024

const (
	thumbWidth  = 480
	thumbHeight = 360

	previewMaxWidth = 1200

	jpegQuality = 85
	webpQuality = 85
)

var (
	ErrTooLarge = errors.New("image exceeds the 5 MB upload limit")
)

// Result holds the processed variants of one upload.
type Result struct {
	Original    []byte // orientation-corrected, original format preserved when JPEG/PNG
	Thumbnail   []byte // JPEG card thumbnail
	PreviewWebP []byte // WebP detail-page preview
	ContentType string
	Width       int
	Height      int
}

// Process validates raw upload bytes and produces the stored variants.
func Process(data []byte, filename string) (*Result, error) {
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType, err := upload.ValidateImageBySniff(filename, head)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	img = applyExifOrientation(img, data)

	bounds := img.Bounds()
	result := &Result{
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}

	result.Original, err = encodeJPEG(img)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	result.Thumbnail, err = encodeJPEG(thumb)
	if err != nil {
		return nil, err
	}

	preview := img
	if bounds.Dx() > previewMaxWidth {
		preview = imaging.Resize(img, previewMaxWidth, 0, imaging.Lanczos)
	}
	result.PreviewWebP, err = encodeWebP(preview)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// applyExifOrientation rotates or flips the decoded image according to
// its EXIF orientation tag. Images without EXIF pass through untouched.
func applyExifOrientation(img image.Image, raw []byte) image.Image {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return img
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img
	}

	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("error encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image) ([]byte, error) {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, webpQuality)
	if err != nil {
		return nil, fmt.Errorf("error creating encoder options: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, options); err != nil {
		return nil, fmt.Errorf("error encoding WebP image: %w", err)
	}
	return buf.Bytes(), nil
}
