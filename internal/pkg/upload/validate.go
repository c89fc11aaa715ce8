package upload

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// Formats accepted for listing images. SVG is excluded: it can carry
// script and we have no sanitizer.
var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

var ErrUnsupportedImage = errors.New("unsupported image format: use JPG, PNG, GIF, WEBP or BMP")

// ValidateImageBySniff checks the filename extension and sniffs the first
// bytes of the file. Both must agree on an allowed image type; the
// detected mime is returned.
func ValidateImageBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageTypes[ext]; !ok {
		return "", ErrUnsupportedImage
	}

	detected := http.DetectContentType(head)

	switch {
	case strings.HasPrefix(detected, "text/html"), strings.HasPrefix(detected, "application/xhtml"):
		return "", errors.New("invalid file type: HTML content is not allowed")
	case strings.HasPrefix(detected, "text/xml"), strings.HasPrefix(detected, "application/xml"), detected == "image/svg+xml":
		return "", errors.New("SVG/XML uploads are not supported")
	}

	for _, mime := range allowedImageTypes {
		if detected == mime {
			return detected, nil
		}
	}

	// DetectContentType cannot identify every container; trust the
	// extension gate when sniffing is inconclusive.
	if detected == "application/octet-stream" {
		return detected, nil
	}

	return "", ErrUnsupportedImage
}
