// Package codec decodes source icons and encodes resized icons.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultSVGFallbackSize is used for SVG sources without explicit width and height
const DefaultSVGFallbackSize = 512

// DecodeOptions controls source decoding
type DecodeOptions struct {
	// SVGFallbackSize is the square raster size for SVGs that lack width/height
	SVGFallbackSize int
}

// Decode reads and decodes the image file at path. It returns the decoded
// image and the detected format name ("png", "jpeg", "svg", ...).
func Decode(path string, opts DecodeOptions) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return DecodeBytes(data, opts)
}

// DecodeBytes decodes an in-memory raster or SVG image. Data recognised by a
// registered raster decoder is never treated as SVG.
func DecodeBytes(data []byte, opts DecodeOptions) (image.Image, string, error) {
	slog.Debug("codec: decoding source", "input_size_bytes", len(data))

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil && isSVGData(data) {
		size := opts.SVGFallbackSize
		if size <= 0 {
			size = DefaultSVGFallbackSize
		}
		img, err := rasterizeSVG(data, min(size, MaxSVGRasterSize))
		if err != nil {
			return nil, "", err
		}
		return img, "svg", nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	slog.Debug("codec: decoded raster image",
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())
	return img, format, nil
}
