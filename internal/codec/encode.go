package codec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultJPEGQuality is used when EncodeOptions.JPEGQuality is unset
const DefaultJPEGQuality = 95

// ErrUnsupportedFormat is returned for output names without a writable extension
var ErrUnsupportedFormat = errors.New("unsupported output format")

// EncodeOptions controls output encoding
type EncodeOptions struct {
	JPEGQuality int
}

// Encoder writes images in one format
type Encoder interface {
	Format() string
	Encode(w io.Writer, img image.Image) error
}

type encoderFunc struct {
	format string
	encode func(w io.Writer, img image.Image) error
}

func (e encoderFunc) Format() string { return e.format }

func (e encoderFunc) Encode(w io.Writer, img image.Image) error { return e.encode(w, img) }

// EncoderFor selects an encoder from the extension of name
func EncoderFor(name string, opts EncodeOptions) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png":
		return encoderFunc{"png", png.Encode}, nil
	case ".jpg", ".jpeg":
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		return encoderFunc{"jpeg", func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, flatten(img, color.White), &jpeg.Options{Quality: quality})
		}}, nil
	case ".gif":
		return encoderFunc{"gif", func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}}, nil
	case ".bmp":
		return encoderFunc{"bmp", bmp.Encode}, nil
	case ".tif", ".tiff":
		return encoderFunc{"tiff", func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}}, nil
	case "":
		return nil, fmt.Errorf("%w: %q has no file extension", ErrUnsupportedFormat, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// flatten composites img over an opaque background; JPEG has no alpha channel
func flatten(img image.Image, bg color.Color) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
