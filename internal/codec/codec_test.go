package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 100, A: 255})
		}
	}
	return img
}

func TestDecode_PNGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(20, 10)); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("Failed to write test image: %v", err)
	}

	img, format, err := Decode(path, DecodeOptions{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if format != "png" {
		t.Errorf("Expected format 'png', got '%s'", format)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("Expected 20x10, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestDecode_MissingFile(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "missing.png"), DecodeOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestDecodeBytes_Invalid(t *testing.T) {
	if _, _, err := DecodeBytes([]byte("not a valid image"), DecodeOptions{}); err == nil {
		t.Error("Expected error for invalid image data, got nil")
	}
}

func TestDecodeBytes_SVG(t *testing.T) {
	tests := []struct {
		name          string
		svg           string
		fallback      int
		width, height int
	}{
		{
			name:   "explicit size",
			svg:    `<svg xmlns="http://www.w3.org/2000/svg" width="120" height="80"><rect width="120" height="80" fill="red"/></svg>`,
			width:  120,
			height: 80,
		},
		{
			name:   "single quotes with xml prolog",
			svg:    `<?xml version="1.0"?>` + "\n" + `<svg xmlns="http://www.w3.org/2000/svg" width='64' height='32'><circle cx="16" cy="16" r="10" fill="blue"/></svg>`,
			width:  64,
			height: 32,
		},
		{
			name:     "viewBox only uses fallback",
			svg:      `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><rect width="24" height="24" fill="green"/></svg>`,
			fallback: 256,
			width:    256,
			height:   256,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := DecodeBytes([]byte(tt.svg), DecodeOptions{SVGFallbackSize: tt.fallback})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if format != "svg" {
				t.Errorf("Expected format 'svg', got '%s'", format)
			}
			if b := img.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("Expected %dx%d, got %dx%d", tt.width, tt.height, b.Dx(), b.Dy())
			}
		})
	}
}

func TestDecodeBytes_SVGBackgroundIsTransparent(t *testing.T) {
	// the circle leaves the corners unpainted
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="40"><circle cx="20" cy="20" r="10" fill="black"/></svg>`
	img, _, err := DecodeBytes([]byte(svg), DecodeOptions{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("Expected transparent corner, got alpha %d", a)
	}
	if _, _, _, a := img.At(20, 20).RGBA(); a == 0 {
		t.Error("Expected the circle center to be painted")
	}
}

func TestIsSVGData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), true},
		{"uppercase", []byte(`<SVG></SVG>`), true},
		{"png signature", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, false},
		{"empty", nil, false},
		{"bom and prolog", []byte("\xef\xbb\xbf<?xml version=\"1.0\"?>\n<svg/>"), true},
		{"comment and doctype", []byte(`<!-- logo --><!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "x.dtd">` + "\n  <svg>"), true},
		{"doctype with internal subset", []byte(`<!DOCTYPE svg [<!ENTITY a "b">]><svg></svg>`), true},
		{"svg mentioned in text", []byte("made from logo <svg> export"), false},
		{"other root element", []byte(`<html><svg></svg></html>`), false},
		{"svg-like element name", []byte(`<svgfoo/>`), false},
		{"unterminated comment", []byte(`<!-- <svg>`), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSVGData(tt.data); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEncoderFor(t *testing.T) {
	tests := []struct {
		name       string
		wantFormat string
	}{
		{"icon.png", "png"},
		{"icon.PNG", "png"},
		{"icon.jpg", "jpeg"},
		{"icon.jpeg", "jpeg"},
		{"icon.gif", "gif"},
		{"icon.bmp", "bmp"},
		{"icon.tif", "tiff"},
		{"icon.tiff", "tiff"},
		{"ic.launcher.png", "png"},
	}

	src := createTestImage(12, 12)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := EncoderFor(tt.name, EncodeOptions{})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if enc.Format() != tt.wantFormat {
				t.Errorf("Expected format '%s', got '%s'", tt.wantFormat, enc.Format())
			}

			var buf bytes.Buffer
			if err := enc.Encode(&buf, src); err != nil {
				t.Fatalf("Expected encode to succeed, got %v", err)
			}
			img, format, err := image.Decode(&buf)
			if err != nil {
				t.Fatalf("Expected encoded output to decode, got %v", err)
			}
			if format != tt.wantFormat {
				t.Errorf("Expected round-trip format '%s', got '%s'", tt.wantFormat, format)
			}
			if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 12 {
				t.Errorf("Expected 12x12, got %dx%d", b.Dx(), b.Dy())
			}
		})
	}
}

func TestEncoderFor_Unsupported(t *testing.T) {
	for _, name := range []string{"icon.webp", "icon.svg", "icon", "icon."} {
		t.Run(name, func(t *testing.T) {
			_, err := EncoderFor(name, EncodeOptions{})
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
			}
		})
	}
}

func TestJPEGEncoderFlattensTransparency(t *testing.T) {
	enc, err := EncoderFor("icon.jpg", EncodeOptions{JPEGQuality: 100})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	img, _, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode JPEG: %v", err)
	}
	r, g, b, _ := img.At(4, 4).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("Expected transparent pixels to become white, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestSvgExplicitSize(t *testing.T) {
	tests := []struct {
		tag    string
		w, h   int
		wantOk bool
	}{
		{`<svg width="48" height="24">`, 48, 24, true},
		{`<svg width="48px" height="24.6px">`, 48, 25, true},
		{`<svg stroke-width="3" viewBox="0 0 1 1">`, 0, 0, false},
		{`<svg width="100%" height="100%">`, 0, 0, false},
		{`<svg width="48">`, 0, 0, false},
		{`<rect width="5" height="5"/>`, 0, 0, false},
	}
	for _, tt := range tests {
		w, h, ok := svgExplicitSize([]byte(tt.tag))
		if ok != tt.wantOk || w != tt.w || h != tt.h {
			t.Errorf("%s: expected (%d, %d, %v), got (%d, %d, %v)", tt.tag, tt.w, tt.h, tt.wantOk, w, h, ok)
		}
	}
}

// withTextChunk inserts a tEXt chunk right after the IHDR chunk of a PNG
func withTextChunk(t *testing.T, pngData []byte, keyword, text string) []byte {
	t.Helper()
	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	if len(pngData) < ihdrEnd {
		t.Fatalf("PNG too short: %d bytes", len(pngData))
	}
	payload := append([]byte("tEXt"), []byte(keyword+"\x00"+text)...)
	chunk := binary.BigEndian.AppendUint32(nil, uint32(len(payload)-4))
	chunk = append(chunk, payload...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(payload))

	out := append([]byte{}, pngData[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, pngData[ihdrEnd:]...)
}

func TestDecodeBytes_PNGMentioningSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(64, 64)); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	data := withTextChunk(t, buf.Bytes(), "Comment", "made from logo <svg> export")
	if !bytes.Contains(data, []byte("<svg")) {
		t.Fatal("Expected the fixture to contain '<svg'")
	}

	img, format, err := DecodeBytes(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if format != "png" {
		t.Errorf("Expected format 'png', got '%s'", format)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("Expected 64x64, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestDecodeBytes_OversizedSVGIsScaledDown(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="200000" height="100"><rect width="200000" height="100" fill="red"/></svg>`
	img, format, err := DecodeBytes([]byte(svg), DecodeOptions{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if format != "svg" {
		t.Errorf("Expected format 'svg', got '%s'", format)
	}
	if b := img.Bounds(); b.Dx() != MaxSVGRasterSize || b.Dy() != 4 {
		t.Errorf("Expected %dx4, got %dx%d", MaxSVGRasterSize, b.Dx(), b.Dy())
	}
}

func TestClampRasterSize(t *testing.T) {
	tests := []struct {
		w, h, limit int
		wantW       int
		wantH       int
	}{
		{100, 50, 8192, 100, 50},
		{8192, 8192, 8192, 8192, 8192},
		{200000, 200000, 8192, 8192, 8192},
		{200000, 100000, 8192, 8192, 4096},
		{100, 200000, 8192, 4, 8192},
		{1000000, 1, 8192, 8192, 1},
	}
	for _, tt := range tests {
		w, h := clampRasterSize(tt.w, tt.h, tt.limit)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("clampRasterSize(%d, %d, %d): expected %dx%d, got %dx%d",
				tt.w, tt.h, tt.limit, tt.wantW, tt.wantH, w, h)
		}
	}
}
