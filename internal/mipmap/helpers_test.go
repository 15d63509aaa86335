package mipmap

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeSourcePNG writes an opaque width x height PNG and returns its path
func writeSourcePNG(t *testing.T, dir string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}

	path := filepath.Join(dir, "source.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create source file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode source image: %v", err)
	}
	return path
}

// decodeSize returns the pixel dimensions of the image file at path
func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

// assertNoDensityDirs fails if any density directory exists below root
func assertNoDensityDirs(t *testing.T, root string) {
	t.Helper()
	for _, res := range Resolutions() {
		if _, err := os.Stat(filepath.Join(root, res.Label)); !os.IsNotExist(err) {
			t.Errorf("Expected %s not to exist, stat error: %v", res.Label, err)
		}
	}
}

// assertAllIcons checks that every density bucket holds name with the right size
func assertAllIcons(t *testing.T, root, name string) {
	t.Helper()
	for _, res := range Resolutions() {
		path := filepath.Join(root, res.Label, name)
		w, h := decodeSize(t, path)
		if w != res.Width || h != res.Height {
			t.Errorf("Expected %s to be %dx%d, got %dx%d", path, res.Width, res.Height, w, h)
		}
	}
}
