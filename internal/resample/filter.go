// Package resample provides the named resampling filters used to scale icons.
package resample

import (
	"fmt"
	"image"
	"sort"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Default is the filter used when none is configured
const Default = "lanczos3"

// Filter scales images to exact dimensions without preserving aspect ratio
type Filter interface {
	Name() string
	Resize(src image.Image, width, height int) image.Image
}

// lanczosFilter delegates to nfnt/resize, which implements a windowed sinc
type lanczosFilter struct{}

func (lanczosFilter) Name() string { return "lanczos3" }

func (lanczosFilter) Resize(src image.Image, width, height int) image.Image {
	out := resize.Resize(uint(width), uint(height), src, resize.Lanczos3)
	return rebase(out)
}

// scalerFilter uses one of the golang.org/x/image/draw interpolators
type scalerFilter struct {
	name   string
	scaler draw.Scaler
}

func (f scalerFilter) Name() string { return f.name }

func (f scalerFilter) Resize(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	f.scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

var filters = map[string]Filter{
	"lanczos3":       lanczosFilter{},
	"catmullrom":     scalerFilter{"catmullrom", draw.CatmullRom},
	"bilinear":       scalerFilter{"bilinear", draw.BiLinear},
	"approxbilinear": scalerFilter{"approxbilinear", draw.ApproxBiLinear},
	"nearest":        scalerFilter{"nearest", draw.NearestNeighbor},
}

// Lookup returns the filter registered under name. An empty name selects Default.
func Lookup(name string) (Filter, error) {
	if name == "" {
		name = Default
	}
	f, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("unknown resampling filter %q (available: %v)", name, Names())
	}
	return f, nil
}

// Names lists the available filter names in sorted order
func Names() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValid reports whether name is a known filter
func IsValid(name string) bool {
	_, ok := filters[name]
	return ok
}

// rebase moves img to a zero origin when a resizer keeps the source offset
func rebase(img image.Image) image.Image {
	b := img.Bounds()
	if b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
