package codec

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const svgSniffLen = 4096

// MaxSVGRasterSize bounds the longer side of a rasterized SVG
const MaxSVGRasterSize = 8192

var (
	svgStartTag = regexp.MustCompile(`(?is)<svg\b[^>]*>`)
	svgSizeAttr = regexp.MustCompile(`(?i)\s(width|height)\s*=\s*["']\s*([0-9]+(?:\.[0-9]+)?)\s*(px)?\s*["']`)
)

// isSVGData reports whether the first element of data is an <svg> root.
// A leading BOM, whitespace, XML declaration, processing instructions,
// comments and a DOCTYPE are skipped.
func isSVGData(data []byte) bool {
	head := data[:min(len(data), svgSniffLen)]
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	for {
		head = bytes.TrimLeft(head, " \t\r\n")
		var end []byte
		switch {
		case bytes.HasPrefix(head, []byte("<?")):
			end = []byte("?>")
		case bytes.HasPrefix(head, []byte("<!--")):
			end = []byte("-->")
		case hasPrefixFold(head, "<!doctype"):
			end = []byte(">")
			if open := bytes.IndexByte(head, '['); open >= 0 && open < bytes.IndexByte(head, '>') {
				end = []byte("]>")
			}
		default:
			return isSVGStartTag(head)
		}
		i := bytes.Index(head, end)
		if i < 0 {
			return false
		}
		head = head[i+len(end):]
	}
}

func isSVGStartTag(head []byte) bool {
	if !hasPrefixFold(head, "<svg") {
		return false
	}
	if len(head) == len("<svg") {
		return true
	}
	switch head[len("<svg")] {
	case ' ', '\t', '\r', '\n', '>', '/':
		return true
	}
	return false
}

func hasPrefixFold(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && bytes.EqualFold(b[:len(prefix)], []byte(prefix))
}

// svgExplicitSize extracts pixel width and height from the root <svg> tag.
// Percentages and other units are ignored.
func svgExplicitSize(data []byte) (int, int, bool) {
	tag := svgStartTag.Find(data)
	if tag == nil {
		return 0, 0, false
	}
	var w, h int
	for _, m := range svgSizeAttr.FindAllSubmatch(tag, -1) {
		v, err := strconv.ParseFloat(string(m[2]), 64)
		if err != nil || v < 1 {
			continue
		}
		switch string(bytes.ToLower(m[1])) {
		case "width":
			w = int(v + 0.5)
		case "height":
			h = int(v + 0.5)
		}
	}
	if w > 0 && h > 0 {
		return w, h, true
	}
	return 0, 0, false
}

// rasterizeSVG renders an SVG onto a transparent canvas
func rasterizeSVG(data []byte, fallbackSize int) (*image.RGBA, error) {
	w, h, ok := svgExplicitSize(data)
	if !ok {
		w, h = fallbackSize, fallbackSize
		slog.Debug("codec: SVG lacks explicit size; using fallback", "width", w, "height", h)
	} else {
		slog.Debug("codec: SVG has explicit size", "width", w, "height", h)
	}
	if cw, ch := clampRasterSize(w, h, MaxSVGRasterSize); cw != w || ch != h {
		slog.Debug("codec: SVG size exceeds raster limit; scaling down",
			"width", w, "height", h, "limit", MaxSVGRasterSize)
		w, h = cw, ch
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// clampRasterSize scales w x h down so neither side exceeds limit, keeping
// the aspect ratio. Neither side drops below 1.
func clampRasterSize(w, h, limit int) (int, int) {
	longest := max(w, h)
	if longest <= limit {
		return w, h
	}
	scale := float64(limit) / float64(longest)
	return max(1, int(float64(w)*scale+0.5)), max(1, int(float64(h)*scale+0.5))
}
