package commands

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/jo-hoe/mipmapgen/internal/commandstructure"
)

// PadParams represents typed parameters for pad command
type PadParams struct {
	Background color.NRGBA
}

// NewPadParamsFromMap creates PadParams from a generic map
func NewPadParamsFromMap(params map[string]any) (*PadParams, error) {
	bg := color.NRGBA{}
	if s := commandstructure.GetStringParam(params, "background", ""); s != "" {
		parsed, err := parseHexColor(s)
		if err != nil {
			return nil, err
		}
		bg = parsed
	}
	return &PadParams{Background: bg}, nil
}

// PadCommand letterboxes a non-square image onto a centered square canvas,
// so the later fixed-size resize does not distort it
type PadCommand struct {
	name   string
	params *PadParams
}

// NewPadCommand creates a new pad command from configuration parameters
func NewPadCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewPadParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &PadCommand{
		name:   "PadCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *PadCommand) Name() string {
	return c.name
}

// Execute pads the image to a square
func (c *PadCommand) Execute(img image.Image) (image.Image, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == height {
		slog.Debug("PadCommand: image already square; no padding needed")
		return img, nil
	}

	side := max(width, height)
	offsetX, offsetY := computeCenterOffset(side, side, width, height)

	slog.Debug("PadCommand: padding image to square",
		"original_width", width,
		"original_height", height,
		"side", side,
		"offset_x", offsetX,
		"offset_y", offsetY)

	dst := createCanvas(side, side, c.params.Background)
	target := image.Rect(offsetX, offsetY, offsetX+width, offsetY+height)
	draw.Draw(dst, target, img, bounds.Min, draw.Over)
	return dst, nil
}

// GetParams returns the typed parameters
func (c *PadCommand) GetParams() *PadParams {
	return c.params
}

func createCanvas(w, h int, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	return dst
}

func computeCenterOffset(targetWidth, targetHeight, width, height int) (int, int) {
	return (targetWidth - width) / 2, (targetHeight - height) / 2
}

func init() {
	commandstructure.DefaultRegistry.MustRegister("PadCommand", NewPadCommand)
}
