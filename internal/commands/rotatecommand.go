package commands

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/mipmapgen/internal/commandstructure"
)

// RotateParams represents typed parameters for rotate command
type RotateParams struct {
	// Degrees is the clockwise rotation: 0, 90, 180 or 270
	Degrees int
}

// NewRotateParamsFromMap creates RotateParams from a generic map
func NewRotateParamsFromMap(params map[string]any) (*RotateParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"degrees"}); err != nil {
		return nil, err
	}
	degrees := commandstructure.GetIntParam(params, "degrees", -1)
	switch degrees {
	case 0, 90, 180, 270:
	default:
		return nil, fmt.Errorf("invalid rotation: %v (must be 0, 90, 180 or 270)", params["degrees"])
	}
	return &RotateParams{Degrees: degrees}, nil
}

// RotateCommand rotates the image clockwise in quarter turns
type RotateCommand struct {
	name   string
	params *RotateParams
}

// NewRotateCommand creates a new rotate command from configuration parameters
func NewRotateCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewRotateParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &RotateCommand{
		name:   "RotateCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *RotateCommand) Name() string {
	return c.name
}

// Execute rotates the image by the configured angle
func (c *RotateCommand) Execute(img image.Image) (image.Image, error) {
	if c.params.Degrees == 0 {
		return img, nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	slog.Debug("RotateCommand: rotating image",
		"degrees", c.params.Degrees,
		"width", width,
		"height", height)

	dstW, dstH := height, width
	if c.params.Degrees == 180 {
		dstW, dstH = width, height
	}
	rotated := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	parallelFor(height, func(y int) {
		for x := 0; x < width; x++ {
			px := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			switch c.params.Degrees {
			case 90:
				// (x,y) -> (height-1-y, x)
				rotated.Set(height-1-y, x, px)
			case 180:
				rotated.Set(width-1-x, height-1-y, px)
			case 270:
				// (x,y) -> (y, width-1-x)
				rotated.Set(y, width-1-x, px)
			}
		}
	})

	return rotated, nil
}

// GetParams returns the typed parameters
func (c *RotateCommand) GetParams() *RotateParams {
	return c.params
}

func init() {
	commandstructure.DefaultRegistry.MustRegister("RotateCommand", NewRotateCommand)
}
