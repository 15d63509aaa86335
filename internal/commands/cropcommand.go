package commands

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/mipmapgen/internal/commandstructure"
)

// CropParams represents typed parameters for crop command
type CropParams struct {
	Height int
	Width  int
	// Square crops to the largest centered square and ignores Width/Height
	Square bool
}

// NewCropParamsFromMap creates CropParams from a generic map
func NewCropParamsFromMap(params map[string]any) (*CropParams, error) {
	square := commandstructure.GetBoolParam(params, "square", false)
	if square {
		return &CropParams{Square: true}, nil
	}

	if err := commandstructure.ValidateRequiredParams(params, []string{"height", "width"}); err != nil {
		return nil, fmt.Errorf("%w (or set square: true)", err)
	}

	height := commandstructure.GetIntParam(params, "height", 0)
	width := commandstructure.GetIntParam(params, "width", 0)
	if height <= 0 {
		return nil, fmt.Errorf("height must be positive, got %d", height)
	}
	if width <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", width)
	}

	return &CropParams{
		Height: height,
		Width:  width,
	}, nil
}

// CropCommand center-crops the source image
type CropCommand struct {
	name   string
	params *CropParams
}

// NewCropCommand creates a new crop command from configuration parameters
func NewCropCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewCropParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &CropCommand{
		name:   "CropCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *CropCommand) Name() string {
	return c.name
}

// Execute crops the image around its center
func (c *CropCommand) Execute(img image.Image) (image.Image, error) {
	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	cropWidth, cropHeight := c.params.Width, c.params.Height
	if c.params.Square {
		side := min(originalWidth, originalHeight)
		cropWidth, cropHeight = side, side
	}

	if cropWidth >= originalWidth && cropHeight >= originalHeight {
		slog.Debug("CropCommand: no crop needed, dimensions already smaller or equal")
		return img, nil
	}

	cropWidth = min(cropWidth, originalWidth)
	cropHeight = min(cropHeight, originalHeight)

	x0 := bounds.Min.X + (originalWidth-cropWidth)/2
	y0 := bounds.Min.Y + (originalHeight-cropHeight)/2
	rect := image.Rect(x0, y0, x0+cropWidth, y0+cropHeight)

	slog.Debug("CropCommand: performing center crop",
		"original_width", originalWidth,
		"original_height", originalHeight,
		"crop_x", x0,
		"crop_y", y0,
		"crop_width", cropWidth,
		"crop_height", cropHeight)

	return copyRect(img, rect), nil
}

// GetParams returns the typed parameters
func (c *CropCommand) GetParams() *CropParams {
	return c.params
}

func init() {
	commandstructure.DefaultRegistry.MustRegister("CropCommand", NewCropCommand)
}
