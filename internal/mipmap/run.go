package mipmap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jo-hoe/mipmapgen/internal/codec"
	"github.com/jo-hoe/mipmapgen/internal/commandstructure"
	"github.com/jo-hoe/mipmapgen/internal/core"
	"github.com/jo-hoe/mipmapgen/internal/resample"
)

// Job is one invocation of the icon generator
type Job struct {
	SourcePath string
	OutputName string
	// Root is the directory the density directories are created in
	Root   string
	Config *core.Config
}

// Run decodes the source, applies the configured preprocessing and writes
// every density bucket. Nothing is written unless the source decodes, the
// output extension is encodable and the pipeline succeeds.
func Run(ctx context.Context, job Job) ([]Output, error) {
	cfg := job.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	filter, err := resample.Lookup(cfg.Filter)
	if err != nil {
		return nil, NewError(ConfigError, "select filter", "", err)
	}

	commands, err := commandstructure.BuildCommands(cfg.Commands)
	if err != nil {
		return nil, NewError(ConfigError, "build preprocessing", "", err)
	}

	src, format, err := codec.Decode(job.SourcePath, codec.DecodeOptions{SVGFallbackSize: cfg.SVGFallbackSize})
	if err != nil {
		return nil, NewError(DecodeError, "decode", job.SourcePath, err)
	}
	if src.Bounds().Empty() {
		return nil, NewError(DecodeError, "decode", job.SourcePath,
			fmt.Errorf("source image is empty (%dx%d)", src.Bounds().Dx(), src.Bounds().Dy()))
	}
	slog.Debug("source decoded",
		"path", job.SourcePath,
		"format", format,
		"width", src.Bounds().Dx(),
		"height", src.Bounds().Dy())

	enc, err := codec.EncoderFor(job.OutputName, codec.EncodeOptions{JPEGQuality: cfg.JPEGQuality})
	if err != nil {
		return nil, NewError(EncodeError, "select encoder", job.OutputName, err)
	}

	src, err = commandstructure.NewCommandInvoker(commands).Execute(src)
	if err != nil {
		return nil, NewError(ProcessError, "preprocess", job.SourcePath, err)
	}

	return NewGenerator(job.Root, filter, cfg.Parallel).Generate(ctx, src, job.OutputName, enc)
}
