package mipmap

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// Resizer resamples src to exactly width x height pixels
type Resizer interface {
	Resize(src image.Image, width, height int) image.Image
}

// Encoder writes an image in a single output format
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
}

// Output describes one written icon
type Output struct {
	Resolution Resolution
	Path       string
}

// Generator writes one resized copy of a source image per density bucket
type Generator struct {
	root        string
	resizer     Resizer
	parallel    bool
	resolutions []Resolution
}

// NewGenerator creates a generator writing below root. An empty root means the
// current working directory.
func NewGenerator(root string, resizer Resizer, parallel bool) *Generator {
	if root == "" {
		root = "."
	}
	return &Generator{
		root:        root,
		resizer:     resizer,
		parallel:    parallel,
		resolutions: Resolutions(),
	}
}

// Generate resizes src for every density bucket and saves each result as
// <root>/<label>/<outputName>. The first failure aborts the run.
func (g *Generator) Generate(ctx context.Context, src image.Image, outputName string, enc Encoder) ([]Output, error) {
	start := time.Now()
	bounds := src.Bounds()
	slog.Info("Generator: starting",
		"root", g.root,
		"output_name", outputName,
		"source_width", bounds.Dx(),
		"source_height", bounds.Dy(),
		"parallel", g.parallel)

	outputs := make([]Output, len(g.resolutions))

	if g.parallel {
		eg, egCtx := errgroup.WithContext(ctx)
		for i, res := range g.resolutions {
			eg.Go(func() error {
				out, err := g.generateOne(egCtx, src, res, outputName, enc)
				if err != nil {
					return err
				}
				outputs[i] = out
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, res := range g.resolutions {
			out, err := g.generateOne(ctx, src, res, outputName, enc)
			if err != nil {
				return nil, err
			}
			outputs[i] = out
		}
	}

	slog.Info("Generator: completed",
		"count", len(outputs),
		"duration_ms", time.Since(start).Milliseconds())
	return outputs, nil
}

func (g *Generator) generateOne(ctx context.Context, src image.Image, res Resolution, outputName string, enc Encoder) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, NewError(Interrupted, "generate", res.Label, err)
	}

	dir := filepath.Join(g.root, res.Label)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("Generator: failed to create directory", "dir", dir, "error", err)
		return Output{}, NewError(FilesystemError, "create directory", dir, err)
	}

	resized := g.resizer.Resize(src, res.Width, res.Height)
	if b := resized.Bounds(); b.Dx() != res.Width || b.Dy() != res.Height {
		return Output{}, NewError(EncodeError, "resize", res.Label,
			fmt.Errorf("resizer produced %dx%d, want %dx%d", b.Dx(), b.Dy(), res.Width, res.Height))
	}

	path := filepath.Join(dir, outputName)
	if err := writeAtomic(path, resized, enc); err != nil {
		slog.Error("Generator: failed to write icon", "path", path, "error", err)
		return Output{}, err
	}

	slog.Debug("Generator: icon written",
		"label", res.Label,
		"width", res.Width,
		"height", res.Height,
		"path", path)
	return Output{Resolution: res, Path: path}, nil
}

// writeAtomic encodes img into a temporary file next to path and renames it
// into place, so path is either the previous file or a complete new one.
func writeAtomic(path string, img image.Image, enc Encoder) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return NewError(FilesystemError, "create file", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := enc.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		cleanup()
		return NewError(EncodeError, "encode", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return NewError(FilesystemError, "write file", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return NewError(FilesystemError, "chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return NewError(FilesystemError, "rename", path, err)
	}
	return nil
}
