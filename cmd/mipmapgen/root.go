package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jo-hoe/mipmapgen/internal/core"
	"github.com/jo-hoe/mipmapgen/internal/mipmap"
	"github.com/jo-hoe/mipmapgen/internal/resample"
)

const (
	usageMessage = "please provide the source icon file path and the output icon file name as arguments"
	usageLine    = "usage: mipmapgen [flags] <source_image_path> <output_image_name>"
)

type options struct {
	configPath string
	filter     string
	parallel   bool
	verbose    bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mipmapgen <source_image_path> <output_image_name>",
		Short: "Generate Android launcher icons for every mipmap density",
		Long: `mipmapgen resizes one source icon to the five Android launcher icon
densities and writes each copy into ./mipmap-<density>/<output_image_name>
below the current working directory:

  mipmap-mdpi     48x48
  mipmap-hdpi     72x72
  mipmap-xhdpi    96x96
  mipmap-xxhdpi   144x144
  mipmap-xxxhdpi  192x192

The output format follows the extension of output_image_name.`,
		Version:       "0.1.0",
		Args:          requireSourceAndOutput,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(stderr, opts.verbose)
			return run(cmd.Context(), cmd, opts, args[0], args[1], stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return mipmap.Usagef("%v", err)
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default $"+core.ConfigPathEnv+")")
	flags.StringVar(&opts.filter, "filter", "", fmt.Sprintf("resampling filter, one of %v (default %s)", resample.Names(), resample.Default))
	flags.BoolVar(&opts.parallel, "parallel", false, "resize all densities concurrently")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// requireSourceAndOutput accepts two or more positional arguments; extras are ignored
func requireSourceAndOutput(_ *cobra.Command, args []string) error {
	if len(args) < 2 {
		return mipmap.Usagef("%s", usageMessage)
	}
	return nil
}

func run(ctx context.Context, cmd *cobra.Command, opts *options, source, output string, stdout io.Writer) error {
	configPath := core.ResolveConfigPath(opts.configPath)
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return mipmap.NewError(mipmap.ConfigError, "load config", configPath, err)
	}

	if cmd.Flags().Changed("filter") {
		if !resample.IsValid(opts.filter) {
			return mipmap.NewError(mipmap.ConfigError, "select filter", "",
				fmt.Errorf("unknown resampling filter %q (available: %v)", opts.filter, resample.Names()))
		}
		cfg.Filter = opts.filter
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = opts.parallel
	}

	slog.Debug("configuration resolved",
		"config_path", configPath,
		"filter", cfg.Filter,
		"parallel", cfg.Parallel,
		"command_count", len(cfg.Commands))

	outputs, err := mipmap.Run(ctx, mipmap.Job{
		SourcePath: source,
		OutputName: output,
		Root:       ".",
		Config:     cfg,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "icons generated successfully and saved to %d mipmap directories\n", len(outputs))
	return nil
}

// execute runs the root command and maps its outcome to a process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var runErr *mipmap.Error
	if errors.As(err, &runErr) && runErr.Kind == mipmap.UsageError {
		fmt.Fprintln(stdout, runErr.Err)
		fmt.Fprintln(stdout, usageLine)
		return 1
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})))
}
