package main

import (
	"log/slog"
	"os"
	"strings"

	"pixelizer/app"
	"pixelizer/mosaic"
	"pixelizer/palette"
	"pixelizer/preview"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
)

var cli struct {
	Config  string `short:"c" help:"TOML options file" type:"path"`
	Verbose bool   `short:"v" help:"Log debug messages"`

	Mosaic  mosaic.CLICmd  `cmd:"" help:"Pixelize images and folders of images"`
	Window  app.WindowCmd  `cmd:"" help:"Build the pixelizer window and save a snapshot of it"`
	Preview preview.CLICmd `cmd:"" help:"Tune the block size of an image in the terminal"`
}

func newLogger(verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	return slog.New(handler)
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("pixelizer"),
		kong.Description("Redraw images as mosaics of solid color blocks."),
		kong.UsageOnError(),
		kong.Vars{"palettes": strings.Join(palette.Names(), ", ")},
	)

	logger := newLogger(cli.Verbose)
	slog.SetDefault(logger)
	gg.SetLogger(logger.With("lib", "gg"))

	opts, err := app.LoadOptions(cli.Config)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := kctx.Run(opts, logger); err != nil {
		logger.Error("failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
