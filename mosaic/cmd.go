// Package mosaic pixelizes many images at once.
package mosaic

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"pixelizer/app"
	"pixelizer/imagefile"
	"pixelizer/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	app.Flags
	Paths      []string `arg:"" help:"Images, or folders to scan for images" type:"path"`
	Dest       string   `help:"Destination folder for mosaics. Relative to the source folder if not absolute." default:"pixelized"`
	Format     string   `help:"Output format. 'same' keeps the source format where it can be written." enum:"same,gif,jpeg,png,bmp,tiff" default:"png"`
	Workers    int      `short:"j" help:"Images processed at once, 0 for one per CPU" default:"0"`
	PaletteOut bool     `help:"Also write the colors of each mosaic as a RIFF .pal file"`
	Files      []string `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}

	c.Files = c.Files[:0]
	for _, p := range c.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", p, err)
		}
		if !info.IsDir() {
			c.Files = append(c.Files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return fmt.Errorf("unable to read folder %q: %w", p, err)
		}
		for _, e := range entries {
			if !e.IsDir() && imagefile.IsImage(e.Name()) {
				c.Files = append(c.Files, filepath.Join(p, e.Name()))
			}
		}
	}
	if len(c.Files) == 0 {
		return fmt.Errorf("no images found in %v", c.Paths)
	}
	return nil
}

// destPath places the mosaic of src in the destination folder with the
// output format extension.
func (c *CLICmd) destPath(src, srcFormat string) string {
	dir := c.Dest
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(src), dir)
	}

	format := c.Format
	if format == "same" {
		format = srcFormat
		if _, err := imagefile.FormatOf("x" + imagefile.Ext(format)); err != nil {
			format = "png"
		}
	}

	base := filepath.Base(src)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+imagefile.Ext(format))
}

func (c *CLICmd) Run(opts app.Options, logger *slog.Logger) error {
	opts = c.Apply(opts)
	if err := opts.Validate(); err != nil {
		return err
	}

	pool := parallel.Start(c.Workers)
	logger.Debug("processing", "files", len(c.Files), "workers", pool.Workers())

	var processedCount, errCount atomic.Uint64
	for _, file := range c.Files {
		pool.Do(func() {
			fileLog := logger.With("file", file)
			if err := c.process(fileLog, opts, file); err != nil {
				errCount.Add(1)
				fileLog.Error("could not pixelize image", "error", err)
				return
			}
			processedCount.Add(1)
		})
	}

	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	logger.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) process(logger *slog.Logger, opts app.Options, file string) error {
	session, err := app.NewSession(logger, opts)
	if err != nil {
		return err
	}

	if err := session.Load(file); err != nil {
		return err
	}
	if _, err := session.Pixelize(context.Background()); err != nil {
		return err
	}

	dest := c.destPath(file, session.Format())
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", filepath.Dir(dest), err)
	}
	if err := session.Save(dest); err != nil {
		return err
	}

	if c.PaletteOut {
		pal := strings.TrimSuffix(dest, filepath.Ext(dest)) + ".pal"
		if err := session.ExportPalette(pal); err != nil {
			return err
		}
	}
	return nil
}
