package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"pixelizer/imagefile"
	"pixelizer/palette"
	"pixelizer/pixelize"
)

var ErrNoImage = errors.New("no image loaded")

// Session holds one source image and the mosaic last made from it.
type Session struct {
	opts   Options
	logger *slog.Logger
	pal    color.Palette

	src    image.Image
	name   string
	format string
	result *pixelize.Result
}

func NewSession(logger *slog.Logger, opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := &Session{opts: opts, logger: logger}
	if opts.Palette != "" {
		pal, err := palette.Load(opts.Palette)
		if err != nil {
			return nil, err
		}
		s.pal = pal
	}
	return s, nil
}

func (s *Session) Options() Options { return s.opts }

// Load decodes the image at path and makes it the session source.
func (s *Session) Load(path string) error {
	img, format, err := imagefile.Open(path)
	if err != nil {
		return err
	}
	s.logger.Info("loaded image", "file", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	s.SetImage(img, filepath.Base(path))
	s.format = format
	return nil
}

// SetImage replaces the source image and drops the previous mosaic.
func (s *Session) SetImage(img image.Image, name string) {
	s.src, s.name, s.format, s.result = img, name, "", nil
}

func (s *Session) Image() image.Image { return s.src }
func (s *Session) Name() string       { return s.name }

// Format is the decoder that read the source, empty for images set directly.
func (s *Session) Format() string { return s.format }

func (s *Session) SetBlockSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: block size %d", pixelize.ErrInvalidArgument, n)
	}
	s.opts.BlockSize = n
	return nil
}

func (s *Session) SetFit(fit bool) { s.opts.Fit = fit }

func (s *Session) SetBox(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: mosaic box %dx%d", pixelize.ErrInvalidArgument, width, height)
	}
	s.opts.Width, s.opts.Height = width, height
	return nil
}

// Pixelize makes a new mosaic from the source with the current options.
func (s *Session) Pixelize(ctx context.Context) (*pixelize.Result, error) {
	if s.src == nil {
		return nil, ErrNoImage
	}
	res, err := pixelize.Pixelize(ctx, s.logger.With("image", s.name), s.src, pixelize.Options{
		Width:     s.opts.Width,
		Height:    s.opts.Height,
		BlockSize: s.opts.BlockSize,
		Fit:       s.opts.Fit,
		Palette:   s.pal,
	})
	if err != nil {
		return nil, err
	}
	s.result = res
	return res, nil
}

// Result returns the last mosaic, nil before the first Pixelize.
func (s *Session) Result() *pixelize.Result { return s.result }

// Save writes the last mosaic to path, encoded by extension. GIF output with
// a palette is reduced to exactly that palette.
func (s *Session) Save(path string) error {
	if s.result == nil {
		return fmt.Errorf("nothing to save: %w", ErrNoImage)
	}
	format, err := imagefile.FormatOf(path)
	if err != nil {
		return err
	}

	var img image.Image = s.result.Image()
	if format == "gif" && len(s.pal) > 0 {
		img = palette.Apply(s.logger, img, s.pal, s.opts.Dither)
	}

	if err := imagefile.Save(img, path, s.opts.Overwrite); err != nil {
		return fmt.Errorf("could not save mosaic: %w", err)
	}
	s.logger.Info("saved mosaic", "file", path, "format", format)
	return nil
}

// ExportPalette writes the distinct colors of the last mosaic as a RIFF
// palette.
func (s *Session) ExportPalette(path string) error {
	if s.result == nil {
		return fmt.Errorf("no palette to export: %w", ErrNoImage)
	}
	colors := s.result.Colors()
	if err := palette.Save(colors, path); err != nil {
		return err
	}
	s.logger.Info("exported palette", "file", path, "colors", len(colors))
	return nil
}
