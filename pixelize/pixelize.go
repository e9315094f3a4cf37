// Package pixelize turns images into mosaics of solid-color blocks.
package pixelize

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"pixelizer/graphics"
	"pixelizer/palette"
)

var (
	ErrInvalidArgument = graphics.ErrInvalidArgument
	// ErrUnsupportedFormat marks images whose pixels are neither RGB nor RGBA.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
)

type Options struct {
	Width     int
	Height    int
	BlockSize int
	// Fit crops the source to fill the box exactly instead of fitting
	// the whole image inside it.
	Fit bool
	// Palette, if not empty, restricts block colors to its entries.
	Palette color.Palette
}

type Result struct {
	Bounds image.Rectangle
	Tiles  []Tile
}

// Pixelize resizes img into the options box and samples it into blocks.
func Pixelize(ctx context.Context, logger *slog.Logger, img image.Image, opts Options) (*Result, error) {
	if opts.BlockSize <= 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidArgument, opts.BlockSize)
	}

	resized, err := Resize(logger, img, opts.Width, opts.Height, opts.Fit)
	if err != nil {
		return nil, fmt.Errorf("could not resize image: %w", err)
	}

	tiles, err := Squares(ctx, logger, resized, opts.BlockSize)
	if err != nil {
		return nil, err
	}

	if len(opts.Palette) > 0 {
		m := palette.NewMatcher(opts.Palette)
		for i := range tiles {
			tiles[i].Color = color.RGBAModel.Convert(m.Convert(tiles[i].Color)).(color.RGBA)
		}
	}

	logger.Info("pixelized", "width", resized.Bounds().Dx(), "height", resized.Bounds().Dy(),
		"block", opts.BlockSize, "tiles", len(tiles))
	return &Result{Bounds: resized.Bounds(), Tiles: tiles}, nil
}

func (r *Result) Image() *image.RGBA {
	return Render(r.Bounds, r.Tiles)
}

func (r *Result) Draw(c Canvas, at image.Point) error {
	return Draw(c, r.Tiles, at)
}

// Colors lists the distinct tile colors in order of first use.
func (r *Result) Colors() color.Palette {
	seen := make(map[color.RGBA]bool)
	var pal color.Palette
	for _, t := range r.Tiles {
		if !seen[t.Color] {
			seen[t.Color] = true
			pal = append(pal, t.Color)
		}
	}
	return pal
}
