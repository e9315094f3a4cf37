package pixelize

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// Tile is one block of the mosaic: a rectangle filled with a single color.
type Tile struct {
	Rect  image.Rectangle
	Color color.RGBA
}

// Canvas is a surface that can take borderless filled rectangles in pixel
// coordinates. *graphics.Window implements it.
type Canvas interface {
	CreateRectangle(x1, y1, x2, y2 int, fill color.Color) (uuid.UUID, error)
}

// Channels reports how many color channels img carries. Images can state it
// with a Channels() int method; otherwise it follows the color model.
func Channels(img image.Image) int {
	if c, ok := img.(interface{ Channels() int }); ok {
		return c.Channels()
	}
	model := img.ColorModel()
	if _, ok := model.(color.Palette); ok {
		return 3
	}
	switch model {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	}
	return 4
}

// Squares splits img into psize blocks in row-major order and samples each
// at its center. Blocks on the right and bottom edges are clipped to the
// image and sampled at the center of what remains. Images that are neither
// RGB nor RGBA yield no tiles; that is logged, not returned.
func Squares(ctx context.Context, logger *slog.Logger, img image.Image, psize int) ([]Tile, error) {
	if psize <= 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidArgument, psize)
	}

	if ch := Channels(img); ch != 3 && ch != 4 {
		logger.Warn("skipping image", "channels", ch, "error", ErrUnsupportedFormat)
		return nil, nil
	}

	b := img.Bounds()
	cols := (b.Dx() + psize - 1) / psize
	rows := (b.Dy() + psize - 1) / psize
	tiles := make([]Tile, 0, cols*rows)

	for y := b.Min.Y; y < b.Max.Y; y += psize {
		if err := ctx.Err(); err != nil {
			return tiles, fmt.Errorf("pixelize interrupted at row %d: %w", y, err)
		}
		for x := b.Min.X; x < b.Max.X; x += psize {
			r := image.Rect(x, y, x+psize, y+psize).Intersect(b)
			c := color.NRGBAModel.Convert(img.At(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)).(color.NRGBA)
			tiles = append(tiles, Tile{Rect: r, Color: color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}})
		}
	}

	logger.Debug("sampled blocks", "size", psize, "columns", cols, "rows", rows)
	return tiles, nil
}

// Draw issues one rectangle per tile on c, offset by at.
func Draw(c Canvas, tiles []Tile, at image.Point) error {
	for i, t := range tiles {
		r := t.Rect.Add(at)
		if _, err := c.CreateRectangle(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, t.Color); err != nil {
			return fmt.Errorf("could not draw tile %d: %w", i, err)
		}
	}
	return nil
}

// Render paints tiles onto a new image covering bounds.
func Render(bounds image.Rectangle, tiles []Tile) *image.RGBA {
	dest := image.NewRGBA(bounds)
	for _, t := range tiles {
		draw.Draw(dest, t.Rect, image.NewUniform(t.Color), image.Point{}, draw.Src)
	}
	return dest
}
