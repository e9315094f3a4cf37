package app_test

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelizer/app"
	"pixelizer/graphics"
	"pixelizer/imagefile"
	"pixelizer/palette"
)

var discard = slog.New(slog.DiscardHandler)

func quadrants(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	colors := []color.RGBA{{0xff, 0, 0, 0xff}, {0, 0xff, 0, 0xff}, {0, 0, 0xff, 0xff}, {0xff, 0xff, 0xff, 0xff}}
	for y := range h {
		for x := range w {
			q := 0
			if x >= w/2 {
				q++
			}
			if y >= h/2 {
				q += 2
			}
			img.SetRGBA(x, y, colors[q])
		}
	}
	return img
}

func newSession(t *testing.T, modify func(*app.Options)) *app.Session {
	t.Helper()
	opts := app.DefaultOptions()
	opts.Width, opts.Height, opts.BlockSize = 40, 40, 10
	if modify != nil {
		modify(&opts)
	}
	s, err := app.NewSession(discard, opts)
	require.NoError(t, err)
	return s
}

func TestSession_flow(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "quad.png")
	require.NoError(t, imagefile.Save(quadrants(80, 80), src, false))

	s := newSession(t, nil)
	_, err := s.Pixelize(context.Background())
	assert.ErrorIs(t, err, app.ErrNoImage)
	assert.ErrorIs(t, s.Save(filepath.Join(dir, "early.png")), app.ErrNoImage)

	require.NoError(t, s.Load(src))
	assert.Equal(t, "png", s.Format())
	assert.Equal(t, "quad.png", s.Name())

	res, err := s.Pixelize(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Tiles, 16)
	assert.Same(t, res, s.Result())
	assert.Len(t, res.Colors(), 4)

	require.NoError(t, s.SetBlockSize(20))
	res, err = s.Pixelize(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Tiles, 4)
	assert.ErrorIs(t, s.SetBlockSize(0), graphics.ErrInvalidArgument)

	out := filepath.Join(dir, "mosaic.png")
	require.NoError(t, s.Save(out))
	img, _, err := imagefile.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 40), img.Bounds())
	assert.ErrorIs(t, s.Save(out), imagefile.ErrExists)

	pal := filepath.Join(dir, "mosaic.pal")
	require.NoError(t, s.ExportPalette(pal))
	colors, err := palette.Load(pal)
	require.NoError(t, err)
	assert.Len(t, colors, 4)
}

func TestSession_gifPalette(t *testing.T) {
	s := newSession(t, func(o *app.Options) { o.Palette = "bw" })
	s.SetImage(quadrants(40, 40), "quad")
	_, err := s.Pixelize(context.Background())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "mosaic.gif")
	require.NoError(t, s.Save(out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.Decode(f)
	require.NoError(t, err)
	p, ok := g.(*image.Paletted)
	require.True(t, ok)
	assert.Len(t, p.Palette, 2)
}

func TestSession_invalid(t *testing.T) {
	opts := app.DefaultOptions()
	opts.BlockSize = 0
	_, err := app.NewSession(discard, opts)
	assert.ErrorIs(t, err, graphics.ErrInvalidArgument)

	s := newSession(t, nil)
	assert.Error(t, s.Load(filepath.Join(t.TempDir(), "missing.png")))
	assert.ErrorIs(t, s.SetBox(0, 10), graphics.ErrInvalidArgument)
}
