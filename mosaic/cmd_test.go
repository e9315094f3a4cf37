package mosaic_test

import (
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelizer/app"
	"pixelizer/imagefile"
	"pixelizer/mosaic"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0x40, 0xff})
		}
	}
	require.NoError(t, imagefile.Save(img, path, false))
}

func TestCLICmd(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), 64, 48)
	writeImage(t, filepath.Join(dir, "b.gif"), 30, 60)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	cmd := &mosaic.CLICmd{
		Flags:      app.Flags{Width: 32, Height: 32, BlockSize: 8, Fit: "crop"},
		Paths:      []string{dir},
		Dest:       "out",
		Format:     "same",
		Workers:    2,
		PaletteOut: true,
	}
	require.NoError(t, cmd.Validate(nil))
	assert.Len(t, cmd.Files, 2)

	require.NoError(t, cmd.Run(app.DefaultOptions(), slog.New(slog.DiscardHandler)))

	for name, format := range map[string]string{"a.png": "png", "b.gif": "gif"} {
		img, got, err := imagefile.Open(filepath.Join(dir, "out", name))
		require.NoError(t, err, name)
		assert.Equal(t, format, got)
		assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds(), name)
	}
	_, err := os.Stat(filepath.Join(dir, "out", "a.pal"))
	assert.NoError(t, err)

	err = cmd.Run(app.DefaultOptions(), slog.New(slog.DiscardHandler))
	assert.ErrorContains(t, err, "error processing 2 files", "existing mosaics are not replaced")

	cmd.Overwrite = true
	assert.NoError(t, cmd.Run(app.DefaultOptions(), slog.New(slog.DiscardHandler)))
}

func TestCLICmd_validate(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, (&mosaic.CLICmd{Paths: []string{filepath.Join(dir, "missing.png")}}).Validate(nil))
	assert.ErrorContains(t, (&mosaic.CLICmd{Paths: []string{dir}}).Validate(nil), "no images found")
	assert.Error(t, (&mosaic.CLICmd{Paths: []string{dir}, Workers: -1}).Validate(nil))

	file := filepath.Join(dir, "one.jpg")
	writeImage(t, file, 10, 10)
	cmd := &mosaic.CLICmd{Paths: []string{file}, Format: "tiff", Dest: filepath.Join(dir, "abs")}
	require.NoError(t, cmd.Validate(nil))
	assert.Equal(t, []string{file}, cmd.Files)
}
