package app_test

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelizer/app"
	"pixelizer/graphics"
	"pixelizer/imagefile"
)

func TestLayout(t *testing.T) {
	s := newSession(t, nil)
	l, err := app.NewLayout(discard, s)
	require.NoError(t, err)
	defer l.Win.Close()

	assert.Equal(t, app.WindowWidth, l.Win.Width())
	assert.Equal(t, 7, l.Win.Len(), "sidebar, label, spinner and four buttons")

	size, err := l.BlockSize()
	require.NoError(t, err)
	assert.Equal(t, 10, size)

	for _, name := range []string{app.ButtonLoad, app.ButtonSave, app.ButtonUpdate, app.ButtonQuit} {
		b, ok := l.Button(name)
		require.True(t, ok, name)
		assert.True(t, b.Drawn(), name)
	}
	_, ok := l.Button("help")
	assert.False(t, ok)

	assert.ErrorIs(t, l.Press(app.ButtonUpdate), app.ErrNoImage)

	s.SetImage(quadrants(80, 80), "quad")
	require.NoError(t, l.Press(app.ButtonUpdate))
	assert.Len(t, l.Mosaic(), 16)
	assert.Equal(t, 7+16, l.Win.Len())

	first := l.Win.Items()[7]
	assert.Equal(t, graphics.KindRectangle, first.Kind)
	assert.Equal(t, image.Rect(5, 5, 15, 15), first.Bounds())

	require.NoError(t, l.SetBlockSize(20))
	require.NoError(t, l.Press(app.ButtonUpdate))
	assert.Len(t, l.Mosaic(), 4)
	assert.Equal(t, 7+4, l.Win.Len(), "the previous mosaic is replaced")

	require.NoError(t, l.SetBlockSize(0))
	assert.ErrorIs(t, l.Press(app.ButtonUpdate), graphics.ErrInvalidArgument)

	assert.ErrorIs(t, l.Press(app.ButtonSave), graphics.ErrInvalidArgument)
	l.SavePath = filepath.Join(t.TempDir(), "saved.png")
	require.NoError(t, l.Press(app.ButtonSave))
	_, err = os.Stat(l.SavePath)
	assert.NoError(t, err)

	snapshot := filepath.Join(t.TempDir(), "window.png")
	require.NoError(t, l.Win.Save(snapshot))
	img, _, err := imagefile.Open(snapshot)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, app.WindowWidth, app.WindowHeight), img.Bounds())

	require.NoError(t, l.Press(app.ButtonQuit))
	assert.True(t, l.Win.IsClosed())
}

func TestLayout_load(t *testing.T) {
	src := filepath.Join(t.TempDir(), "quad.png")
	require.NoError(t, imagefile.Save(quadrants(40, 40), src, false))

	l, err := app.NewLayout(discard, newSession(t, nil))
	require.NoError(t, err)
	defer l.Win.Close()

	assert.ErrorIs(t, l.Press(app.ButtonLoad), app.ErrNoImage)
	l.LoadPath = src
	require.NoError(t, l.Press(app.ButtonLoad))
	assert.Len(t, l.Mosaic(), 16)
}

func TestWindowCmd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "quad.png")
	require.NoError(t, imagefile.Save(quadrants(120, 100), src, false))

	opts := app.DefaultOptions()

	cmd := &app.WindowCmd{
		Flags:    app.Flags{Fit: "config", BlockSize: 25},
		Image:    src,
		Snapshot: filepath.Join(dir, "snap.png"),
		Save:     filepath.Join(dir, "mosaic.bmp"),
		Clicks:   []string{"703,100", "10,10"},
	}
	require.NoError(t, cmd.Validate(nil))
	assert.Equal(t, []image.Point{{703, 100}, {10, 10}}, cmd.Points)
	require.NoError(t, cmd.Run(opts, discard))

	snap, _, err := imagefile.Open(cmd.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, app.WindowWidth, snap.Bounds().Dx())
	mosaic, format, err := imagefile.Open(cmd.Save)
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
	assert.Equal(t, image.Rect(0, 0, 590, 490), mosaic.Bounds())

	quit := &app.WindowCmd{Flags: app.Flags{Fit: "config"}, Snapshot: filepath.Join(dir, "never.png"), Clicks: []string{"703, 475"}}
	require.NoError(t, quit.Validate(nil))
	require.NoError(t, quit.Run(opts, discard))
	_, err = os.Stat(quit.Snapshot)
	assert.ErrorIs(t, err, os.ErrNotExist)

	for _, bad := range []*app.WindowCmd{
		{Snapshot: "out.xyz"},
		{Snapshot: "out.png", Clicks: []string{"12"}},
		{Snapshot: "out.png", Clicks: []string{"a,1"}},
	} {
		assert.Error(t, bad.Validate(nil))
	}
}
