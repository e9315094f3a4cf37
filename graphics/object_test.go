package graphics_test

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelizer/graphics"
	"pixelizer/imagefile"
)

func openWindow(t *testing.T) *graphics.Window {
	t.Helper()
	w, err := graphics.Open("test", 100, 80)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func TestObject_lifecycle(t *testing.T) {
	w := openWindow(t)
	obj := graphics.NewObject(graphics.NewRectangle(graphics.Pt(10, 10), graphics.Pt(30, 20)))

	assert.False(t, obj.Drawn())
	obj.Undraw()

	require.NoError(t, obj.Draw(w))
	assert.True(t, obj.Drawn())
	assert.Equal(t, 1, w.Len())
	assert.ErrorIs(t, obj.Draw(w), graphics.ErrAlreadyDrawn)

	obj.Move(5, -5)
	items := w.Items()
	require.Len(t, items, 1)
	assert.Equal(t, image.Rect(15, 5, 35, 15), items[0].Bounds())

	obj.Undraw()
	assert.False(t, obj.Drawn())
	assert.Equal(t, 0, w.Len())

	require.NoError(t, obj.Draw(w), "undrawn objects can be drawn again")
}

func TestObject_closedWindow(t *testing.T) {
	w := openWindow(t)
	obj := graphics.NewObject(graphics.NewCircle(graphics.Pt(50, 40), 10))
	require.NoError(t, obj.Draw(w))
	require.NoError(t, w.Close())

	assert.False(t, obj.Drawn())
	other := graphics.NewObject(graphics.NewLine(graphics.Pt(0, 0), graphics.Pt(10, 10)))
	assert.ErrorIs(t, other.Draw(w), graphics.ErrWindowClosed)

	obj.Undraw()
	assert.ErrorIs(t, obj.Draw(w), graphics.ErrWindowClosed)
}

func TestObject_options(t *testing.T) {
	w := openWindow(t)

	t.Run("rectangle", func(t *testing.T) {
		obj := graphics.NewObject(graphics.NewRectangle(graphics.Pt(0, 0), graphics.Pt(10, 10)))
		require.NoError(t, obj.Draw(w))
		require.NoError(t, obj.SetFill(color.White))
		require.NoError(t, obj.SetWidth(3))
		assert.Equal(t, color.White, w.Items()[w.Len()-1].Style.Fill)
		assert.Equal(t, 3.0, w.Items()[w.Len()-1].Style.Width)

		assert.ErrorIs(t, obj.SetArrow("last"), graphics.ErrUnsupportedOption)
		assert.ErrorIs(t, obj.SetText("nope"), graphics.ErrUnsupportedOption)
		assert.ErrorIs(t, obj.SetWidth(-1), graphics.ErrBadOption)
	})

	t.Run("line color is fill", func(t *testing.T) {
		obj := graphics.NewObject(graphics.NewLine(graphics.Pt(0, 0), graphics.Pt(10, 0)))
		red := graphics.MustParseColor("red")
		require.NoError(t, obj.SetOutline(red))
		assert.Equal(t, red, obj.Shape().Style().Fill)
		require.NoError(t, obj.SetArrow("both"))
		assert.ErrorIs(t, obj.SetArrow("sideways"), graphics.ErrBadOption)
	})

	t.Run("text font", func(t *testing.T) {
		obj := graphics.NewObject(graphics.NewText(graphics.Pt(50, 40), "hello"))
		require.NoError(t, obj.SetSize(13))
		require.NoError(t, obj.SetFace("courier"))
		require.NoError(t, obj.SetStyle("bold italic"))
		assert.ErrorIs(t, obj.SetSize(4), graphics.ErrBadOption)
		assert.ErrorIs(t, obj.SetSize(37), graphics.ErrBadOption)
		assert.ErrorIs(t, obj.SetFace("comic sans"), graphics.ErrBadOption)
		assert.ErrorIs(t, obj.SetJustify("middle"), graphics.ErrBadOption)

		font := obj.Shape().Style().Font
		assert.Equal(t, graphics.Font{Face: "courier", Size: 13, Style: "bold italic"}, font)

		require.NoError(t, obj.SetText("bye"))
		s, err := obj.Text()
		require.NoError(t, err)
		assert.Equal(t, "bye", s)
	})
}

func TestObject_clone(t *testing.T) {
	im := graphics.NewBlankImage(graphics.Pt(5, 5), 4, 4)
	obj := graphics.NewObject(im)
	cp := obj.Clone()

	im.SetPixel(1, 1, color.White)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, obj.Shape().(graphics.Image).Pixel(1, 1))
	assert.Equal(t, color.RGBA{}, cp.Shape().(graphics.Image).Pixel(1, 1))
	assert.False(t, cp.Drawn())

	path := filepath.Join(t.TempDir(), "pixmap.png")
	require.NoError(t, im.Save(path))
	saved, _, err := imagefile.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), saved.Bounds())
}

func TestShapes_geometry(t *testing.T) {
	r := graphics.NewRectangle(graphics.Pt(0, 0), graphics.Pt(4, 3))
	assert.Equal(t, 12.0, r.Area())
	assert.Equal(t, 14.0, r.Perimeter())
	assert.Equal(t, 2.0, r.Center().X)

	l := graphics.NewLine(graphics.Pt(0, 0), graphics.Pt(3, 4))
	assert.Equal(t, 5.0, l.Length())
	assert.InDelta(t, 4.0/3, l.Slope(), 1e-9)
	assert.Equal(t, 1.5, l.Midpoint().X)

	tri := graphics.NewTriangle(graphics.Pt(0, 0), graphics.Pt(3, 0), graphics.Pt(0, 4))
	assert.InDelta(t, 6.0, tri.Area(), 1e-9)
	assert.InDelta(t, 12.0, tri.Perimeter(), 1e-9)

	c := graphics.NewCircle(graphics.Pt(10, 10), 5)
	assert.Equal(t, 5.0, c.Radius)
	moved := c.Translate(1, 2).(graphics.Circle)
	assert.Equal(t, 11.0, moved.Center().X)
	assert.Equal(t, 12.0, moved.Center().Y)

	poly := graphics.NewPolygon(graphics.Pt(0, 0), graphics.Pt(1, 0), graphics.Pt(1, 1))
	pts := poly.Points()
	pts[0] = graphics.Pt(9, 9)
	assert.Equal(t, 0.0, poly.Points()[0].X)
}

func TestSpin(t *testing.T) {
	s := graphics.NewSpin(graphics.Pt(0, 0), 4, 0, 100)
	_, err := s.Value()
	assert.ErrorIs(t, err, graphics.ErrBadOption)

	s = s.WithText("10").(graphics.Spin)
	v, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	v, err = s.Step(200).Value()
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	_, err = s.WithText("101").(graphics.Spin).Value()
	assert.ErrorIs(t, err, graphics.ErrBadOption)
}
