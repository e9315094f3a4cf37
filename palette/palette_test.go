package palette_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelizer/palette"
)

func TestRIFF(t *testing.T) {
	pal := color.Palette{
		color.RGBA{0x10, 0x20, 0x30, 0xff},
		color.RGBA{0xff, 0x00, 0x80, 0xff},
		color.RGBA{0x00, 0x00, 0x00, 0xff},
	}

	var buf bytes.Buffer
	n, err := palette.Write(&buf, pal)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, 8+4+8+4+4*len(pal), buf.Len())
	assert.Equal(t, "RIFF", string(buf.Bytes()[:4]))
	assert.Equal(t, uint32(buf.Len()-8), binary.LittleEndian.Uint32(buf.Bytes()[4:8]))
	assert.Equal(t, "PAL data", string(buf.Bytes()[8:16]))

	got, err := palette.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, pal, got)
}

func TestRead_errors(t *testing.T) {
	_, err := palette.Read(bytes.NewReader([]byte("RIFF\x04\x00\x00\x00WAVE")))
	assert.ErrorContains(t, err, "unsupported RIFF content type")

	var buf bytes.Buffer
	_, err = palette.Write(&buf, color.Palette{color.Black})
	require.NoError(t, err)
	raw := buf.Bytes()
	raw[20], raw[21] = 0x00, 0x01
	_, err = palette.Read(bytes.NewReader(raw))
	assert.ErrorContains(t, err, "unsupported palette version")
}

func TestLoad(t *testing.T) {
	for _, name := range palette.Names() {
		pal, err := palette.Load(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, pal, name)
	}

	bw, err := palette.Load("bw")
	require.NoError(t, err)
	assert.Equal(t, color.Palette{color.RGBA{0, 0, 0, 0xff}, color.RGBA{0xff, 0xff, 0xff, 0xff}}, bw)

	vga, err := palette.Load("vga16")
	require.NoError(t, err)
	assert.Len(t, vga, 16)

	path := filepath.Join(t.TempDir(), "vga.pal")
	require.NoError(t, palette.Save(vga, path))
	fromFile, err := palette.Load(path)
	require.NoError(t, err)
	assert.Equal(t, vga, fromFile)

	_, err = palette.Load("no-such-palette")
	assert.Error(t, err)
}

func TestMatcher(t *testing.T) {
	pal, err := palette.Load("vga16")
	require.NoError(t, err)
	m := palette.NewMatcher(pal)

	for i, c := range pal {
		assert.Equal(t, i, m.Index(c), "exact match for %v", c)
	}
	assert.Equal(t, color.RGBA{0xaa, 0x00, 0x00, 0xff}, m.Convert(color.RGBA{0xb0, 0x08, 0x04, 0xff}))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, m.Convert(color.RGBA{0xfa, 0xfa, 0xfa, 0xff}))

	empty := palette.NewMatcher(nil)
	assert.Equal(t, -1, empty.Index(color.White))
	assert.Equal(t, color.White, empty.Convert(color.White))
}

func TestApply(t *testing.T) {
	img := image.NewRGBA(image.Rect(2, 2, 6, 6))
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			img.Set(x, y, color.RGBA{0xe0, 0xe0, 0xe0, 0xff})
		}
	}
	bw, err := palette.Load("bw")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	for _, dither := range []bool{false, true} {
		out := palette.Apply(logger, img, bw, dither)
		assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
		assert.Equal(t, uint8(1), out.ColorIndexAt(0, 0))
	}
}
