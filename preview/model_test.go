package preview

import (
	"image"
	"image/color"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelizer/app"
	"pixelizer/graphics"
	"pixelizer/imagefile"
)

func newModel(t *testing.T, save string) Model {
	t.Helper()
	opts := app.DefaultOptions()
	opts.Width, opts.Height, opts.BlockSize = 40, 20, 5
	s, err := app.NewSession(slog.New(slog.DiscardHandler), opts)
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 80, 40))
	for y := range 40 {
		for x := range 80 {
			img.Set(x, y, color.RGBA{uint8(x * 3), uint8(y * 6), 0x80, 0xff})
		}
	}
	s.SetImage(img, "sample")
	return NewModel(s, save)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_keys(t *testing.T) {
	m := newModel(t, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	require.NoError(t, m.err)
	require.NotNil(t, m.result)
	assert.Len(t, m.result.Tiles, 8*4)

	m, _ = update(t, m, key("+"))
	assert.Equal(t, 6, m.Session.Options().BlockSize)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, key("-"))
	assert.Equal(t, 4, m.Session.Options().BlockSize)
	assert.Len(t, m.result.Tiles, 10*5)

	for range 10 {
		m, _ = update(t, m, key("-"))
	}
	assert.Equal(t, 1, m.Session.Options().BlockSize)
	assert.ErrorIs(t, m.err, graphics.ErrInvalidArgument, "block size stops at 1")
	assert.Contains(t, m.View(), "block size 0")

	m, _ = update(t, m, key("+"))
	require.NoError(t, m.err)
	assert.Equal(t, 2, m.Session.Options().BlockSize)

	m, _ = update(t, m, key("f"))
	assert.False(t, m.Session.Options().Fit)

	m, _ = update(t, m, key("s"))
	assert.Error(t, m.err, "no save path")

	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	m := newModel(t, path)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m, _ = update(t, m, key("s"))
	require.NoError(t, m.err)
	assert.Contains(t, m.status, path)

	img, _, err := imagefile.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
}

func TestModel_view(t *testing.T) {
	m := newModel(t, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 12})
	view := m.View()

	assert.Contains(t, view, "sample")
	assert.Contains(t, view, "block 5")
	assert.Contains(t, view, "q quit")
	assert.Equal(t, 10, strings.Count(view, "\n"), "title, eight picture rows, status and help")
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	lines := halfBlocks(img, 10, 16)
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 10, strings.Count(l, "▄"))
	}

	assert.Nil(t, halfBlocks(img, 0, 10))
	assert.Nil(t, halfBlocks(image.NewRGBA(image.Rectangle{}), 10, 10))
}
