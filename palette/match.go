package palette

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"pixelizer/okcolor"

	"golang.org/x/image/draw"
)

// Matcher maps colors onto the perceptually closest entry of a palette,
// measured in Oklab. It caches lookups and is not safe for concurrent use.
type Matcher struct {
	pal   color.Palette
	lab   []okcolor.Lab
	cache map[color.RGBA]int
}

func NewMatcher(pal color.Palette) *Matcher {
	m := &Matcher{
		pal:   pal,
		lab:   make([]okcolor.Lab, len(pal)),
		cache: make(map[color.RGBA]int),
	}
	for i, c := range pal {
		m.lab[i] = okcolor.ToLab(c)
	}
	return m
}

// Index returns the position of the closest entry, or -1 for an empty palette.
func (m *Matcher) Index(c color.Color) int {
	if len(m.pal) == 0 {
		return -1
	}
	key := color.RGBAModel.Convert(c).(color.RGBA)
	if i, ok := m.cache[key]; ok {
		return i
	}

	lc := okcolor.ToLab(c)
	ret, best := 0, math.MaxFloat64
	for i, v := range m.lab {
		d := okcolor.Distance(lc, v)
		if d < best {
			ret, best = i, d
			if d == 0 {
				break
			}
		}
	}
	m.cache[key] = ret
	return ret
}

// Convert returns the closest palette color, or c itself when the palette
// is empty.
func (m *Matcher) Convert(c color.Color) color.Color {
	i := m.Index(c)
	if i < 0 {
		return c
	}
	return m.pal[i]
}

// Apply converts img to a paletted image, optionally with Floyd-Steinberg
// error diffusion.
func Apply(logger *slog.Logger, img image.Image, pal color.Palette, dither bool) *image.Paletted {
	logger.Debug("applying palette", "colors", len(pal), "dither", dither)
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}
	return dest
}
