package graphics

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":  {0x00, 0x00, 0x00, 0xff},
	"white":  {0xff, 0xff, 0xff, 0xff},
	"gray":   {0xbe, 0xbe, 0xbe, 0xff},
	"grey":   {0xbe, 0xbe, 0xbe, 0xff},
	"red":    {0xff, 0x00, 0x00, 0xff},
	"green":  {0x00, 0xff, 0x00, 0xff},
	"blue":   {0x00, 0x00, 0xff, 0xff},
	"yellow": {0xff, 0xff, 0x00, 0xff},
	"cyan":   {0x00, 0xff, 0xff, 0xff},
	"orange": {0xff, 0xa5, 0x00, 0xff},
	"purple": {0xa0, 0x20, 0xf0, 0xff},
}

// ColorRGB returns the #rrggbb specifier for the given intensities.
func ColorRGB(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Hex returns the #rrggbb specifier of c, ignoring alpha.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ColorRGB(n.R, n.G, n.B)
}

// Colorize returns a random color specifier.
func Colorize() string {
	return ColorRGB(uint8(rand.IntN(256)), uint8(rand.IntN(256)), uint8(rand.IntN(256)))
}

// ColorizeLight returns a random color with every channel in the upper half.
func ColorizeLight() string {
	return ColorRGB(uint8(rand.IntN(128)+128), uint8(rand.IntN(128)+128), uint8(rand.IntN(128)+128))
}

// ColorizeDark returns a random color with every channel in the lower half.
func ColorizeDark() string {
	return ColorRGB(uint8(rand.IntN(128)), uint8(rand.IntN(128)), uint8(rand.IntN(128)))
}

// ParseColor reads a color name or a #RGB, #RGBA, #RRGGBB or #RRGGBBAA
// specifier. The empty string is the transparent "no color" and yields nil.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if s[0] != '#' {
		return nil, fmt.Errorf("%w: unknown color %q", ErrBadOption, s)
	}

	var c color.NRGBA
	c.A = 0xff
	var err error
	switch len(s) {
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 5:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		_, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		return nil, fmt.Errorf("%w: color should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA, got %q", ErrBadOption, s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read color %q: %v", ErrBadOption, s, err)
	}

	return c, nil
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
