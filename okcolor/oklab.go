// based on:
// https://bottosson.github.io/posts/oklab/

// Package okcolor converts colors into the Oklab perceptual color space,
// where euclidean distance follows perceived difference.
package okcolor

import (
	"image/color"
	"math"
)

type Lab struct {
	L     float64 // perceived lightness
	A     float64 // how green/red the color is
	B     float64 // how blue/yellow the color is
	Alpha uint16
}

var LabModel = color.ModelFunc(labConvert)

func labConvert(c color.Color) color.Color {
	if lc, ok := c.(Lab); ok {
		return lc
	}
	return ToLab(c)
}

// ToLab converts any color, via linear sRGB.
func ToLab(c color.Color) Lab {
	r, g, b, a := linear(c)

	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	return Lab{
		L:     0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A:     1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B:     0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
		Alpha: a,
	}
}

// RGBA converts back to sRGB. Out of gamut components are clamped.
func (lc Lab) RGBA() (uint32, uint32, uint32, uint32) {
	l := lc.L + 0.3963377774*lc.A + 0.2158037573*lc.B
	m := lc.L - 0.1055613458*lc.A - 0.0638541728*lc.B
	s := lc.L - 0.0894841775*lc.A - 1.2914855480*lc.B
	l, m, s = l*l*l, m*m*m, s*s*s

	r := +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	b := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	// color.Color components are alpha-premultiplied.
	alpha := uint32(lc.Alpha)
	return toSRGB(r) * alpha / 0xffff, toSRGB(g) * alpha / 0xffff, toSRGB(b) * alpha / 0xffff, alpha
}

// Distance is the squared euclidean distance between two colors,
// alpha included on the same 0..1 scale.
func Distance(a, b Lab) float64 {
	dL := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	dA := (float64(a.Alpha) - float64(b.Alpha)) / 0xffff
	return dL*dL + da*da + db*db + dA*dA
}

func linear(c color.Color) (r, g, b float64, a uint16) {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return toLinear(float64(n.R) / 0xffff), toLinear(float64(n.G) / 0xffff), toLinear(float64(n.B) / 0xffff), n.A
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const pow float64 = 1.0 / 2.4

func toSRGB(x float64) uint32 {
	if x >= 0.0031308 {
		x = math.Pow(x, pow)*1.055 - 0.055
	} else {
		x *= 12.92
	}
	return uint32(math.Round(min(max(x, 0), 1) * 0xffff))
}
