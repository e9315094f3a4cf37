package graphics

import (
	"fmt"
	"math"
)

// Transform maps a logical coordinate rectangle onto the pixels of a window.
// The lower-left logical corner (xlow, ylow) lands on raw pixel (0, h-1) and
// the upper-right corner (xhigh, yhigh) on raw pixel (w-1, 0).
//
// A nil *Transform is the identity mapping.
type Transform struct {
	xbase, ybase   float64
	xscale, yscale float64
}

// NewTransform builds the mapping for a w x h window showing the logical
// rectangle (xlow, ylow)-(xhigh, yhigh).
func NewTransform(w, h int, xlow, ylow, xhigh, yhigh float64) (*Transform, error) {
	if w <= 1 || h <= 1 {
		return nil, fmt.Errorf("%w: window size %dx%d", ErrInvalidArgument, w, h)
	}
	if xhigh == xlow || yhigh == ylow {
		return nil, fmt.Errorf("%w: empty coordinate span (%g,%g)-(%g,%g)", ErrInvalidArgument, xlow, ylow, xhigh, yhigh)
	}

	return &Transform{
		xbase:  xlow,
		ybase:  yhigh,
		xscale: (xhigh - xlow) / float64(w-1),
		yscale: (yhigh - ylow) / float64(h-1),
	}, nil
}

// Screen returns the window pixel for the logical point (x, y), rounded half up.
func (t *Transform) Screen(x, y float64) (int, int) {
	if t == nil {
		return round(x), round(y)
	}
	xs := (x - t.xbase) / t.xscale
	ys := (t.ybase - y) / t.yscale
	return round(xs), round(ys)
}

// World returns the logical point for the window pixel (xs, ys).
func (t *Transform) World(xs, ys int) (float64, float64) {
	if t == nil {
		return float64(xs), float64(ys)
	}
	x := float64(xs)*t.xscale + t.xbase
	y := t.ybase - float64(ys)*t.yscale
	return x, y
}

// Scale returns the logical size of one pixel along each axis.
func (t *Transform) Scale() (float64, float64) {
	if t == nil {
		return 1, 1
	}
	return t.xscale, t.yscale
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
