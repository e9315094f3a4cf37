package graphics

import (
	"fmt"
	"image/color"
	"strings"
)

// Option names a configurable attribute of a shape.
type Option uint16

const (
	OptFill Option = 1 << iota
	OptOutline
	OptWidth
	OptArrow
	OptJustify
	OptText
	OptFont
	// OptColor is the foreground (text) color. Shapes map it onto fill or
	// outline depending on how they are painted.
	OptColor
)

func (o Option) String() string {
	switch o {
	case OptFill:
		return "fill"
	case OptOutline:
		return "outline"
	case OptWidth:
		return "width"
	case OptArrow:
		return "arrow"
	case OptJustify:
		return "justify"
	case OptText:
		return "text"
	case OptFont:
		return "font"
	case OptColor:
		return "color"
	}
	return fmt.Sprintf("option(%d)", uint16(o))
}

// Arrow says which ends of a line carry an arrowhead.
type Arrow string

const (
	ArrowNone  Arrow = "none"
	ArrowFirst Arrow = "first"
	ArrowLast  Arrow = "last"
	ArrowBoth  Arrow = "both"
)

func ParseArrow(s string) (Arrow, error) {
	switch a := Arrow(strings.ToLower(s)); a {
	case ArrowNone, ArrowFirst, ArrowLast, ArrowBoth:
		return a, nil
	}
	return "", fmt.Errorf("%w: arrow %q", ErrBadOption, s)
}

// Font describes a text face. Faces are helvetica, arial, courier and
// times roman; sizes run from 5 to 36 points.
type Font struct {
	Face  string
	Size  int
	Style string
}

var DefaultFont = Font{Face: "helvetica", Size: 12, Style: "normal"}

func (f Font) WithFace(face string) (Font, error) {
	switch face {
	case "helvetica", "arial", "courier", "times roman":
		f.Face = face
		return f, nil
	}
	return f, fmt.Errorf("%w: font face %q", ErrBadOption, face)
}

func (f Font) WithSize(size int) (Font, error) {
	if size < 5 || size > 36 {
		return f, fmt.Errorf("%w: font size %d", ErrBadOption, size)
	}
	f.Size = size
	return f, nil
}

func (f Font) WithStyle(style string) (Font, error) {
	switch style {
	case "normal", "bold", "italic", "bold italic":
		f.Style = style
		return f, nil
	}
	return f, fmt.Errorf("%w: font style %q", ErrBadOption, style)
}

// Style holds the paint attributes of a shape. A nil color is not painted.
type Style struct {
	Fill    color.Color
	Outline color.Color
	Width   float64
	Arrow   Arrow
	Justify string
	Font    Font
}

// DefaultStyle is an unfilled shape with a one pixel black outline.
func DefaultStyle() Style {
	return Style{
		Outline: color.Black,
		Width:   1,
		Arrow:   ArrowNone,
		Justify: "center",
		Font:    DefaultFont,
	}
}
