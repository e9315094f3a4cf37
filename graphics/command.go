package graphics

import (
	"image"
)

// Kind is the type of a display command.
type Kind uint8

const (
	KindPoint Kind = iota
	KindLine
	KindRectangle
	KindOval
	KindPolygon
	KindText
	KindImage
	KindEntry
	KindSpin
	KindButton
)

var kindNames = [...]string{
	KindPoint:     "point",
	KindLine:      "line",
	KindRectangle: "rectangle",
	KindOval:      "oval",
	KindPolygon:   "polygon",
	KindText:      "text",
	KindImage:     "image",
	KindEntry:     "entry",
	KindSpin:      "spin",
	KindButton:    "button",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Command is one item of a window's display list, in screen coordinates.
type Command struct {
	Kind Kind
	// Points are the screen vertices: two opposite corners for boxes and
	// lines, every vertex for polygons, the anchor for text, images and
	// widgets.
	Points []image.Point
	Style  Style
	Text   string
	// Image is drawn with its top-left corner at Points[0].
	Image image.Image
	// Chars is the width of a widget in characters.
	Chars int
}

// Bounds returns the screen rectangle covered by the command, before
// stroke width is accounted for.
func (c Command) Bounds() image.Rectangle {
	switch c.Kind {
	case KindImage:
		if c.Image == nil || len(c.Points) == 0 {
			return image.Rectangle{}
		}
		return image.Rectangle{Min: c.Points[0], Max: c.Points[0].Add(c.Image.Bounds().Size())}
	case KindEntry, KindSpin, KindButton:
		return widgetRect(c)
	}

	var r image.Rectangle
	for i, p := range c.Points {
		if i == 0 {
			r = image.Rectangle{Min: p, Max: p}
			continue
		}
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// widgetRect sizes a widget from its character width and font.
func widgetRect(c Command) image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	size := c.Style.Font.Size
	if size == 0 {
		size = DefaultFont.Size
	}
	w := c.Chars*size*6/10 + 8
	if c.Kind == KindSpin {
		w += size
	}
	h := size * 2
	center := c.Points[0]
	return image.Rect(center.X-w/2, center.Y-h/2, center.X-w/2+w, center.Y-h/2+h)
}
