package graphics

import (
	"image"
	"image/color"
	"math"

	"pixelizer/imagefile"
)

// Shape is a drawable figure in logical coordinates. The set of shapes is
// closed: Point, Line, Rectangle, Oval, Circle, Polygon, Triangle, Text,
// Image and the widgets Entry, Spin and Button.
//
// Shapes are values. Translate and WithStyle return modified copies.
type Shape interface {
	// Command maps the shape through t onto a display command.
	Command(t *Transform) Command
	Translate(dx, dy float64) Shape
	// Options reports the attributes that may be configured.
	Options() Option
	Style() Style
	WithStyle(Style) Shape
}

// aliaser is implemented by shapes that paint an option through another
// attribute, such as a line whose outline is its fill.
type aliaser interface {
	alias(Option) Option
}

// texter is implemented by shapes that carry a string.
type texter interface {
	Text() string
	WithText(string) Shape
}

func resolve(s Shape, opt Option) Option {
	if a, ok := s.(aliaser); ok {
		return a.alias(opt)
	}
	return opt
}

// Point is a single logical location, drawn as one pixel.
type Point struct {
	X, Y  float64
	style Style
}

// Pt returns a Point with the default style.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y, style: DefaultStyle()}
}

func (p Point) Command(t *Transform) Command {
	x, y := t.Screen(p.X, p.Y)
	return Command{
		Kind:   KindPoint,
		Points: []image.Point{{x, y}, {x + 1, y + 1}},
		Style:  p.style,
	}
}

func (p Point) Translate(dx, dy float64) Shape { return p.Add(dx, dy) }

// Add returns the point moved by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	p.X += dx
	p.Y += dy
	return p
}

func (p Point) Options() Option { return OptOutline | OptFill }

func (p Point) alias(o Option) Option {
	if o == OptFill {
		return OptOutline
	}
	return o
}

func (p Point) Style() Style { return p.style }

func (p Point) WithStyle(st Style) Shape {
	p.style = st
	return p
}

func (p Point) screen(t *Transform) image.Point {
	x, y := t.Screen(p.X, p.Y)
	return image.Pt(x, y)
}

func midpoint(p1, p2 Point) Point {
	return Pt((p1.X+p2.X)/2, (p1.Y+p2.Y)/2)
}

func distance(p1, p2 Point) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// Rectangle is an axis aligned box given by two opposite corners.
type Rectangle struct {
	P1, P2 Point
	style  Style
}

func NewRectangle(p1, p2 Point) Rectangle {
	return Rectangle{P1: p1, P2: p2, style: DefaultStyle()}
}

func (r Rectangle) Command(t *Transform) Command {
	return Command{
		Kind:   KindRectangle,
		Points: []image.Point{r.P1.screen(t), r.P2.screen(t)},
		Style:  r.style,
	}
}

func (r Rectangle) Translate(dx, dy float64) Shape {
	r.P1, r.P2 = r.P1.Add(dx, dy), r.P2.Add(dx, dy)
	return r
}

func (r Rectangle) Options() Option { return OptOutline | OptWidth | OptFill }
func (r Rectangle) Style() Style    { return r.style }

func (r Rectangle) WithStyle(st Style) Shape {
	r.style = st
	return r
}

func (r Rectangle) Center() Point      { return midpoint(r.P1, r.P2) }
func (r Rectangle) Width() float64     { return math.Abs(r.P2.X - r.P1.X) }
func (r Rectangle) Height() float64    { return math.Abs(r.P2.Y - r.P1.Y) }
func (r Rectangle) Area() float64      { return r.Width() * r.Height() }
func (r Rectangle) Perimeter() float64 { return 2 * (r.Width() + r.Height()) }

// Oval is the ellipse inscribed in the box given by two opposite corners.
type Oval struct {
	P1, P2 Point
	style  Style
}

func NewOval(p1, p2 Point) Oval {
	return Oval{P1: p1, P2: p2, style: DefaultStyle()}
}

func (o Oval) Command(t *Transform) Command {
	return Command{
		Kind:   KindOval,
		Points: []image.Point{o.P1.screen(t), o.P2.screen(t)},
		Style:  o.style,
	}
}

func (o Oval) Translate(dx, dy float64) Shape { return o.move(dx, dy) }

func (o Oval) move(dx, dy float64) Oval {
	o.P1, o.P2 = o.P1.Add(dx, dy), o.P2.Add(dx, dy)
	return o
}

func (o Oval) Options() Option { return OptOutline | OptWidth | OptFill }
func (o Oval) Style() Style    { return o.style }

func (o Oval) WithStyle(st Style) Shape {
	o.style = st
	return o
}

func (o Oval) Center() Point { return midpoint(o.P1, o.P2) }

// Circle is an Oval with equal radii.
type Circle struct {
	Oval
	Radius float64
}

func NewCircle(center Point, radius float64) Circle {
	return Circle{
		Oval:   NewOval(center.Add(-radius, -radius), center.Add(radius, radius)),
		Radius: radius,
	}
}

func (c Circle) Translate(dx, dy float64) Shape {
	c.Oval = c.Oval.move(dx, dy)
	return c
}

func (c Circle) WithStyle(st Style) Shape {
	c.style = st
	return c
}

// Line is a segment between two points. Its color is the fill; setting the
// outline changes the fill too.
type Line struct {
	P1, P2 Point
	style  Style
}

func NewLine(p1, p2 Point) Line {
	st := DefaultStyle()
	st.Fill, st.Outline = st.Outline, nil
	return Line{P1: p1, P2: p2, style: st}
}

func (l Line) Command(t *Transform) Command {
	return Command{
		Kind:   KindLine,
		Points: []image.Point{l.P1.screen(t), l.P2.screen(t)},
		Style:  l.style,
	}
}

func (l Line) Translate(dx, dy float64) Shape {
	l.P1, l.P2 = l.P1.Add(dx, dy), l.P2.Add(dx, dy)
	return l
}

func (l Line) Options() Option {
	return OptArrow | OptFill | OptWidth | OptOutline | OptColor
}

func (l Line) alias(o Option) Option {
	if o == OptOutline || o == OptColor {
		return OptFill
	}
	return o
}

func (l Line) Style() Style { return l.style }

func (l Line) WithStyle(st Style) Shape {
	l.style = st
	return l
}

func (l Line) Center() Point   { return midpoint(l.P1, l.P2) }
func (l Line) Midpoint() Point { return midpoint(l.P1, l.P2) }
func (l Line) Length() float64 { return distance(l.P1, l.P2) }

// Slope is dy/dx; vertical lines have an infinite slope.
func (l Line) Slope() float64 {
	return (l.P2.Y - l.P1.Y) / (l.P2.X - l.P1.X)
}

// Polygon is a closed outline through its vertices.
type Polygon struct {
	points []Point
	style  Style
}

func NewPolygon(points ...Point) Polygon {
	return Polygon{points: append([]Point(nil), points...), style: DefaultStyle()}
}

// Points returns a copy of the vertices.
func (p Polygon) Points() []Point {
	return append([]Point(nil), p.points...)
}

func (p Polygon) Command(t *Transform) Command {
	pts := make([]image.Point, len(p.points))
	for i, v := range p.points {
		pts[i] = v.screen(t)
	}
	return Command{Kind: KindPolygon, Points: pts, Style: p.style}
}

func (p Polygon) Translate(dx, dy float64) Shape { return p.move(dx, dy) }

func (p Polygon) move(dx, dy float64) Polygon {
	moved := make([]Point, len(p.points))
	for i, v := range p.points {
		moved[i] = v.Add(dx, dy)
	}
	p.points = moved
	return p
}

func (p Polygon) Options() Option { return OptOutline | OptWidth | OptFill }
func (p Polygon) Style() Style    { return p.style }

func (p Polygon) WithStyle(st Style) Shape {
	p.style = st
	return p
}

// Triangle is a three vertex Polygon.
type Triangle struct {
	Polygon
}

func NewTriangle(p1, p2, p3 Point) Triangle {
	return Triangle{Polygon: NewPolygon(p1, p2, p3)}
}

func (t Triangle) Translate(dx, dy float64) Shape {
	t.Polygon = t.Polygon.move(dx, dy)
	return t
}

func (t Triangle) WithStyle(st Style) Shape {
	t.style = st
	return t
}

func (t Triangle) sides() (float64, float64, float64) {
	p := t.points
	return distance(p[0], p[1]), distance(p[1], p[2]), distance(p[2], p[0])
}

// Area uses Heron's formula.
func (t Triangle) Area() float64 {
	a, b, c := t.sides()
	s := (a + b + c) / 2
	return math.Sqrt(s * (s - a) * (s - b) * (s - c))
}

func (t Triangle) Perimeter() float64 {
	a, b, c := t.sides()
	return a + b + c
}

// Text is a string centered on its anchor. Its color is the fill.
type Text struct {
	Anchor Point
	text   string
	style  Style
}

func NewText(anchor Point, s string) Text {
	st := DefaultStyle()
	st.Fill, st.Outline = st.Outline, nil
	return Text{Anchor: anchor, text: s, style: st}
}

func (t Text) Command(tr *Transform) Command {
	return Command{
		Kind:   KindText,
		Points: []image.Point{t.Anchor.screen(tr)},
		Style:  t.style,
		Text:   t.text,
	}
}

func (t Text) Translate(dx, dy float64) Shape {
	t.Anchor = t.Anchor.Add(dx, dy)
	return t
}

func (t Text) Options() Option {
	return OptJustify | OptFill | OptText | OptFont | OptOutline | OptColor
}

func (t Text) alias(o Option) Option {
	if o == OptOutline || o == OptColor {
		return OptFill
	}
	return o
}

func (t Text) Style() Style { return t.style }

func (t Text) WithStyle(st Style) Shape {
	t.style = st
	return t
}

func (t Text) Text() string { return t.text }

func (t Text) WithText(s string) Shape {
	t.text = s
	return t
}

// Image is a pixmap centered on its anchor. Copies made by Translate share
// pixels; Clone duplicates them.
type Image struct {
	Anchor Point
	img    *image.RGBA
}

// NewImage copies src into a new pixmap centered on anchor.
func NewImage(anchor Point, src image.Image) Image {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return Image{Anchor: anchor, img: img}
}

// NewBlankImage returns a transparent width x height pixmap.
func NewBlankImage(anchor Point, width, height int) Image {
	return Image{Anchor: anchor, img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (im Image) Command(t *Transform) Command {
	size := im.img.Bounds().Size()
	return Command{
		Kind:   KindImage,
		Points: []image.Point{im.Anchor.screen(t).Sub(size.Div(2))},
		Image:  im.img,
	}
}

func (im Image) Translate(dx, dy float64) Shape {
	im.Anchor = im.Anchor.Add(dx, dy)
	return im
}

func (im Image) Options() Option       { return 0 }
func (im Image) Style() Style          { return Style{} }
func (im Image) WithStyle(Style) Shape { return im }

func (im Image) Width() int  { return im.img.Bounds().Dx() }
func (im Image) Height() int { return im.img.Bounds().Dy() }

// Pixel returns the color of pixel (x, y).
func (im Image) Pixel(x, y int) color.RGBA {
	return im.img.RGBAAt(x, y)
}

func (im Image) SetPixel(x, y int, c color.Color) {
	im.img.Set(x, y, c)
}

// Bitmap exposes the pixels.
func (im Image) Bitmap() *image.RGBA { return im.img }

// Save writes the pixmap to path, encoded by extension.
func (im Image) Save(path string) error {
	return imagefile.Save(im.img, path, true)
}

func (im Image) Clone() Image {
	cp := image.NewRGBA(im.img.Rect)
	copy(cp.Pix, im.img.Pix)
	im.img = cp
	return im
}
