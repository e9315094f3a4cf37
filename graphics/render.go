package graphics

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Render rasterizes the display list onto a new image of the window size.
func (w *Window) Render() (*image.RGBA, error) {
	if err := w.checkOpen("render"); err != nil {
		return nil, err
	}

	dc := gg.NewContext(w.width, w.height)
	defer func() {
		if closeErr := dc.Close(); closeErr != nil {
			w.logger.Warn("could not release drawing context", "error", closeErr)
		}
	}()

	if w.background != nil {
		dc.ClearWithColor(gg.FromColor(w.background))
	}

	faces := faceCache{}
	for _, it := range w.items {
		if err := paint(dc, faces, it.cmd); err != nil {
			return nil, fmt.Errorf("could not paint %s: %w", it.cmd.Kind, err)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w.width, w.height))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	w.logger.Debug("rendered", "items", len(w.items))
	return out, nil
}

func paint(dc *gg.Context, faces faceCache, cmd Command) error {
	st := cmd.Style
	switch cmd.Kind {
	case KindPoint:
		c := st.Fill
		if c == nil {
			c = st.Outline
		}
		if c != nil && len(cmd.Points) > 0 {
			dc.SetPixel(cmd.Points[0].X, cmd.Points[0].Y, gg.FromColor(c))
		}
		return nil

	case KindRectangle:
		r := cmd.Bounds()
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		return fillStroke(dc, st)

	case KindOval:
		r := cmd.Bounds()
		rx, ry := float64(r.Dx())/2, float64(r.Dy())/2
		dc.DrawEllipse(float64(r.Min.X)+rx, float64(r.Min.Y)+ry, rx, ry)
		return fillStroke(dc, st)

	case KindPolygon:
		for i, p := range cmd.Points {
			if i == 0 {
				dc.MoveTo(float64(p.X), float64(p.Y))
			} else {
				dc.LineTo(float64(p.X), float64(p.Y))
			}
		}
		dc.ClosePath()
		return fillStroke(dc, st)

	case KindLine:
		return paintLine(dc, cmd)

	case KindText:
		c := st.Fill
		if c == nil {
			c = color.Black
		}
		face, err := faces.face(st.Font)
		if err != nil {
			return err
		}
		dc.SetFont(face)
		dc.SetColor(c)
		p := cmd.Points[0]
		dc.DrawStringAnchored(cmd.Text, float64(p.X), float64(p.Y), 0.5, 0.5)
		return nil

	case KindImage:
		if cmd.Image == nil {
			return nil
		}
		p := cmd.Points[0]
		dc.DrawImage(gg.ImageBufFromImage(cmd.Image), float64(p.X), float64(p.Y))
		return nil

	case KindEntry, KindSpin, KindButton:
		return paintWidget(dc, faces, cmd)
	}

	return fmt.Errorf("%w: command kind %d", ErrInvalidArgument, cmd.Kind)
}

func fillStroke(dc *gg.Context, st Style) error {
	if st.Fill != nil {
		dc.SetColor(st.Fill)
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	if st.Outline != nil && st.Width > 0 {
		dc.SetColor(st.Outline)
		dc.SetLineWidth(st.Width)
		return dc.Stroke()
	}
	dc.ClearPath()
	return nil
}

func paintLine(dc *gg.Context, cmd Command) error {
	st := cmd.Style
	if st.Fill == nil || len(cmd.Points) < 2 {
		return nil
	}
	p1, p2 := cmd.Points[0], cmd.Points[1]
	x1, y1, x2, y2 := float64(p1.X), float64(p1.Y), float64(p2.X), float64(p2.Y)

	width := max(st.Width, 1)
	dc.SetColor(st.Fill)
	dc.SetLineWidth(width)
	dc.DrawLine(x1, y1, x2, y2)
	if err := dc.Stroke(); err != nil {
		return err
	}

	if st.Arrow == ArrowFirst || st.Arrow == ArrowBoth {
		arrowHead(dc, x2, y2, x1, y1, width)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	if st.Arrow == ArrowLast || st.Arrow == ArrowBoth {
		arrowHead(dc, x1, y1, x2, y2, width)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// arrowHead adds a triangle pointing at (tx, ty) coming from (fx, fy).
func arrowHead(dc *gg.Context, fx, fy, tx, ty, width float64) {
	angle := math.Atan2(ty-fy, tx-fx)
	length := 8 + 2*width
	spread := math.Pi / 7
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-length*math.Cos(angle-spread), ty-length*math.Sin(angle-spread))
	dc.LineTo(tx-length*math.Cos(angle+spread), ty-length*math.Sin(angle+spread))
	dc.ClosePath()
}

func paintWidget(dc *gg.Context, faces faceCache, cmd Command) error {
	st := cmd.Style
	r := widgetRect(cmd)
	x, y := float64(r.Min.X), float64(r.Min.Y)
	w, h := float64(r.Dx()), float64(r.Dy())

	dc.DrawRectangle(x, y, w, h)
	if err := fillStroke(dc, Style{Fill: st.Fill, Outline: color.Black, Width: 1}); err != nil {
		return err
	}

	if cmd.Kind == KindSpin {
		size := float64(st.Font.Size)
		ax := x + w - size/2 - 2
		dc.MoveTo(ax-size/3, y+h/2-2)
		dc.LineTo(ax+size/3, y+h/2-2)
		dc.LineTo(ax, y+h/2-2-size/3)
		dc.ClosePath()
		dc.MoveTo(ax-size/3, y+h/2+2)
		dc.LineTo(ax+size/3, y+h/2+2)
		dc.LineTo(ax, y+h/2+2+size/3)
		dc.ClosePath()
		dc.SetColor(color.Black)
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	if cmd.Text == "" {
		return nil
	}
	face, err := faces.face(st.Font)
	if err != nil {
		return err
	}
	fg := st.Outline
	if fg == nil {
		fg = color.Black
	}
	dc.SetFont(face)
	dc.SetColor(fg)
	if cmd.Kind == KindButton {
		dc.DrawStringAnchored(cmd.Text, x+w/2, y+h/2, 0.5, 0.5)
	} else {
		dc.DrawStringAnchored(cmd.Text, x+4, y+h/2, 0, 0.5)
	}
	return nil
}

type faceCache map[Font]text.Face

func (fc faceCache) face(f Font) (text.Face, error) {
	if f.Size == 0 {
		f = DefaultFont
	}
	if face, ok := fc[f]; ok {
		return face, nil
	}
	src, err := text.NewFontSource(fontData(f))
	if err != nil {
		return nil, fmt.Errorf("could not load font %s %s: %w", f.Face, f.Style, err)
	}
	face := src.Face(float64(f.Size))
	fc[f] = face
	return face, nil
}

// fontData picks the Go font closest to a face and style. Courier maps to
// Go Mono, every other face to Go Regular.
func fontData(f Font) []byte {
	mono := f.Face == "courier"
	switch f.Style {
	case "bold":
		if mono {
			return gomonobold.TTF
		}
		return gobold.TTF
	case "italic":
		if mono {
			return gomonoitalic.TTF
		}
		return goitalic.TTF
	case "bold italic":
		if mono {
			return gomonobolditalic.TTF
		}
		return gobolditalic.TTF
	}
	if mono {
		return gomono.TTF
	}
	return goregular.TTF
}
