package graphics

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
)

// Object carries a Shape through the draw, move, reconfigure and undraw
// lifecycle. An object is drawn in at most one open window at a time.
type Object struct {
	shape Shape
	win   *Window
	id    uuid.UUID
}

func NewObject(s Shape) *Object {
	return &Object{shape: s}
}

func (o *Object) Shape() Shape { return o.shape }

// Drawn reports whether the object is visible in an open window.
func (o *Object) Drawn() bool {
	return o.win != nil && !o.win.IsClosed()
}

// ID returns the display item handle while the object is drawn.
func (o *Object) ID() (uuid.UUID, bool) {
	if !o.Drawn() {
		return uuid.Nil, false
	}
	return o.id, true
}

// Draw shows the object in w. Drawing an object that is already visible is
// an error.
func (o *Object) Draw(w *Window) error {
	if o.Drawn() {
		return ErrAlreadyDrawn
	}
	id, err := w.add(o.shape.Command(w.Transform()), o)
	if err != nil {
		return fmt.Errorf("can't draw %s: %w", o.shape.Command(nil).Kind, err)
	}
	o.win, o.id = w, id
	return nil
}

// Undraw hides the object. It returns silently when the object is not drawn.
func (o *Object) Undraw() {
	if o.win == nil {
		return
	}
	if !o.win.IsClosed() {
		o.win.remove(o.id)
	}
	o.win, o.id = nil, uuid.Nil
}

// Move translates the object by (dx, dy) logical units.
func (o *Object) Move(dx, dy float64) {
	o.shape = o.shape.Translate(dx, dy)
	o.refresh()
}

// Clone returns an undrawn copy. Image pixels are duplicated.
func (o *Object) Clone() *Object {
	s := o.shape
	if im, ok := s.(Image); ok {
		s = im.Clone()
	}
	return NewObject(s)
}

func (o *Object) refresh() {
	if o.Drawn() {
		o.win.replace(o.id, o.shape.Command(o.win.Transform()))
	}
}

func (o *Object) reconfig(opt Option, apply func(*Style) error) error {
	if o.shape.Options()&opt == 0 {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedOption, opt, o.shape.Command(nil).Kind)
	}
	st := o.shape.Style()
	if err := apply(&st); err != nil {
		return err
	}
	o.shape = o.shape.WithStyle(st)
	o.refresh()
	return nil
}

func (o *Object) setColor(opt Option, c color.Color) error {
	field := resolve(o.shape, opt)
	return o.reconfig(opt, func(st *Style) error {
		switch field {
		case OptFill:
			st.Fill = c
		case OptOutline:
			st.Outline = c
		}
		return nil
	})
}

// SetFill sets the interior color. A nil color leaves the interior empty.
func (o *Object) SetFill(c color.Color) error { return o.setColor(OptFill, c) }

func (o *Object) SetOutline(c color.Color) error { return o.setColor(OptOutline, c) }

// SetColor sets the foreground color of text, lines and widgets.
func (o *Object) SetColor(c color.Color) error { return o.setColor(OptColor, c) }

// SetWidth sets the line weight in pixels.
func (o *Object) SetWidth(width float64) error {
	return o.reconfig(OptWidth, func(st *Style) error {
		if width < 0 {
			return fmt.Errorf("%w: width %g", ErrBadOption, width)
		}
		st.Width = width
		return nil
	})
}

// SetArrow takes one of first, last, both or none.
func (o *Object) SetArrow(arrow string) error {
	return o.reconfig(OptArrow, func(st *Style) error {
		a, err := ParseArrow(arrow)
		if err != nil {
			return err
		}
		st.Arrow = a
		return nil
	})
}

func (o *Object) SetJustify(justify string) error {
	return o.reconfig(OptJustify, func(st *Style) error {
		switch justify {
		case "left", "center", "right":
			st.Justify = justify
			return nil
		}
		return fmt.Errorf("%w: justify %q", ErrBadOption, justify)
	})
}

func (o *Object) SetFace(face string) error {
	return o.reconfig(OptFont, func(st *Style) (err error) {
		st.Font, err = st.Font.WithFace(face)
		return err
	})
}

func (o *Object) SetSize(size int) error {
	return o.reconfig(OptFont, func(st *Style) (err error) {
		st.Font, err = st.Font.WithSize(size)
		return err
	})
}

func (o *Object) SetStyle(style string) error {
	return o.reconfig(OptFont, func(st *Style) (err error) {
		st.Font, err = st.Font.WithStyle(style)
		return err
	})
}

// Text returns the string of text shapes and widgets.
func (o *Object) Text() (string, error) {
	t, ok := o.shape.(texter)
	if !ok {
		return "", fmt.Errorf("%w: text on %s", ErrUnsupportedOption, o.shape.Command(nil).Kind)
	}
	return t.Text(), nil
}

func (o *Object) SetText(s string) error {
	t, ok := o.shape.(texter)
	if !ok || o.shape.Options()&OptText == 0 {
		return fmt.Errorf("%w: text on %s", ErrUnsupportedOption, o.shape.Command(nil).Kind)
	}
	o.shape = t.WithText(s)
	o.refresh()
	return nil
}
