package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strconv"

	"pixelizer/graphics"

	"github.com/google/uuid"
)

const (
	WindowWidth  = 800
	WindowHeight = 500
)

// Button names in the sidebar.
const (
	ButtonLoad   = "load"
	ButtonSave   = "save"
	ButtonUpdate = "update"
	ButtonQuit   = "quit"
)

// Layout is the pixelizer window: the mosaic on the left and a white
// sidebar with the load, save, update and quit buttons and a block size
// spinner on the right.
type Layout struct {
	Win *graphics.Window
	// LoadPath and SavePath stand in for file dialogs.
	LoadPath string
	SavePath string

	session *Session
	logger  *slog.Logger
	buttons map[string]*graphics.Object
	spin    *graphics.Object
	mosaic  []uuid.UUID
	err     error
}

func NewLayout(logger *slog.Logger, s *Session) (*Layout, error) {
	win, err := graphics.Open("Pixelizer", WindowWidth, WindowHeight)
	if err != nil {
		return nil, err
	}
	l := &Layout{Win: win, session: s, logger: logger, buttons: make(map[string]*graphics.Object)}
	if err := l.build(); err != nil {
		win.Close()
		return nil, fmt.Errorf("could not lay out window: %w", err)
	}
	return l, nil
}

func (l *Layout) build() error {
	win := l.Win
	if err := win.SetCoords(5, 495, 795, 5); err != nil {
		return err
	}
	bg, err := graphics.ParseColor(l.session.Options().Background)
	if err != nil {
		return err
	}
	if err := win.SetBackground(bg); err != nil {
		return err
	}

	sidebar := graphics.NewObject(graphics.NewRectangle(graphics.Pt(600, 0), graphics.Pt(800, 500)))
	if err := sidebar.SetFill(color.White); err != nil {
		return err
	}
	if err := sidebar.Draw(win); err != nil {
		return err
	}

	label := graphics.NewObject(graphics.NewText(graphics.Pt(670, 250), "Pixel Size:"))
	if err := label.SetSize(13); err != nil {
		return err
	}
	if err := label.Draw(win); err != nil {
		return err
	}

	l.spin = graphics.NewObject(graphics.NewSpin(graphics.Pt(730, 250), 4, 0, 100))
	if err := l.spin.SetFill(color.White); err != nil {
		return err
	}
	if err := l.spin.SetText(strconv.Itoa(l.session.Options().BlockSize)); err != nil {
		return err
	}
	if err := l.spin.Draw(win); err != nil {
		return err
	}

	for _, b := range []struct {
		name string
		at   graphics.Point
		text string
		run  func() error
	}{
		{ButtonLoad, graphics.Pt(700, 42.5), "Load Image", l.load},
		{ButtonSave, graphics.Pt(700, 100), "Save Image", l.save},
		{ButtonUpdate, graphics.Pt(700, 300), "Update", func() error { return l.Update(context.Background()) }},
		{ButtonQuit, graphics.Pt(700, 475), "Quit", l.Win.Close},
	} {
		obj := graphics.NewObject(graphics.NewButton(b.at, 18, b.text, func() {
			if err := b.run(); err != nil {
				l.logger.Error("button failed", "button", b.name, "error", err)
				l.err = err
			}
		}))
		if err := obj.SetColor(color.Black); err != nil {
			return err
		}
		if err := obj.SetFill(color.White); err != nil {
			return err
		}
		if err := obj.Draw(win); err != nil {
			return err
		}
		l.buttons[b.name] = obj
	}

	win.SetMouseHandler(func(p graphics.Point) {
		l.logger.Debug("click", "x", p.X, "y", p.Y)
	})
	return nil
}

func (l *Layout) load() error {
	if l.LoadPath == "" {
		return fmt.Errorf("load: %w", ErrNoImage)
	}
	if err := l.session.Load(l.LoadPath); err != nil {
		return err
	}
	return l.Update(context.Background())
}

func (l *Layout) save() error {
	if l.SavePath == "" {
		return fmt.Errorf("%w: no save path", graphics.ErrInvalidArgument)
	}
	return l.session.Save(l.SavePath)
}

// Button returns the sidebar button called name.
func (l *Layout) Button(name string) (*graphics.Object, bool) {
	b, ok := l.buttons[name]
	return b, ok
}

// Press clicks the center of the named button.
func (l *Layout) Press(name string) error {
	b, ok := l.buttons[name]
	if !ok {
		return fmt.Errorf("%w: no button %q", graphics.ErrInvalidArgument, name)
	}
	at := b.Shape().(graphics.Button).Anchor
	l.err = nil
	if err := l.Win.Click(l.Win.ToScreen(at.X, at.Y)); err != nil {
		return err
	}
	return l.err
}

// Click delivers a click at screen (x, y) and returns the error of any
// button it pressed.
func (l *Layout) Click(x, y int) error {
	l.err = nil
	if err := l.Win.Click(x, y); err != nil {
		return err
	}
	return l.err
}

func (l *Layout) BlockSize() (int, error) {
	return l.spin.Shape().(graphics.Spin).Value()
}

// SetBlockSize writes n into the spinner; Update picks it up.
func (l *Layout) SetBlockSize(n int) error {
	return l.spin.SetText(strconv.Itoa(n))
}

// Update pixelizes the session image with the spinner block size and
// replaces the mosaic on screen.
func (l *Layout) Update(ctx context.Context) error {
	size, err := l.BlockSize()
	if err != nil {
		return err
	}
	if err := l.session.SetBlockSize(size); err != nil {
		return err
	}
	res, err := l.session.Pixelize(ctx)
	if err != nil {
		return err
	}

	for _, id := range l.mosaic {
		if err := l.Win.Delete(id); err != nil {
			return err
		}
	}
	rec := &recorder{win: l.Win}
	err = res.Draw(rec, image.Pt(l.Win.ToScreen(10, 10)))
	l.mosaic = rec.ids
	return err
}

// Mosaic returns the display handles of the drawn tiles.
func (l *Layout) Mosaic() []uuid.UUID { return l.mosaic }

// recorder keeps the handles of the rectangles it forwards to the window.
type recorder struct {
	win *graphics.Window
	ids []uuid.UUID
}

func (r *recorder) CreateRectangle(x1, y1, x2, y2 int, fill color.Color) (uuid.UUID, error) {
	id, err := r.win.CreateRectangle(x1, y1, x2, y2, fill)
	if err == nil {
		r.ids = append(r.ids, id)
	}
	return id, err
}
