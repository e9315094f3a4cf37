package graphics

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"slices"

	"pixelizer/imagefile"

	"github.com/google/uuid"
)

type item struct {
	id  uuid.UUID
	cmd Command
	obj *Object
}

// Window is a display surface: a fixed size pixel area holding an ordered
// display list. It replaces a process-wide GUI root; callers open, own and
// close windows explicitly. A Window is not safe for concurrent use.
type Window struct {
	title      string
	width      int
	height     int
	background color.Color
	trans      *Transform
	items      []*item
	closed     bool
	logger     *slog.Logger

	mouse     func(Point)
	lastClick *image.Point
}

// Open creates a window of width x height pixels with a white background.
func Open(title string, width, height int) (*Window, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: window size %dx%d", ErrInvalidArgument, width, height)
	}
	return &Window{
		title:      title,
		width:      width,
		height:     height,
		background: color.White,
		logger:     slog.Default().With("window", title),
	}, nil
}

func (w *Window) Title() string { return w.title }
func (w *Window) Width() int    { return w.width }
func (w *Window) Height() int   { return w.height }

func (w *Window) checkOpen(op string) error {
	if w.closed {
		return fmt.Errorf("%s: %w", op, ErrWindowClosed)
	}
	return nil
}

func (w *Window) SetBackground(c color.Color) error {
	if err := w.checkOpen("set background"); err != nil {
		return err
	}
	w.background = c
	return nil
}

func (w *Window) Background() color.Color { return w.background }

// SetCoords makes the window run from (x1, y1) in the lower-left corner to
// (x2, y2) in the upper-right corner. Items already drawn keep their pixels.
func (w *Window) SetCoords(x1, y1, x2, y2 float64) error {
	if err := w.checkOpen("set coords"); err != nil {
		return err
	}
	t, err := NewTransform(w.width, w.height, x1, y1, x2, y2)
	if err != nil {
		return err
	}
	w.trans = t
	return nil
}

// Transform returns the current coordinate mapping, nil for identity.
func (w *Window) Transform() *Transform { return w.trans }

func (w *Window) ToScreen(x, y float64) (int, int)    { return w.trans.Screen(x, y) }
func (w *Window) ToWorld(x, y int) (float64, float64) { return w.trans.World(x, y) }

// Close discards the display list. Closing twice is a no-op.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.items = nil
	w.logger.Debug("window closed")
	return nil
}

func (w *Window) IsClosed() bool { return w.closed }
func (w *Window) IsOpen() bool   { return !w.closed }

// Plot sets the pixel at logical (x, y) to c.
func (w *Window) Plot(x, y float64, c color.Color) error {
	xs, ys := w.ToScreen(x, y)
	return w.PlotPixel(xs, ys, c)
}

// PlotPixel sets raw pixel (x, y) to c, ignoring window coordinates.
func (w *Window) PlotPixel(x, y int, c color.Color) error {
	_, err := w.add(Command{
		Kind:   KindPoint,
		Points: []image.Point{{x, y}, {x + 1, y + 1}},
		Style:  Style{Fill: c},
	}, nil)
	return err
}

// CreateRectangle adds a borderless filled rectangle in screen coordinates.
func (w *Window) CreateRectangle(x1, y1, x2, y2 int, fill color.Color) (uuid.UUID, error) {
	return w.add(Command{
		Kind:   KindRectangle,
		Points: []image.Point{{x1, y1}, {x2, y2}},
		Style:  Style{Fill: fill},
	}, nil)
}

// CreateImage adds img with its top-left corner at screen (x, y).
func (w *Window) CreateImage(x, y int, img image.Image) (uuid.UUID, error) {
	if img == nil {
		return uuid.Nil, fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	return w.add(Command{
		Kind:   KindImage,
		Points: []image.Point{{x, y}},
		Image:  img,
	}, nil)
}

// Delete removes an item. Unknown handles are ignored.
func (w *Window) Delete(id uuid.UUID) error {
	if err := w.checkOpen("delete"); err != nil {
		return err
	}
	w.remove(id)
	return nil
}

// Items returns the display list, bottom first.
func (w *Window) Items() []Command {
	cmds := make([]Command, len(w.items))
	for i, it := range w.items {
		cmds[i] = it.cmd
	}
	return cmds
}

func (w *Window) Len() int { return len(w.items) }

// SetMouseHandler installs fn to receive clicks in logical coordinates.
func (w *Window) SetMouseHandler(fn func(Point)) {
	w.mouse = fn
}

// Click delivers a mouse click at screen (x, y). The topmost enabled button
// under the pointer is pressed; the click is then recorded for CheckMouse
// and passed to the mouse handler.
func (w *Window) Click(x, y int) error {
	if err := w.checkOpen("click"); err != nil {
		return err
	}
	at := image.Pt(x, y)
	for _, it := range slices.Backward(w.items) {
		if it.cmd.Kind != KindButton || it.obj == nil || !at.In(it.cmd.Bounds()) {
			continue
		}
		if b, ok := it.obj.shape.(Button); ok && b.Press() {
			w.logger.Debug("button pressed", "text", b.Text())
			break
		}
	}

	w.lastClick = &at
	if w.mouse != nil && !w.closed {
		w.mouse(Pt(w.ToWorld(x, y)))
	}
	return nil
}

// CheckMouse returns the last click since the previous call, if any.
func (w *Window) CheckMouse() (Point, bool, error) {
	if err := w.checkOpen("check mouse"); err != nil {
		return Point{}, false, err
	}
	if w.lastClick == nil {
		return Point{}, false, nil
	}
	p := Pt(w.ToWorld(w.lastClick.X, w.lastClick.Y))
	w.lastClick = nil
	return p, true, nil
}

func (w *Window) add(cmd Command, obj *Object) (uuid.UUID, error) {
	if err := w.checkOpen("draw " + cmd.Kind.String()); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	w.items = append(w.items, &item{id: id, cmd: cmd, obj: obj})
	return id, nil
}

func (w *Window) find(id uuid.UUID) int {
	return slices.IndexFunc(w.items, func(it *item) bool { return it.id == id })
}

func (w *Window) replace(id uuid.UUID, cmd Command) {
	if i := w.find(id); i >= 0 {
		w.items[i].cmd = cmd
	}
}

func (w *Window) remove(id uuid.UUID) {
	if i := w.find(id); i >= 0 {
		w.items = slices.Delete(w.items, i, i+1)
	}
}

// Save renders the window and writes it to path, encoded by extension.
func (w *Window) Save(path string) error {
	img, err := w.Render()
	if err != nil {
		return err
	}
	if err := imagefile.Save(img, path, true); err != nil {
		return fmt.Errorf("could not save window %q: %w", w.title, err)
	}
	w.logger.Info("saved window", "path", path)
	return nil
}
