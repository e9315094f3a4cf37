package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"pixelizer/imagefile"

	"github.com/alecthomas/kong"
)

// WindowCmd builds the pixelizer window, optionally replays clicks on it,
// and saves a snapshot of what it shows.
type WindowCmd struct {
	Flags
	Image    string        `arg:"" optional:"" help:"Image to load before the first update" type:"existingfile"`
	Snapshot string        `short:"o" help:"Snapshot file, format taken from the extension" default:"pixelizer.png"`
	Save     string        `help:"File written by the Save Image button"`
	Clicks   []string      `help:"Screen clicks, as x,y, delivered in order before the snapshot" sep:";"`
	Points   []image.Point `kong:"-"`
}

func (c *WindowCmd) Validate(kctx *kong.Context) error {
	if _, err := imagefile.FormatOf(c.Snapshot); err != nil {
		return fmt.Errorf("invalid snapshot %q: %w", c.Snapshot, err)
	}
	if c.Save != "" {
		if _, err := imagefile.FormatOf(c.Save); err != nil {
			return fmt.Errorf("invalid save path %q: %w", c.Save, err)
		}
	}

	c.Points = c.Points[:0]
	for _, s := range c.Clicks {
		p, err := parsePoint(s)
		if err != nil {
			return err
		}
		c.Points = append(c.Points, p)
	}
	return nil
}

func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid click %q, should be x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid click x in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid click y in %q: %w", s, err)
	}
	return image.Pt(x, y), nil
}

func (c *WindowCmd) Run(opts Options, logger *slog.Logger) error {
	opts = c.Apply(opts)
	session, err := NewSession(logger, opts)
	if err != nil {
		return err
	}

	layout, err := NewLayout(logger, session)
	if err != nil {
		return err
	}
	defer layout.Win.Close()
	layout.LoadPath, layout.SavePath = c.Image, c.Save

	if c.Image != "" {
		if err := session.Load(c.Image); err != nil {
			return err
		}
		if err := layout.Update(context.Background()); err != nil {
			return err
		}
	}

	for _, p := range c.Points {
		if err := layout.Click(p.X, p.Y); err != nil {
			logger.Error("click failed", "x", p.X, "y", p.Y, "error", err)
		}
		if layout.Win.IsClosed() {
			logger.Info("window closed by click", "x", p.X, "y", p.Y)
			return nil
		}
	}

	return layout.Win.Save(c.Snapshot)
}
