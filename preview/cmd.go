package preview

import (
	"fmt"
	"log/slog"

	"pixelizer/app"
	"pixelizer/imagefile"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
)

type CLICmd struct {
	app.Flags
	Image string `arg:"" help:"Image to preview" type:"existingfile"`
	Save  string `short:"o" help:"File written when pressing s, format taken from the extension"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if _, _, err := imagefile.Config(c.Image); err != nil {
		return err
	}
	if c.Save != "" {
		if _, err := imagefile.FormatOf(c.Save); err != nil {
			return fmt.Errorf("invalid save path %q: %w", c.Save, err)
		}
	}
	return nil
}

func (c *CLICmd) Run(opts app.Options, logger *slog.Logger) error {
	// the terminal belongs to the preview while it runs
	session, err := app.NewSession(slog.New(slog.DiscardHandler), c.Apply(opts))
	if err != nil {
		return err
	}
	if err := session.Load(c.Image); err != nil {
		return err
	}

	final, err := tea.NewProgram(NewModel(session, c.Save), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		logger.Warn("preview ended with error", "error", m.err)
	}
	logger.Info("preview closed", "image", c.Image, "block", session.Options().BlockSize)
	return nil
}
