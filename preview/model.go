// Package preview shows a mosaic in the terminal and lets the block size be
// tuned interactively.
package preview

import (
	"context"
	"fmt"
	"image"
	"strings"

	"pixelizer/app"
	"pixelizer/graphics"
	"pixelizer/pixelize"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleStatus = lipgloss.NewStyle().Foreground(colorGreen)
	styleError  = lipgloss.NewStyle().Foreground(colorRed)
)

// chrome is the number of terminal rows used around the picture.
const chrome = 4

// Model is the bubbletea model of the preview.
type Model struct {
	Session  *app.Session
	SavePath string

	result *pixelize.Result
	width  int
	height int
	status string
	err    error
}

func NewModel(s *app.Session, savePath string) Model {
	return Model{Session: s, SavePath: savePath, width: 80, height: 24}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh pixelizes with the current session options.
func (m Model) refresh() Model {
	res, err := m.Session.Pixelize(context.Background())
	if err != nil {
		m.err = err
		return m
	}
	m.result, m.err = res, nil
	return m
}

func (m Model) resize(blockSize int) Model {
	if err := m.Session.SetBlockSize(blockSize); err != nil {
		m.err = err
		return m
	}
	return m.refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		opts := m.Session.Options()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=", "up", "k":
			return m.resize(opts.BlockSize + 1), nil
		case "-", "down", "j":
			return m.resize(opts.BlockSize - 1), nil
		case "f":
			m.Session.SetFit(!opts.Fit)
			return m.refresh(), nil
		case "s":
			return m.save(), nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.result == nil && m.err == nil {
			return m.refresh(), nil
		}
	}
	return m, nil
}

func (m Model) save() Model {
	if m.SavePath == "" {
		m.err = fmt.Errorf("%w: no save path", graphics.ErrInvalidArgument)
		return m
	}
	if err := m.Session.Save(m.SavePath); err != nil {
		m.err = err
		return m
	}
	m.status, m.err = "saved "+m.SavePath, nil
	return m
}

func (m Model) View() string {
	var b strings.Builder
	opts := m.Session.Options()

	fit := "within"
	if opts.Fit {
		fit = "crop"
	}
	b.WriteString(styleTitle.Render(m.Session.Name()))
	b.WriteString(styleDim.Render(fmt.Sprintf("  block %d  %dx%d  %s", opts.BlockSize, opts.Width, opts.Height, fit)))
	b.WriteString("\n")

	if m.result != nil {
		for _, line := range halfBlocks(m.result.Image(), m.width, 2*(m.height-chrome)) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	switch {
	case m.err != nil:
		b.WriteString(styleError.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(styleStatus.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(styleDim.Render("+/- block size  f crop/fit  s save  q quit"))
	return b.String()
}

// halfBlocks draws img in at most cols x rows pixels, two pixel rows per
// line: the upper one as the cell background and the lower one as the
// foreground of a lower half block.
func halfBlocks(img image.Image, cols, rows int) []string {
	src := img.Bounds()
	if src.Empty() || cols < 1 || rows < 1 {
		return nil
	}

	w, h := src.Dx(), src.Dy()
	if w > cols {
		h, w = h*cols/w, cols
	}
	if h > rows {
		w, h = w*rows/h, rows
	}
	w, h = max(w, 1), max(h, 1)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, src, draw.Src, nil)

	lines := make([]string, 0, (h+1)/2)
	for y := 0; y < h; y += 2 {
		var b strings.Builder
		for x := range w {
			cell := lipgloss.NewStyle().Background(lipgloss.Color(graphics.Hex(scaled.At(x, y))))
			if y+1 < h {
				cell = cell.Foreground(lipgloss.Color(graphics.Hex(scaled.At(x, y+1))))
			}
			b.WriteString(cell.Render("▄"))
		}
		lines = append(lines, b.String())
	}
	return lines
}
