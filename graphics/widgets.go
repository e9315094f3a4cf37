package graphics

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

func widgetStyle() Style {
	return Style{
		Fill:    MustParseColor("gray"),
		Outline: color.Black,
		Width:   1,
		Font:    DefaultFont,
	}
}

// Entry is a one line text field centered on its anchor. Fill is the
// background and the foreground color is the text.
type Entry struct {
	Anchor Point
	// Chars is the field width in characters.
	Chars int
	text  string
	style Style
}

func NewEntry(anchor Point, chars int) Entry {
	return Entry{Anchor: anchor, Chars: chars, style: widgetStyle()}
}

func (e Entry) Command(t *Transform) Command {
	return Command{
		Kind:   KindEntry,
		Points: []image.Point{e.Anchor.screen(t)},
		Style:  e.style,
		Text:   e.text,
		Chars:  e.Chars,
	}
}

func (e Entry) Translate(dx, dy float64) Shape {
	e.Anchor = e.Anchor.Add(dx, dy)
	return e
}

func (e Entry) Options() Option { return OptFill | OptText | OptFont | OptColor }

func (e Entry) alias(o Option) Option {
	if o == OptColor {
		return OptOutline
	}
	return o
}

func (e Entry) Style() Style { return e.style }

func (e Entry) WithStyle(st Style) Shape {
	e.style = st
	return e
}

func (e Entry) Text() string { return e.text }

func (e Entry) WithText(s string) Shape {
	e.text = s
	return e
}

// Spin is an Entry holding an integer within [Min, Max].
type Spin struct {
	Entry
	Min, Max int
}

func NewSpin(anchor Point, chars, lo, hi int) Spin {
	return Spin{Entry: NewEntry(anchor, chars), Min: lo, Max: hi}
}

func (s Spin) Command(t *Transform) Command {
	cmd := s.Entry.Command(t)
	cmd.Kind = KindSpin
	return cmd
}

func (s Spin) Translate(dx, dy float64) Shape {
	s.Anchor = s.Anchor.Add(dx, dy)
	return s
}

func (s Spin) WithStyle(st Style) Shape {
	s.style = st
	return s
}

func (s Spin) WithText(v string) Shape {
	s.text = v
	return s
}

// Value parses the field. An empty field or one outside the range is a
// bad option.
func (s Spin) Value() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s.text))
	if err != nil {
		return 0, fmt.Errorf("%w: spin value %q", ErrBadOption, s.text)
	}
	if v < s.Min || v > s.Max {
		return v, fmt.Errorf("%w: spin value %d outside [%d, %d]", ErrBadOption, v, s.Min, s.Max)
	}
	return v, nil
}

// Step moves the value by n, clamped to the range.
func (s Spin) Step(n int) Spin {
	v, err := strconv.Atoi(strings.TrimSpace(s.text))
	if err != nil {
		v = s.Min
	}
	v = min(max(v+n, s.Min), s.Max)
	s.text = strconv.Itoa(v)
	return s
}

// Button runs its command when pressed.
type Button struct {
	Anchor Point
	Chars  int
	// Disabled buttons ignore presses.
	Disabled bool
	text     string
	command  func()
	style    Style
}

func NewButton(center Point, chars int, text string, command func()) Button {
	st := widgetStyle()
	return Button{Anchor: center, Chars: chars, text: text, command: command, style: st}
}

func (b Button) Command(t *Transform) Command {
	return Command{
		Kind:   KindButton,
		Points: []image.Point{b.Anchor.screen(t)},
		Style:  b.style,
		Text:   b.text,
		Chars:  b.Chars,
	}
}

func (b Button) Translate(dx, dy float64) Shape {
	b.Anchor = b.Anchor.Add(dx, dy)
	return b
}

func (b Button) Options() Option { return OptFill | OptText | OptColor }

func (b Button) alias(o Option) Option {
	if o == OptColor {
		return OptOutline
	}
	return o
}

func (b Button) Style() Style { return b.style }

func (b Button) WithStyle(st Style) Shape {
	b.style = st
	return b
}

func (b Button) Text() string { return b.text }

func (b Button) WithText(s string) Shape {
	b.text = s
	return b
}

// Press runs the command and reports whether it ran.
func (b Button) Press() bool {
	if b.Disabled || b.command == nil {
		return false
	}
	b.command()
	return true
}
