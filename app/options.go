// Package app ties the pixelizer together: options, the load, pixelize and
// save flow of a session, and the pixelizer window.
package app

import (
	"fmt"
	"strings"

	"pixelizer/graphics"
	"pixelizer/palette"

	"github.com/BurntSushi/toml"
)

// Options configures a pixelizer session. It is read from a TOML file and
// then overridden by command line flags.
type Options struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	BlockSize  int    `toml:"block_size"`
	Fit        bool   `toml:"fit"`
	Palette    string `toml:"palette"`
	Dither     bool   `toml:"dither"`
	Overwrite  bool   `toml:"overwrite"`
	Background string `toml:"background"`
}

func DefaultOptions() Options {
	return Options{
		Width:      590,
		Height:     490,
		BlockSize:  10,
		Fit:        true,
		Background: "gray",
	}
}

// LoadOptions reads path over the defaults. An empty path yields the
// defaults; unknown keys are an error.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, fmt.Errorf("could not read options %q: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return opts, fmt.Errorf("unknown keys in %q: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: mosaic box %dx%d", graphics.ErrInvalidArgument, o.Width, o.Height)
	case o.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", graphics.ErrInvalidArgument, o.BlockSize)
	}
	if _, err := graphics.ParseColor(o.Background); err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	if o.Palette != "" {
		if _, err := palette.Load(o.Palette); err != nil {
			return err
		}
	}
	return nil
}

// Flags are the command line overrides shared by every command. Zero values
// keep what the options file says.
type Flags struct {
	Width     int    `help:"Width of the mosaic box in pixels" group:"mosaic"`
	Height    int    `help:"Height of the mosaic box in pixels" group:"mosaic"`
	BlockSize int    `short:"b" help:"Block size in pixels" group:"mosaic"`
	Fit       string `help:"Crop the image to fill the box, or fit it within" enum:"config,crop,within" default:"config" group:"mosaic"`
	Palette   string `help:"Palette name (${palettes}) or PAL file in RIFF format to restrict block colors to" group:"palette"`
	Dither    bool   `help:"Dither when saving to a paletted format" group:"palette"`
	Overwrite bool   `help:"Replace existing output files"`
}

// Apply returns o with every flag that was set copied over it.
func (f Flags) Apply(o Options) Options {
	if f.Width > 0 {
		o.Width = f.Width
	}
	if f.Height > 0 {
		o.Height = f.Height
	}
	if f.BlockSize > 0 {
		o.BlockSize = f.BlockSize
	}
	switch f.Fit {
	case "crop":
		o.Fit = true
	case "within":
		o.Fit = false
	}
	if f.Palette != "" {
		o.Palette = f.Palette
	}
	o.Dither = o.Dither || f.Dither
	o.Overwrite = o.Overwrite || f.Overwrite
	return o
}
