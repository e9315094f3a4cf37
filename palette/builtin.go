// Package palette loads color palettes, by name or from RIFF .pal files,
// and maps colors onto them.
package palette

import (
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"log/slog"
	"maps"
	"os"
	"slices"
)

func rgb(hex ...uint32) color.Palette {
	pal := make(color.Palette, len(hex))
	for i, h := range hex {
		pal[i] = color.RGBA{R: uint8(h >> 16), G: uint8(h >> 8), B: uint8(h), A: 0xff}
	}
	return pal
}

func gray(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range n {
		v := uint8(i * 255 / (n - 1))
		pal[i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	return pal
}

var builtin = map[string]func() color.Palette{
	"bw":       func() color.Palette { return gray(2) },
	"gray4":    func() color.Palette { return gray(4) },
	"gray16":   func() color.Palette { return gray(16) },
	"spectra6": func() color.Palette { return rgb(0x000000, 0xffffff, 0xff0000, 0xffff00, 0x0000ff, 0x00ff00) },
	"vga16": func() color.Palette {
		return rgb(0x000000, 0x0000aa, 0x00aa00, 0x00aaaa, 0xaa0000, 0xaa00aa, 0xaa5500, 0xaaaaaa,
			0x555555, 0x5555ff, 0x55ff55, 0x55ffff, 0xff5555, 0xff55ff, 0xffff55, 0xffffff)
	},
	"websafe": func() color.Palette { return slices.Clone(stdpalette.WebSafe) },
	"plan9":   func() color.Palette { return slices.Clone(stdpalette.Plan9) },
}

// Names lists the built-in palettes.
func Names() []string {
	return slices.Sorted(maps.Keys(builtin))
}

// Load returns the built-in palette called name, or reads name as a RIFF
// .pal file.
func Load(name string) (color.Palette, error) {
	if mk, ok := builtin[name]; ok {
		return mk(), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q (built-in: %v): %w", name, Names(), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pal, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	}
	if len(pal) == 0 {
		return nil, fmt.Errorf("palette %q has no colors", name)
	}
	return pal, nil
}

// Save writes pal to path as a RIFF .pal file.
func Save(pal color.Palette, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", path, err)
	}
	if _, err := Write(f, pal); err != nil {
		f.Close()
		return fmt.Errorf("could not save palette %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close palette file %q: %w", path, err)
	}
	return nil
}
