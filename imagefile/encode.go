package imagefile

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrExists            = errors.New("destination file already exists")
)

var extFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// Ext returns the canonical file extension for an encoder name.
func Ext(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "tiff":
		return ".tif"
	}
	return "." + format
}

// FormatOf returns the encoder name for the extension of path.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// IsImage reports whether path has an extension that can be read.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := extFormats[ext]
	return ok || ext == ".webp"
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 95}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return nil
}

// Save encodes img into path, picking the format from the extension. The
// image is written to a temporary file in the same folder and renamed into
// place. Without overwrite an existing destination is an error, including
// one created by a concurrent Save while the image was being encoded.
func Save(img image.Image, path string, overwrite bool) (err error) {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if !overwrite {
		if err := checkDest(path); err != nil {
			return err
		}
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	outFile, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}

		if canRename && err == nil {
			err = place(outFile.Name(), path, overwrite)
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = Encode(outFile, img, format); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}

	canRename = true
	return nil
}

// place moves the finished temporary file to path. Without overwrite a hard
// link is made instead, which fails rather than replacing an existing file.
func place(tmp, path string, overwrite bool) error {
	if overwrite {
		if err := os.Rename(tmp, path); err != nil {
			return fmt.Errorf("could not rename destination file %q: %w", path, err)
		}
		return nil
	}

	err := os.Link(tmp, path)
	if rmErr := os.Remove(tmp); rmErr != nil && err == nil {
		slog.Warn("could not remove temporary file", "file", tmp, "error", rmErr)
	}
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %q", ErrExists, filepath.Base(path))
	}
	if err != nil {
		return fmt.Errorf("could not link destination file %q: %w", path, err)
	}
	return nil
}

func checkDest(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrExists, info.Name())
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
