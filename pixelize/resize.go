package pixelize

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Resize scales img into a width x height box. With fit the source is
// center-cropped to the box aspect ratio and the result is exactly the box;
// without it the whole image is scaled to fit within the box, keeping its
// aspect ratio, so one side of the result may be shorter than the box
// rather than the image being stretched to fill it.
func Resize(logger *slog.Logger, img image.Image, width, height int, fit bool) (*image.RGBA64, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: box %dx%d", ErrInvalidArgument, width, height)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidArgument)
	}

	img = shrink(logger, img, width, height)
	srcBounds := img.Bounds()
	destSize := image.Rect(0, 0, width, height)

	if fit {
		srcBounds = cropBox(srcBounds, width, height)
	} else {
		srcWidth := float64(srcBounds.Dx())
		srcHeight := float64(srcBounds.Dy())
		srcAR := srcWidth / srcHeight
		destAR := float64(width) / float64(height)
		if srcAR < destAR {
			destSize.Max.X = max(1, int(math.Round(float64(height)*srcAR)))
		} else if srcAR > destAR {
			destSize.Max.Y = max(1, int(math.Round(float64(width)/srcAR)))
		}
	}

	logger.Debug("resizing", "crop", srcBounds, "width", destSize.Dx(), "height", destSize.Dy())
	dest := image.NewRGBA64(destSize)
	draw.CatmullRom.Scale(dest, destSize, img, srcBounds, draw.Src, nil)

	return dest, nil
}

// shrink halves the image with nearest-neighbor sampling for as long as both
// sides stay over twice the box, so the expensive filter sees fewer pixels.
func shrink(logger *slog.Logger, img image.Image, width, height int) image.Image {
	b := img.Bounds()
	srcWidth, srcHeight := float64(b.Dx()), float64(b.Dy())

	factor := 1.0
	for srcWidth/factor > 2*float64(width) && srcHeight/factor > 2*float64(height) {
		factor *= 2
	}
	if factor == 1 {
		return img
	}

	r := image.Rect(0, 0, int(srcWidth/factor), int(srcHeight/factor))
	logger.Debug("pre-shrinking", "factor", factor, "width", r.Dx(), "height", r.Dy())
	dest := image.NewRGBA64(r)
	draw.NearestNeighbor.Scale(dest, r, img, b, draw.Src, nil)
	return dest
}

// cropBox returns the centered part of b with the width:height aspect
// ratio, trimming whichever axis is relatively longer. At least one pixel
// row or column is kept.
func cropBox(b image.Rectangle, width, height int) image.Rectangle {
	srcWidth, srcHeight := float64(b.Dx()), float64(b.Dy())
	wRatio := srcWidth / float64(width)
	hRatio := srcHeight / float64(height)

	if hRatio > wRatio {
		keep := max(1, int(math.Round(float64(height)*wRatio)))
		b.Min.Y += (b.Dy() - keep) / 2
		b.Max.Y = b.Min.Y + keep
	} else if wRatio > hRatio {
		keep := max(1, int(math.Round(float64(width)*hRatio)))
		b.Min.X += (b.Dx() - keep) / 2
		b.Max.X = b.Min.X + keep
	}
	return b
}
