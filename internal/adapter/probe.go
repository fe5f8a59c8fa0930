package adapter

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

// Rec. 601 luma weights
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// PixelColor returns the straight-alpha colour at (x, y).
func PixelColor(buf *pixbuf.PixelBuffer, x, y int) (color.NRGBA, error) {
	p, err := buf.PixelAt(x, y)
	if err != nil {
		return color.NRGBA{}, err
	}
	switch buf.AlphaState() {
	case pixbuf.AlphaPremultiplied:
		p = pixbuf.UnpremultiplyPixel(p)
	case pixbuf.AlphaNone:
		p[0] = 255
	}
	return color.NRGBA{R: p.R(), G: p.G(), B: p.B(), A: p.A()}, nil
}

// GrayIntensities returns one luma byte per pixel, row by row. Translucent
// pixels are weighted by their alpha, as if drawn over black.
func GrayIntensities(buf *pixbuf.PixelBuffer) ([]uint8, error) {
	img, err := Encode(buf)
	if err != nil {
		return nil, err
	}

	gray := effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB)
	w, h := buf.Width(), buf.Height()
	out := make([]uint8, 0, w*h)
	for y := range h {
		for x := range w {
			out = append(out, gray.Pix[gray.PixOffset(x, y)])
		}
	}
	return out, nil
}

// GrayImage turns an intensity raster, as returned by GrayIntensities, back
// into an image.
func GrayImage(values []uint8, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 || len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for a %dx%d raster", pixbuf.ErrInvalidArgument, len(values), width, height)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		copy(img.Pix[y*img.Stride:], values[y*width:(y+1)*width])
	}
	return img, nil
}
