package engine

import "github.com/rm-hull/photo-filters/internal/pixbuf"

// VerticalReflect flips src upside-down: pixel (x, y) of the result is pixel
// (x, height-1-y) of the source.
func VerticalReflect(src *pixbuf.PixelBuffer) (*pixbuf.PixelBuffer, error) {
	if err := checkSource("vertical reflect", src); err != nil {
		return nil, err
	}

	h := src.Height()
	dst, err := newDestination("vertical reflect", src.Width(), h, src.AlphaState())
	if err != nil {
		return nil, err
	}

	for y := range h {
		copyRow(dst, y, src, h-1-y)
	}
	return dst, nil
}
