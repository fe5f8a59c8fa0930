// Package engine implements the geometric and compositing filters over
// pixbuf.PixelBuffer values.
//
// Every operation is a pure function: the inputs are only read, a new
// destination buffer in ARGB order is returned, and nothing is shared between
// calls, so separate calls may run concurrently on different buffers. On
// error no destination is returned.
package engine

import (
	"fmt"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

func checkSource(op string, src *pixbuf.PixelBuffer) error {
	if err := src.Check(); err != nil {
		return fmt.Errorf("%s: source: %w", op, err)
	}
	return nil
}

func newDestination(op string, width, height int, alpha pixbuf.AlphaState) (*pixbuf.PixelBuffer, error) {
	dst, err := pixbuf.Allocate(width, height, pixbuf.ARGB, alpha)
	if err != nil {
		return nil, fmt.Errorf("%s: destination: %w", op, err)
	}
	return dst, nil
}

// copyRow copies row sy of src into row dy of dst, which is already ARGB.
func copyRow(dst *pixbuf.PixelBuffer, dy int, src *pixbuf.PixelBuffer, sy int) {
	if src.ChannelOrder() == pixbuf.ARGB {
		copy(dst.Row(dy), src.Row(sy))
		return
	}
	for x := range src.Width() {
		dst.SetPixel(x, dy, src.Pixel(x, sy))
	}
}
