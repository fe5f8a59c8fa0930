package engine

import (
	"fmt"
	"strings"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

// Direction selects one of the quadrant rotations.
type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
	Rotate180
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	case Rotate180:
		return "180"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection accepts "cw", "ccw" and "180" along with a few long forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cw", "clockwise", "90":
		return Clockwise, nil
	case "ccw", "counterclockwise", "counter-clockwise", "anticlockwise", "270", "-90":
		return CounterClockwise, nil
	case "180":
		return Rotate180, nil
	}
	return 0, fmt.Errorf("%w: unknown rotation direction %q", pixbuf.ErrInvalidArgument, s)
}

// Rotate90 turns src by a quarter (or half) turn. It is an exact permutation
// of pixels; quarter turns swap width and height.
func Rotate90(src *pixbuf.PixelBuffer, direction Direction) (*pixbuf.PixelBuffer, error) {
	if err := checkSource("rotate", src); err != nil {
		return nil, err
	}

	w, h := src.Width(), src.Height()
	var lookup func(x, y int) (int, int)
	dw, dh := h, w

	switch direction {
	case Clockwise:
		lookup = func(x, y int) (int, int) { return y, h - 1 - x }
	case CounterClockwise:
		lookup = func(x, y int) (int, int) { return w - 1 - y, x }
	case Rotate180:
		dw, dh = w, h
		lookup = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	default:
		return nil, fmt.Errorf("rotate: %w: direction %s", pixbuf.ErrInvalidArgument, direction)
	}

	dst, err := newDestination("rotate", dw, dh, src.AlphaState())
	if err != nil {
		return nil, err
	}

	for y := range dh {
		for x := range dw {
			sx, sy := lookup(x, y)
			dst.SetPixel(x, y, src.Pixel(sx, sy))
		}
	}
	return dst, nil
}
