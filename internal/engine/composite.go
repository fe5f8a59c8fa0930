package engine

import (
	"fmt"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

// Composite lays top over bottom with the premultiplied "over" operator,
// dst = top + bottom*(1 - top.alpha), and returns a premultiplied ARGB buffer.
//
// Both layers are brought into ARGB order and the top layer is premultiplied
// if it is not already. The bottom layer's alpha state is used as supplied:
// callers blending a translucent, straight-alpha bottom layer should
// premultiply it first.
func Composite(top, bottom *pixbuf.PixelBuffer) (*pixbuf.PixelBuffer, error) {
	if err := top.Check(); err != nil {
		return nil, fmt.Errorf("composite: top: %w", err)
	}
	if err := bottom.Check(); err != nil {
		return nil, fmt.Errorf("composite: bottom: %w", err)
	}
	if !top.SameSize(bottom) {
		return nil, fmt.Errorf("composite: %w: top is %dx%d, bottom is %dx%d", pixbuf.ErrInvalidArgument,
			top.Width(), top.Height(), bottom.Width(), bottom.Height())
	}

	fg, err := top.Clone()
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	defer func() { _ = fg.Free() }()

	bg, err := bottom.Clone()
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	defer func() { _ = bg.Free() }()

	if err := fg.NormalizeChannelOrder(); err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	if err := bg.NormalizeChannelOrder(); err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	if err := fg.Premultiply(); err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	if bg.AlphaState() == pixbuf.AlphaNone {
		// the alpha byte is padding, not data
		bg.Fill255Alpha()
	}

	dst, err := newDestination("composite", fg.Width(), fg.Height(), pixbuf.AlphaPremultiplied)
	if err != nil {
		return nil, err
	}

	for y := range fg.Height() {
		s, d, out := fg.Row(y), bg.Row(y), dst.Row(y)
		for i := 0; i < len(s); i += pixbuf.BytesPerPixel {
			inv := 255 - s[i]
			for c := i; c < i+pixbuf.BytesPerPixel; c++ {
				out[c] = sourceOver(s[c], d[c], inv)
			}
		}
	}
	return dst, nil
}

// sourceOver blends one premultiplied channel: s + d*inv/255, saturating.
func sourceOver(s, d, inv uint8) uint8 {
	v := uint16(s) + uint16(pixbuf.MulDiv255(d, inv))
	if v > 255 {
		return 255
	}
	return uint8(v)
}
