package engine

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

// DefaultVerticalScale shrinks the sheared columns slightly so steep slants
// do not stretch the picture out of frame.
const DefaultVerticalScale = 0.8

// DefaultBackground fills the regions uncovered by a shear: a translucent navy.
var DefaultBackground = color.NRGBA{R: 0, G: 55, B: 127, A: 127}

// DefaultShearAngle is atan(height / (2*width)) in degrees, giving a slant
// that is proportional to the picture's aspect ratio.
func DefaultShearAngle(width, height int) float64 {
	return math.Atan(float64(height)/float64(2*width)) * 180 / math.Pi
}

// VerticalShear slants the columns of src: column x is shifted by
// x*tan(angleDegrees) and scaled vertically by verticalScale, resampling with
// DefaultKernel. Destination pixels not covered by the sheared source take
// the background colour. The angle must lie strictly between -90 and 90.
func VerticalShear(src *pixbuf.PixelBuffer, angleDegrees, verticalScale float64, background color.NRGBA) (*pixbuf.PixelBuffer, error) {
	if !(angleDegrees > -90 && angleDegrees < 90) {
		return nil, fmt.Errorf("vertical shear: %w: angle %v must be within (-90, 90) degrees", pixbuf.ErrInvalidArgument, angleDegrees)
	}
	if err := checkSource("vertical shear", src); err != nil {
		return nil, err
	}

	filter, err := NewResamplingFilter(verticalScale, DefaultKernel)
	if err != nil {
		return nil, fmt.Errorf("vertical shear: %w", err)
	}
	defer filter.Release()

	slope := math.Tan(angleDegrees * math.Pi / 180)

	alpha := pixbuf.AlphaStraight
	bg := pixbuf.NewPixel(background.R, background.G, background.B, background.A)
	if src.AlphaState() == pixbuf.AlphaPremultiplied {
		alpha = pixbuf.AlphaPremultiplied
		bg = pixbuf.PremultiplyPixel(bg)
	}
	opaque := src.AlphaState() == pixbuf.AlphaNone

	w, h := src.Width(), src.Height()
	dst, err := newDestination("vertical shear", w, h, alpha)
	if err != nil {
		return nil, err
	}

	for x := range w {
		shift := float64(x) * slope
		for y := range h {
			center := (float64(y)+0.5-shift)/verticalScale - 0.5
			first, weights, err := filter.Weights(center)
			if err != nil {
				return nil, fmt.Errorf("vertical shear: %w", err)
			}

			if first >= h || first+len(weights) <= 0 {
				dst.SetPixel(x, y, bg)
				continue
			}

			var acc [4]float64
			for i, wt := range weights {
				if wt == 0 {
					continue
				}
				p := bg
				if sy := first + i; sy >= 0 && sy < h {
					p = src.Pixel(x, sy)
					if opaque {
						p[0] = 255
					}
				}
				for c := range acc {
					acc[c] += float64(p[c]) * wt
				}
			}

			var out pixbuf.Pixel
			for c := range acc {
				out[c] = clamp8(acc[c])
			}
			if alpha == pixbuf.AlphaPremultiplied {
				// overshoot from the cubic kernel must not leave colour above alpha
				for c := 1; c < 4; c++ {
					out[c] = min(out[c], out[0])
				}
			}
			dst.SetPixel(x, y, out)
		}
	}
	return dst, nil
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
