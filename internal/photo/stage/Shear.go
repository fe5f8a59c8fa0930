package stage

import (
	"image/color"

	"github.com/rm-hull/photo-filters/internal/engine"
	"github.com/rm-hull/photo-filters/internal/photo"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

type ShearStage struct {
	// Angle in degrees; nil picks engine.DefaultShearAngle for the image size
	Angle *float64
	// VerticalScale of zero means engine.DefaultVerticalScale
	VerticalScale float64
	// Background of nil means engine.DefaultBackground
	Background *color.NRGBA
}

// Process slants each column vertically in proportion to its x position,
// squashing it by VerticalScale and filling the exposed area with Background
func (s *ShearStage) Process(p *photo.Photo) error {
	angle := engine.DefaultShearAngle(p.Bounds.Dx(), p.Bounds.Dy())
	if s.Angle != nil {
		angle = *s.Angle
	}
	scale := engine.DefaultVerticalScale
	if s.VerticalScale != 0 {
		scale = s.VerticalScale
	}
	bg := engine.DefaultBackground
	if s.Background != nil {
		bg = *s.Background
	}

	return runEngine("shear", p, func(src *pixbuf.PixelBuffer) (*pixbuf.PixelBuffer, error) {
		return engine.VerticalShear(src, angle, scale, bg)
	})
}
