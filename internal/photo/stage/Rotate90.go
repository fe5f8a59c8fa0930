package stage

import (
	"github.com/rm-hull/photo-filters/internal/engine"
	"github.com/rm-hull/photo-filters/internal/photo"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

type Rotate90Stage struct {
	Direction engine.Direction
}

// Process turns the image by a quarter (or half) turn in the configured
// direction; quarter turns swap the width and height
func (s *Rotate90Stage) Process(p *photo.Photo) error {
	return runEngine("rotate-90", p, func(src *pixbuf.PixelBuffer) (*pixbuf.PixelBuffer, error) {
		return engine.Rotate90(src, s.Direction)
	})
}
