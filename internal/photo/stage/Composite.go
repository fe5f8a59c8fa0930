package stage

import (
	"fmt"

	"github.com/rm-hull/photo-filters/internal/adapter"
	"github.com/rm-hull/photo-filters/internal/engine"
	"github.com/rm-hull/photo-filters/internal/photo"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

type CompositeStage struct {
	Bottom *photo.Photo
}

// Process draws the photo over Bottom using source-over blending. Both images
// must be the same size. Bottom's alpha is used as given, so a translucent
// bottom layer should already be premultiplied.
func (s *CompositeStage) Process(p *photo.Photo) error {
	if s.Bottom == nil {
		return fmt.Errorf("composite: %w: no bottom layer", pixbuf.ErrInvalidArgument)
	}
	bottom, err := adapter.Decode(s.Bottom.Img)
	if err != nil {
		return fmt.Errorf("composite: bottom: %w", err)
	}
	defer func() { _ = bottom.Free() }()

	return runEngine("composite", p, func(top *pixbuf.PixelBuffer) (*pixbuf.PixelBuffer, error) {
		return engine.Composite(top, bottom)
	})
}
