package stage

import (
	"fmt"

	"github.com/rm-hull/photo-filters/internal/adapter"
	"github.com/rm-hull/photo-filters/internal/photo"
)

type GreyscaleStage struct{}

// Process converts the image to an 8-bit luma raster
// Translucent pixels are darkened in proportion to their transparency
func (s *GreyscaleStage) Process(p *photo.Photo) error {
	buf, err := adapter.Decode(p.Img)
	if err != nil {
		return fmt.Errorf("greyscale: %w", err)
	}
	defer func() { _ = buf.Free() }()

	values, err := adapter.GrayIntensities(buf)
	if err != nil {
		return fmt.Errorf("greyscale: %w", err)
	}
	gray, err := adapter.GrayImage(values, buf.Width(), buf.Height())
	if err != nil {
		return fmt.Errorf("greyscale: %w", err)
	}
	p.Img = gray
	p.Bounds = gray.Bounds()
	return nil
}
