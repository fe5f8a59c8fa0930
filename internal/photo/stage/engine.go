package stage

import (
	"fmt"

	"github.com/rm-hull/photo-filters/internal/adapter"
	"github.com/rm-hull/photo-filters/internal/photo"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

type transformFunc func(src *pixbuf.PixelBuffer) (*pixbuf.PixelBuffer, error)

// runEngine runs fn over the decoded photo and replaces the photo's image
// with the encoded result. On error the photo is left unchanged.
func runEngine(name string, p *photo.Photo, fn transformFunc) error {
	src, err := adapter.Decode(p.Img)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer func() { _ = src.Free() }()

	dst, err := fn(src)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer func() { _ = dst.Free() }()

	img, err := adapter.Encode(dst)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	p.Img = img
	p.Bounds = img.Bounds()
	return nil
}
