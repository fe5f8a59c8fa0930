// Package adapter converts between Go images and pixel buffers, and holds the
// read-only pixel probes used by diagnostic tooling.
package adapter

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

// Decode copies img into a new PixelBuffer. NRGBA images keep their bytes
// and straight alpha, RGBA images keep premultiplied alpha, and anything else
// is converted to premultiplied RGBA (or treated as having no alpha when the
// image reports itself opaque).
func Decode(img image.Image) (*pixbuf.PixelBuffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", pixbuf.ErrDecode)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: image has no raster (bounds %v)", pixbuf.ErrDecode, bounds)
	}

	var (
		pix    []uint8
		stride int
		alpha  pixbuf.AlphaState
	)
	switch src := img.(type) {
	case *image.NRGBA:
		pix, stride, alpha = src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y):], src.Stride, pixbuf.AlphaStraight
	case *image.RGBA:
		pix, stride, alpha = src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y):], src.Stride, pixbuf.AlphaPremultiplied
	default:
		rgba := clone.AsRGBA(img)
		pix, stride, alpha = rgba.Pix, rgba.Stride, pixbuf.AlphaPremultiplied
		if isOpaque(img) {
			alpha = pixbuf.AlphaNone
		}
	}

	buf, err := pixbuf.Allocate(bounds.Dx(), bounds.Dy(), pixbuf.RGBA, alpha)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for y := range buf.Height() {
		row := buf.Row(y)
		copy(row, pix[y*stride:y*stride+len(row)])
	}
	return buf, nil
}

func isOpaque(img image.Image) bool {
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}

// Encode builds a Go image from buf: *image.RGBA for premultiplied buffers,
// *image.NRGBA otherwise. Buffers without alpha come out fully opaque.
func Encode(buf *pixbuf.PixelBuffer) (image.Image, error) {
	if err := buf.Check(); err != nil {
		return nil, fmt.Errorf("%w: %w", pixbuf.ErrEncode, err)
	}

	rect := image.Rect(0, 0, buf.Width(), buf.Height())
	var (
		pix    []uint8
		stride int
		out    image.Image
	)
	if buf.AlphaState() == pixbuf.AlphaPremultiplied {
		rgba := image.NewRGBA(rect)
		pix, stride, out = rgba.Pix, rgba.Stride, rgba
	} else {
		nrgba := image.NewNRGBA(rect)
		pix, stride, out = nrgba.Pix, nrgba.Stride, nrgba
	}

	for y := range buf.Height() {
		row := pix[y*stride : y*stride+buf.Width()*pixbuf.BytesPerPixel]
		if buf.ChannelOrder() == pixbuf.RGBA {
			copy(row, buf.Row(y))
		} else {
			for x := range buf.Width() {
				p := buf.Pixel(x, y)
				i := x * pixbuf.BytesPerPixel
				row[i], row[i+1], row[i+2], row[i+3] = p.R(), p.G(), p.B(), p.A()
			}
		}
		if buf.AlphaState() == pixbuf.AlphaNone {
			for i := 3; i < len(row); i += pixbuf.BytesPerPixel {
				row[i] = 255
			}
		}
	}
	return out, nil
}
