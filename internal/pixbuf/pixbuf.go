// Package pixbuf holds the RGBA8 raster that every filter reads and writes.
//
// A PixelBuffer is exclusively owned by whoever allocated it. Nothing in this
// package copies implicitly: use Clone when two independent buffers are
// needed from one source.
package pixbuf

import "fmt"

// MaxPixels bounds a single allocation; larger rasters report ErrUnavailable.
const MaxPixels = 1 << 28

type PixelBuffer struct {
	data   []byte
	width  int
	height int
	stride int
	order  ChannelOrder
	alpha  AlphaState
	freed  bool
}

// Allocate returns a zero-initialised, tightly packed buffer.
func Allocate(width, height int, order ChannelOrder, alpha AlphaState) (*PixelBuffer, error) {
	return AllocateWithStride(width, height, order, alpha, width*BytesPerPixel)
}

// AllocateWithStride is Allocate with padded rows; stride must be at least
// width*BytesPerPixel.
func AllocateWithStride(width, height int, order ChannelOrder, alpha AlphaState, stride int) (*PixelBuffer, error) {
	if err := validate(width, height, order, alpha, stride); err != nil {
		return nil, err
	}
	return &PixelBuffer{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		order:  order,
		alpha:  alpha,
	}, nil
}

// FromRaw wraps existing pixel data without copying. The buffer takes
// ownership of data; the caller must not keep using it.
func FromRaw(data []byte, width, height int, order ChannelOrder, alpha AlphaState, stride int) (*PixelBuffer, error) {
	if err := validate(width, height, order, alpha, stride); err != nil {
		return nil, err
	}
	if len(data) != stride*height {
		return nil, fmt.Errorf("%w: data is %d bytes, want %d", ErrInvalidArgument, len(data), stride*height)
	}
	return &PixelBuffer{
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		order:  order,
		alpha:  alpha,
	}, nil
}

func validate(width, height int, order ChannelOrder, alpha AlphaState, stride int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	if !order.IsValid() {
		return fmt.Errorf("%w: channel order %s", ErrInvalidArgument, order)
	}
	if !alpha.IsValid() {
		return fmt.Errorf("%w: alpha state %s", ErrInvalidArgument, alpha)
	}
	if stride < width*BytesPerPixel {
		return fmt.Errorf("%w: stride %d too small for width %d", ErrInvalidArgument, stride, width)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d raster exceeds %d pixels", ErrUnavailable, width, height, MaxPixels)
	}
	return nil
}

// Clone returns a deep copy with the same layout.
func (b *PixelBuffer) Clone() (*PixelBuffer, error) {
	if err := b.Check(); err != nil {
		return nil, err
	}
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &PixelBuffer{
		data:   data,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		order:  b.order,
		alpha:  b.alpha,
	}, nil
}

// Free drops the backing storage. It may be called once; freeing twice is a
// programming error and is reported as ErrInvalidArgument.
func (b *PixelBuffer) Free() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if b.freed {
		return fmt.Errorf("%w: buffer already freed", ErrInvalidArgument)
	}
	b.data = nil
	b.freed = true
	return nil
}

// Check reports whether b can still be used.
func (b *PixelBuffer) Check() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if b.freed {
		return fmt.Errorf("%w: buffer has been freed", ErrInvalidArgument)
	}
	return nil
}

func (b *PixelBuffer) Width() int                 { return b.width }
func (b *PixelBuffer) Height() int                { return b.height }
func (b *PixelBuffer) Stride() int                { return b.stride }
func (b *PixelBuffer) ChannelOrder() ChannelOrder { return b.order }
func (b *PixelBuffer) AlphaState() AlphaState     { return b.alpha }

// Data exposes the raw bytes, including any row padding.
func (b *PixelBuffer) Data() []byte { return b.data }

// SameSize reports whether both buffers have equal width and height.
func (b *PixelBuffer) SameSize(other *PixelBuffer) bool {
	return b.width == other.width && b.height == other.height
}

// Row returns the pixel bytes of row y without padding.
func (b *PixelBuffer) Row(y int) []byte {
	start := y * b.stride
	return b.data[start : start+b.width*BytesPerPixel]
}

func (b *PixelBuffer) offset(x, y int) int {
	return y*b.stride + x*BytesPerPixel
}

// InBounds reports whether (x, y) addresses a pixel of b.
func (b *PixelBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Pixel returns the pixel at (x, y) in canonical ARGB order. The caller
// guarantees (x, y) is in bounds.
func (b *PixelBuffer) Pixel(x, y int) Pixel {
	i := b.offset(x, y)
	s := b.data[i : i+4 : i+4]
	o := &channelOffsets[b.order]
	return Pixel{s[o[0]], s[o[1]], s[o[2]], s[o[3]]}
}

// SetPixel stores p, given in canonical ARGB order, at (x, y).
func (b *PixelBuffer) SetPixel(x, y int, p Pixel) {
	i := b.offset(x, y)
	s := b.data[i : i+4 : i+4]
	o := &channelOffsets[b.order]
	s[o[0]], s[o[1]], s[o[2]], s[o[3]] = p[0], p[1], p[2], p[3]
}

// PixelAt is the bounds-checked form of Pixel.
func (b *PixelBuffer) PixelAt(x, y int) (Pixel, error) {
	if err := b.Check(); err != nil {
		return Pixel{}, err
	}
	if !b.InBounds(x, y) {
		return Pixel{}, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfRange, x, y, b.width, b.height)
	}
	return b.Pixel(x, y), nil
}

// Fill sets every pixel to p (canonical ARGB order).
func (b *PixelBuffer) Fill(p Pixel) {
	for y := range b.height {
		for x := range b.width {
			b.SetPixel(x, y, p)
		}
	}
}
