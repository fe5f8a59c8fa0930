package pixbuf

// In-place conversions. They mutate b, so b must be exclusively owned by the
// caller; the engine only ever applies them to private copies.

// NormalizeChannelOrder permutes every pixel into ARGB order.
func (b *PixelBuffer) NormalizeChannelOrder() error {
	if err := b.Check(); err != nil {
		return err
	}
	if b.order == ARGB {
		return nil
	}
	o := b.order.Offsets()
	for y := range b.height {
		row := b.Row(y)
		for i := 0; i < len(row); i += BytesPerPixel {
			s := row[i : i+4 : i+4]
			s[0], s[1], s[2], s[3] = s[o[0]], s[o[1]], s[o[2]], s[o[3]]
		}
	}
	b.order = ARGB
	return nil
}

// Premultiply scales each colour channel by alpha/255. Buffers without alpha
// are made explicitly opaque; premultiplied buffers are left alone.
func (b *PixelBuffer) Premultiply() error {
	if err := b.Check(); err != nil {
		return err
	}
	switch b.alpha {
	case AlphaPremultiplied:
		return nil
	case AlphaNone:
		b.Fill255Alpha()
	default:
		for y := range b.height {
			for x := range b.width {
				b.SetPixel(x, y, PremultiplyPixel(b.Pixel(x, y)))
			}
		}
	}
	b.alpha = AlphaPremultiplied
	return nil
}

// Fill255Alpha writes an opaque alpha byte into every pixel, leaving colour
// untouched.
func (b *PixelBuffer) Fill255Alpha() {
	a := b.order.Offsets()[0]
	for y := range b.height {
		row := b.Row(y)
		for i := a; i < len(row); i += BytesPerPixel {
			row[i] = 255
		}
	}
}

// PremultiplyPixel returns p with its colour scaled by its alpha.
func PremultiplyPixel(p Pixel) Pixel {
	a := p[0]
	return Pixel{a, MulDiv255(p[1], a), MulDiv255(p[2], a), MulDiv255(p[3], a)}
}

// UnpremultiplyPixel reverses PremultiplyPixel, up to rounding.
func UnpremultiplyPixel(p Pixel) Pixel {
	a := p[0]
	switch a {
	case 0:
		return Pixel{}
	case 255:
		return p
	}
	return Pixel{a, unpremul(p[1], a), unpremul(p[2], a), unpremul(p[3], a)}
}

func unpremul(c, a uint8) uint8 {
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// MulDiv255 returns round(x*y/255).
func MulDiv255(x, y uint8) uint8 {
	return uint8((uint32(x)*uint32(y) + 127) / 255)
}
