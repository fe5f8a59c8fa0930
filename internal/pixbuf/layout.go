package pixbuf

import "fmt"

// BytesPerPixel is fixed: four 8-bit channels.
const BytesPerPixel = 4

// ChannelOrder says which byte of a pixel holds which channel.
type ChannelOrder uint8

const (
	// ARGB is the canonical order every engine operation produces.
	ARGB ChannelOrder = iota
	// RGBA is the byte layout of image.RGBA and image.NRGBA.
	RGBA
	// BGRA is little-endian ARGB, as used by many native bitmaps.
	BGRA
	// ABGR keeps alpha first with the colour bytes reversed.
	ABGR
)

// offsets of the A, R, G and B bytes within a pixel, per order
var channelOffsets = [...][4]int{
	ARGB: {0, 1, 2, 3},
	RGBA: {3, 0, 1, 2},
	BGRA: {3, 2, 1, 0},
	ABGR: {0, 3, 2, 1},
}

var channelOrderNames = [...]string{
	ARGB: "ARGB",
	RGBA: "RGBA",
	BGRA: "BGRA",
	ABGR: "ABGR",
}

// IsValid reports whether o is one of the known orders.
func (o ChannelOrder) IsValid() bool {
	return int(o) < len(channelOffsets)
}

// AlphaFirst reports whether alpha is stored in the first byte of a pixel.
func (o ChannelOrder) AlphaFirst() bool {
	return o.IsValid() && channelOffsets[o][0] == 0
}

// AlphaLast reports whether alpha is stored in the last byte of a pixel.
func (o ChannelOrder) AlphaLast() bool {
	return o.IsValid() && channelOffsets[o][0] == BytesPerPixel-1
}

// Offsets returns the byte offsets of the A, R, G and B channels.
func (o ChannelOrder) Offsets() [4]int {
	return channelOffsets[o]
}

func (o ChannelOrder) String() string {
	if !o.IsValid() {
		return fmt.Sprintf("ChannelOrder(%d)", uint8(o))
	}
	return channelOrderNames[o]
}

// AlphaState describes how the alpha byte relates to the colour bytes.
type AlphaState uint8

const (
	// AlphaNone means the alpha byte is padding and every pixel is opaque.
	AlphaNone AlphaState = iota
	// AlphaStraight stores colour independently of alpha.
	AlphaStraight
	// AlphaPremultiplied stores colour already scaled by alpha/255.
	AlphaPremultiplied
)

// IsValid reports whether a is one of the known alpha states.
func (a AlphaState) IsValid() bool {
	return a <= AlphaPremultiplied
}

func (a AlphaState) String() string {
	switch a {
	case AlphaNone:
		return "none"
	case AlphaStraight:
		return "straight"
	case AlphaPremultiplied:
		return "premultiplied"
	default:
		return fmt.Sprintf("AlphaState(%d)", uint8(a))
	}
}

// Pixel holds one pixel in canonical A, R, G, B component order.
type Pixel [4]uint8

func (p Pixel) A() uint8 { return p[0] }
func (p Pixel) R() uint8 { return p[1] }
func (p Pixel) G() uint8 { return p[2] }
func (p Pixel) B() uint8 { return p[3] }

// NewPixel builds a Pixel from components given in R, G, B, A order.
func NewPixel(r, g, b, a uint8) Pixel {
	return Pixel{a, r, g, b}
}
