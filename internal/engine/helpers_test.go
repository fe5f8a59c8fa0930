package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
	"github.com/stretchr/testify/require"
)

// grayBuffer builds an opaque buffer from row-major grey levels.
func grayBuffer(t *testing.T, width, height int, levels ...uint8) *pixbuf.PixelBuffer {
	t.Helper()
	require.Len(t, levels, width*height)
	b, err := pixbuf.Allocate(width, height, pixbuf.RGBA, pixbuf.AlphaStraight)
	require.NoError(t, err)
	for i, v := range levels {
		b.SetPixel(i%width, i/width, pixbuf.NewPixel(v, v, v, 255))
	}
	return b
}

func solidBuffer(t *testing.T, width, height int, order pixbuf.ChannelOrder, alpha pixbuf.AlphaState, p pixbuf.Pixel) *pixbuf.PixelBuffer {
	t.Helper()
	b, err := pixbuf.Allocate(width, height, order, alpha)
	require.NoError(t, err)
	b.Fill(p)
	return b
}

func randomBuffer(t *testing.T, width, height int, order pixbuf.ChannelOrder, seed uint64) *pixbuf.PixelBuffer {
	t.Helper()
	b, err := pixbuf.AllocateWithStride(width, height, order, pixbuf.AlphaStraight, width*4+8)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for y := range height {
		for x := range width {
			b.SetPixel(x, y, pixbuf.Pixel{uint8(rng.UintN(256)), uint8(rng.UintN(256)), uint8(rng.UintN(256)), uint8(rng.UintN(256))})
		}
	}
	return b
}

// requireSamePixels compares two buffers pixel by pixel, independent of
// storage order and stride.
func requireSamePixels(t *testing.T, want, got *pixbuf.PixelBuffer) {
	t.Helper()
	require.Equal(t, want.Width(), got.Width(), "width")
	require.Equal(t, want.Height(), got.Height(), "height")
	for y := range want.Height() {
		for x := range want.Width() {
			require.Equal(t, want.Pixel(x, y), got.Pixel(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func levelsOf(b *pixbuf.PixelBuffer) []uint8 {
	out := make([]uint8, 0, b.Width()*b.Height())
	for y := range b.Height() {
		for x := range b.Width() {
			out = append(out, b.Pixel(x, y).R())
		}
	}
	return out
}
