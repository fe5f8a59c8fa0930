package engine

import (
	"testing"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotate(t *testing.T, b *pixbuf.PixelBuffer, d Direction) *pixbuf.PixelBuffer {
	t.Helper()
	out, err := Rotate90(b, d)
	require.NoError(t, err)
	return out
}

func TestRotate90(t *testing.T) {
	t.Run("clockwise 2x3", func(t *testing.T) {
		src := grayBuffer(t, 2, 3,
			1, 2,
			3, 4,
			5, 6,
		)

		dst := rotate(t, src, Clockwise)
		assert.Equal(t, 3, dst.Width())
		assert.Equal(t, 2, dst.Height())
		assert.Equal(t, src.Pixel(0, src.Height()-1), dst.Pixel(0, 0))
		assert.Equal(t, []uint8{
			5, 3, 1,
			6, 4, 2,
		}, levelsOf(dst))
	})

	t.Run("counter-clockwise 2x3", func(t *testing.T) {
		src := grayBuffer(t, 2, 3,
			1, 2,
			3, 4,
			5, 6,
		)

		dst := rotate(t, src, CounterClockwise)
		assert.Equal(t, []uint8{
			2, 4, 6,
			1, 3, 5,
		}, levelsOf(dst))
	})

	t.Run("180 keeps dimensions", func(t *testing.T) {
		src := grayBuffer(t, 2, 3,
			1, 2,
			3, 4,
			5, 6,
		)

		dst := rotate(t, src, Rotate180)
		assert.Equal(t, 2, dst.Width())
		assert.Equal(t, 3, dst.Height())
		assert.Equal(t, []uint8{6, 5, 4, 3, 2, 1}, levelsOf(dst))
	})

	t.Run("four clockwise turns are the identity", func(t *testing.T) {
		src := randomBuffer(t, 5, 3, pixbuf.RGBA, 42)
		out := src
		for range 4 {
			out = rotate(t, out, Clockwise)
		}
		requireSamePixels(t, src, out)
	})

	t.Run("clockwise then counter-clockwise", func(t *testing.T) {
		src := randomBuffer(t, 4, 9, pixbuf.ABGR, 7)
		requireSamePixels(t, src, rotate(t, rotate(t, src, Clockwise), CounterClockwise))
	})

	t.Run("two half turns", func(t *testing.T) {
		src := randomBuffer(t, 6, 2, pixbuf.BGRA, 3)
		requireSamePixels(t, src, rotate(t, rotate(t, src, Rotate180), Rotate180))
	})

	t.Run("unknown direction", func(t *testing.T) {
		src := grayBuffer(t, 1, 1, 0)
		dst, err := Rotate90(src, Direction(9))
		assert.ErrorIs(t, err, pixbuf.ErrInvalidArgument)
		assert.Nil(t, dst)
	})
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"":                 Clockwise,
		"cw":               Clockwise,
		"Clockwise":        Clockwise,
		"ccw":              CounterClockwise,
		"counterclockwise": CounterClockwise,
		"180":              Rotate180,
	}
	for in, want := range tests {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, pixbuf.ErrInvalidArgument)
}
