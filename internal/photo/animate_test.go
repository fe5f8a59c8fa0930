package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimate(t *testing.T) {
	before := NewPhoto(solid(4, 2, color.NRGBA{R: 255, A: 255}))
	after := NewPhoto(solid(2, 4, color.NRGBA{B: 255, A: 255}))

	data, err := Animate([]*Photo{before, after}, 0.5)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
	assert.Equal(t, 1, bytes.Count(data, []byte("acTL")))
	assert.Equal(t, 2, bytes.Count(data, []byte("fcTL")))

	// A plain PNG decoder sees the first frame on the shared canvas.
	first, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), first.Bounds())
	r, _, _, a := first.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
	_, _, _, a = first.At(0, 3).RGBA()
	assert.Zero(t, a)
}

func TestAnimateInvalid(t *testing.T) {
	_, err := Animate(nil, 1)
	assert.Error(t, err)

	_, err = Animate([]*Photo{NewPhoto(solid(1, 1, color.NRGBA{A: 255}))}, 0)
	assert.Error(t, err)
}
