package photo

import (
	"bytes"
	"errors"
	"image"
	"image/draw"

	"github.com/kettek/apng"
)

// Animate builds a looping APNG that cycles through the given frames, showing
// each one for frameDelay seconds. Frames of different sizes are placed at the
// top-left of a canvas large enough for all of them.
func Animate(frames []*Photo, frameDelay float64) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to animate")
	}
	if frameDelay <= 0 {
		return nil, errors.New("frame delay must be positive")
	}

	canvas := image.Rectangle{}
	for _, f := range frames {
		canvas = canvas.Union(image.Rect(0, 0, f.Bounds.Dx(), f.Bounds.Dy()))
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	for i, f := range frames {
		img := image.NewNRGBA(canvas)
		draw.Draw(img, image.Rect(0, 0, f.Bounds.Dx(), f.Bounds.Dy()), f.Img, f.Bounds.Min, draw.Src)

		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
