// Package filter turns a filter selection plus its operands into a single
// result image.
package filter

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rm-hull/photo-filters/internal/engine"
	"github.com/rm-hull/photo-filters/internal/photo"
	"github.com/rm-hull/photo-filters/internal/photo/stage"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

// Request selects a filter and carries its operands. For Composite the first
// operand is drawn over the second. Unset optional parameters fall back to the
// engine defaults.
type Request struct {
	Kind          Kind
	Operands      []image.Image
	ShearAngle    *float64
	VerticalScale float64
	Background    *color.NRGBA
	Direction     engine.Direction
}

// Validate checks the operand count and that every operand is present.
func (r *Request) Validate() error {
	if _, ok := kindNames[r.Kind]; !ok {
		return fmt.Errorf("%w: unknown filter %v", pixbuf.ErrInvalidArgument, r.Kind)
	}
	if want := r.Kind.Operands(); len(r.Operands) != want {
		return fmt.Errorf("%w: %s needs %d image(s), got %d", pixbuf.ErrInvalidArgument, r.Kind, want, len(r.Operands))
	}
	for i, img := range r.Operands {
		if img == nil {
			return fmt.Errorf("%w: %s operand %d is missing", pixbuf.ErrInvalidArgument, r.Kind, i+1)
		}
	}
	return nil
}

// Stage returns the pipeline stage for the request, assuming it is valid.
func (r *Request) Stage() photo.Stage {
	switch r.Kind {
	case Shear:
		return &stage.ShearStage{
			Angle:         r.ShearAngle,
			VerticalScale: r.VerticalScale,
			Background:    r.Background,
		}
	case Rotate90:
		return &stage.Rotate90Stage{Direction: r.Direction}
	case Composite:
		return &stage.CompositeStage{Bottom: photo.NewPhoto(r.Operands[1])}
	default:
		return &stage.ReflectFlipStage{}
	}
}

// Apply runs the requested filter followed by any extra stages and returns
// the result. The operands are not modified.
func Apply(r Request, extra ...photo.Stage) (image.Image, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	p := photo.NewPhoto(r.Operands[0])
	stages := append([]photo.Stage{r.Stage()}, extra...)
	if err := p.Pipeline(stages...); err != nil {
		return nil, err
	}
	return p.Img, nil
}
