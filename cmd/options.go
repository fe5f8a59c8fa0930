package cmd

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/rm-hull/photo-filters/internal"
	"github.com/rm-hull/photo-filters/internal/adapter"
	"github.com/rm-hull/photo-filters/internal/engine"
	"github.com/rm-hull/photo-filters/internal/filter"
	"github.com/rm-hull/photo-filters/internal/photo"
	"github.com/rm-hull/photo-filters/internal/photo/stage"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

// FilterOptions holds the filter selection and parameters shared by the
// apply, preview, batch and api-server commands.
type FilterOptions struct {
	Name      string
	Angle     string
	Scale     float64
	Direction string
	Blur      float64
	Greyscale bool
	Bottom    string
}

// Build turns the options into a request without operands plus any
// post-processing stages.
func (o FilterOptions) Build() (*filter.Request, []photo.Stage, error) {
	kind, err := filter.ParseKind(o.Name)
	if err != nil {
		return nil, nil, err
	}
	req := &filter.Request{Kind: kind, VerticalScale: o.Scale}

	if o.Angle != "" {
		angle, err := strconv.ParseFloat(o.Angle, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: angle %q is not a number", pixbuf.ErrInvalidArgument, o.Angle)
		}
		req.ShearAngle = &angle
	}
	if req.Direction, err = engine.ParseDirection(o.Direction); err != nil {
		return nil, nil, err
	}

	var extra []photo.Stage
	if o.Blur > 0 {
		extra = append(extra, &stage.GaussianBlurStage{Sigma: o.Blur})
	}
	if o.Greyscale {
		extra = append(extra, &stage.GreyscaleStage{})
	}
	return req, extra, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// loadOperand reads an image from a local path or an http(s) URL.
func loadOperand(client internal.ImageClient, src string) (image.Image, error) {
	if !isURL(src) {
		return adapter.Load(src)
	}
	body, err := client.Get(src)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	img, _, err := adapter.Read(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return img, nil
}

func loadOperands(client internal.ImageClient, sources []string) ([]image.Image, error) {
	imgs := make([]image.Image, 0, len(sources))
	for _, src := range sources {
		img, err := loadOperand(client, src)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}
