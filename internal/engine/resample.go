package engine

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
	"golang.org/x/image/draw"
)

// DefaultKernel is the interpolation kernel used by VerticalShear.
var DefaultKernel = draw.CatmullRom

// samples per source pixel in the tabulated kernel
const tableResolution = 256

// MinScale is the smallest scale a ResamplingFilter accepts. It caps the
// kernel stretch at 1024, keeping the table to a few MiB.
const MinScale = 1.0 / 1024

var errFilterReleased = errors.New("resampling filter already released")

// number of filters acquired and not yet released
var liveFilters atomic.Int64

// ResamplingFilter is a tabulated, band-limited kernel for one resampling
// scale. It must be released when the caller is done with it, and it is not
// safe for concurrent use.
type ResamplingFilter struct {
	scale    float64
	stretch  float64
	support  float64
	table    []float64
	weights  []float64
	released bool
}

// NewResamplingFilter builds a filter for output/input scale factor scale.
// When scale < 1 the kernel is widened by 1/scale so down-sampling stays
// band-limited.
func NewResamplingFilter(scale float64, kernel *draw.Kernel) (*ResamplingFilter, error) {
	if !(scale >= MinScale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: resampling scale %v must be finite and at least %v", pixbuf.ErrInvalidArgument, scale, MinScale)
	}
	if kernel == nil || kernel.At == nil || kernel.Support <= 0 {
		return nil, fmt.Errorf("%w: resampling kernel", pixbuf.ErrInvalidArgument)
	}

	stretch := math.Max(1, 1/scale)
	support := kernel.Support * stretch
	n := int(math.Ceil(support*tableResolution)) + 1
	table := make([]float64, n)
	for i := range table {
		t := float64(i) / tableResolution / stretch
		if t < kernel.Support {
			table[i] = kernel.At(t)
		}
	}

	liveFilters.Add(1)
	return &ResamplingFilter{
		scale:   scale,
		stretch: stretch,
		support: support,
		table:   table,
		weights: make([]float64, 0, int(math.Ceil(2*support))+1),
	}, nil
}

// Scale is the factor the filter was built for.
func (f *ResamplingFilter) Scale() float64 { return f.scale }

// Support is the half-width of the kernel in source pixels.
func (f *ResamplingFilter) Support() float64 { return f.support }

// Weights returns the normalised taps for a sample centred at source
// coordinate center: tap i applies to source index first+i. The returned
// slice is reused by the next call.
func (f *ResamplingFilter) Weights(center float64) (first int, weights []float64, err error) {
	if f.released {
		return 0, nil, errFilterReleased
	}

	first = int(math.Ceil(center - f.support))
	last := int(math.Floor(center + f.support))

	w := f.weights[:0]
	var sum float64
	for i := first; i <= last; i++ {
		d := math.Abs(float64(i) - center)
		var v float64
		if d < f.support {
			v = f.table[int(d*tableResolution+0.5)]
		}
		w = append(w, v)
		sum += v
	}
	if sum != 0 {
		for i := range w {
			w[i] /= sum
		}
	}
	f.weights = w
	return first, w, nil
}

// Release frees the kernel table. Calling it again has no effect.
func (f *ResamplingFilter) Release() {
	if f.released {
		return
	}
	f.released = true
	f.table = nil
	f.weights = nil
	liveFilters.Add(-1)
}
