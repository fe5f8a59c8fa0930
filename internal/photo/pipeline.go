package photo

import (
	"image"
	"image/png"
	"io"

	"github.com/rm-hull/photo-filters/internal/adapter"
)

type Photo struct {
	Img    image.Image
	Bounds image.Rectangle
	Format string
}

type Stage interface {
	Process(p *Photo) error
}

func NewPhoto(img image.Image) *Photo {
	return &Photo{
		Img:    img,
		Bounds: img.Bounds(),
	}
}

func NewPhotoFromReader(r io.Reader) (*Photo, error) {
	img, format, err := adapter.Read(r)
	if err != nil {
		return nil, err
	}
	p := NewPhoto(img)
	p.Format = format
	return p, nil
}

func Load(path string) (*Photo, error) {
	img, err := adapter.Load(path)
	if err != nil {
		return nil, err
	}
	return NewPhoto(img), nil
}

// Write always encodes as PNG so translucent filter output survives.
func (p *Photo) Write(w io.Writer) error {
	return png.Encode(w, p.Img)
}

func (p *Photo) Save(path string) error {
	return adapter.Save(path, p.Img)
}

func (p *Photo) Pipeline(stages ...Stage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}
