package stage

import (
	"github.com/rm-hull/photo-filters/internal/engine"
	"github.com/rm-hull/photo-filters/internal/photo"
)

type ReflectFlipStage struct{}

// Process mirrors the image top to bottom
func (s *ReflectFlipStage) Process(p *photo.Photo) error {
	return runEngine("reflect-flip", p, engine.VerticalReflect)
}
