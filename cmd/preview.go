package cmd

import (
	"fmt"
	"os"

	"github.com/rm-hull/photo-filters/internal"
	"github.com/rm-hull/photo-filters/internal/filter"
	"github.com/rm-hull/photo-filters/internal/photo"
	log "github.com/sirupsen/logrus"
)

// Preview writes an animated PNG to output that alternates between the first
// input and the filtered result, each shown for delay seconds.
func Preview(client internal.ImageClient, opts FilterOptions, inputs []string, output string, delay float64) error {
	req, extra, err := opts.Build()
	if err != nil {
		return err
	}
	if req.Operands, err = loadOperands(client, inputs); err != nil {
		return err
	}

	out, err := filter.Apply(*req, extra...)
	if err != nil {
		return fmt.Errorf("failed to apply %s: %w", req.Kind, err)
	}

	apngBytes, err := photo.Animate([]*photo.Photo{
		photo.NewPhoto(req.Operands[0]),
		photo.NewPhoto(out),
	}, delay)
	if err != nil {
		return fmt.Errorf("failed to build animation: %w", err)
	}

	if err := os.WriteFile(output, apngBytes, 0644); err != nil {
		return err
	}
	log.Printf("Wrote preview %s (%d bytes)", output, len(apngBytes))
	return nil
}
