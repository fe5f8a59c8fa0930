package cmd

import (
	"fmt"

	"github.com/rm-hull/photo-filters/internal"
	"github.com/rm-hull/photo-filters/internal/adapter"
	"github.com/rm-hull/photo-filters/internal/filter"
	log "github.com/sirupsen/logrus"
)

// Apply filters the input images (paths or URLs) and saves the result to
// output, picking the encoding from its extension.
func Apply(client internal.ImageClient, opts FilterOptions, inputs []string, output string) error {
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
	if err := adapter.Save(output, out); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"filter": req.Kind.String(),
		"size":   out.Bounds().Size().String(),
	}).Printf("Wrote %s", output)
	return nil
}
