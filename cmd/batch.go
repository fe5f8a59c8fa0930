package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rm-hull/photo-filters/internal"
	log "github.com/sirupsen/logrus"
)

type BatchOptions struct {
	InDir    string
	OutDir   string
	Workers  int
	Schedule string
	Filter   FilterOptions
}

func (o BatchOptions) config() (internal.BatchConfig, error) {
	req, extra, err := o.Filter.Build()
	if err != nil {
		return internal.BatchConfig{}, err
	}
	return internal.BatchConfig{
		InDir:      o.InDir,
		OutDir:     o.OutDir,
		PoolSize:   o.Workers,
		Request:    *req,
		BottomPath: o.Filter.Bottom,
		Extra:      extra,
	}, nil
}

// Batch filters every image in the input directory once, or, with a cron
// schedule, on every tick until interrupted.
func Batch(opts BatchOptions) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	if opts.Schedule == "" {
		errs := internal.RunBatch(cfg)
		for _, err := range errs {
			log.WithError(err).Warn("image failed")
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d images failed: %w", len(errs), errors.Join(errs...))
		}
		return nil
	}

	c, err := internal.StartCron(opts.Schedule, cfg)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", opts.Schedule, err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Stopping CRON job")
	<-c.Stop().Done()
	return nil
}
