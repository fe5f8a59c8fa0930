package internal

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

// NewInboxScheduler processes new images dropped into cfg.InDir every
// interval, starting immediately. Runs never overlap.
func NewInboxScheduler(cfg BatchConfig, interval time.Duration) (gocron.Scheduler, error) {

	if err := processInbox(cfg); err != nil {
		log.Printf("Initial inbox run incomplete: %v", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(processInbox, cfg),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	scheduler.Start()
	return scheduler, nil
}

func processInbox(cfg BatchConfig) error {
	errs := RunBatch(cfg)
	for _, err := range errs {
		log.WithError(err).Warn("inbox image failed")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d inbox images failed: %w", len(errs), errors.Join(errs...))
	}
	return nil
}
