package internal

import (
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// StartCron re-runs the batch on the given cron schedule, e.g. "30 4 * * *".
func StartCron(schedule string, cfg BatchConfig) (*cron.Cron, error) {
	c := cron.New()

	log.Printf("Starting CRON job to process images (schedule=%s)", schedule)
	_, err := c.AddFunc(schedule, func() {
		errors := RunBatch(cfg)
		if len(errors) > 0 {
			log.Printf("Errors occurred: %v", errors)
		}
	})

	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
