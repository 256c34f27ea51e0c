package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCron schedules the built-in and registered jobs and starts the scheduler.
func StartCron(builtins map[string]Job, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	for name, j := range Merge(builtins) {
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
		log.Info("cron job scheduled", zap.String("job", name), zap.String("schedule", j.Schedule))
	}
	c.Start()
	return c, nil
}
