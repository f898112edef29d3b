package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/logger"
)

// SessionReaper tears down conversations nobody is driving anymore.
type SessionReaper interface {
	IdleSessions(maxIdle time.Duration) []string
	EndSession(ctx context.Context, sessionID string) error
}

// InitCronJobs registers the background jobs and starts the scheduler.
// Reaped sessions go through the normal teardown path, so any pending
// replies are cancelled with them.
func InitCronJobs(c *cron.Cron, reaper SessionReaper, spec string, maxIdle time.Duration) error {
	_, err := c.AddFunc(spec, func() {
		for _, id := range reaper.IdleSessions(maxIdle) {
			if err := reaper.EndSession(context.Background(), id); err != nil {
				logger.Log.Warnf("failed to reap session %s: %v", id, err)
				continue
			}
			logger.Log.Infof("reaped idle session %s", id)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	return nil
}
