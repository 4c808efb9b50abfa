package notify

import (
	"context"

	"daily-planner-go/pkg/logger"
)

// LoggingScheduler records scheduling requests in the log. The gateway uses
// it when no platform scheduler is attached.
type LoggingScheduler struct {
	log logger.Logger
}

func NewLoggingScheduler(log logger.Logger) *LoggingScheduler {
	return &LoggingScheduler{log: log}
}

func (s *LoggingScheduler) Schedule(_ context.Context, n Notification) error {
	s.log.Info("notify.schedule: reminder", "id", n.ID, "at", n.Clock(), "repeats", n.Repeats, "title", n.Title)
	return nil
}

func (s *LoggingScheduler) Cancel(_ context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	s.log.Debug("notify.cancel: reminders", "ids", ids)
	return nil
}
