package jobs

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes cron's own messages to slog. Info goes to debug, cron is
// chatty about every run.
type cronLogger struct {
	log *slog.Logger
}

var _ cron.Logger = cronLogger{}

func newCronLogger(log *slog.Logger) cronLogger {
	return cronLogger{log: log}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
