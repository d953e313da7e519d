package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 5 * time.Minute

// Task is one unit of scheduled work. It must honour ctx cancellation.
type Task func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func NewScheduler(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	log := cronLogger{}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(log), cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log))),
		timeout: timeout,
	}
}

func (s *Scheduler) Register(spec string, name string, task Task) error {
	if task == nil {
		return fmt.Errorf("job %q has no task", name)
	}
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, task) }); err != nil {
		return fmt.Errorf("schedule job %q with %q: %w", name, spec, err)
	}
	logger.Info("job scheduled", logger.Fields{
		"job":  name,
		"spec": spec,
	})
	return nil
}

func (s *Scheduler) run(name string, task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := task(ctx); err != nil {
		logger.Error("job failed", err, logger.Fields{
			"job":        name,
			"durationMs": time.Since(start).Milliseconds(),
		})
		return
	}
	logger.Info("job completed", logger.Fields{
		"job":        name,
		"durationMs": time.Since(start).Milliseconds(),
	})
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for in-flight jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Info("cron "+msg, pairs(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Error("cron "+msg, err, pairs(keysAndValues))
}

func pairs(keysAndValues []any) logger.Fields {
	fields := logger.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
