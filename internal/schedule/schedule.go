package schedule

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps cron-based maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func New(loc *time.Location, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		logger: logger,
	}
}

// Daily registers a job that runs every day at the given HH:MM time.
func (s *Scheduler) Daily(timeStr string, name string, job func()) error {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return err
	}
	_, err = s.cron.AddFunc(spec, s.wrap(name, job))
	return err
}

// Every registers a job that runs on a fixed interval.
func (s *Scheduler) Every(interval time.Duration, name string, job func()) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.wrap(name, job))
	return err
}

func (s *Scheduler) wrap(name string, job func()) func() {
	return func() {
		start := time.Now()
		job()
		s.logger.Debug("job finished", "job", name, "duration", time.Since(start))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// cron format: minute hour dom month dow
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
