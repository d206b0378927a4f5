package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Fetcher refreshes the stored observation for one zip code.
type Fetcher interface {
	FetchAndStore(ctx context.Context, zip string) error
}

// Scheduler periodically refreshes the temperature of watched zip codes.
type Scheduler struct {
	scheduler *gocron.Scheduler
	fetcher   Fetcher
	zips      []string
	interval  time.Duration
	log       *logrus.Logger
}

// New creates a new Scheduler.
func New(zips []string, interval time.Duration, fetcher Fetcher, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		fetcher:   fetcher,
		zips:      zips,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.zips) == 0 {
		s.log.Info("scheduler: no zip codes configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	if _, err := s.scheduler.Every(interval).Do(s.RunOnce); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every watched zip code concurrently and waits for all of them.
func (s *Scheduler) RunOnce() {
	s.log.Debug("scheduler: running zip refresh job")

	var wg sync.WaitGroup
	for _, zip := range s.zips {
		wg.Add(1)
		go func(zip string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := s.fetcher.FetchAndStore(ctx, zip); err != nil {
				s.log.WithError(err).WithField("zip", zip).Warn("scheduler: refresh failed")
			}
		}(zip)
	}
	wg.Wait()

	s.log.Debug("scheduler: completed zip refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
