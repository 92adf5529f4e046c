package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"

	"github.com/theoremus-urban-solutions/aseag-nextbus/config"
	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
)

const maxInitialUpdates = 8

// scheduler polls every sensor of a registry on its own interval. Cycles
// of one sensor never overlap; different sensors poll independently.
type scheduler struct {
	registry  *sensor.Registry
	intervals map[string]time.Duration
	fallback  time.Duration
	logger    zerolog.Logger
}

func newScheduler(registry *sensor.Registry, cfg *config.AppConfig) *scheduler {
	intervals := make(map[string]time.Duration, len(cfg.Sensors))
	for _, sc := range cfg.Sensors {
		intervals[sc.Name] = sc.ScanInterval()
	}
	return &scheduler{
		registry:  registry,
		intervals: intervals,
		fallback:  time.Duration(config.DefaultScanIntervalMS) * time.Millisecond,
		logger:    log.With().Str("component", "scheduler").Logger(),
	}
}

func (s *scheduler) interval(key string) time.Duration {
	if d, ok := s.intervals[key]; ok && d > 0 {
		return d
	}
	return s.fallback
}

func (s *scheduler) shortestInterval() time.Duration {
	var shortest time.Duration
	for _, sn := range s.registry.All() {
		d := s.interval(sn.Key())
		if shortest == 0 || d < shortest {
			shortest = d
		}
	}
	return shortest
}

// initialUpdate runs the first cycle of every sensor concurrently so the
// server starts with data. Failures are logged by the sensors themselves.
func (s *scheduler) initialUpdate(ctx context.Context) {
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(maxInitialUpdates)
	for _, sn := range s.registry.All() {
		p.Go(func(ctx context.Context) error {
			return sn.Update(ctx)
		})
	}
	if err := p.Wait(); err != nil {
		s.logger.Warn().Err(err).Msg("Initial update incomplete")
		return
	}
	s.logger.Info().Int("sensors", s.registry.Len()).Msg("Initial update done")
}

// run starts one poll loop per sensor and blocks until ctx is done.
func (s *scheduler) run(ctx context.Context) {
	var wg conc.WaitGroup
	for _, sn := range s.registry.All() {
		interval := s.interval(sn.Key())
		wg.Go(func() {
			s.pollLoop(ctx, sn, interval)
		})
	}
	wg.Wait()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *scheduler) pollLoop(ctx context.Context, sn *sensor.Sensor, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx, sn)
		}
	}
}

// pollOnce runs a single cycle. Errors are already logged by the sensor and
// never stop the loop.
func (s *scheduler) pollOnce(ctx context.Context, sn *sensor.Sensor) {
	if err := sn.Update(ctx); err != nil && ctx.Err() == nil {
		s.logger.Debug().Str("sensor", sn.Key()).Msg("Cycle failed, retrying on next tick")
	}
}
