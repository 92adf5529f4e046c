package sensor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/aseag-nextbus/aseag"
	"github.com/theoremus-urban-solutions/aseag-nextbus/prediction"
)

const (
	Icon                 = "mdi:bus"
	Attribution          = "Data provided by ASEAG"
	AttrAttribution      = "attribution"
	DeviceClassTimestamp = "timestamp"
)

// Fetcher loads raw predictions for a stop. *aseag.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, stopID string) ([]aseag.RawPrediction, error)
}

// Sensor exposes the departures of one stop and track.
type Sensor struct {
	key     string
	stopID  string
	opts    prediction.Options
	fetcher Fetcher
	now     func() time.Time
	logger  zerolog.Logger

	updateMu sync.Mutex

	mu          sync.RWMutex
	display     prediction.DisplayState
	lastUpdated time.Time
	lastAttempt time.Time
	lastError   error
}

// Option configures a Sensor.
type Option func(*Sensor)

// WithClock replaces time.Now for LastUpdated bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Sensor) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the base logger; sensor and stop fields are added to it.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sensor) {
		s.logger = logger
	}
}

// New creates a sensor. key is the configured name.
func New(key, stopID string, opts prediction.Options, fetcher Fetcher, options ...Option) *Sensor {
	s := &Sensor{
		key:     key,
		stopID:  stopID,
		opts:    opts,
		fetcher: fetcher,
		now:     time.Now,
		logger:  log.Logger,
	}
	for _, o := range options {
		o(s)
	}
	s.logger = s.logger.With().Str("sensor", key).Str("stop", stopID).Logger()
	return s
}

// Update runs one update cycle. On failure the previous state is kept and
// the error is returned for the caller to log; it is never fatal.
func (s *Sensor) Update(ctx context.Context) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	logger := s.logger.With().Str("cycle", uuid.NewString()).Logger()
	started := s.now()

	raw, err := s.fetcher.Fetch(ctx, s.stopID)
	if err != nil {
		s.mu.Lock()
		s.lastAttempt = started
		s.lastError = err
		s.mu.Unlock()

		logger.Warn().Err(err).Msg("Update failed, keeping previous state")
		return fmt.Errorf("update sensor %s: %w", s.key, err)
	}

	display := prediction.Select(raw, s.opts)

	s.mu.Lock()
	s.display = display
	s.lastAttempt = started
	s.lastUpdated = started
	s.lastError = nil
	s.mu.Unlock()

	logger.Debug().
		Int("received", len(raw)).
		Int("displayed", len(prediction.Predictions(display))).
		Msg("Updated predictions")
	return nil
}

// Key is the configured sensor name, unique within a Registry.
func (s *Sensor) Key() string { return s.key }

// StopID returns the polled stop area.
func (s *Sensor) StopID() string { return s.stopID }

// Options returns the selection options.
func (s *Sensor) Options() prediction.Options { return s.opts }

// Name is "<name> <stop> <track>".
func (s *Sensor) Name() string {
	return strings.TrimSpace(strings.Join([]string{s.key, s.stopID, s.opts.Track}, " "))
}

func (s *Sensor) Icon() string { return Icon }

// DeviceClass is "timestamp" in single mode and empty in list mode.
func (s *Sensor) DeviceClass() string {
	if s.opts.Mode == prediction.ModeList {
		return ""
	}
	return DeviceClassTimestamp
}

// Display returns the last successful DisplayState, nil before the first one.
func (s *Sensor) Display() prediction.DisplayState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// State is the scalar value, nil while unknown.
func (s *Sensor) State() any {
	display := s.Display()
	if display == nil {
		return nil
	}
	return display.State()
}

// Attributes returns the display attributes plus the attribution.
func (s *Sensor) Attributes() map[string]any {
	attrs := map[string]any{}
	if display := s.Display(); display != nil {
		attrs = display.Attributes()
	}
	attrs[AttrAttribution] = Attribution
	return attrs
}

// LastUpdated is the start time of the last successful cycle.
func (s *Sensor) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// LastError is the error of the most recent cycle, nil if it succeeded.
func (s *Sensor) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}
