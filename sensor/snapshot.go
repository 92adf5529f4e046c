package sensor

import (
	"time"

	"github.com/theoremus-urban-solutions/aseag-nextbus/prediction"
)

// Snapshot is a consistent copy of a sensor for renderers.
type Snapshot struct {
	Key         string
	Name        string
	StopID      string
	Track       string
	Mode        prediction.Mode
	Icon        string
	DeviceClass string
	// Display is nil until the first successful update.
	Display     prediction.DisplayState
	State       any
	Attributes  map[string]any
	LastUpdated time.Time
	LastAttempt time.Time
	LastError   string
}

// Predictions returns the displayed predictions, earliest first.
func (s Snapshot) Predictions() []prediction.Prediction {
	if s.Display == nil {
		return nil
	}
	return prediction.Predictions(s.Display)
}

// Snapshot copies the current state under a single read lock.
func (s *Sensor) Snapshot() Snapshot {
	s.mu.RLock()
	display := s.display
	lastUpdated := s.lastUpdated
	lastAttempt := s.lastAttempt
	lastErr := s.lastError
	s.mu.RUnlock()

	snap := Snapshot{
		Key:         s.key,
		Name:        s.Name(),
		StopID:      s.stopID,
		Track:       s.opts.Track,
		Mode:        s.opts.Mode,
		Icon:        s.Icon(),
		DeviceClass: s.DeviceClass(),
		Display:     display,
		Attributes:  map[string]any{},
		LastUpdated: lastUpdated,
		LastAttempt: lastAttempt,
	}
	if display != nil {
		snap.State = display.State()
		snap.Attributes = display.Attributes()
	}
	snap.Attributes[AttrAttribution] = Attribution
	if lastErr != nil {
		snap.LastError = lastErr.Error()
	}
	return snap
}
