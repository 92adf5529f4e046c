package sensor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/theoremus-urban-solutions/aseag-nextbus/config"
)

// Registry holds the sensors of one process in configuration order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	sensors map[string]*Sensor
}

func NewRegistry() *Registry {
	return &Registry{sensors: map[string]*Sensor{}}
}

// NewRegistryFromConfig creates one sensor per configured entry, all sharing
// fetcher.
func NewRegistryFromConfig(cfg *config.AppConfig, fetcher Fetcher, options ...Option) (*Registry, error) {
	r := NewRegistry()
	for _, sc := range cfg.Sensors {
		opts, err := sc.Options()
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", sc.Name, err)
		}
		if err := r.Add(New(sc.Name, sc.StopID, opts, fetcher, options...)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers s. Keys must be unique.
func (r *Registry) Add(s *Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sensors[s.Key()]; exists {
		return fmt.Errorf("sensor %q already registered", s.Key())
	}
	r.sensors[s.Key()] = s
	r.order = append(r.order, s.Key())
	return nil
}

func (r *Registry) Get(key string) (*Sensor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sensors[key]
	return s, ok
}

// All returns the sensors in registration order.
func (r *Registry) All() []*Sensor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Sensor, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.sensors[key])
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// UpdateAll runs one cycle per sensor, one after the other, and joins the
// failures.
func (r *Registry) UpdateAll(ctx context.Context) error {
	var errs []error
	for _, s := range r.All() {
		if err := s.Update(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
