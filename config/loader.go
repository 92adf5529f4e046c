package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = 16182
	DefaultBaseURL        = "https://mova.aseag.de"
	DefaultTimeoutMS      = 10000
	DefaultScanIntervalMS = 60000
	DefaultLogLevel       = "info"
	DefaultMode           = "single"
	DefaultProducerRef    = "ASEAG"
)

// DefaultPaths are tried in order when Load is called without paths.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Load reads the first existing file of paths (DefaultPaths when empty),
// applies defaults and validates the result.
func Load(paths ...string) (*AppConfig, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("no config file found in %s: %w", strings.Join(paths, ", "), err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero values.
func (c *AppConfig) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ProducerRef == "" {
		c.Server.ProducerRef = DefaultProducerRef
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.TimeoutMS == 0 {
		c.API.TimeoutMS = DefaultTimeoutMS
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	for i := range c.Sensors {
		s := &c.Sensors[i]
		if s.Mode == "" {
			s.Mode = DefaultMode
		}
		s.Mode = strings.ToLower(strings.TrimSpace(s.Mode))
		if s.ScanIntervalMS == 0 {
			s.ScanIntervalMS = DefaultScanIntervalMS
		}
	}
}

// Validate checks struct tags and that sensor names are unique.
func (c *AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := map[string]bool{}
	for _, s := range c.Sensors {
		if seen[s.Name] {
			return fmt.Errorf("invalid config: duplicate sensor name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// FindSensor returns the sensor named name.
func (c *AppConfig) FindSensor(name string) (SensorConfig, bool) {
	for _, s := range c.Sensors {
		if s.Name == name {
			return s, true
		}
	}
	return SensorConfig{}, false
}
