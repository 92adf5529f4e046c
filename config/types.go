package config

import (
	"time"

	"github.com/theoremus-urban-solutions/aseag-nextbus/prediction"
)

// ServerConfig contains server configuration
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
	ProducerRef    string   `yaml:"producerRef"`
}

// APIConfig contains the ASEAG broker configuration
type APIConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"required,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// Timeout returns the per-request timeout
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Pretty bool   `yaml:"pretty"`
}

// SensorConfig describes one sensor
type SensorConfig struct {
	Name           string `yaml:"name" validate:"required"`
	StopID         string `yaml:"stopId" validate:"required"`
	Track          string `yaml:"track"`
	Mode           string `yaml:"mode" validate:"required,oneof=single list"`
	MaxPredictions int    `yaml:"maxPredictions" validate:"gte=0"`
	ScanIntervalMS int    `yaml:"scanIntervalMS" validate:"gte=0"`
}

// Options converts the sensor settings into selection options
func (s SensorConfig) Options() (prediction.Options, error) {
	mode, err := prediction.ParseMode(s.Mode)
	if err != nil {
		return prediction.Options{}, err
	}
	return prediction.Options{
		Track:          s.Track,
		Mode:           mode,
		MaxPredictions: s.MaxPredictions,
	}, nil
}

// ScanInterval returns the polling interval
func (s SensorConfig) ScanInterval() time.Duration {
	return time.Duration(s.ScanIntervalMS) * time.Millisecond
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig   `yaml:"server"`
	API     APIConfig      `yaml:"api"`
	Log     LogConfig      `yaml:"log"`
	Sensors []SensorConfig `yaml:"sensors" validate:"dive"`
}
