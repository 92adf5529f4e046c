// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// A file describes the HTTP server, the ASEAG broker, logging and any number
// of sensors, each polling one stop and track.
package config
