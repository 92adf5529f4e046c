// Package server exposes the sensors of a registry over HTTP.
//
// Routes:
//
//	GET /api/health
//	GET /api/sensors
//	GET /api/sensors/{name}
//	GET /api/sensors/{name}/siri/stop-monitoring.json
//	GET /api/sensors/{name}/siri/stop-monitoring.xml
//	GET /api/sensors/{name}/gtfsrt/trip-updates.pb
//	GET /api/gtfsrt/trip-updates.pb
//
// Handlers only read sensor snapshots; polling happens elsewhere.
package server
