// Package formatter renders sensor snapshots for the outside world.
//
// This package is organized into:
// - document.go: the sensor document served by the HTTP API (state + attributes)
// - wrapper.go: SIRI Stop Monitoring response building
// - json.go: SIRI JSON serialization
// - xml.go: SIRI XML serialization with proper escaping
// - gtfsrt.go: GTFS-Realtime TripUpdates feed building
//
// XML is written by hand for precise control over element order.
package formatter
