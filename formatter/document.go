package formatter

import (
	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
	"github.com/theoremus-urban-solutions/aseag-nextbus/utils"
)

// SensorDocument is the JSON view of one sensor.
type SensorDocument struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	StopID      string         `json:"stop_id"`
	Track       string         `json:"track,omitempty"`
	Mode        string         `json:"mode"`
	State       any            `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	Icon        string         `json:"icon"`
	DeviceClass string         `json:"device_class,omitempty"`
	LastUpdated string         `json:"last_updated,omitempty"`
	LastError   string         `json:"last_error,omitempty"`
}

// BuildSensorDocument converts a snapshot. State stays null until the first
// successful update and while a single-mode sensor has no match.
func BuildSensorDocument(snap sensor.Snapshot) SensorDocument {
	doc := SensorDocument{
		Key:         snap.Key,
		Name:        snap.Name,
		StopID:      snap.StopID,
		Track:       snap.Track,
		Mode:        snap.Mode.String(),
		State:       snap.State,
		Attributes:  snap.Attributes,
		Icon:        snap.Icon,
		DeviceClass: snap.DeviceClass,
		LastError:   snap.LastError,
	}
	if !snap.LastUpdated.IsZero() {
		doc.LastUpdated = utils.Iso8601(snap.LastUpdated)
	}
	return doc
}
