package siri

// StopMonitoringDelivery lists the visits expected at one monitoring point
type StopMonitoringDelivery struct {
	Version            string               `json:"version"`
	ResponseTimestamp  string               `json:"ResponseTimestamp"`
	ValidUntil         string               `json:"ValidUntil,omitempty"`
	MonitoredStopVisit []MonitoredStopVisit `json:"MonitoredStopVisit"`
}

// MonitoredStopVisit is one vehicle journey calling at the stop
type MonitoredStopVisit struct {
	RecordedAtTime          string                  `json:"RecordedAtTime"`
	MonitoringRef           string                  `json:"MonitoringRef"`
	MonitoredVehicleJourney MonitoredVehicleJourney `json:"MonitoredVehicleJourney"`
}

// MonitoredVehicleJourney describes the journey of a visit
type MonitoredVehicleJourney struct {
	LineRef                 string                   `json:"LineRef"`
	FramedVehicleJourneyRef *FramedVehicleJourneyRef `json:"FramedVehicleJourneyRef,omitempty"`
	VehicleMode             string                   `json:"VehicleMode,omitempty"`
	PublishedLineName       string                   `json:"PublishedLineName,omitempty"`
	OperatorRef             string                   `json:"OperatorRef,omitempty"`
	DestinationName         string                   `json:"DestinationName,omitempty"`
	Monitored               bool                     `json:"Monitored"`
	Delay                   string                   `json:"Delay,omitempty"` // ISO 8601 duration
	MonitoredCall           MonitoredCall            `json:"MonitoredCall"`
}

// FramedVehicleJourneyRef uniquely identifies a vehicle journey
type FramedVehicleJourneyRef struct {
	DataFrameRef           string `json:"DataFrameRef"`
	DatedVehicleJourneyRef string `json:"DatedVehicleJourneyRef"`
}

// MonitoredCall is the call at the monitored stop
type MonitoredCall struct {
	StopPointRef          string `json:"StopPointRef"`
	AimedDepartureTime    string `json:"AimedDepartureTime,omitempty"`
	ExpectedDepartureTime string `json:"ExpectedDepartureTime,omitempty"`
	DepartureStatus       string `json:"DepartureStatus,omitempty"` // onTime|delayed|early
	DeparturePlatformName string `json:"DeparturePlatformName,omitempty"`
}
