package siri

// SiriResponse is the top-level SIRI response structure
type SiriResponse struct {
	Siri SiriServiceDelivery `json:"Siri"`
}

// SiriServiceDelivery wraps the ServiceDelivery element
type SiriServiceDelivery struct {
	ServiceDelivery ServiceDelivery `json:"ServiceDelivery"`
}

// ServiceDelivery contains the deliveries of one response
type ServiceDelivery struct {
	ResponseTimestamp      string                   `json:"ResponseTimestamp"`
	ProducerRef            string                   `json:"ProducerRef,omitempty"`
	StopMonitoringDelivery []StopMonitoringDelivery `json:"StopMonitoringDelivery"`
}
