package formatter

import (
	"time"

	"github.com/theoremus-urban-solutions/aseag-nextbus/prediction"
	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
	"github.com/theoremus-urban-solutions/aseag-nextbus/siri"
	"github.com/theoremus-urban-solutions/aseag-nextbus/utils"
)

const (
	DefaultProducerRef = "ASEAG"
	smVersion          = "2.0"
)

// StopMonitoringOptions controls BuildStopMonitoring.
type StopMonitoringOptions struct {
	// ProducerRef is used as codespace in every reference. Defaults to ASEAG.
	ProducerRef string
	// ValidFor sets ValidUntil relative to the response timestamp. Zero omits it.
	ValidFor time.Duration
}

// BuildStopMonitoring wraps the displayed predictions of snap in a SIRI
// Stop Monitoring response stamped with now.
func BuildStopMonitoring(snap sensor.Snapshot, now time.Time, opts StopMonitoringOptions) *siri.SiriResponse {
	codespace := opts.ProducerRef
	if codespace == "" {
		codespace = DefaultProducerRef
	}

	predictions := snap.Predictions()
	visits := make([]siri.MonitoredStopVisit, 0, len(predictions))
	recordedAt := ""
	if !snap.LastUpdated.IsZero() {
		recordedAt = utils.Iso8601(snap.LastUpdated)
	}
	for _, p := range predictions {
		visits = append(visits, buildStopVisit(p, snap.StopID, codespace, recordedAt))
	}

	ts := utils.Iso8601(now)
	delivery := siri.StopMonitoringDelivery{
		Version:            smVersion,
		ResponseTimestamp:  ts,
		MonitoredStopVisit: visits,
	}
	if opts.ValidFor > 0 {
		delivery.ValidUntil = utils.ValidUntilFrom(now.Unix(), int(opts.ValidFor.Milliseconds()))
	}

	return &siri.SiriResponse{
		Siri: siri.SiriServiceDelivery{
			ServiceDelivery: siri.ServiceDelivery{
				ResponseTimestamp:      ts,
				ProducerRef:            codespace,
				StopMonitoringDelivery: []siri.StopMonitoringDelivery{delivery},
			},
		},
	}
}

func buildStopVisit(p prediction.Prediction, stopID, codespace, recordedAt string) siri.MonitoredStopVisit {
	var framed *siri.FramedVehicleJourneyRef
	if p.TripID != "" {
		framed = &siri.FramedVehicleJourneyRef{
			DataFrameRef:           utils.Iso8601DateFromUnixSeconds(p.Planned.Unix()),
			DatedVehicleJourneyRef: codespace + ":ServiceJourney:" + p.TripID,
		}
	}
	stopPointRef := codespace + ":StopPoint:" + stopID

	return siri.MonitoredStopVisit{
		RecordedAtTime: recordedAt,
		MonitoringRef:  stopPointRef,
		MonitoredVehicleJourney: siri.MonitoredVehicleJourney{
			LineRef:                 codespace + ":Line:" + p.Line,
			FramedVehicleJourneyRef: framed,
			VehicleMode:             "bus",
			PublishedLineName:       p.Line,
			OperatorRef:             codespace,
			DestinationName:         p.Destination,
			Monitored:               true,
			Delay:                   utils.FormatDelayAsISO8601Duration(int64(p.Delay) * 60),
			MonitoredCall: siri.MonitoredCall{
				StopPointRef:          stopPointRef,
				AimedDepartureTime:    utils.Iso8601(p.Planned),
				ExpectedDepartureTime: utils.Iso8601(p.Departure),
				DepartureStatus:       departureStatus(p.Delay),
				DeparturePlatformName: p.Track,
			},
		},
	}
}

func departureStatus(delay int) string {
	switch {
	case delay > 0:
		return "delayed"
	case delay < 0:
		return "early"
	default:
		return "onTime"
	}
}
