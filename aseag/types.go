package aseag

import "encoding/json"

// RawPrediction is a single stop prediction as sent by the broker.
// Times are epoch milliseconds.
type RawPrediction struct {
	LineName        string `json:"lineName"`
	DestinationText string `json:"destinationText"`
	TripID          string `json:"tripId"`
	PlannedTime     int64  `json:"plannedTime"`
	ActualTime      int64  `json:"actualTime"`
	Track           string `json:"track"`
}

// areaInformation mirrors the outer envelope. Every level is kept raw so a
// shape mismatch at one level does not fail the whole decode.
type areaInformation struct {
	Departures json.RawMessage `json:"departures"`
}

type departureList struct {
	Departures json.RawMessage `json:"departures"`
}

type departureEntry struct {
	StopPrediction json.RawMessage `json:"stopPrediction"`
}
