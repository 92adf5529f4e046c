package prediction

import (
	"math"
	"sort"
	"time"

	"github.com/theoremus-urban-solutions/aseag-nextbus/aseag"
)

const millisPerMinute = 60_000

// Normalize converts one raw prediction.
func Normalize(raw aseag.RawPrediction) Prediction {
	return Prediction{
		Line:        raw.LineName,
		Destination: raw.DestinationText,
		TripID:      raw.TripID,
		Track:       raw.Track,
		Departure:   InstantFromMillis(raw.ActualTime),
		Planned:     InstantFromMillis(raw.PlannedTime),
		Delay:       DelayMinutes(raw.PlannedTime, raw.ActualTime),
	}
}

// NormalizeAll converts every raw prediction, keeping input order and
// duplicates.
func NormalizeAll(raw []aseag.RawPrediction) []Prediction {
	out := make([]Prediction, 0, len(raw))
	for _, r := range raw {
		out = append(out, Normalize(r))
	}
	return out
}

// InstantFromMillis drops the millisecond remainder and returns UTC.
func InstantFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC().Truncate(time.Second)
}

// DelayMinutes is (actual - planned) in minutes, rounded half away from zero.
func DelayMinutes(plannedMS, actualMS int64) int {
	return int(math.Round(float64(actualMS-plannedMS) / millisPerMinute))
}

// FilterTrack keeps predictions whose track equals track exactly.
// An empty track keeps everything.
func FilterTrack(predictions []Prediction, track string) []Prediction {
	if track == "" {
		return predictions
	}
	out := make([]Prediction, 0, len(predictions))
	for _, p := range predictions {
		if p.Track == track {
			out = append(out, p)
		}
	}
	return out
}

// SortByDeparture sorts in place, earliest first. Equal departures keep their
// input order.
func SortByDeparture(predictions []Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Departure.Before(predictions[j].Departure)
	})
}
